package booking

import (
	"time"

	"shareit/internal/pkg/errs"
)

var (
	ErrEmptyPeriod    = errs.New("booking period requires both start and end")
	ErrInvalidPeriod  = errs.New("booking start must be strictly before end")
	ErrPeriodNotAhead = errs.New("booking period must begin in the future")
)

// Period is the half-open-free time span of a booking. Both bounds are
// inclusive for classification purposes.
type Period struct {
	start time.Time
	end   time.Time
}

// NewPeriod validates a requested booking span against now: both bounds must
// be set, start must be strictly before end, and start must lie strictly in
// the future.
func NewPeriod(start, end, now time.Time) (Period, error) {
	if start.IsZero() || end.IsZero() {
		return Period{}, ErrEmptyPeriod
	}
	if !start.Before(end) {
		return Period{}, ErrInvalidPeriod
	}
	if !start.After(now) {
		return Period{}, ErrPeriodNotAhead
	}
	return Period{start: start, end: end}, nil
}

// ReconstructPeriod rebuilds a period from storage without validation.
func ReconstructPeriod(start, end time.Time) Period {
	return Period{start: start, end: end}
}

func (p Period) Start() time.Time { return p.start }
func (p Period) End() time.Time   { return p.end }
