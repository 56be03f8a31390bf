package booking

import (
	"time"

	"shareit/internal/pkg/errs"
)

var ErrUnknownState = errs.New("unknown booking state")

// Status is the lifecycle status persisted on a booking.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

// State is a listing filter over bookings. Unlike Status it also covers the
// temporal classes CURRENT, PAST and FUTURE, which are derived from the
// booking period relative to the evaluation instant.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState validates a raw filter value. Matching is case-sensitive.
func ParseState(raw string) (State, error) {
	switch State(raw) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(raw), nil
	}
	return "", errs.Mark(errs.New("state: "+raw), ErrUnknownState)
}

// Matches reports whether a booking with the given status and period belongs
// to the state class at instant now. Boundary instants resolve as follows:
// a booking starting exactly at now is CURRENT (start <= now), and one ending
// exactly at now is still CURRENT (now <= end).
func (s State) Matches(status Status, start, end, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return !start.After(now) && !end.Before(now)
	case StatePast:
		return end.Before(now)
	case StateFuture:
		return start.After(now)
	case StateWaiting:
		return status == StatusWaiting
	case StateRejected:
		return status == StatusRejected
	}
	return false
}
