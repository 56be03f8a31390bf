package booking

import (
	"shareit/internal/pkg/errs"
)

var ErrAlreadyDecided = errs.New("booking has already been decided")

type Booking struct {
	id       int64
	period   Period
	itemID   int64
	bookerID int64
	status   Status
}

// NewBooking creates a booking awaiting the owner's decision.
func NewBooking(period Period, itemID, bookerID int64) *Booking {
	return &Booking{
		period:   period,
		itemID:   itemID,
		bookerID: bookerID,
		status:   StatusWaiting,
	}
}

func Reconstruct(id int64, period Period, itemID, bookerID int64, status Status) *Booking {
	return &Booking{
		id:       id,
		period:   period,
		itemID:   itemID,
		bookerID: bookerID,
		status:   status,
	}
}

func (b *Booking) ID() int64       { return b.id }
func (b *Booking) Period() Period  { return b.period }
func (b *Booking) ItemID() int64   { return b.itemID }
func (b *Booking) BookerID() int64 { return b.bookerID }
func (b *Booking) Status() Status  { return b.status }

// Decide resolves a waiting booking. Any booking that already left WAITING
// is final and cannot be decided again.
func (b *Booking) Decide(approved bool) error {
	if b.status != StatusWaiting {
		return ErrAlreadyDecided
	}
	if approved {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	return nil
}
