package commands

import (
	"context"

	"shareit/internal/domain/booking"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrItemNotFound    = errs.New("item not found")
	ErrUserNotFound    = errs.New("user not found")
	ErrItemUnavailable = errs.New("item is not available for booking")
	ErrOwnItemBooking  = errs.New("owner cannot book their own item")
	ErrInvalidPeriod   = errs.New("invalid booking period")
	ErrAlreadyDecided  = errs.New("booking has already been decided")
)

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, bookerID int64) (*queries.BookingView, error)
	ApproveBooking(ctx context.Context, bookingID, ownerID int64, approved bool) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	bookingRepo    BookingRepository
	itemRepo       ItemRepository
	userRepo       UserRepository
	bookingQueries queries.BookingQueries
	cache          ViewCacheInvalidator
	clock          clock.Clock
}

func NewBookingCommands(
	bookingRepo BookingRepository,
	itemRepo ItemRepository,
	userRepo UserRepository,
	bookingQueries queries.BookingQueries,
	cache ViewCacheInvalidator,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingRepo:    bookingRepo,
		itemRepo:       itemRepo,
		userRepo:       userRepo,
		bookingQueries: bookingQueries,
		cache:          cache,
		clock:          clock,
	}
}

// CreateBooking places a WAITING booking for someone else's available item.
// Owners booking their own item get "not found" rather than a dedicated
// error, so item ownership is not probeable.
func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	bookerID int64,
) (*queries.BookingView, error) {
	if _, err := c.userRepo.FindByID(ctx, bookerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	itemSnap, err := c.itemRepo.FindByID(ctx, req.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if itemSnap.OwnerID == bookerID {
		return nil, ErrOwnItemBooking
	}
	if !itemSnap.Available {
		return nil, ErrItemUnavailable
	}

	period, err := booking.NewPeriod(req.Start, req.End, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPeriod)
	}

	id, err := c.bookingRepo.Create(ctx, booking.NewBooking(period, req.ItemID, bookerID))
	if err != nil {
		return nil, err
	}
	c.cache.InvalidateItem(ctx, req.ItemID)

	return c.bookingQueries.GetByID(ctx, bookerID, id)
}

// ApproveBooking lets the item's owner resolve a WAITING booking. Non-owners
// get "not found". The decision is applied conditionally in the store so two
// concurrent decisions cannot both win.
func (c *bookingCommandsImpl) ApproveBooking(
	ctx context.Context,
	bookingID, ownerID int64,
	approved bool,
) (*queries.BookingView, error) {
	b, err := c.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	itemSnap, err := c.itemRepo.FindByID(ctx, b.ItemID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if itemSnap.OwnerID != ownerID {
		return nil, ErrBookingNotFound
	}

	if err := b.Decide(approved); err != nil {
		return nil, errs.Mark(err, ErrAlreadyDecided)
	}

	if err := c.bookingRepo.DecideIfWaiting(ctx, bookingID, approved); err != nil {
		switch {
		case infra.IsKind(err, infra.KindConflict):
			return nil, ErrAlreadyDecided
		case infra.IsKind(err, infra.KindNotFound):
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	c.cache.InvalidateItem(ctx, b.ItemID())

	return c.bookingQueries.GetByID(ctx, ownerID, bookingID)
}
