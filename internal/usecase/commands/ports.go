package commands

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/comment"
	"shareit/internal/domain/item"
	"shareit/internal/domain/itemrequest"
	"shareit/internal/domain/user"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type ItemSnapshot struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
}

type UserSnapshot struct {
	ID    int64
	Name  string
	Email string
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (int64, error)
	FindByID(ctx context.Context, id int64) (*booking.Booking, error)
	// DecideIfWaiting resolves a booking only while it is still WAITING.
	// A booking that already left WAITING yields KindConflict, a missing
	// one KindNotFound.
	DecideIfWaiting(ctx context.Context, id int64, approved bool) error
	// HasFinishedBooking reports whether booker has a booking of the item
	// that ended before now with a status other than REJECTED and WAITING.
	HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type ItemRepository interface {
	Create(ctx context.Context, it *item.Item) (int64, error)
	FindByID(ctx context.Context, id int64) (*ItemSnapshot, error)
	Update(ctx context.Context, it *item.Item) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (int64, error)
	FindByID(ctx context.Context, id int64) (*UserSnapshot, error)
	Update(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) (int64, error)
}

type ItemRequestRepository interface {
	Create(ctx context.Context, r *itemrequest.ItemRequest) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// ViewCacheInvalidator drops cached item views after a write that would
// change them. Invalidation failures are swallowed by implementations; the
// cache entry expires by TTL anyway.
type ViewCacheInvalidator interface {
	InvalidateItem(ctx context.Context, itemID int64)
}
