package queries

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
)

var ErrBookingNotFound = errs.New("booking not found")

// Read models (DTO for read side)
type BookingView struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status string        `json:"status"`
	Booker BookerRef     `json:"booker"`
	Item   BookedItemRef `json:"item"`
}

type BookerRef struct {
	ID int64 `json:"id"`
}

type BookedItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingRow is the flat read-store projection a view is assembled from.
// ItemOwnerID is carried for visibility checks only and never serialized.
type BookingRow struct {
	ID          int64
	Start       time.Time
	End         time.Time
	Status      string
	BookerID    int64
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
}

type BookingQueries interface {
	GetByID(ctx context.Context, actorID, bookingID int64) (*BookingView, error)
	ListByBooker(ctx context.Context, bookerID int64, state booking.State, page Page) ([]BookingView, error)
	ListByOwner(ctx context.Context, ownerID int64, state booking.State, page Page) ([]BookingView, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id int64) (*BookingRow, error)
	// FindByBooker returns the booker's bookings ordered by start descending.
	FindByBooker(ctx context.Context, bookerID int64) ([]BookingRow, error)
	// FindByOwner returns bookings of the owner's items ordered by start descending.
	FindByOwner(ctx context.Context, ownerID int64) ([]BookingRow, error)
}

type bookingQueriesImpl struct {
	repo     BookingViewRepo
	userRepo UserViewRepo
	clock    clock.Clock
}

func NewBookingQueries(repo BookingViewRepo, userRepo UserViewRepo, clock clock.Clock) BookingQueries {
	return &bookingQueriesImpl{repo: repo, userRepo: userRepo, clock: clock}
}

// GetByID is visible to the booker and the item's owner only. Anyone else
// learns nothing beyond "not found".
func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID, bookingID int64) (*BookingView, error) {
	row, err := q.repo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if row.BookerID != actorID && row.ItemOwnerID != actorID {
		return nil, ErrBookingNotFound
	}
	view := toBookingView(*row)
	return &view, nil
}

func (q *bookingQueriesImpl) ListByBooker(ctx context.Context, bookerID int64, state booking.State, page Page) ([]BookingView, error) {
	if err := q.ensureUserExists(ctx, bookerID); err != nil {
		return nil, err
	}
	rows, err := q.repo.FindByBooker(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	return q.classify(rows, state, page), nil
}

func (q *bookingQueriesImpl) ListByOwner(ctx context.Context, ownerID int64, state booking.State, page Page) ([]BookingView, error) {
	if err := q.ensureUserExists(ctx, ownerID); err != nil {
		return nil, err
	}
	rows, err := q.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return q.classify(rows, state, page), nil
}

func (q *bookingQueriesImpl) ensureUserExists(ctx context.Context, userID int64) error {
	if _, err := q.userRepo.FindByID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// classify filters rows through the state predicate at a single evaluation
// instant, so one listing never classifies two bookings against different
// nows.
func (q *bookingQueriesImpl) classify(rows []BookingRow, state booking.State, page Page) []BookingView {
	now := q.clock.Now()
	filtered := make([]BookingRow, 0, len(rows))
	for _, row := range rows {
		if state.Matches(booking.Status(row.Status), row.Start, row.End, now) {
			filtered = append(filtered, row)
		}
	}
	windowed := paginate(filtered, page)
	views := make([]BookingView, 0, len(windowed))
	for _, row := range windowed {
		views = append(views, toBookingView(row))
	}
	return views
}

func toBookingView(row BookingRow) BookingView {
	return BookingView{
		ID:     row.ID,
		Start:  row.Start,
		End:    row.End,
		Status: row.Status,
		Booker: BookerRef{ID: row.BookerID},
		Item:   BookedItemRef{ID: row.ItemID, Name: row.ItemName},
	}
}
