package queries

import (
	"context"
	"strings"
	"time"

	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
)

var ErrItemNotFound = errs.New("item not found")

type ItemView struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	RequestID   *int64            `json:"requestId,omitempty"`
	LastBooking *BookingShortView `json:"lastBooking"`
	NextBooking *BookingShortView `json:"nextBooking"`
	Comments    []CommentView     `json:"comments"`
}

// BookingShortView is the condensed booking attached to an owner's item view.
type BookingShortView struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemRow struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
}

type CommentRow struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorName string
	Created    time.Time
}

// ItemBookingRow is one item's selected last or next booking.
type ItemBookingRow struct {
	ItemID    int64
	BookingID int64
	BookerID  int64
}

type ItemQueries interface {
	GetByID(ctx context.Context, actorID, itemID int64) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID int64, page Page) ([]ItemView, error)
	Search(ctx context.Context, text string, page Page) ([]ItemView, error)
}

type ItemViewRepo interface {
	FindByID(ctx context.Context, id int64) (*ItemRow, error)
	// FindByOwner returns the owner's items ordered by id ascending.
	FindByOwner(ctx context.Context, ownerID int64) ([]ItemRow, error)
	// Search matches available items whose name or description contains text
	// case-insensitively, ordered by id ascending.
	Search(ctx context.Context, text string) ([]ItemRow, error)
	// FindLastBookings selects, per item, the booking with the latest end
	// among those already started (start < now) and not rejected. End ties
	// resolve to the smallest booking id.
	FindLastBookings(ctx context.Context, itemIDs []int64, now time.Time) ([]ItemBookingRow, error)
	// FindNextBookings selects, per item, the booking with the earliest start
	// among those not yet started (start > now) and not rejected. Start ties
	// resolve to the smallest booking id.
	FindNextBookings(ctx context.Context, itemIDs []int64, now time.Time) ([]ItemBookingRow, error)
	// FindCommentsByItems returns comments grouped by item, each group
	// ordered by creation time ascending.
	FindCommentsByItems(ctx context.Context, itemIDs []int64) ([]CommentRow, error)
}

// ItemViewCache is a read-through cache over assembled single-item views.
// Implementations must treat a miss and a cache failure identically.
type ItemViewCache interface {
	Get(ctx context.Context, itemID int64, ownerView bool) (*ItemView, bool)
	Set(ctx context.Context, itemID int64, ownerView bool, view *ItemView)
}

type itemQueriesImpl struct {
	repo  ItemViewRepo
	cache ItemViewCache
	clock clock.Clock
}

func NewItemQueries(repo ItemViewRepo, cache ItemViewCache, clock clock.Clock) ItemQueries {
	return &itemQueriesImpl{repo: repo, cache: cache, clock: clock}
}

// GetByID assembles the item view for actorID. Last and next bookings are
// attached only when the actor owns the item; comments are attached for
// everyone.
func (q *itemQueriesImpl) GetByID(ctx context.Context, actorID, itemID int64) (*ItemView, error) {
	row, err := q.repo.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	ownerView := row.OwnerID == actorID
	if cached, ok := q.cache.Get(ctx, itemID, ownerView); ok {
		return cached, nil
	}

	views, err := q.assemble(ctx, []ItemRow{*row}, ownerView)
	if err != nil {
		return nil, err
	}
	view := &views[0]
	q.cache.Set(ctx, itemID, ownerView, view)
	return view, nil
}

func (q *itemQueriesImpl) ListByOwner(ctx context.Context, ownerID int64, page Page) ([]ItemView, error) {
	rows, err := q.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return q.assemble(ctx, paginate(rows, page), true)
}

func (q *itemQueriesImpl) Search(ctx context.Context, text string, page Page) ([]ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemView{}, nil
	}
	rows, err := q.repo.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	return q.assemble(ctx, paginate(rows, page), false)
}

// assemble attaches comments (and, for owner views, last/next bookings) in
// batch: one store round trip per concern regardless of page size.
func (q *itemQueriesImpl) assemble(ctx context.Context, rows []ItemRow, ownerView bool) ([]ItemView, error) {
	itemIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		itemIDs = append(itemIDs, row.ID)
	}

	var lastByItem, nextByItem map[int64]ItemBookingRow
	if ownerView && len(itemIDs) > 0 {
		now := q.clock.Now()
		last, err := q.repo.FindLastBookings(ctx, itemIDs, now)
		if err != nil {
			return nil, err
		}
		next, err := q.repo.FindNextBookings(ctx, itemIDs, now)
		if err != nil {
			return nil, err
		}
		lastByItem = indexByItem(last)
		nextByItem = indexByItem(next)
	}

	commentsByItem := map[int64][]CommentView{}
	if len(itemIDs) > 0 {
		comments, err := q.repo.FindCommentsByItems(ctx, itemIDs)
		if err != nil {
			return nil, err
		}
		for _, c := range comments {
			commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], CommentView{
				ID:         c.ID,
				Text:       c.Text,
				AuthorName: c.AuthorName,
				Created:    c.Created,
			})
		}
	}

	views := make([]ItemView, 0, len(rows))
	for _, row := range rows {
		view := ItemView{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Available:   row.Available,
			RequestID:   row.RequestID,
			Comments:    []CommentView{},
		}
		if cs, ok := commentsByItem[row.ID]; ok {
			view.Comments = cs
		}
		if ownerView {
			if b, ok := lastByItem[row.ID]; ok {
				view.LastBooking = &BookingShortView{ID: b.BookingID, BookerID: b.BookerID}
			}
			if b, ok := nextByItem[row.ID]; ok {
				view.NextBooking = &BookingShortView{ID: b.BookingID, BookerID: b.BookerID}
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func indexByItem(rows []ItemBookingRow) map[int64]ItemBookingRow {
	m := make(map[int64]ItemBookingRow, len(rows))
	for _, row := range rows {
		m[row.ItemID] = row
	}
	return m
}
