package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/infra"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
)

type ItemRepo struct {
	s *Store
}

func NewItemRepo(s *Store) *ItemRepo {
	return &ItemRepo{s: s}
}

func (r *ItemRepo) Create(ctx context.Context, it *item.Item) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[it.OwnerID()]; !ok {
		return 0, infra.WrapRepoErr(s.slogger, infra.KindForeignKeyViolated, "owner does not exist", nil)
	}
	if it.RequestID() != nil {
		if _, ok := s.requests[*it.RequestID()]; !ok {
			return 0, infra.WrapRepoErr(s.slogger, infra.KindForeignKeyViolated, "item request does not exist", nil)
		}
	}

	s.itemSeq++
	rec := itemRecord{
		id:          s.itemSeq,
		name:        it.Name(),
		description: it.Description(),
		available:   it.Available(),
		ownerID:     it.OwnerID(),
		requestID:   it.RequestID(),
	}
	s.items[rec.id] = rec
	return rec.id, nil
}

func (r *ItemRepo) FindByID(ctx context.Context, id int64) (*commands.ItemSnapshot, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.items[id]
	if !ok {
		return nil, infra.WrapRepoErr(s.slogger, infra.KindNotFound, "item not found", nil)
	}
	return &commands.ItemSnapshot{
		ID:          rec.id,
		Name:        rec.name,
		Description: rec.description,
		Available:   rec.available,
		OwnerID:     rec.ownerID,
		RequestID:   rec.requestID,
	}, nil
}

func (r *ItemRepo) Update(ctx context.Context, it *item.Item) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.items[it.ID()]
	if !ok {
		return infra.WrapRepoErr(s.slogger, infra.KindNotFound, "item not found", nil)
	}
	rec.name = it.Name()
	rec.description = it.Description()
	rec.available = it.Available()
	s.items[rec.id] = rec
	return nil
}

type ItemViewRepo struct {
	s *Store
}

func NewItemViewRepo(s *Store) *ItemViewRepo {
	return &ItemViewRepo{s: s}
}

func (r *ItemViewRepo) FindByID(ctx context.Context, id int64) (*queries.ItemRow, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.items[id]
	if !ok {
		return nil, infra.WrapRepoErr(s.slogger, infra.KindNotFound, "item not found", nil)
	}
	row := toItemRow(rec)
	return &row, nil
}

func (r *ItemViewRepo) FindByOwner(ctx context.Context, ownerID int64) ([]queries.ItemRow, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]queries.ItemRow, 0)
	for _, rec := range s.items {
		if rec.ownerID == ownerID {
			rows = append(rows, toItemRow(rec))
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

func (r *ItemViewRepo) Search(ctx context.Context, text string) ([]queries.ItemRow, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(text)
	rows := make([]queries.ItemRow, 0)
	for _, rec := range s.items {
		if !rec.available {
			continue
		}
		if strings.Contains(strings.ToLower(rec.name), needle) ||
			strings.Contains(strings.ToLower(rec.description), needle) {
			rows = append(rows, toItemRow(rec))
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

func (r *ItemViewRepo) FindLastBookings(ctx context.Context, itemIDs []int64, now time.Time) ([]queries.ItemBookingRow, error) {
	return r.selectBookings(itemIDs, func(rec bookingRecord) bool {
		return rec.start.Before(now)
	}, func(candidate, best bookingRecord) bool {
		if !candidate.end.Equal(best.end) {
			return candidate.end.After(best.end)
		}
		return candidate.id < best.id
	}), nil
}

func (r *ItemViewRepo) FindNextBookings(ctx context.Context, itemIDs []int64, now time.Time) ([]queries.ItemBookingRow, error) {
	return r.selectBookings(itemIDs, func(rec bookingRecord) bool {
		return rec.start.After(now)
	}, func(candidate, best bookingRecord) bool {
		if !candidate.start.Equal(best.start) {
			return candidate.start.Before(best.start)
		}
		return candidate.id < best.id
	}), nil
}

// selectBookings picks, per item, the non-rejected booking preferred by
// better among those passing eligible.
func (r *ItemViewRepo) selectBookings(
	itemIDs []int64,
	eligible func(bookingRecord) bool,
	better func(candidate, best bookingRecord) bool,
) []queries.ItemBookingRow {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}

	best := make(map[int64]bookingRecord)
	for _, rec := range s.bookings {
		if !wanted[rec.itemID] || rec.status == string(booking.StatusRejected) || !eligible(rec) {
			continue
		}
		if current, ok := best[rec.itemID]; !ok || better(rec, current) {
			best[rec.itemID] = rec
		}
	}

	rows := make([]queries.ItemBookingRow, 0, len(best))
	for itemID, rec := range best {
		rows = append(rows, queries.ItemBookingRow{ItemID: itemID, BookingID: rec.id, BookerID: rec.bookerID})
	}
	return rows
}

func (r *ItemViewRepo) FindCommentsByItems(ctx context.Context, itemIDs []int64) ([]queries.CommentRow, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}

	rows := make([]queries.CommentRow, 0)
	for _, rec := range s.comments {
		if !wanted[rec.itemID] {
			continue
		}
		authorName := ""
		if author, ok := s.users[rec.authorID]; ok {
			authorName = author.name
		}
		rows = append(rows, queries.CommentRow{
			ID:         rec.id,
			Text:       rec.text,
			ItemID:     rec.itemID,
			AuthorName: authorName,
			Created:    rec.created,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ItemID != rows[j].ItemID {
			return rows[i].ItemID < rows[j].ItemID
		}
		if !rows[i].Created.Equal(rows[j].Created) {
			return rows[i].Created.Before(rows[j].Created)
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}

func toItemRow(rec itemRecord) queries.ItemRow {
	return queries.ItemRow{
		ID:          rec.id,
		Name:        rec.name,
		Description: rec.description,
		Available:   rec.available,
		OwnerID:     rec.ownerID,
		RequestID:   rec.requestID,
	}
}
