package memory

import (
	"context"
	"sort"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/usecase/queries"
)

type BookingRepo struct {
	s *Store
}

func NewBookingRepo(s *Store) *BookingRepo {
	return &BookingRepo{s: s}
}

func (r *BookingRepo) Create(ctx context.Context, b *booking.Booking) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[b.ItemID()]; !ok {
		return 0, infra.WrapRepoErr(s.slogger, infra.KindForeignKeyViolated, "item does not exist", nil)
	}
	if _, ok := s.users[b.BookerID()]; !ok {
		return 0, infra.WrapRepoErr(s.slogger, infra.KindForeignKeyViolated, "booker does not exist", nil)
	}

	s.bookingSeq++
	rec := bookingRecord{
		id:       s.bookingSeq,
		start:    b.Period().Start(),
		end:      b.Period().End(),
		itemID:   b.ItemID(),
		bookerID: b.BookerID(),
		status:   string(b.Status()),
	}
	s.bookings[rec.id] = rec
	return rec.id, nil
}

func (r *BookingRepo) FindByID(ctx context.Context, id int64) (*booking.Booking, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr(s.slogger, infra.KindNotFound, "booking not found", nil)
	}
	return booking.Reconstruct(
		rec.id,
		booking.ReconstructPeriod(rec.start, rec.end),
		rec.itemID,
		rec.bookerID,
		booking.Status(rec.status),
	), nil
}

// DecideIfWaiting is the check-and-set under the store lock: losers of a
// decision race see CONFLICT, never a silent overwrite.
func (r *BookingRepo) DecideIfWaiting(ctx context.Context, id int64, approved bool) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.bookings[id]
	if !ok {
		return infra.WrapRepoErr(s.slogger, infra.KindNotFound, "booking not found", nil)
	}
	if rec.status != string(booking.StatusWaiting) {
		return infra.WrapRepoErr(s.slogger, infra.KindConflict, "booking already decided", nil)
	}
	if approved {
		rec.status = string(booking.StatusApproved)
	} else {
		rec.status = string(booking.StatusRejected)
	}
	s.bookings[rec.id] = rec
	return nil
}

func (r *BookingRepo) HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.bookings {
		if rec.itemID != itemID || rec.bookerID != bookerID {
			continue
		}
		if !rec.end.Before(now) {
			continue
		}
		if rec.status == string(booking.StatusRejected) || rec.status == string(booking.StatusWaiting) {
			continue
		}
		return true, nil
	}
	return false, nil
}

type BookingViewRepo struct {
	s *Store
}

func NewBookingViewRepo(s *Store) *BookingViewRepo {
	return &BookingViewRepo{s: s}
}

func (r *BookingViewRepo) FindByID(ctx context.Context, id int64) (*queries.BookingRow, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr(s.slogger, infra.KindNotFound, "booking not found", nil)
	}
	row := s.toBookingRowLocked(rec)
	return &row, nil
}

func (r *BookingViewRepo) FindByBooker(ctx context.Context, bookerID int64) ([]queries.BookingRow, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]queries.BookingRow, 0)
	for _, rec := range s.bookings {
		if rec.bookerID == bookerID {
			rows = append(rows, s.toBookingRowLocked(rec))
		}
	}
	sortByStartDesc(rows)
	return rows, nil
}

func (r *BookingViewRepo) FindByOwner(ctx context.Context, ownerID int64) ([]queries.BookingRow, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]queries.BookingRow, 0)
	for _, rec := range s.bookings {
		if it, ok := s.items[rec.itemID]; ok && it.ownerID == ownerID {
			rows = append(rows, s.toBookingRowLocked(rec))
		}
	}
	sortByStartDesc(rows)
	return rows, nil
}

func (s *Store) toBookingRowLocked(rec bookingRecord) queries.BookingRow {
	row := queries.BookingRow{
		ID:       rec.id,
		Start:    rec.start,
		End:      rec.end,
		Status:   rec.status,
		BookerID: rec.bookerID,
		ItemID:   rec.itemID,
	}
	if it, ok := s.items[rec.itemID]; ok {
		row.ItemName = it.name
		row.ItemOwnerID = it.ownerID
	}
	return row
}

func sortByStartDesc(rows []queries.BookingRow) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Start.Equal(rows[j].Start) {
			return rows[i].Start.After(rows[j].Start)
		}
		return rows[i].ID > rows[j].ID
	})
}
