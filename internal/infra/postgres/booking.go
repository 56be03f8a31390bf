package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/usecase/queries"
)

type BookingRepo struct {
	pool    *pgxpool.Pool
	slogger *slog.Logger
}

func NewBookingRepo(pool *pgxpool.Pool, slogger *slog.Logger) *BookingRepo {
	return &BookingRepo{pool: pool, slogger: slogger}
}

func (r *BookingRepo) Create(ctx context.Context, b *booking.Booking) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		b.Period().Start(), b.Period().End(), b.ItemID(), b.BookerID(), string(b.Status()),
	).Scan(&id)
	if err != nil {
		return 0, wrapPgErr(r.slogger, "failed to insert booking", err)
	}
	return id, nil
}

func (r *BookingRepo) FindByID(ctx context.Context, id int64) (*booking.Booking, error) {
	var (
		bookingID, itemID, bookerID int64
		start, end                  time.Time
		status                      string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, start_date, end_date, item_id, booker_id, status FROM bookings WHERE id = $1`,
		id,
	).Scan(&bookingID, &start, &end, &itemID, &bookerID, &status)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to find booking", err)
	}
	return booking.Reconstruct(
		bookingID,
		booking.ReconstructPeriod(start, end),
		itemID,
		bookerID,
		booking.Status(status),
	), nil
}

// DecideIfWaiting relies on the conditional UPDATE for atomicity: of two
// concurrent decisions exactly one matches status = 'WAITING'.
func (r *BookingRepo) DecideIfWaiting(ctx context.Context, id int64, approved bool) error {
	status := booking.StatusRejected
	if approved {
		status = booking.StatusApproved
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE bookings SET status = $2 WHERE id = $1 AND status = $3`,
		id, string(status), string(booking.StatusWaiting),
	)
	if err != nil {
		return wrapPgErr(r.slogger, "failed to decide booking", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return wrapPgErr(r.slogger, "failed to check booking existence", err)
	}
	if !exists {
		return infra.WrapRepoErr(r.slogger, infra.KindNotFound, "booking not found", nil)
	}
	return infra.WrapRepoErr(r.slogger, infra.KindConflict, "booking already decided", nil)
}

func (r *BookingRepo) HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	var eligible bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM bookings
		   WHERE item_id = $1 AND booker_id = $2 AND end_date < $3
		     AND status NOT IN ($4, $5)
		 )`,
		itemID, bookerID, now, string(booking.StatusRejected), string(booking.StatusWaiting),
	).Scan(&eligible)
	if err != nil {
		return false, wrapPgErr(r.slogger, "failed to check finished booking", err)
	}
	return eligible, nil
}

type BookingViewRepo struct {
	pool    *pgxpool.Pool
	slogger *slog.Logger
}

func NewBookingViewRepo(pool *pgxpool.Pool, slogger *slog.Logger) *BookingViewRepo {
	return &BookingViewRepo{pool: pool, slogger: slogger}
}

const bookingRowSelect = `
	SELECT b.id, b.start_date, b.end_date, b.status, b.booker_id, b.item_id, i.name, i.owner_id
	FROM bookings b
	JOIN items i ON i.id = b.item_id`

func (r *BookingViewRepo) FindByID(ctx context.Context, id int64) (*queries.BookingRow, error) {
	var row queries.BookingRow
	err := r.pool.QueryRow(ctx, bookingRowSelect+` WHERE b.id = $1`, id).Scan(
		&row.ID, &row.Start, &row.End, &row.Status,
		&row.BookerID, &row.ItemID, &row.ItemName, &row.ItemOwnerID,
	)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to find booking", err)
	}
	return &row, nil
}

func (r *BookingViewRepo) FindByBooker(ctx context.Context, bookerID int64) ([]queries.BookingRow, error) {
	rows, err := r.pool.Query(ctx,
		bookingRowSelect+` WHERE b.booker_id = $1 ORDER BY b.start_date DESC, b.id DESC`,
		bookerID,
	)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to list bookings by booker", err)
	}
	return r.collect(rows)
}

func (r *BookingViewRepo) FindByOwner(ctx context.Context, ownerID int64) ([]queries.BookingRow, error) {
	rows, err := r.pool.Query(ctx,
		bookingRowSelect+` WHERE i.owner_id = $1 ORDER BY b.start_date DESC, b.id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to list bookings by owner", err)
	}
	return r.collect(rows)
}

func (r *BookingViewRepo) collect(rows pgx.Rows) ([]queries.BookingRow, error) {
	defer rows.Close()

	result := make([]queries.BookingRow, 0)
	for rows.Next() {
		var row queries.BookingRow
		if err := rows.Scan(
			&row.ID, &row.Start, &row.End, &row.Status,
			&row.BookerID, &row.ItemID, &row.ItemName, &row.ItemOwnerID,
		); err != nil {
			return nil, wrapPgErr(r.slogger, "failed to scan booking", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr(r.slogger, "failed to read bookings", err)
	}
	return result, nil
}
