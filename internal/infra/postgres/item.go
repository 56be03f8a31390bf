package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/infra"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
)

type ItemRepo struct {
	pool    *pgxpool.Pool
	slogger *slog.Logger
}

func NewItemRepo(pool *pgxpool.Pool, slogger *slog.Logger) *ItemRepo {
	return &ItemRepo{pool: pool, slogger: slogger}
}

func (r *ItemRepo) Create(ctx context.Context, it *item.Item) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO items (name, description, available, owner_id, request_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		it.Name(), it.Description(), it.Available(), it.OwnerID(), it.RequestID(),
	).Scan(&id)
	if err != nil {
		return 0, wrapPgErr(r.slogger, "failed to insert item", err)
	}
	return id, nil
}

func (r *ItemRepo) FindByID(ctx context.Context, id int64) (*commands.ItemSnapshot, error) {
	var snap commands.ItemSnapshot
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, available, owner_id, request_id FROM items WHERE id = $1`,
		id,
	).Scan(&snap.ID, &snap.Name, &snap.Description, &snap.Available, &snap.OwnerID, &snap.RequestID)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to find item", err)
	}
	return &snap, nil
}

func (r *ItemRepo) Update(ctx context.Context, it *item.Item) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE items SET name = $2, description = $3, available = $4 WHERE id = $1`,
		it.ID(), it.Name(), it.Description(), it.Available(),
	)
	if err != nil {
		return wrapPgErr(r.slogger, "failed to update item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.slogger, infra.KindNotFound, "item not found", nil)
	}
	return nil
}

type ItemViewRepo struct {
	pool    *pgxpool.Pool
	slogger *slog.Logger
}

func NewItemViewRepo(pool *pgxpool.Pool, slogger *slog.Logger) *ItemViewRepo {
	return &ItemViewRepo{pool: pool, slogger: slogger}
}

const itemRowSelect = `SELECT id, name, description, available, owner_id, request_id FROM items`

func (r *ItemViewRepo) FindByID(ctx context.Context, id int64) (*queries.ItemRow, error) {
	var row queries.ItemRow
	err := r.pool.QueryRow(ctx, itemRowSelect+` WHERE id = $1`, id).Scan(
		&row.ID, &row.Name, &row.Description, &row.Available, &row.OwnerID, &row.RequestID,
	)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to find item", err)
	}
	return &row, nil
}

func (r *ItemViewRepo) FindByOwner(ctx context.Context, ownerID int64) ([]queries.ItemRow, error) {
	rows, err := r.pool.Query(ctx, itemRowSelect+` WHERE owner_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to list items by owner", err)
	}
	return r.collectItems(rows)
}

func (r *ItemViewRepo) Search(ctx context.Context, text string) ([]queries.ItemRow, error) {
	rows, err := r.pool.Query(ctx,
		itemRowSelect+` WHERE available AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%') ORDER BY id`,
		text,
	)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to search items", err)
	}
	return r.collectItems(rows)
}

// FindLastBookings picks per item the started, non-rejected booking with the
// latest end. DISTINCT ON keeps the first row of each item group, so the
// ORDER BY encodes the whole preference including the id tie-break.
func (r *ItemViewRepo) FindLastBookings(ctx context.Context, itemIDs []int64, now time.Time) ([]queries.ItemBookingRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT ON (item_id) item_id, id, booker_id
		 FROM bookings
		 WHERE item_id = ANY($1) AND status <> $2 AND start_date < $3
		 ORDER BY item_id, end_date DESC, id ASC`,
		itemIDs, string(booking.StatusRejected), now,
	)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to find last bookings", err)
	}
	return r.collectItemBookings(rows)
}

func (r *ItemViewRepo) FindNextBookings(ctx context.Context, itemIDs []int64, now time.Time) ([]queries.ItemBookingRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT ON (item_id) item_id, id, booker_id
		 FROM bookings
		 WHERE item_id = ANY($1) AND status <> $2 AND start_date > $3
		 ORDER BY item_id, start_date ASC, id ASC`,
		itemIDs, string(booking.StatusRejected), now,
	)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to find next bookings", err)
	}
	return r.collectItemBookings(rows)
}

func (r *ItemViewRepo) FindCommentsByItems(ctx context.Context, itemIDs []int64) ([]queries.CommentRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.text, c.item_id, u.name, c.created
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.item_id = ANY($1)
		 ORDER BY c.item_id, c.created ASC, c.id ASC`,
		itemIDs,
	)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to list comments", err)
	}
	defer rows.Close()

	result := make([]queries.CommentRow, 0)
	for rows.Next() {
		var row queries.CommentRow
		if err := rows.Scan(&row.ID, &row.Text, &row.ItemID, &row.AuthorName, &row.Created); err != nil {
			return nil, wrapPgErr(r.slogger, "failed to scan comment", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr(r.slogger, "failed to read comments", err)
	}
	return result, nil
}

func (r *ItemViewRepo) collectItems(rows pgx.Rows) ([]queries.ItemRow, error) {
	defer rows.Close()

	result := make([]queries.ItemRow, 0)
	for rows.Next() {
		var row queries.ItemRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Description, &row.Available, &row.OwnerID, &row.RequestID); err != nil {
			return nil, wrapPgErr(r.slogger, "failed to scan item", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr(r.slogger, "failed to read items", err)
	}
	return result, nil
}

func (r *ItemViewRepo) collectItemBookings(rows pgx.Rows) ([]queries.ItemBookingRow, error) {
	defer rows.Close()

	result := make([]queries.ItemBookingRow, 0)
	for rows.Next() {
		var row queries.ItemBookingRow
		if err := rows.Scan(&row.ItemID, &row.BookingID, &row.BookerID); err != nil {
			return nil, wrapPgErr(r.slogger, "failed to scan item booking", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr(r.slogger, "failed to read item bookings", err)
	}
	return result, nil
}
