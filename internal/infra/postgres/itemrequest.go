package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shareit/internal/domain/itemrequest"
	"shareit/internal/usecase/queries"
)

type ItemRequestRepo struct {
	pool    *pgxpool.Pool
	slogger *slog.Logger
}

func NewItemRequestRepo(pool *pgxpool.Pool, slogger *slog.Logger) *ItemRequestRepo {
	return &ItemRequestRepo{pool: pool, slogger: slogger}
}

func (r *ItemRequestRepo) Create(ctx context.Context, req *itemrequest.ItemRequest) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO item_requests (description, requester_id, created)
		 VALUES ($1, $2, $3) RETURNING id`,
		req.Description(), req.RequesterID(), req.Created(),
	).Scan(&id)
	if err != nil {
		return 0, wrapPgErr(r.slogger, "failed to insert item request", err)
	}
	return id, nil
}

func (r *ItemRequestRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM item_requests WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, wrapPgErr(r.slogger, "failed to check item request existence", err)
	}
	return exists, nil
}

type ItemRequestViewRepo struct {
	pool    *pgxpool.Pool
	slogger *slog.Logger
}

func NewItemRequestViewRepo(pool *pgxpool.Pool, slogger *slog.Logger) *ItemRequestViewRepo {
	return &ItemRequestViewRepo{pool: pool, slogger: slogger}
}

const requestRowSelect = `SELECT id, description, requester_id, created FROM item_requests`

func (r *ItemRequestViewRepo) FindByID(ctx context.Context, id int64) (*queries.ItemRequestRow, error) {
	var row queries.ItemRequestRow
	err := r.pool.QueryRow(ctx, requestRowSelect+` WHERE id = $1`, id).Scan(
		&row.ID, &row.Description, &row.RequesterID, &row.Created,
	)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to find item request", err)
	}
	return &row, nil
}

func (r *ItemRequestViewRepo) FindByRequester(ctx context.Context, requesterID int64) ([]queries.ItemRequestRow, error) {
	rows, err := r.pool.Query(ctx,
		requestRowSelect+` WHERE requester_id = $1 ORDER BY created DESC, id DESC`,
		requesterID,
	)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to list own item requests", err)
	}
	return r.collect(rows)
}

func (r *ItemRequestViewRepo) FindByOthers(ctx context.Context, actorID int64) ([]queries.ItemRequestRow, error) {
	rows, err := r.pool.Query(ctx,
		requestRowSelect+` WHERE requester_id <> $1 ORDER BY created DESC, id DESC`,
		actorID,
	)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to list others item requests", err)
	}
	return r.collect(rows)
}

func (r *ItemRequestViewRepo) FindAnswers(ctx context.Context, requestIDs []int64) ([]queries.RequestAnswerRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT request_id, id, name, owner_id
		 FROM items
		 WHERE request_id = ANY($1)
		 ORDER BY id`,
		requestIDs,
	)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to list request answers", err)
	}
	defer rows.Close()

	result := make([]queries.RequestAnswerRow, 0)
	for rows.Next() {
		var row queries.RequestAnswerRow
		if err := rows.Scan(&row.RequestID, &row.ItemID, &row.ItemName, &row.OwnerID); err != nil {
			return nil, wrapPgErr(r.slogger, "failed to scan request answer", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr(r.slogger, "failed to read request answers", err)
	}
	return result, nil
}

func (r *ItemRequestViewRepo) collect(rows pgx.Rows) ([]queries.ItemRequestRow, error) {
	defer rows.Close()

	result := make([]queries.ItemRequestRow, 0)
	for rows.Next() {
		var row queries.ItemRequestRow
		if err := rows.Scan(&row.ID, &row.Description, &row.RequesterID, &row.Created); err != nil {
			return nil, wrapPgErr(r.slogger, "failed to scan item request", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr(r.slogger, "failed to read item requests", err)
	}
	return result, nil
}
