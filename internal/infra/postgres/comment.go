package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"shareit/internal/domain/comment"
)

type CommentRepo struct {
	pool    *pgxpool.Pool
	slogger *slog.Logger
}

func NewCommentRepo(pool *pgxpool.Pool, slogger *slog.Logger) *CommentRepo {
	return &CommentRepo{pool: pool, slogger: slogger}
}

func (r *CommentRepo) Create(ctx context.Context, c *comment.Comment) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO comments (text, item_id, author_id, created)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		c.Text(), c.ItemID(), c.AuthorID(), c.Created(),
	).Scan(&id)
	if err != nil {
		return 0, wrapPgErr(r.slogger, "failed to insert comment", err)
	}
	return id, nil
}
