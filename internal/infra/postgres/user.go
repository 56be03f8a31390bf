package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
)

type UserRepo struct {
	pool    *pgxpool.Pool
	slogger *slog.Logger
}

func NewUserRepo(pool *pgxpool.Pool, slogger *slog.Logger) *UserRepo {
	return &UserRepo{pool: pool, slogger: slogger}
}

func (r *UserRepo) Create(ctx context.Context, u *user.User) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id`,
		u.Name(), u.Email().String(),
	).Scan(&id)
	if err != nil {
		return 0, wrapPgErr(r.slogger, "failed to insert user", err)
	}
	return id, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (*commands.UserSnapshot, error) {
	var snap commands.UserSnapshot
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email FROM users WHERE id = $1`,
		id,
	).Scan(&snap.ID, &snap.Name, &snap.Email)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to find user", err)
	}
	return &snap, nil
}

func (r *UserRepo) Update(ctx context.Context, u *user.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $2, email = $3 WHERE id = $1`,
		u.ID(), u.Name(), u.Email().String(),
	)
	if err != nil {
		return wrapPgErr(r.slogger, "failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.slogger, infra.KindNotFound, "user not found", nil)
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrapPgErr(r.slogger, "failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.slogger, infra.KindNotFound, "user not found", nil)
	}
	return nil
}

type UserViewRepo struct {
	pool    *pgxpool.Pool
	slogger *slog.Logger
}

func NewUserViewRepo(pool *pgxpool.Pool, slogger *slog.Logger) *UserViewRepo {
	return &UserViewRepo{pool: pool, slogger: slogger}
}

func (r *UserViewRepo) FindByID(ctx context.Context, id int64) (*queries.UserView, error) {
	var view queries.UserView
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email FROM users WHERE id = $1`,
		id,
	).Scan(&view.ID, &view.Name, &view.Email)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to find user", err)
	}
	return &view, nil
}

func (r *UserViewRepo) FindAll(ctx context.Context) ([]queries.UserView, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, email FROM users ORDER BY id`)
	if err != nil {
		return nil, wrapPgErr(r.slogger, "failed to list users", err)
	}
	defer rows.Close()

	views := make([]queries.UserView, 0)
	for rows.Next() {
		var view queries.UserView
		if err := rows.Scan(&view.ID, &view.Name, &view.Email); err != nil {
			return nil, wrapPgErr(r.slogger, "failed to scan user", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr(r.slogger, "failed to read users", err)
	}
	return views, nil
}
