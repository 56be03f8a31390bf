package postgres

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"shareit/internal/infra"
)

// Postgres error class codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func wrapPgErr(slogger *slog.Logger, msg string, err error) error {
	return infra.WrapRepoErr(slogger, classify(err), msg, err)
}

func classify(err error) infra.RepositoryErrorKind {
	if errors.Is(err, pgx.ErrNoRows) {
		return infra.KindNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return infra.KindDuplicateKey
		case codeForeignKeyViolation:
			return infra.KindForeignKeyViolated
		}
	}
	return infra.KindDBFailure
}
