package queries

import (
	"context"

	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
)

var ErrUserNotFound = errs.New("user not found")

type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserQueries interface {
	GetByID(ctx context.Context, userID int64) (*UserView, error)
	List(ctx context.Context) ([]UserView, error)
}

type UserViewRepo interface {
	FindByID(ctx context.Context, id int64) (*UserView, error)
	// FindAll returns every user ordered by id ascending.
	FindAll(ctx context.Context) ([]UserView, error)
}

type userQueriesImpl struct {
	repo UserViewRepo
}

func NewUserQueries(repo UserViewRepo) UserQueries {
	return &userQueriesImpl{repo: repo}
}

func (q *userQueriesImpl) GetByID(ctx context.Context, userID int64) (*UserView, error) {
	view, err := q.repo.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *userQueriesImpl) List(ctx context.Context) ([]UserView, error) {
	return q.repo.FindAll(ctx)
}
