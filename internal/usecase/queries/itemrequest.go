package queries

import (
	"context"
	"time"

	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
)

var ErrRequestNotFound = errs.New("item request not found")

type ItemRequestView struct {
	ID          int64               `json:"id"`
	Description string              `json:"description"`
	Created     time.Time           `json:"created"`
	Items       []RequestedItemView `json:"items"`
}

// RequestedItemView is a listing created in answer to a request.
type RequestedItemView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

type ItemRequestRow struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time
}

type RequestAnswerRow struct {
	RequestID int64
	ItemID    int64
	ItemName  string
	OwnerID   int64
}

type ItemRequestQueries interface {
	GetByID(ctx context.Context, actorID, requestID int64) (*ItemRequestView, error)
	ListOwn(ctx context.Context, requesterID int64) ([]ItemRequestView, error)
	ListOthers(ctx context.Context, actorID int64, page Page) ([]ItemRequestView, error)
}

type ItemRequestViewRepo interface {
	FindByID(ctx context.Context, id int64) (*ItemRequestRow, error)
	// FindByRequester returns the requester's own requests, newest first.
	FindByRequester(ctx context.Context, requesterID int64) ([]ItemRequestRow, error)
	// FindByOthers returns requests created by everyone except actorID,
	// newest first.
	FindByOthers(ctx context.Context, actorID int64) ([]ItemRequestRow, error)
	// FindAnswers returns the items created in answer to the given requests.
	FindAnswers(ctx context.Context, requestIDs []int64) ([]RequestAnswerRow, error)
}

type itemRequestQueriesImpl struct {
	repo     ItemRequestViewRepo
	userRepo UserViewRepo
}

func NewItemRequestQueries(repo ItemRequestViewRepo, userRepo UserViewRepo) ItemRequestQueries {
	return &itemRequestQueriesImpl{repo: repo, userRepo: userRepo}
}

func (q *itemRequestQueriesImpl) GetByID(ctx context.Context, actorID, requestID int64) (*ItemRequestView, error) {
	if err := q.ensureUserExists(ctx, actorID); err != nil {
		return nil, err
	}
	row, err := q.repo.FindByID(ctx, requestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	views, err := q.assemble(ctx, []ItemRequestRow{*row})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (q *itemRequestQueriesImpl) ListOwn(ctx context.Context, requesterID int64) ([]ItemRequestView, error) {
	if err := q.ensureUserExists(ctx, requesterID); err != nil {
		return nil, err
	}
	rows, err := q.repo.FindByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return q.assemble(ctx, rows)
}

func (q *itemRequestQueriesImpl) ListOthers(ctx context.Context, actorID int64, page Page) ([]ItemRequestView, error) {
	if err := q.ensureUserExists(ctx, actorID); err != nil {
		return nil, err
	}
	rows, err := q.repo.FindByOthers(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return q.assemble(ctx, paginate(rows, page))
}

func (q *itemRequestQueriesImpl) ensureUserExists(ctx context.Context, userID int64) error {
	if _, err := q.userRepo.FindByID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (q *itemRequestQueriesImpl) assemble(ctx context.Context, rows []ItemRequestRow) ([]ItemRequestView, error) {
	requestIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		requestIDs = append(requestIDs, row.ID)
	}

	answersByRequest := map[int64][]RequestedItemView{}
	if len(requestIDs) > 0 {
		answers, err := q.repo.FindAnswers(ctx, requestIDs)
		if err != nil {
			return nil, err
		}
		for _, a := range answers {
			answersByRequest[a.RequestID] = append(answersByRequest[a.RequestID], RequestedItemView{
				ID:      a.ItemID,
				Name:    a.ItemName,
				OwnerID: a.OwnerID,
			})
		}
	}

	views := make([]ItemRequestView, 0, len(rows))
	for _, row := range rows {
		view := ItemRequestView{
			ID:          row.ID,
			Description: row.Description,
			Created:     row.Created,
			Items:       []RequestedItemView{},
		}
		if items, ok := answersByRequest[row.ID]; ok {
			view.Items = items
		}
		views = append(views, view)
	}
	return views, nil
}
