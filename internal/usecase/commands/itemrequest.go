package commands

import (
	"context"

	"shareit/internal/domain/itemrequest"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"
)

var ErrInvalidRequest = errs.New("invalid item request payload")

type ItemRequestCommands interface {
	CreateRequest(ctx context.Context, req reqdto.CreateItemRequestRequest, requesterID int64) (*queries.ItemRequestView, error)
}

type itemRequestCommandsImpl struct {
	requestRepo    ItemRequestRepository
	userRepo       UserRepository
	requestQueries queries.ItemRequestQueries
	clock          clock.Clock
}

func NewItemRequestCommands(
	requestRepo ItemRequestRepository,
	userRepo UserRepository,
	requestQueries queries.ItemRequestQueries,
	clock clock.Clock,
) ItemRequestCommands {
	return &itemRequestCommandsImpl{
		requestRepo:    requestRepo,
		userRepo:       userRepo,
		requestQueries: requestQueries,
		clock:          clock,
	}
}

func (c *itemRequestCommandsImpl) CreateRequest(
	ctx context.Context,
	req reqdto.CreateItemRequestRequest,
	requesterID int64,
) (*queries.ItemRequestView, error) {
	if _, err := c.userRepo.FindByID(ctx, requesterID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	entity, err := itemrequest.NewItemRequest(req.Description, requesterID, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRequest)
	}

	id, err := c.requestRepo.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	return c.requestQueries.GetByID(ctx, requesterID, id)
}
