package commands

import (
	"context"

	"shareit/internal/domain/item"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"
)

var (
	ErrInvalidItem     = errs.New("invalid item payload")
	ErrRequestNotFound = errs.New("item request not found")
)

type ItemCommands interface {
	CreateItem(ctx context.Context, req reqdto.CreateItemRequest, ownerID int64) (*queries.ItemView, error)
	UpdateItem(ctx context.Context, req reqdto.UpdateItemRequest, itemID, ownerID int64) (*queries.ItemView, error)
}

type itemCommandsImpl struct {
	itemRepo    ItemRepository
	userRepo    UserRepository
	requestRepo ItemRequestRepository
	itemQueries queries.ItemQueries
	cache       ViewCacheInvalidator
}

func NewItemCommands(
	itemRepo ItemRepository,
	userRepo UserRepository,
	requestRepo ItemRequestRepository,
	itemQueries queries.ItemQueries,
	cache ViewCacheInvalidator,
) ItemCommands {
	return &itemCommandsImpl{
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		requestRepo: requestRepo,
		itemQueries: itemQueries,
		cache:       cache,
	}
}

func (c *itemCommandsImpl) CreateItem(
	ctx context.Context,
	req reqdto.CreateItemRequest,
	ownerID int64,
) (*queries.ItemView, error) {
	if _, err := c.userRepo.FindByID(ctx, ownerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.RequestID != nil {
		exists, err := c.requestRepo.Exists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrRequestNotFound
		}
	}

	entity, err := item.NewItem(req.Name, req.Description, req.Available, ownerID, req.RequestID)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidItem)
	}

	id, err := c.itemRepo.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	return c.itemQueries.GetByID(ctx, ownerID, id)
}

// UpdateItem applies a partial update. Only the owner may update; everyone
// else gets "not found".
func (c *itemCommandsImpl) UpdateItem(
	ctx context.Context,
	req reqdto.UpdateItemRequest,
	itemID, ownerID int64,
) (*queries.ItemView, error) {
	snap, err := c.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if snap.OwnerID != ownerID {
		return nil, ErrItemNotFound
	}

	entity := item.Reconstruct(snap.ID, snap.Name, snap.Description, snap.Available, snap.OwnerID, snap.RequestID)
	entity.Update(req.Name, req.Description, req.Available)

	if err := c.itemRepo.Update(ctx, entity); err != nil {
		return nil, err
	}
	c.cache.InvalidateItem(ctx, itemID)

	return c.itemQueries.GetByID(ctx, ownerID, itemID)
}
