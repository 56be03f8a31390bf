package commands

import (
	"context"

	"shareit/internal/domain/comment"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"
)

var (
	ErrCommentNotAllowed = errs.New("commenting requires a finished booking of the item")
	ErrInvalidComment    = errs.New("invalid comment text")
)

type CommentCommands interface {
	AddComment(ctx context.Context, req reqdto.CreateCommentRequest, itemID, authorID int64) (*queries.CommentView, error)
}

type commentCommandsImpl struct {
	commentRepo CommentRepository
	bookingRepo BookingRepository
	itemRepo    ItemRepository
	userRepo    UserRepository
	cache       ViewCacheInvalidator
	clock       clock.Clock
}

func NewCommentCommands(
	commentRepo CommentRepository,
	bookingRepo BookingRepository,
	itemRepo ItemRepository,
	userRepo UserRepository,
	cache ViewCacheInvalidator,
	clock clock.Clock,
) CommentCommands {
	return &commentCommandsImpl{
		commentRepo: commentRepo,
		bookingRepo: bookingRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		cache:       cache,
		clock:       clock,
	}
}

// AddComment accepts a comment only from a user whose booking of the item
// already finished. A rejected or still-waiting booking grants nothing.
func (c *commentCommandsImpl) AddComment(
	ctx context.Context,
	req reqdto.CreateCommentRequest,
	itemID, authorID int64,
) (*queries.CommentView, error) {
	author, err := c.userRepo.FindByID(ctx, authorID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if _, err := c.itemRepo.FindByID(ctx, itemID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	now := c.clock.Now()
	eligible, err := c.bookingRepo.HasFinishedBooking(ctx, itemID, authorID, now)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrCommentNotAllowed
	}

	entity, err := comment.NewComment(req.Text, itemID, authorID, now)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidComment)
	}

	id, err := c.commentRepo.Create(ctx, entity)
	if err != nil {
		return nil, err
	}
	c.cache.InvalidateItem(ctx, itemID)

	return &queries.CommentView{
		ID:         id,
		Text:       entity.Text(),
		AuthorName: author.Name,
		Created:    entity.Created(),
	}, nil
}
