package commands

import (
	"context"

	"shareit/internal/domain/user"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"
)

var (
	ErrInvalidEmail = errs.New("invalid email address")
	ErrEmailTaken   = errs.New("email address is already registered")
)

type UserCommands interface {
	CreateUser(ctx context.Context, req reqdto.CreateUserRequest) (*queries.UserView, error)
	UpdateUser(ctx context.Context, req reqdto.UpdateUserRequest, userID int64) (*queries.UserView, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type userCommandsImpl struct {
	userRepo UserRepository
}

func NewUserCommands(userRepo UserRepository) UserCommands {
	return &userCommandsImpl{userRepo: userRepo}
}

func (c *userCommandsImpl) CreateUser(ctx context.Context, req reqdto.CreateUserRequest) (*queries.UserView, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidEmail)
	}

	entity := user.NewUser(req.Name, email)
	id, err := c.userRepo.Create(ctx, entity)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &queries.UserView{ID: id, Name: entity.Name(), Email: entity.Email().String()}, nil
}

func (c *userCommandsImpl) UpdateUser(ctx context.Context, req reqdto.UpdateUserRequest, userID int64) (*queries.UserView, error) {
	snap, err := c.userRepo.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var email *user.Email
	if req.Email != nil {
		parsed, err := user.NewEmail(*req.Email)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidEmail)
		}
		email = &parsed
	}

	entity := user.Reconstruct(snap.ID, snap.Name, user.ReconstructEmail(snap.Email))
	entity.Update(req.Name, email)

	if err := c.userRepo.Update(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &queries.UserView{ID: entity.ID(), Name: entity.Name(), Email: entity.Email().String()}, nil
}

func (c *userCommandsImpl) DeleteUser(ctx context.Context, userID int64) error {
	if err := c.userRepo.Delete(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
