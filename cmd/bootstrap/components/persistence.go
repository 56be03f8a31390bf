package components

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"shareit/internal/infra/memory"
	"shareit/internal/infra/postgres"
	"shareit/internal/pkg/config"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
)

// Persistence bundles every repository implementation behind one construction
// point so the backing store can be swapped by config.
type Persistence struct {
	UserRepo        commands.UserRepository
	ItemRepo        commands.ItemRepository
	BookingRepo     commands.BookingRepository
	CommentRepo     commands.CommentRepository
	RequestRepo     commands.ItemRequestRepository
	UserViewRepo    queries.UserViewRepo
	ItemViewRepo    queries.ItemViewRepo
	BookingViewRepo queries.BookingViewRepo
	RequestViewRepo queries.ItemRequestViewRepo
}

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewPersistence,
		func(p *Persistence) commands.UserRepository { return p.UserRepo },
		func(p *Persistence) commands.ItemRepository { return p.ItemRepo },
		func(p *Persistence) commands.BookingRepository { return p.BookingRepo },
		func(p *Persistence) commands.CommentRepository { return p.CommentRepo },
		func(p *Persistence) commands.ItemRequestRepository { return p.RequestRepo },
		func(p *Persistence) queries.UserViewRepo { return p.UserViewRepo },
		func(p *Persistence) queries.ItemViewRepo { return p.ItemViewRepo },
		func(p *Persistence) queries.BookingViewRepo { return p.BookingViewRepo },
		func(p *Persistence) queries.ItemRequestViewRepo { return p.RequestViewRepo },
	),
)

func NewPersistence(lc fx.Lifecycle, cfg config.Config, slogger *slog.Logger) (*Persistence, error) {
	if cfg.DB.Driver == "memory" {
		return newMemoryPersistence(slogger), nil
	}
	return newPostgresPersistence(lc, cfg, slogger)
}

func newMemoryPersistence(slogger *slog.Logger) *Persistence {
	store := memory.NewStore(slogger)
	return &Persistence{
		UserRepo:        memory.NewUserRepo(store),
		ItemRepo:        memory.NewItemRepo(store),
		BookingRepo:     memory.NewBookingRepo(store),
		CommentRepo:     memory.NewCommentRepo(store),
		RequestRepo:     memory.NewItemRequestRepo(store),
		UserViewRepo:    memory.NewUserViewRepo(store),
		ItemViewRepo:    memory.NewItemViewRepo(store),
		BookingViewRepo: memory.NewBookingViewRepo(store),
		RequestViewRepo: memory.NewItemRequestViewRepo(store),
	}
}

func newPostgresPersistence(lc fx.Lifecycle, cfg config.Config, slogger *slog.Logger) (*Persistence, error) {
	pool, cleanup, err := postgres.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return &Persistence{
		UserRepo:        postgres.NewUserRepo(pool, slogger),
		ItemRepo:        postgres.NewItemRepo(pool, slogger),
		BookingRepo:     postgres.NewBookingRepo(pool, slogger),
		CommentRepo:     postgres.NewCommentRepo(pool, slogger),
		RequestRepo:     postgres.NewItemRequestRepo(pool, slogger),
		UserViewRepo:    postgres.NewUserViewRepo(pool, slogger),
		ItemViewRepo:    postgres.NewItemViewRepo(pool, slogger),
		BookingViewRepo: postgres.NewBookingViewRepo(pool, slogger),
		RequestViewRepo: postgres.NewItemRequestViewRepo(pool, slogger),
	}, nil
}
