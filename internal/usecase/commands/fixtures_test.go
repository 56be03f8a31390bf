package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shareit/internal/domain/booking"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/infra/cache"
	"shareit/internal/infra/memory"
	"shareit/internal/pkg/clock"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// env wires the command layer against the in-memory store, exactly as the
// memory driver wires it in production, with a controllable clock.
type env struct {
	store *memory.Store
	clock *clock.MockClock

	users    commands.UserCommands
	items    commands.ItemCommands
	bookings commands.BookingCommands
	comments commands.CommentCommands
	requests commands.ItemRequestCommands

	bookingQueries queries.BookingQueries
	itemQueries    queries.ItemQueries
	requestQueries queries.ItemRequestQueries

	bookingRepo commands.BookingRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore(slogger)
	clk := clock.NewMockClock(baseTime)
	viewCache := cache.NewItemViewCache(nil, 0, slogger)

	userRepo := memory.NewUserRepo(store)
	itemRepo := memory.NewItemRepo(store)
	bookingRepo := memory.NewBookingRepo(store)
	commentRepo := memory.NewCommentRepo(store)
	requestRepo := memory.NewItemRequestRepo(store)

	userViewRepo := memory.NewUserViewRepo(store)
	bookingQueries := queries.NewBookingQueries(memory.NewBookingViewRepo(store), userViewRepo, clk)
	itemQueries := queries.NewItemQueries(memory.NewItemViewRepo(store), viewCache, clk)
	requestQueries := queries.NewItemRequestQueries(memory.NewItemRequestViewRepo(store), userViewRepo)

	return &env{
		store:          store,
		clock:          clk,
		users:          commands.NewUserCommands(userRepo),
		items:          commands.NewItemCommands(itemRepo, userRepo, requestRepo, itemQueries, viewCache),
		bookings:       commands.NewBookingCommands(bookingRepo, itemRepo, userRepo, bookingQueries, viewCache, clk),
		comments:       commands.NewCommentCommands(commentRepo, bookingRepo, itemRepo, userRepo, viewCache, clk),
		requests:       commands.NewItemRequestCommands(requestRepo, userRepo, requestQueries, clk),
		bookingQueries: bookingQueries,
		itemQueries:    itemQueries,
		requestQueries: requestQueries,
		bookingRepo:    bookingRepo,
	}
}

func (e *env) createUser(t *testing.T, name, email string) int64 {
	t.Helper()
	view, err := e.users.CreateUser(context.Background(), reqdto.CreateUserRequest{Name: name, Email: email})
	require.NoError(t, err)
	return view.ID
}

func (e *env) createItem(t *testing.T, ownerID int64, name string, available bool) int64 {
	t.Helper()
	view, err := e.items.CreateItem(context.Background(), reqdto.CreateItemRequest{
		Name:        name,
		Description: name + " description",
		Available:   &available,
	}, ownerID)
	require.NoError(t, err)
	return view.ID
}

// seedBooking inserts a booking with an arbitrary period and status, bypassing
// the command layer so tests can place bookings in the past.
func (e *env) seedBooking(t *testing.T, itemID, bookerID int64, start, end time.Time, status booking.Status) int64 {
	t.Helper()
	b := booking.Reconstruct(0, booking.ReconstructPeriod(start, end), itemID, bookerID, status)
	id, err := e.bookingRepo.Create(context.Background(), b)
	require.NoError(t, err)
	return id
}
