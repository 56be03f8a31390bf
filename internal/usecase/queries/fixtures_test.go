package queries_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/comment"
	"shareit/internal/domain/item"
	"shareit/internal/domain/itemrequest"
	"shareit/internal/domain/user"
	"shareit/internal/infra/cache"
	"shareit/internal/infra/memory"
	"shareit/internal/pkg/clock"
	"shareit/internal/usecase/queries"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type env struct {
	clock *clock.MockClock

	bookings queries.BookingQueries
	items    queries.ItemQueries
	users    queries.UserQueries
	requests queries.ItemRequestQueries

	userRepo    *memory.UserRepo
	itemRepo    *memory.ItemRepo
	bookingRepo *memory.BookingRepo
	commentRepo *memory.CommentRepo
	requestRepo *memory.ItemRequestRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore(slogger)
	clk := clock.NewMockClock(baseTime)
	viewCache := cache.NewItemViewCache(nil, 0, slogger)

	userViewRepo := memory.NewUserViewRepo(store)
	return &env{
		clock:       clk,
		bookings:    queries.NewBookingQueries(memory.NewBookingViewRepo(store), userViewRepo, clk),
		items:       queries.NewItemQueries(memory.NewItemViewRepo(store), viewCache, clk),
		users:       queries.NewUserQueries(userViewRepo),
		requests:    queries.NewItemRequestQueries(memory.NewItemRequestViewRepo(store), userViewRepo),
		userRepo:    memory.NewUserRepo(store),
		itemRepo:    memory.NewItemRepo(store),
		bookingRepo: memory.NewBookingRepo(store),
		commentRepo: memory.NewCommentRepo(store),
		requestRepo: memory.NewItemRequestRepo(store),
	}
}

func (e *env) addUser(t *testing.T, name, email string) int64 {
	t.Helper()
	parsed, err := user.NewEmail(email)
	require.NoError(t, err)
	id, err := e.userRepo.Create(context.Background(), user.NewUser(name, parsed))
	require.NoError(t, err)
	return id
}

func (e *env) addItem(t *testing.T, ownerID int64, name, description string, available bool) int64 {
	t.Helper()
	id, err := e.itemRepo.Create(context.Background(), item.Reconstruct(0, name, description, available, ownerID, nil))
	require.NoError(t, err)
	return id
}

func (e *env) addItemForRequest(t *testing.T, ownerID int64, name string, requestID int64) int64 {
	t.Helper()
	id, err := e.itemRepo.Create(context.Background(), item.Reconstruct(0, name, name+" description", true, ownerID, &requestID))
	require.NoError(t, err)
	return id
}

func (e *env) addBooking(t *testing.T, itemID, bookerID int64, start, end time.Time, status booking.Status) int64 {
	t.Helper()
	b := booking.Reconstruct(0, booking.ReconstructPeriod(start, end), itemID, bookerID, status)
	id, err := e.bookingRepo.Create(context.Background(), b)
	require.NoError(t, err)
	return id
}

func (e *env) addComment(t *testing.T, itemID, authorID int64, text string, created time.Time) int64 {
	t.Helper()
	id, err := e.commentRepo.Create(context.Background(), comment.Reconstruct(0, text, itemID, authorID, created))
	require.NoError(t, err)
	return id
}

func (e *env) addRequest(t *testing.T, requesterID int64, description string, created time.Time) int64 {
	t.Helper()
	id, err := e.requestRepo.Create(context.Background(), itemrequest.Reconstruct(0, description, requesterID, created))
	require.NoError(t, err)
	return id
}

func viewIDs(views []queries.BookingView) []int64 {
	ids := make([]int64, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}
