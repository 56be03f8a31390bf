package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/domain/booking"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/usecase/commands"
)

func bookingReq(itemID int64, startIn, endIn time.Duration) reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ItemID: itemID,
		Start:  baseTime.Add(startIn),
		End:    baseTime.Add(endIn),
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a waiting booking", func(t *testing.T) {
		e := newEnv(t)
		ownerID := e.createUser(t, "owner", "owner@example.com")
		bookerID := e.createUser(t, "booker", "booker@example.com")
		itemID := e.createItem(t, ownerID, "drill", true)

		view, err := e.bookings.CreateBooking(ctx, bookingReq(itemID, time.Hour, 2*time.Hour), bookerID)
		require.NoError(t, err)

		assert.Equal(t, string(booking.StatusWaiting), view.Status)
		assert.Equal(t, bookerID, view.Booker.ID)
		assert.Equal(t, itemID, view.Item.ID)
		assert.Equal(t, "drill", view.Item.Name)
		assert.Equal(t, baseTime.Add(time.Hour), view.Start)
		assert.Equal(t, baseTime.Add(2*time.Hour), view.End)
	})

	t.Run("unknown booker", func(t *testing.T) {
		e := newEnv(t)
		ownerID := e.createUser(t, "owner", "owner@example.com")
		itemID := e.createItem(t, ownerID, "drill", true)

		_, err := e.bookings.CreateBooking(ctx, bookingReq(itemID, time.Hour, 2*time.Hour), 999)
		assert.ErrorIs(t, err, commands.ErrUserNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		e := newEnv(t)
		bookerID := e.createUser(t, "booker", "booker@example.com")

		_, err := e.bookings.CreateBooking(ctx, bookingReq(999, time.Hour, 2*time.Hour), bookerID)
		assert.ErrorIs(t, err, commands.ErrItemNotFound)
	})

	t.Run("owner booking own item reads as not found", func(t *testing.T) {
		e := newEnv(t)
		ownerID := e.createUser(t, "owner", "owner@example.com")
		itemID := e.createItem(t, ownerID, "drill", true)

		_, err := e.bookings.CreateBooking(ctx, bookingReq(itemID, time.Hour, 2*time.Hour), ownerID)
		assert.ErrorIs(t, err, commands.ErrOwnItemBooking)
	})

	t.Run("unavailable item", func(t *testing.T) {
		e := newEnv(t)
		ownerID := e.createUser(t, "owner", "owner@example.com")
		bookerID := e.createUser(t, "booker", "booker@example.com")
		itemID := e.createItem(t, ownerID, "drill", false)

		_, err := e.bookings.CreateBooking(ctx, bookingReq(itemID, time.Hour, 2*time.Hour), bookerID)
		assert.ErrorIs(t, err, commands.ErrItemUnavailable)
	})

	t.Run("invalid periods", func(t *testing.T) {
		e := newEnv(t)
		ownerID := e.createUser(t, "owner", "owner@example.com")
		bookerID := e.createUser(t, "booker", "booker@example.com")
		itemID := e.createItem(t, ownerID, "drill", true)

		tests := []struct {
			name    string
			startIn time.Duration
			endIn   time.Duration
		}{
			{"end before start", 2 * time.Hour, time.Hour},
			{"start equals end", time.Hour, time.Hour},
			{"start in the past", -time.Hour, time.Hour},
			{"start exactly at now", 0, time.Hour},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := e.bookings.CreateBooking(ctx, bookingReq(itemID, tt.startIn, tt.endIn), bookerID)
				assert.ErrorIs(t, err, commands.ErrInvalidPeriod)
			})
		}
	})
}

func TestApproveBooking(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*env, int64, int64, int64) {
		e := newEnv(t)
		ownerID := e.createUser(t, "owner", "owner@example.com")
		bookerID := e.createUser(t, "booker", "booker@example.com")
		itemID := e.createItem(t, ownerID, "drill", true)
		view, err := e.bookings.CreateBooking(ctx, bookingReq(itemID, time.Hour, 2*time.Hour), bookerID)
		require.NoError(t, err)
		return e, ownerID, bookerID, view.ID
	}

	t.Run("owner approves", func(t *testing.T) {
		e, ownerID, _, bookingID := setup(t)

		view, err := e.bookings.ApproveBooking(ctx, bookingID, ownerID, true)
		require.NoError(t, err)
		assert.Equal(t, string(booking.StatusApproved), view.Status)
	})

	t.Run("owner rejects", func(t *testing.T) {
		e, ownerID, _, bookingID := setup(t)

		view, err := e.bookings.ApproveBooking(ctx, bookingID, ownerID, false)
		require.NoError(t, err)
		assert.Equal(t, string(booking.StatusRejected), view.Status)
	})

	t.Run("booker cannot decide", func(t *testing.T) {
		e, _, bookerID, bookingID := setup(t)

		_, err := e.bookings.ApproveBooking(ctx, bookingID, bookerID, true)
		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})

	t.Run("unknown booking", func(t *testing.T) {
		e, ownerID, _, _ := setup(t)

		_, err := e.bookings.ApproveBooking(ctx, 999, ownerID, true)
		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})

	t.Run("second decision fails", func(t *testing.T) {
		e, ownerID, _, bookingID := setup(t)

		_, err := e.bookings.ApproveBooking(ctx, bookingID, ownerID, true)
		require.NoError(t, err)

		_, err = e.bookings.ApproveBooking(ctx, bookingID, ownerID, false)
		assert.ErrorIs(t, err, commands.ErrAlreadyDecided)

		view, err := e.bookingQueries.GetByID(ctx, ownerID, bookingID)
		require.NoError(t, err)
		assert.Equal(t, string(booking.StatusApproved), view.Status)
	})

	t.Run("concurrent decisions resolve exactly once", func(t *testing.T) {
		e, ownerID, _, bookingID := setup(t)

		const attempts = 8
		var wg sync.WaitGroup
		results := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(approved bool) {
				defer wg.Done()
				_, err := e.bookings.ApproveBooking(ctx, bookingID, ownerID, approved)
				results <- err
			}(i%2 == 0)
		}
		wg.Wait()
		close(results)

		wins := 0
		for err := range results {
			if err == nil {
				wins++
			} else {
				assert.ErrorIs(t, err, commands.ErrAlreadyDecided)
			}
		}
		assert.Equal(t, 1, wins)
	})
}
