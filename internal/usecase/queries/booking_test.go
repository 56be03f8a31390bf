package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/domain/booking"
	"shareit/internal/usecase/queries"
)

func TestGetBookingVisibility(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	ownerID := e.addUser(t, "owner", "owner@example.com")
	bookerID := e.addUser(t, "booker", "booker@example.com")
	strangerID := e.addUser(t, "stranger", "stranger@example.com")
	itemID := e.addItem(t, ownerID, "drill", "cordless drill", true)
	bookingID := e.addBooking(t, itemID, bookerID, baseTime.Add(time.Hour), baseTime.Add(2*time.Hour), booking.StatusWaiting)

	t.Run("booker sees it", func(t *testing.T) {
		view, err := e.bookings.GetByID(ctx, bookerID, bookingID)
		require.NoError(t, err)

		want := &queries.BookingView{
			ID:     bookingID,
			Start:  baseTime.Add(time.Hour),
			End:    baseTime.Add(2 * time.Hour),
			Status: string(booking.StatusWaiting),
			Booker: queries.BookerRef{ID: bookerID},
			Item:   queries.BookedItemRef{ID: itemID, Name: "drill"},
		}
		if diff := cmp.Diff(want, view); diff != "" {
			t.Errorf("booking view mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("item owner sees it", func(t *testing.T) {
		_, err := e.bookings.GetByID(ctx, ownerID, bookingID)
		assert.NoError(t, err)
	})

	t.Run("anyone else gets not found", func(t *testing.T) {
		_, err := e.bookings.GetByID(ctx, strangerID, bookingID)
		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := e.bookings.GetByID(ctx, bookerID, 999)
		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}

// One item, one booker, five bookings spanning every classification bucket.
func classificationFixture(t *testing.T) (*env, int64, int64, map[string]int64) {
	e := newEnv(t)
	ownerID := e.addUser(t, "owner", "owner@example.com")
	bookerID := e.addUser(t, "booker", "booker@example.com")
	itemID := e.addItem(t, ownerID, "drill", "cordless drill", true)

	ids := map[string]int64{
		"past":     e.addBooking(t, itemID, bookerID, baseTime.Add(-3*time.Hour), baseTime.Add(-2*time.Hour), booking.StatusApproved),
		"current":  e.addBooking(t, itemID, bookerID, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), booking.StatusApproved),
		"future":   e.addBooking(t, itemID, bookerID, baseTime.Add(time.Hour), baseTime.Add(2*time.Hour), booking.StatusApproved),
		"waiting":  e.addBooking(t, itemID, bookerID, baseTime.Add(2*time.Hour), baseTime.Add(3*time.Hour), booking.StatusWaiting),
		"rejected": e.addBooking(t, itemID, bookerID, baseTime.Add(3*time.Hour), baseTime.Add(4*time.Hour), booking.StatusRejected),
	}
	return e, ownerID, bookerID, ids
}

func TestListBookingsByState(t *testing.T) {
	ctx := context.Background()
	e, ownerID, bookerID, ids := classificationFixture(t)

	tests := []struct {
		state booking.State
		want  []int64
	}{
		{booking.StateAll, []int64{ids["rejected"], ids["waiting"], ids["future"], ids["current"], ids["past"]}},
		{booking.StateCurrent, []int64{ids["current"]}},
		{booking.StatePast, []int64{ids["past"]}},
		{booking.StateFuture, []int64{ids["rejected"], ids["waiting"], ids["future"]}},
		{booking.StateWaiting, []int64{ids["waiting"]}},
		{booking.StateRejected, []int64{ids["rejected"]}},
	}

	for _, tt := range tests {
		t.Run(string(tt.state)+" for booker", func(t *testing.T) {
			views, err := e.bookings.ListByBooker(ctx, bookerID, tt.state, queries.Unpaged())
			require.NoError(t, err)
			assert.Equal(t, tt.want, viewIDs(views))
		})
		t.Run(string(tt.state)+" for owner", func(t *testing.T) {
			views, err := e.bookings.ListByOwner(ctx, ownerID, tt.state, queries.Unpaged())
			require.NoError(t, err)
			assert.Equal(t, tt.want, viewIDs(views))
		})
	}

	t.Run("unknown user", func(t *testing.T) {
		_, err := e.bookings.ListByBooker(ctx, 999, booking.StateAll, queries.Unpaged())
		assert.ErrorIs(t, err, queries.ErrUserNotFound)

		_, err = e.bookings.ListByOwner(ctx, 999, booking.StateAll, queries.Unpaged())
		assert.ErrorIs(t, err, queries.ErrUserNotFound)
	})
}

func TestListBookingsOrdering(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	ownerID := e.addUser(t, "owner", "owner@example.com")
	bookerID := e.addUser(t, "booker", "booker@example.com")
	itemID := e.addItem(t, ownerID, "drill", "cordless drill", true)

	start := baseTime.Add(time.Hour)
	first := e.addBooking(t, itemID, bookerID, start, start.Add(time.Hour), booking.StatusWaiting)
	second := e.addBooking(t, itemID, bookerID, start, start.Add(2*time.Hour), booking.StatusWaiting)

	views, err := e.bookings.ListByBooker(ctx, bookerID, booking.StateAll, queries.Unpaged())
	require.NoError(t, err)

	// equal starts resolve newest-id first
	assert.Equal(t, []int64{second, first}, viewIDs(views))
}

func TestListBookingsOwnerScope(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	ownerID := e.addUser(t, "owner", "owner@example.com")
	otherOwnerID := e.addUser(t, "other", "other@example.com")
	bookerID := e.addUser(t, "booker", "booker@example.com")
	itemID := e.addItem(t, ownerID, "drill", "cordless drill", true)
	otherItemID := e.addItem(t, otherOwnerID, "saw", "hand saw", true)

	mine := e.addBooking(t, itemID, bookerID, baseTime.Add(time.Hour), baseTime.Add(2*time.Hour), booking.StatusWaiting)
	e.addBooking(t, otherItemID, bookerID, baseTime.Add(time.Hour), baseTime.Add(2*time.Hour), booking.StatusWaiting)

	views, err := e.bookings.ListByOwner(ctx, ownerID, booking.StateAll, queries.Unpaged())
	require.NoError(t, err)
	assert.Equal(t, []int64{mine}, viewIDs(views))
}

func TestListBookingsPagination(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	ownerID := e.addUser(t, "owner", "owner@example.com")
	bookerID := e.addUser(t, "booker", "booker@example.com")
	itemID := e.addItem(t, ownerID, "drill", "cordless drill", true)

	// five bookings, newest first in listings: ids[4] .. ids[0]
	var ids []int64
	for i := 0; i < 5; i++ {
		start := baseTime.Add(time.Duration(i+1) * time.Hour)
		ids = append(ids, e.addBooking(t, itemID, bookerID, start, start.Add(30*time.Minute), booking.StatusWaiting))
	}

	t.Run("no window returns everything", func(t *testing.T) {
		views, err := e.bookings.ListByBooker(ctx, bookerID, booking.StateAll, queries.Unpaged())
		require.NoError(t, err)
		assert.Equal(t, []int64{ids[4], ids[3], ids[2], ids[1], ids[0]}, viewIDs(views))
	})

	t.Run("window lands on the containing page", func(t *testing.T) {
		// from=3 size=2 resolves to offset 2
		page, err := queries.NewPage(3, 2)
		require.NoError(t, err)

		views, err := e.bookings.ListByBooker(ctx, bookerID, booking.StateAll, page)
		require.NoError(t, err)
		assert.Equal(t, []int64{ids[2], ids[1]}, viewIDs(views))
	})

	t.Run("offset past the end is empty", func(t *testing.T) {
		page, err := queries.NewPage(10, 5)
		require.NoError(t, err)

		views, err := e.bookings.ListByBooker(ctx, bookerID, booking.StateAll, page)
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("short final page", func(t *testing.T) {
		page, err := queries.NewPage(4, 2)
		require.NoError(t, err)

		views, err := e.bookings.ListByBooker(ctx, bookerID, booking.StateAll, page)
		require.NoError(t, err)
		assert.Equal(t, []int64{ids[0]}, viewIDs(views))
	})
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name  string
		from  int
		size  int
		valid bool
	}{
		{"first page", 0, 1, true},
		{"largest size", 5, 20, true},
		{"negative from", -1, 10, false},
		{"zero size", 0, 0, false},
		{"oversized", 0, 21, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := queries.NewPage(tt.from, tt.size)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, queries.Page{From: tt.from, Size: tt.size}, page)
			} else {
				assert.ErrorIs(t, err, queries.ErrInvalidPage)
			}
		})
	}

}
