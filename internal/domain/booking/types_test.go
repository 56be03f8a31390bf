package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/domain/booking"
)

func TestParseState(t *testing.T) {
	for _, raw := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
		state, err := booking.ParseState(raw)
		require.NoError(t, err)
		assert.Equal(t, booking.State(raw), state)
	}

	for _, raw := range []string{"", "all", "Current", "UNSUPPORTED_STATUS", "APPROVED"} {
		_, err := booking.ParseState(raw)
		assert.ErrorIs(t, err, booking.ErrUnknownState, "raw=%q", raw)
	}
}

func TestStateMatches(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	hour := time.Hour

	tests := []struct {
		name   string
		state  booking.State
		status booking.Status
		start  time.Time
		end    time.Time
		want   bool
	}{
		{"ALL matches past", booking.StateAll, booking.StatusApproved, now.Add(-3 * hour), now.Add(-2 * hour), true},
		{"ALL matches future", booking.StateAll, booking.StatusWaiting, now.Add(hour), now.Add(2 * hour), true},

		{"CURRENT spans now", booking.StateCurrent, booking.StatusApproved, now.Add(-hour), now.Add(hour), true},
		{"CURRENT at exact start", booking.StateCurrent, booking.StatusApproved, now, now.Add(hour), true},
		{"CURRENT at exact end", booking.StateCurrent, booking.StatusApproved, now.Add(-hour), now, true},
		{"CURRENT regardless of status", booking.StateCurrent, booking.StatusRejected, now.Add(-hour), now.Add(hour), true},
		{"CURRENT rejects past", booking.StateCurrent, booking.StatusApproved, now.Add(-2 * hour), now.Add(-hour), false},

		{"PAST requires end before now", booking.StatePast, booking.StatusApproved, now.Add(-2 * hour), now.Add(-hour), true},
		{"PAST rejects end at now", booking.StatePast, booking.StatusApproved, now.Add(-hour), now, false},
		{"PAST rejects ongoing", booking.StatePast, booking.StatusApproved, now.Add(-hour), now.Add(hour), false},

		{"FUTURE requires start after now", booking.StateFuture, booking.StatusWaiting, now.Add(hour), now.Add(2 * hour), true},
		{"FUTURE rejects start at now", booking.StateFuture, booking.StatusWaiting, now, now.Add(hour), false},

		{"WAITING matches status only", booking.StateWaiting, booking.StatusWaiting, now.Add(-2 * hour), now.Add(-hour), true},
		{"WAITING rejects approved", booking.StateWaiting, booking.StatusApproved, now.Add(hour), now.Add(2 * hour), false},

		{"REJECTED matches status only", booking.StateRejected, booking.StatusRejected, now.Add(hour), now.Add(2 * hour), true},
		{"REJECTED rejects canceled", booking.StateRejected, booking.StatusCanceled, now.Add(hour), now.Add(2 * hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.state.Matches(tt.status, tt.start, tt.end, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

// A booking crossing now belongs to CURRENT and nothing else among the
// temporal states; the three temporal classes partition every booking.
func TestTemporalStatesArePartition(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	periods := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"past", now.Add(-2 * time.Hour), now.Add(-time.Hour)},
		{"current", now.Add(-time.Hour), now.Add(time.Hour)},
		{"future", now.Add(time.Hour), now.Add(2 * time.Hour)},
		{"start boundary", now, now.Add(time.Hour)},
		{"end boundary", now.Add(-time.Hour), now},
	}

	for _, p := range periods {
		t.Run(p.name, func(t *testing.T) {
			matches := 0
			for _, s := range []booking.State{booking.StateCurrent, booking.StatePast, booking.StateFuture} {
				if s.Matches(booking.StatusApproved, p.start, p.end, now) {
					matches++
				}
			}
			assert.Equal(t, 1, matches)
		})
	}
}
