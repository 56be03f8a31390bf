// Package memory is a process-local store used for development and tests.
// It implements the same repository contracts as the postgres store, with a
// single RWMutex guarding all state.
package memory

import (
	"log/slog"
	"sync"
	"time"
)

type userRecord struct {
	id    int64
	name  string
	email string
}

type itemRecord struct {
	id          int64
	name        string
	description string
	available   bool
	ownerID     int64
	requestID   *int64
}

type bookingRecord struct {
	id       int64
	start    time.Time
	end      time.Time
	itemID   int64
	bookerID int64
	status   string
}

type commentRecord struct {
	id       int64
	text     string
	itemID   int64
	authorID int64
	created  time.Time
}

type requestRecord struct {
	id          int64
	description string
	requesterID int64
	created     time.Time
}

type Store struct {
	mu      sync.RWMutex
	slogger *slog.Logger

	users    map[int64]userRecord
	items    map[int64]itemRecord
	bookings map[int64]bookingRecord
	comments map[int64]commentRecord
	requests map[int64]requestRecord

	userSeq    int64
	itemSeq    int64
	bookingSeq int64
	commentSeq int64
	requestSeq int64
}

func NewStore(slogger *slog.Logger) *Store {
	return &Store{
		slogger:  slogger,
		users:    make(map[int64]userRecord),
		items:    make(map[int64]itemRecord),
		bookings: make(map[int64]bookingRecord),
		comments: make(map[int64]commentRecord),
		requests: make(map[int64]requestRecord),
	}
}
