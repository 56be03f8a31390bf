package item

import (
	"strings"

	"shareit/internal/pkg/errs"
)

var (
	ErrEmptyName        = errs.New("item name must not be blank")
	ErrEmptyDescription = errs.New("item description must not be blank")
	ErrNilAvailability  = errs.New("item availability must be set")
)

type Item struct {
	id          int64
	name        string
	description string
	available   bool
	ownerID     int64
	requestID   *int64
}

// NewItem validates and creates a listing. requestID links the item to the
// request it answers, when any.
func NewItem(name, description string, available *bool, ownerID int64, requestID *int64) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}
	if available == nil {
		return nil, ErrNilAvailability
	}
	return &Item{
		name:        name,
		description: description,
		available:   *available,
		ownerID:     ownerID,
		requestID:   requestID,
	}, nil
}

func Reconstruct(id int64, name, description string, available bool, ownerID int64, requestID *int64) *Item {
	return &Item{
		id:          id,
		name:        name,
		description: description,
		available:   available,
		ownerID:     ownerID,
		requestID:   requestID,
	}
}

func (i *Item) ID() int64           { return i.id }
func (i *Item) Name() string        { return i.name }
func (i *Item) Description() string { return i.description }
func (i *Item) Available() bool     { return i.available }
func (i *Item) OwnerID() int64      { return i.ownerID }
func (i *Item) RequestID() *int64   { return i.requestID }

// Update applies a partial update. Nil fields are left untouched.
func (i *Item) Update(name, description *string, available *bool) {
	if name != nil && strings.TrimSpace(*name) != "" {
		i.name = *name
	}
	if description != nil && strings.TrimSpace(*description) != "" {
		i.description = *description
	}
	if available != nil {
		i.available = *available
	}
}
