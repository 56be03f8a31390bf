package itemrequest

import (
	"strings"
	"time"

	"shareit/internal/pkg/errs"
)

var ErrBlankDescription = errs.New("request description must not be blank")

type ItemRequest struct {
	id          int64
	description string
	requesterID int64
	created     time.Time
}

func NewItemRequest(description string, requesterID int64, created time.Time) (*ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrBlankDescription
	}
	return &ItemRequest{
		description: description,
		requesterID: requesterID,
		created:     created,
	}, nil
}

func Reconstruct(id int64, description string, requesterID int64, created time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		description: description,
		requesterID: requesterID,
		created:     created,
	}
}

func (r *ItemRequest) ID() int64          { return r.id }
func (r *ItemRequest) Description() string { return r.description }
func (r *ItemRequest) RequesterID() int64 { return r.requesterID }
func (r *ItemRequest) Created() time.Time { return r.created }
