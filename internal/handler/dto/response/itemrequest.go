package response

import (
	"time"

	"github.com/jinzhu/copier"

	"shareit/internal/usecase/queries"
)

type ItemRequestResponse struct {
	ID          int64                   `json:"id"`
	Description string                  `json:"description"`
	Created     time.Time               `json:"created"`
	Items       []RequestedItemResponse `json:"items"`
}

type RequestedItemResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

func FromItemRequestView(view *queries.ItemRequestView) *ItemRequestResponse {
	var resp ItemRequestResponse
	_ = copier.Copy(&resp, view)
	if resp.Items == nil {
		resp.Items = []RequestedItemResponse{}
	}
	return &resp
}

func FromItemRequestViews(views []queries.ItemRequestView) []ItemRequestResponse {
	resp := make([]ItemRequestResponse, 0, len(views))
	for i := range views {
		resp = append(resp, *FromItemRequestView(&views[i]))
	}
	return resp
}
