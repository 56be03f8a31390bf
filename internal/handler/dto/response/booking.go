package response

import (
	"time"

	"github.com/jinzhu/copier"

	"shareit/internal/usecase/queries"
)

type BookingResponse struct {
	ID     int64              `json:"id"`
	Start  time.Time          `json:"start"`
	End    time.Time          `json:"end"`
	Status string             `json:"status"`
	Booker BookerResponse     `json:"booker"`
	Item   BookedItemResponse `json:"item"`
}

type BookerResponse struct {
	ID int64 `json:"id"`
}

type BookedItemResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromBookingViews(views []queries.BookingView) []BookingResponse {
	resp := make([]BookingResponse, 0, len(views))
	_ = copier.Copy(&resp, views)
	return resp
}
