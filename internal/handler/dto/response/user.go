package response

import (
	"github.com/jinzhu/copier"

	"shareit/internal/usecase/queries"
)

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func FromUserView(view *queries.UserView) *UserResponse {
	var resp UserResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromUserViews(views []queries.UserView) []UserResponse {
	resp := make([]UserResponse, 0, len(views))
	_ = copier.Copy(&resp, views)
	return resp
}
