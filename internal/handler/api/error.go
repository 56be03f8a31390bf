package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"shareit/internal/handler/httperr"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
)

type errorMapping struct {
	sentinel error
	status   int
	message  string
}

// Authorization failures map to 404 on purpose: a stranger probing a booking
// or someone else's item learns nothing beyond "not found".
var errorMappings = []errorMapping{
	{commands.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{queries.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{commands.ErrItemNotFound, http.StatusNotFound, "Item not found"},
	{queries.ErrItemNotFound, http.StatusNotFound, "Item not found"},
	{commands.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{queries.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{commands.ErrOwnItemBooking, http.StatusNotFound, "Booking not found"},
	{commands.ErrRequestNotFound, http.StatusNotFound, "Item request not found"},
	{queries.ErrRequestNotFound, http.StatusNotFound, "Item request not found"},
	{commands.ErrItemUnavailable, http.StatusBadRequest, "Item is not available for booking"},
	{commands.ErrInvalidPeriod, http.StatusBadRequest, "Invalid booking period"},
	{commands.ErrAlreadyDecided, http.StatusBadRequest, "Booking has already been decided"},
	{commands.ErrCommentNotAllowed, http.StatusBadRequest, "Commenting requires a finished booking of the item"},
	{commands.ErrInvalidComment, http.StatusBadRequest, "Invalid comment text"},
	{commands.ErrInvalidItem, http.StatusBadRequest, "Invalid item payload"},
	{commands.ErrInvalidRequest, http.StatusBadRequest, "Invalid item request payload"},
	{commands.ErrInvalidEmail, http.StatusBadRequest, "Invalid email address"},
	{commands.ErrEmailTaken, http.StatusConflict, "Email address is already registered"},
	{queries.ErrInvalidPage, http.StatusBadRequest, "Invalid pagination parameters"},
}

func abortWithMappedError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			httperr.AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func abortWithBindError(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", validationDetail(err))
}

// validationDetail surfaces which fields failed binding, field name and rule
// only, never the submitted values.
func validationDetail(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+": "+fe.Tag())
	}
	return fields
}
