package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit/internal/handler/httperr"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"
)

var (
	errInvalidID      = errs.New("malformed id path parameter")
	errMissingSharer  = errs.New("sharer id missing from request context")
	errInvalidApprove = errs.New("approved query parameter must be true or false")
)

func sharerID(c *gin.Context) (int64, bool) {
	id, ok := middleware.GetSharerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingSharer,
			"Internal server error", nil)
		return 0, false
	}
	return id, true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errInvalidID),
			"Invalid "+name+" format", nil)
		return 0, false
	}
	return id, true
}

// parsePage reads from/size. Windowing applies only when both are present;
// a partial window reads as no window, not as an error.
func parsePage(c *gin.Context) (queries.Page, error) {
	fromStr := c.Query("from")
	sizeStr := c.Query("size")
	if fromStr == "" || sizeStr == "" {
		return queries.Unpaged(), nil
	}

	from, err := strconv.Atoi(fromStr)
	if err != nil {
		return queries.Page{}, errs.Mark(err, queries.ErrInvalidPage)
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return queries.Page{}, errs.Mark(err, queries.ErrInvalidPage)
	}
	return queries.NewPage(from, size)
}
