package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/errs"
)

// HeaderSharerUserID carries the acting user's id on every protected route.
const HeaderSharerUserID = "X-Sharer-User-Id"

const sharerIDKey = "sharer_user_id"

var errMissingSharerID = errs.New("missing or malformed " + HeaderSharerUserID + " header")

// RequireSharerID rejects requests without a parseable positive user id.
// Whether the user actually exists is the use case layer's concern.
func RequireSharerID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderSharerUserID)
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			httperr.AbortWithError(c, http.StatusBadRequest, errMissingSharerID,
				"X-Sharer-User-Id header is required", nil)
			return
		}
		c.Set(sharerIDKey, id)
		c.Next()
	}
}

func GetSharerID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(sharerIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
