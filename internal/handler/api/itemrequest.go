package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
)

type ItemRequestHandler struct {
	requestCommands commands.ItemRequestCommands
	requestQueries  queries.ItemRequestQueries
}

func NewItemRequestHandler(
	requestCommands commands.ItemRequestCommands,
	requestQueries queries.ItemRequestQueries,
) *ItemRequestHandler {
	return &ItemRequestHandler{
		requestCommands: requestCommands,
		requestQueries:  requestQueries,
	}
}

// @Summary Create item request
// @Description Ask other users to share an item
// @Tags requests
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user id"
// @Param request body reqdto.CreateItemRequestRequest true "Request payload"
// @Success 201 {object} resdto.ItemRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /requests [post]
func (h *ItemRequestHandler) CreateRequest(c *gin.Context) {
	requesterID, ok := sharerID(c)
	if !ok {
		return
	}

	var req reqdto.CreateItemRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	view, err := h.requestCommands.CreateRequest(c.Request.Context(), req, requesterID)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromItemRequestView(view))
}

// @Summary List own item requests
// @Description List the acting user's requests with answering items, newest first
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user id"
// @Success 200 {array} resdto.ItemRequestResponse
// @Failure 404 {object} httperr.Response
// @Router /requests [get]
func (h *ItemRequestHandler) ListOwnRequests(c *gin.Context) {
	requesterID, ok := sharerID(c)
	if !ok {
		return
	}

	views, err := h.requestQueries.ListOwn(c.Request.Context(), requesterID)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemRequestViews(views))
}

// @Summary List other users' item requests
// @Description Paginated listing of requests made by everyone else. Both
// from and size must be present; otherwise the listing is empty.
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user id"
// @Param from query int false "Listing offset"
// @Param size query int false "Page size"
// @Success 200 {array} resdto.ItemRequestResponse
// @Failure 400 {object} httperr.Response
// @Router /requests/all [get]
func (h *ItemRequestHandler) ListOtherRequests(c *gin.Context) {
	actorID, ok := sharerID(c)
	if !ok {
		return
	}

	if c.Query("from") == "" || c.Query("size") == "" {
		c.JSON(http.StatusOK, []resdto.ItemRequestResponse{})
		return
	}

	page, err := parsePage(c)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}

	views, err := h.requestQueries.ListOthers(c.Request.Context(), actorID, page)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemRequestViews(views))
}

// @Summary Get item request
// @Description Get a request with its answering items; any existing user may look
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user id"
// @Param requestId path int true "Request id"
// @Success 200 {object} resdto.ItemRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /requests/{requestId} [get]
func (h *ItemRequestHandler) GetRequest(c *gin.Context) {
	actorID, ok := sharerID(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "requestId")
	if !ok {
		return
	}

	view, err := h.requestQueries.GetByID(c.Request.Context(), actorID, requestID)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemRequestView(view))
}
