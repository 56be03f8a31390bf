package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"shareit/internal/handler/api"
	"shareit/internal/handler/middleware"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
	commandsmock "shareit/tests/mock/commands"
	queriesmock "shareit/tests/mock/queries"
)

type ItemHandlerSuite struct {
	suite.Suite

	ctrl            *gomock.Controller
	itemCommands    *commandsmock.MockItemCommands
	commentCommands *commandsmock.MockCommentCommands
	itemQueries     *queriesmock.MockItemQueries
	router          *gin.Engine
}

func TestItemHandlerSuite(t *testing.T) {
	suite.Run(t, new(ItemHandlerSuite))
}

func (s *ItemHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.itemCommands = commandsmock.NewMockItemCommands(s.ctrl)
	s.commentCommands = commandsmock.NewMockCommentCommands(s.ctrl)
	s.itemQueries = queriesmock.NewMockItemQueries(s.ctrl)

	h := api.NewItemHandler(s.itemCommands, s.commentCommands, s.itemQueries)

	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())
	g := s.router.Group("/items")
	g.Use(middleware.RequireSharerID())
	g.POST("", h.CreateItem)
	g.GET("", h.ListOwnItems)
	g.GET("/search", h.SearchItems)
	g.GET("/:itemId", h.GetItem)
	g.PATCH("/:itemId", h.UpdateItem)
	g.POST("/:itemId/comment", h.CreateComment)
}

func sampleItemView() *queries.ItemView {
	return &queries.ItemView{
		ID:          3,
		Name:        "drill",
		Description: "cordless drill",
		Available:   true,
		LastBooking: &queries.BookingShortView{ID: 4, BookerID: 9},
		Comments:    []queries.CommentView{},
	}
}

func (s *ItemHandlerSuite) TestCreateItem() {
	payload := gin.H{"name": "drill", "description": "cordless drill", "available": true}

	s.Run("created", func() {
		s.SetupTest()
		s.itemCommands.EXPECT().
			CreateItem(gomock.Any(), gomock.Any(), int64(7)).
			Return(sampleItemView(), nil)

		w := performRequest(s.router, http.MethodPost, "/items", payload, sharerHeader(7))

		s.Equal(http.StatusCreated, w.Code)
		body := decodeBody(w)
		s.EqualValues(3, body["id"])
		s.Equal("drill", body["name"])
	})

	s.Run("missing sharer header", func() {
		s.SetupTest()
		w := performRequest(s.router, http.MethodPost, "/items", payload, nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("missing availability fails binding", func() {
		s.SetupTest()
		w := performRequest(s.router, http.MethodPost, "/items",
			gin.H{"name": "drill", "description": "d"}, sharerHeader(7))
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unknown request id", func() {
		s.SetupTest()
		s.itemCommands.EXPECT().
			CreateItem(gomock.Any(), gomock.Any(), int64(7)).
			Return(nil, commands.ErrRequestNotFound)

		w := performRequest(s.router, http.MethodPost, "/items",
			gin.H{"name": "drill", "description": "d", "available": true, "requestId": 42}, sharerHeader(7))
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *ItemHandlerSuite) TestUpdateItem() {
	s.Run("updated", func() {
		s.SetupTest()
		s.itemCommands.EXPECT().
			UpdateItem(gomock.Any(), gomock.Any(), int64(3), int64(7)).
			Return(sampleItemView(), nil)

		w := performRequest(s.router, http.MethodPatch, "/items/3", gin.H{"available": false}, sharerHeader(7))
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("non-owner reads as not found", func() {
		s.SetupTest()
		s.itemCommands.EXPECT().
			UpdateItem(gomock.Any(), gomock.Any(), int64(3), int64(8)).
			Return(nil, commands.ErrItemNotFound)

		w := performRequest(s.router, http.MethodPatch, "/items/3", gin.H{"available": false}, sharerHeader(8))
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *ItemHandlerSuite) TestGetItem() {
	s.Run("found with aggregation", func() {
		s.SetupTest()
		s.itemQueries.EXPECT().
			GetByID(gomock.Any(), int64(7), int64(3)).
			Return(sampleItemView(), nil)

		w := performRequest(s.router, http.MethodGet, "/items/3", nil, sharerHeader(7))

		s.Equal(http.StatusOK, w.Code)
		body := decodeBody(w)
		s.EqualValues(4, body["lastBooking"].(map[string]any)["id"])
		s.Nil(body["nextBooking"])
		s.NotNil(body["comments"])
	})

	s.Run("malformed path id", func() {
		s.SetupTest()
		w := performRequest(s.router, http.MethodGet, "/items/drill", nil, sharerHeader(7))

		s.Equal(http.StatusBadRequest, w.Code)
		s.Contains(w.Body.String(), "Invalid itemId format")
	})

	s.Run("missing item", func() {
		s.SetupTest()
		s.itemQueries.EXPECT().
			GetByID(gomock.Any(), int64(7), int64(3)).
			Return(nil, queries.ErrItemNotFound)

		w := performRequest(s.router, http.MethodGet, "/items/3", nil, sharerHeader(7))
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *ItemHandlerSuite) TestSearchItems() {
	s.Run("delegates the raw text", func() {
		s.SetupTest()
		s.itemQueries.EXPECT().
			Search(gomock.Any(), "drill", queries.Unpaged()).
			Return([]queries.ItemView{*sampleItemView()}, nil)

		w := performRequest(s.router, http.MethodGet, "/items/search?text=drill", nil, sharerHeader(7))
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("requires the sharer header", func() {
		s.SetupTest()
		w := performRequest(s.router, http.MethodGet, "/items/search?text=drill", nil, nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *ItemHandlerSuite) TestCreateComment() {
	s.Run("created", func() {
		s.SetupTest()
		s.commentCommands.EXPECT().
			AddComment(gomock.Any(), gomock.Any(), int64(3), int64(7)).
			Return(&queries.CommentView{
				ID:         1,
				Text:       "works great",
				AuthorName: "alice",
				Created:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			}, nil)

		w := performRequest(s.router, http.MethodPost, "/items/3/comment",
			gin.H{"text": "works great"}, sharerHeader(7))

		s.Equal(http.StatusCreated, w.Code)
		body := decodeBody(w)
		s.Equal("works great", body["text"])
		s.Equal("alice", body["authorName"])
	})

	s.Run("no finished booking", func() {
		s.SetupTest()
		s.commentCommands.EXPECT().
			AddComment(gomock.Any(), gomock.Any(), int64(3), int64(7)).
			Return(nil, commands.ErrCommentNotAllowed)

		w := performRequest(s.router, http.MethodPost, "/items/3/comment",
			gin.H{"text": "sneaky"}, sharerHeader(7))
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("blank text fails binding", func() {
		s.SetupTest()
		w := performRequest(s.router, http.MethodPost, "/items/3/comment", gin.H{}, sharerHeader(7))
		s.Equal(http.StatusBadRequest, w.Code)
	})
}
