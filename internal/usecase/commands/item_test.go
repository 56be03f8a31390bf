package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/usecase/commands"
)

func boolPtr(b bool) *bool { return &b }

func TestCreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an item", func(t *testing.T) {
		e := newEnv(t)
		ownerID := e.createUser(t, "owner", "owner@example.com")

		view, err := e.items.CreateItem(ctx, reqdto.CreateItemRequest{
			Name:        "drill",
			Description: "cordless drill",
			Available:   boolPtr(true),
		}, ownerID)
		require.NoError(t, err)

		assert.Equal(t, "drill", view.Name)
		assert.Equal(t, "cordless drill", view.Description)
		assert.True(t, view.Available)
		assert.Nil(t, view.RequestID)
		assert.Empty(t, view.Comments)
	})

	t.Run("unknown owner", func(t *testing.T) {
		e := newEnv(t)

		_, err := e.items.CreateItem(ctx, reqdto.CreateItemRequest{
			Name:        "drill",
			Description: "cordless drill",
			Available:   boolPtr(true),
		}, 999)
		assert.ErrorIs(t, err, commands.ErrUserNotFound)
	})

	t.Run("answers an existing request", func(t *testing.T) {
		e := newEnv(t)
		ownerID := e.createUser(t, "owner", "owner@example.com")
		requesterID := e.createUser(t, "requester", "req@example.com")

		reqView, err := e.requests.CreateRequest(ctx, reqdto.CreateItemRequestRequest{Description: "need a drill"}, requesterID)
		require.NoError(t, err)

		view, err := e.items.CreateItem(ctx, reqdto.CreateItemRequest{
			Name:        "drill",
			Description: "cordless drill",
			Available:   boolPtr(true),
			RequestID:   &reqView.ID,
		}, ownerID)
		require.NoError(t, err)
		require.NotNil(t, view.RequestID)
		assert.Equal(t, reqView.ID, *view.RequestID)
	})

	t.Run("unknown request id", func(t *testing.T) {
		e := newEnv(t)
		ownerID := e.createUser(t, "owner", "owner@example.com")
		missing := int64(999)

		_, err := e.items.CreateItem(ctx, reqdto.CreateItemRequest{
			Name:        "drill",
			Description: "cordless drill",
			Available:   boolPtr(true),
			RequestID:   &missing,
		}, ownerID)
		assert.ErrorIs(t, err, commands.ErrRequestNotFound)
	})

	t.Run("invalid payloads", func(t *testing.T) {
		e := newEnv(t)
		ownerID := e.createUser(t, "owner", "owner@example.com")

		tests := []struct {
			name string
			req  reqdto.CreateItemRequest
		}{
			{"blank name", reqdto.CreateItemRequest{Name: "  ", Description: "d", Available: boolPtr(true)}},
			{"blank description", reqdto.CreateItemRequest{Name: "n", Description: " ", Available: boolPtr(true)}},
			{"nil availability", reqdto.CreateItemRequest{Name: "n", Description: "d"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := e.items.CreateItem(ctx, tt.req, ownerID)
				assert.ErrorIs(t, err, commands.ErrInvalidItem)
			})
		}
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		e := newEnv(t)
		ownerID := e.createUser(t, "owner", "owner@example.com")
		itemID := e.createItem(t, ownerID, "drill", true)

		view, err := e.items.UpdateItem(ctx, reqdto.UpdateItemRequest{Available: boolPtr(false)}, itemID, ownerID)
		require.NoError(t, err)
		assert.Equal(t, "drill", view.Name)
		assert.False(t, view.Available)

		view, err = e.items.UpdateItem(ctx, reqdto.UpdateItemRequest{Name: strPtr("hammer drill")}, itemID, ownerID)
		require.NoError(t, err)
		assert.Equal(t, "hammer drill", view.Name)
		assert.False(t, view.Available)
	})

	t.Run("only the owner may update", func(t *testing.T) {
		e := newEnv(t)
		ownerID := e.createUser(t, "owner", "owner@example.com")
		otherID := e.createUser(t, "other", "other@example.com")
		itemID := e.createItem(t, ownerID, "drill", true)

		_, err := e.items.UpdateItem(ctx, reqdto.UpdateItemRequest{Name: strPtr("mine now")}, itemID, otherID)
		assert.ErrorIs(t, err, commands.ErrItemNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		e := newEnv(t)
		ownerID := e.createUser(t, "owner", "owner@example.com")

		_, err := e.items.UpdateItem(ctx, reqdto.UpdateItemRequest{Name: strPtr("x")}, 999, ownerID)
		assert.ErrorIs(t, err, commands.ErrItemNotFound)
	})
}
