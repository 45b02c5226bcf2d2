package chat

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neekaru/whatsapp-group-gateway/internal/app"
	"github.com/neekaru/whatsapp-group-gateway/internal/client"
)

// Handlers contains HTTP handlers for chat listing
type Handlers struct {
	app     *app.App
	service *Service
}

// NewHandlers creates a new chat handlers instance
func NewHandlers(app *app.App) *Handlers {
	return &Handlers{
		app:     app,
		service: NewService(app),
	}
}

// GetAllChatsHandler handles GET /chats
func (h *Handlers) GetAllChatsHandler(c *gin.Context) {
	h.respond(c, h.service.GetAllChats)
}

// GetGroupsHandler handles GET /chats/groups
func (h *Handlers) GetGroupsHandler(c *gin.Context) {
	h.respond(c, h.service.GetGroups)
}

func (h *Handlers) respond(c *gin.Context, list func(context.Context) ([]client.Chat, error)) {
	chats, err := list(c.Request.Context())
	if err != nil {
		status := app.StatusCode(err)
		if status == http.StatusInternalServerError {
			h.app.Logger.Error().Err(err).Msg("Failed to list chats")
		}
		c.JSON(status, app.ErrorBody(err, h.app.ShowStack()))
		return
	}

	c.JSON(http.StatusOK, ChatsResponse{Chats: chats, Total: len(chats)})
}
