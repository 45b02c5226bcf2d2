package messaging

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neekaru/whatsapp-group-gateway/internal/app"
)

// Handlers contains HTTP handlers for messaging
type Handlers struct {
	app     *app.App
	service *Service
}

// NewHandlers creates a new messaging handlers instance
func NewHandlers(app *app.App) *Handlers {
	return &Handlers{
		app:     app,
		service: NewService(app),
	}
}

// SendMessageHandler handles sending a text or media message to a group
func (h *Handlers) SendMessageHandler(c *gin.Context) {
	if !h.app.Session.Snapshot().IsConnected() {
		c.JSON(http.StatusBadRequest, app.ErrorBody(app.ErrNotConnected, false))
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := h.service.SendToGroup(c.Request.Context(), req)
	if err != nil {
		status := app.StatusCode(err)
		c.JSON(status, app.ErrorBody(err, status == http.StatusInternalServerError && h.app.ShowStack()))
		return
	}

	c.JSON(http.StatusOK, SendMessageResponse{
		Success:  true,
		Message:  fmt.Sprintf("Message sent to %q", req.GroupName),
		GroupID:  result.GroupID,
		Delivery: result.Delivery,
	})
}
