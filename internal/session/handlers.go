package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neekaru/whatsapp-group-gateway/internal/app"
)

// Handlers contains HTTP handlers for session management
type Handlers struct {
	app     *app.App
	service *Service
}

// NewHandlers creates a new session handlers instance
func NewHandlers(app *app.App) *Handlers {
	return &Handlers{
		app:     app,
		service: NewService(app),
	}
}

// StatusHandler reports the session state
func (h *Handlers) StatusHandler(c *gin.Context) {
	state := h.app.Session.Snapshot()

	c.JSON(http.StatusOK, StatusResponse{
		Status:               state.Status.String(),
		IsConnected:          state.IsConnected(),
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
		LastDisconnectReason: state.LastDisconnectReason,
	})
}

// DisconnectHandler logs the WhatsApp session out
func (h *Handlers) DisconnectHandler(c *gin.Context) {
	err := h.service.Disconnect(c.Request.Context())
	if err == nil {
		c.JSON(http.StatusOK, DisconnectResponse{Success: true, Message: "Disconnected successfully"})
		return
	}

	status := app.StatusCode(err)
	if status == http.StatusBadRequest {
		c.JSON(status, app.ErrorBody(err, false))
		return
	}

	body := gin.H{"success": false, "message": "Error while disconnecting"}
	if h.app.ShowStack() {
		for k, v := range app.ErrorBody(err, true) {
			body[k] = v
		}
	}
	c.JSON(status, body)
}
