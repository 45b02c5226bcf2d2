package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neekaru/whatsapp-group-gateway/internal/app"
)

// Handlers contains HTTP handlers for health checks
type Handlers struct {
	app *app.App
}

// NewHandlers creates a new health handlers instance
func NewHandlers(app *app.App) *Handlers {
	return &Handlers{app: app}
}

// HealthCheckHandler reports uptime and the WhatsApp session status. Always 200.
func (h *Handlers) HealthCheckHandler(c *gin.Context) {
	state := h.app.Session.Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"uptime":    time.Since(h.app.StartTime).Round(time.Second).String(),
		"session":   state.Status.String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
