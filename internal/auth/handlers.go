package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neekaru/whatsapp-group-gateway/internal/app"
)

const (
	msgAlreadyConnected = "Already connected"
	msgNotGenerated     = "QR code not generated yet"
)

// Handlers contains HTTP handlers for authentication
type Handlers struct {
	app *app.App
}

// NewHandlers creates a new authentication handlers instance
func NewHandlers(app *app.App) *Handlers {
	return &Handlers{app: app}
}

// QRCodeHandler returns the current pairing QR code, if one is waiting to be scanned
func (h *Handlers) QRCodeHandler(c *gin.Context) {
	state := h.app.Session.Snapshot()

	switch {
	case state.Status == app.StatusAwaitingScan && state.QRImage != "":
		c.JSON(http.StatusOK, gin.H{"qr": state.QRImage})
	case state.IsConnected():
		c.JSON(http.StatusOK, gin.H{"message": msgAlreadyConnected})
	default:
		c.JSON(http.StatusOK, gin.H{"message": msgNotGenerated})
	}
}
