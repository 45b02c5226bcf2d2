package app

import (
	"context"
	"time"

	"github.com/neekaru/whatsapp-group-gateway/internal/client"
	"github.com/neekaru/whatsapp-group-gateway/internal/config"
	"github.com/rs/zerolog"
)

// WhatsApp is the automation collaborator the HTTP handlers call into
type WhatsApp interface {
	ListChats(ctx context.Context) ([]client.Chat, error)
	SendMessage(ctx context.Context, chatID, text string, media *client.Media) (string, error)
	Logout(ctx context.Context) error
	// StartPairing reconnects in the background so a new QR code is produced
	StartPairing()
}

// MediaFetcher downloads a URL as message media
type MediaFetcher interface {
	Fetch(ctx context.Context, url string) (*client.Media, error)
}

// App holds shared application state and resources
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Session  *Session
	WhatsApp WhatsApp
	Media    MediaFetcher

	StartTime time.Time // Track startup time for health checks
}

// NewApp creates a new App instance
func NewApp(cfg *config.Config, logger zerolog.Logger, session *Session, wa WhatsApp, media MediaFetcher) *App {
	return &App{
		Config:    cfg,
		Logger:    logger,
		Session:   session,
		WhatsApp:  wa,
		Media:     media,
		StartTime: time.Now(),
	}
}

// ShowStack reports whether error responses may carry stack traces
func (a *App) ShowStack() bool {
	return a.Config != nil && a.Config.IsDevelopment()
}
