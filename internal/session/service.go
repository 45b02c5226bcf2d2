package session

import (
	"context"

	"github.com/neekaru/whatsapp-group-gateway/internal/app"
)

// Service handles session-related business logic
type Service struct {
	app *app.App
}

// NewService creates a new session service
func NewService(app *app.App) *Service {
	return &Service{app: app}
}

// Disconnect logs the session out and resets it to DISCONNECTED.
// On logout failure the state is left as it was.
func (s *Service) Disconnect(ctx context.Context) error {
	if !s.app.Session.Snapshot().IsConnected() {
		return app.ErrNotConnected
	}

	if err := s.app.WhatsApp.Logout(ctx); err != nil {
		s.app.Logger.Error().Err(err).Msg("Error during logout")
		return app.NewExternalOperationError("logout", err)
	}

	s.app.Session.Reset()
	s.app.Logger.Info().Msg("WhatsApp session disconnected")

	// Pair again so GET /qrcode serves a fresh code
	s.app.WhatsApp.StartPairing()
	return nil
}
