package app

import (
	"sync"
	"time"

	"github.com/neekaru/whatsapp-group-gateway/internal/client"
	"github.com/rs/zerolog"
)

// Status is the connection state of the WhatsApp session
type Status int

const (
	StatusDisconnected Status = iota
	StatusAwaitingScan
	StatusConnected
)

// String returns the wire representation of the status
func (s Status) String() string {
	switch s {
	case StatusDisconnected:
		return "DISCONNECTED"
	case StatusAwaitingScan:
		return "AWAITING_SCAN"
	case StatusConnected:
		return "CONNECTED"
	default:
		return "UNKNOWN"
	}
}

// QREncoder turns a raw pairing payload into a displayable image string
type QREncoder func(payload string) (string, error)

// SessionState is an immutable snapshot of the session
type SessionState struct {
	Status               Status
	QRImage              string
	LastDisconnectReason string
	UpdatedAt            time.Time
}

// IsConnected reports whether the session can send messages
func (s SessionState) IsConnected() bool {
	return s.Status == StatusConnected
}

// Session tracks the connection state machine driven by lifecycle events.
// QRImage is non-empty only while the status is AWAITING_SCAN.
type Session struct {
	mu    sync.RWMutex
	state SessionState

	encode QREncoder
	logger zerolog.Logger
	now    func() time.Time
}

// NewSession creates a session in the DISCONNECTED state
func NewSession(encode QREncoder, logger zerolog.Logger) *Session {
	s := &Session{
		encode: encode,
		logger: logger,
		now:    time.Now,
	}
	s.state.UpdatedAt = s.now()
	return s
}

// Snapshot returns the current state
func (s *Session) Snapshot() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// OnEvent implements client.Observer
func (s *Session) OnEvent(event client.Event) {
	switch e := event.(type) {
	case *client.QRCodeReadyEvent:
		s.HandleQRCode(e.Code)
	case *client.SessionReadyEvent:
		s.HandleReady()
	case *client.AuthFailedEvent:
		s.HandleAuthFailed(e.Reason)
	case *client.DisconnectedEvent:
		s.HandleDisconnected(e.Reason)
	}
}

// HandleQRCode moves to AWAITING_SCAN with the encoded image.
// If encoding fails the state is left untouched.
func (s *Session) HandleQRCode(payload string) {
	image, err := s.encode(payload)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode QR code")
		return
	}

	s.mu.Lock()
	s.state.Status = StatusAwaitingScan
	s.state.QRImage = image
	s.state.UpdatedAt = s.now()
	s.mu.Unlock()

	s.logger.Info().Msg("QR code converted to image")
}

// HandleReady moves to CONNECTED
func (s *Session) HandleReady() {
	s.transition(StatusConnected)
	s.logger.Info().Msg("WhatsApp session connected")
}

// HandleAuthFailed moves to DISCONNECTED
func (s *Session) HandleAuthFailed(reason string) {
	s.transition(StatusDisconnected)
	s.logger.Error().Str("reason", reason).Msg("Authentication failed")
}

// HandleDisconnected moves to DISCONNECTED and records why
func (s *Session) HandleDisconnected(reason string) {
	s.mu.Lock()
	s.state.Status = StatusDisconnected
	s.state.QRImage = ""
	s.state.LastDisconnectReason = reason
	s.state.UpdatedAt = s.now()
	s.mu.Unlock()

	s.logger.Warn().Str("reason", reason).Msg("Disconnected")
}

// Reset returns to DISCONNECTED after a deliberate logout
func (s *Session) Reset() {
	s.transition(StatusDisconnected)
}

func (s *Session) transition(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Status = status
	s.state.QRImage = ""
	s.state.UpdatedAt = s.now()
}
