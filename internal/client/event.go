package client

import "time"

// Event is the interface for all session lifecycle events
type Event interface {
	GetType() string
	GetTime() time.Time
}

// BaseEvent is the base implementation of Event
type BaseEvent struct {
	Type string
	At   time.Time
}

// GetType returns the event type
func (e *BaseEvent) GetType() string {
	return e.Type
}

// GetTime returns when the event was emitted
func (e *BaseEvent) GetTime() time.Time {
	return e.At
}

// Event types
const (
	EventTypeQRCodeReady  = "qr_code_ready"
	EventTypeSessionReady = "session_ready"
	EventTypeAuthFailed   = "auth_failed"
	EventTypeDisconnected = "disconnected"
)

// QRCodeReadyEvent carries a raw pairing payload to be scanned by the phone
type QRCodeReadyEvent struct {
	BaseEvent
	Code    string
	Timeout time.Duration
}

// NewQRCodeReadyEvent creates a new QR event
func NewQRCodeReadyEvent(code string, timeout time.Duration) *QRCodeReadyEvent {
	return &QRCodeReadyEvent{
		BaseEvent: BaseEvent{Type: EventTypeQRCodeReady, At: time.Now()},
		Code:      code,
		Timeout:   timeout,
	}
}

// SessionReadyEvent signals an authenticated, usable session
type SessionReadyEvent struct {
	BaseEvent
}

// NewSessionReadyEvent creates a new ready event
func NewSessionReadyEvent() *SessionReadyEvent {
	return &SessionReadyEvent{
		BaseEvent: BaseEvent{Type: EventTypeSessionReady, At: time.Now()},
	}
}

// AuthFailedEvent signals that the session could not authenticate
type AuthFailedEvent struct {
	BaseEvent
	Reason string
}

// NewAuthFailedEvent creates a new auth failure event
func NewAuthFailedEvent(reason string) *AuthFailedEvent {
	return &AuthFailedEvent{
		BaseEvent: BaseEvent{Type: EventTypeAuthFailed, At: time.Now()},
		Reason:    reason,
	}
}

// DisconnectedEvent signals a lost or terminated session
type DisconnectedEvent struct {
	BaseEvent
	Reason string
}

// NewDisconnectedEvent creates a new disconnect event
func NewDisconnectedEvent(reason string) *DisconnectedEvent {
	return &DisconnectedEvent{
		BaseEvent: BaseEvent{Type: EventTypeDisconnected, At: time.Now()},
		Reason:    reason,
	}
}
