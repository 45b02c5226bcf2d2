// Package apptest provides in-memory collaborators for handler tests.
package apptest

import (
	"context"
	"sync"

	"github.com/neekaru/whatsapp-group-gateway/internal/app"
	"github.com/neekaru/whatsapp-group-gateway/internal/client"
	"github.com/neekaru/whatsapp-group-gateway/internal/config"
	"github.com/rs/zerolog"
)

// SentMessage records one SendMessage call
type SentMessage struct {
	ChatID string
	Text   string
	Media  *client.Media
}

// WhatsApp is a scripted app.WhatsApp
type WhatsApp struct {
	mu sync.Mutex

	Chats     []client.Chat
	ListErr   error
	LogoutErr error
	// SendErr fails sends; MediaSendErr fails only sends that carry media
	SendErr      error
	MediaSendErr error

	ListCalls     int
	LogoutCalls   int
	PairingStarts int
	Sent          []SentMessage
}

func (w *WhatsApp) ListChats(context.Context) ([]client.Chat, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ListCalls++
	if w.ListErr != nil {
		return nil, w.ListErr
	}
	return append([]client.Chat(nil), w.Chats...), nil
}

func (w *WhatsApp) SendMessage(_ context.Context, chatID, text string, media *client.Media) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if media != nil && w.MediaSendErr != nil {
		return "", w.MediaSendErr
	}
	if w.SendErr != nil {
		return "", w.SendErr
	}
	w.Sent = append(w.Sent, SentMessage{ChatID: chatID, Text: text, Media: media})
	return "3EB0TEST", nil
}

func (w *WhatsApp) Logout(context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.LogoutCalls++
	return w.LogoutErr
}

func (w *WhatsApp) StartPairing() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.PairingStarts++
}

// Calls reports how many collaborator calls were made in total
func (w *WhatsApp) Calls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ListCalls + w.LogoutCalls + len(w.Sent)
}

// Media is a scripted app.MediaFetcher
type Media struct {
	Result *client.Media
	Err    error
	URLs   []string
}

func (m *Media) Fetch(_ context.Context, url string) (*client.Media, error) {
	m.URLs = append(m.URLs, url)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// NewApp builds an App around the fakes with a session that encodes QR payloads verbatim
func NewApp(wa *WhatsApp, media *Media) *app.App {
	session := app.NewSession(func(p string) (string, error) { return p, nil }, zerolog.Nop())
	cfg := config.FromLookup(func(string) (string, bool) { return "", false })
	return app.NewApp(cfg, zerolog.Nop(), session, wa, media)
}

// Connect drives the app's session to CONNECTED
func Connect(a *app.App) {
	a.Session.OnEvent(client.NewSessionReadyEvent())
}
