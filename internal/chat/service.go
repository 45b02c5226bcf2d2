package chat

import (
	"context"

	"github.com/neekaru/whatsapp-group-gateway/internal/app"
	"github.com/neekaru/whatsapp-group-gateway/internal/client"
)

// Service handles chat listing
type Service struct {
	app *app.App
}

// NewService creates a new chat service
func NewService(app *app.App) *Service {
	return &Service{app: app}
}

// GetAllChats retrieves groups and individual chats in enumeration order
func (s *Service) GetAllChats(ctx context.Context) ([]client.Chat, error) {
	if !s.app.Session.Snapshot().IsConnected() {
		return nil, app.ErrNotConnected
	}

	chats, err := s.app.WhatsApp.ListChats(ctx)
	if err != nil {
		return nil, app.NewExternalOperationError("list chats", err)
	}
	return chats, nil
}

// GetGroups retrieves only group chats
func (s *Service) GetGroups(ctx context.Context) ([]client.Chat, error) {
	chats, err := s.GetAllChats(ctx)
	if err != nil {
		return nil, err
	}

	groups := make([]client.Chat, 0, len(chats))
	for _, chat := range chats {
		if chat.IsGroup {
			groups = append(groups, chat)
		}
	}
	return groups, nil
}
