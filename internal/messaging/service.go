package messaging

import (
	"context"
	"fmt"
	"strings"

	"github.com/neekaru/whatsapp-group-gateway/internal/app"
	"github.com/neekaru/whatsapp-group-gateway/internal/client"
)

// Service handles messaging-related business logic
type Service struct {
	app *app.App
}

// NewService creates a new messaging service
func NewService(app *app.App) *Service {
	return &Service{app: app}
}

// FindGroup returns the first group chat whose name matches case-insensitively
func FindGroup(chats []client.Chat, name string) (client.Chat, bool) {
	for _, chat := range chats {
		if chat.IsGroup && strings.EqualFold(chat.Name, name) {
			return chat, true
		}
	}
	return client.Chat{}, false
}

// SendToGroup sends message to the named group. With a mediaURL the media is
// sent captioned with message; if fetching or sending it fails, message goes
// out as plain text instead.
func (s *Service) SendToGroup(ctx context.Context, req SendMessageRequest) (*Result, error) {
	if !s.app.Session.Snapshot().IsConnected() {
		return nil, app.ErrNotConnected
	}

	if strings.TrimSpace(req.GroupName) == "" || strings.TrimSpace(req.Message) == "" {
		return nil, &app.ValidationError{Message: "groupName and message are required"}
	}

	chats, err := s.app.WhatsApp.ListChats(ctx)
	if err != nil {
		return nil, app.NewExternalOperationError("list chats", err)
	}

	group, ok := FindGroup(chats, req.GroupName)
	if !ok {
		return nil, &app.NotFoundError{Message: fmt.Sprintf("Group %q not found", req.GroupName)}
	}

	result := &Result{GroupID: group.ID, GroupName: group.Name}
	log := s.app.Logger.With().Str("group", group.Name).Str("groupId", group.ID).Logger()

	if req.MediaURL != "" {
		id, mediaErr := s.sendMedia(ctx, group.ID, req.Message, req.MediaURL)
		if mediaErr == nil {
			result.MessageID = id
			result.Delivery = DeliveryMedia
			log.Info().Str("delivery", string(result.Delivery)).Str("mediaUrl", req.MediaURL).Msg("Message sent")
			return result, nil
		}

		log.Error().Err(mediaErr).Str("mediaUrl", req.MediaURL).Msg("Media could not be sent, falling back to text")
		result.MediaErr = mediaErr
		result.Delivery = DeliveryTextFallback
	} else {
		result.Delivery = DeliveryText
	}

	id, err := s.app.WhatsApp.SendMessage(ctx, group.ID, req.Message, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while sending message")
		return nil, app.NewExternalOperationError("send message", err)
	}

	result.MessageID = id
	log.Info().Str("delivery", string(result.Delivery)).Msg("Message sent")
	return result, nil
}

// sendMedia is the first step of the fallback policy: fetch, then send with caption
func (s *Service) sendMedia(ctx context.Context, chatID, caption, mediaURL string) (string, error) {
	media, err := s.app.Media.Fetch(ctx, mediaURL)
	if err != nil {
		return "", fmt.Errorf("fetch media: %w", err)
	}

	id, err := s.app.WhatsApp.SendMessage(ctx, chatID, caption, media)
	if err != nil {
		return "", fmt.Errorf("send media: %w", err)
	}
	return id, nil
}
