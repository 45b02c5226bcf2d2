package chat

import "github.com/neekaru/whatsapp-group-gateway/internal/client"

// ChatsResponse represents the response for chat listing
type ChatsResponse struct {
	Chats []client.Chat `json:"chats"`
	Total int           `json:"total"`
}
