package messaging

// SendMessageRequest represents a request to send a message to a group
type SendMessageRequest struct {
	GroupName string `json:"groupName"`
	Message   string `json:"message"`
	MediaURL  string `json:"mediaUrl,omitempty"`
}

// SendMessageResponse represents a successful send
type SendMessageResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	GroupID  string   `json:"groupId"`
	Delivery Delivery `json:"delivery"`
}

// Delivery records which path a send took
type Delivery string

const (
	DeliveryText         Delivery = "text"
	DeliveryMedia        Delivery = "media"
	DeliveryTextFallback Delivery = "text_fallback"
)

// Result is the outcome of SendToGroup
type Result struct {
	GroupID   string
	GroupName string
	MessageID string
	Delivery  Delivery
	// MediaErr is the failure that caused a text fallback
	MediaErr error
}
