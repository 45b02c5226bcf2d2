package session

// StatusResponse represents a session status response
type StatusResponse struct {
	Status               string `json:"status"`
	IsConnected          bool   `json:"isConnected"`
	Timestamp            string `json:"timestamp"`
	LastDisconnectReason string `json:"lastDisconnectReason,omitempty"`
}

// DisconnectResponse represents the outcome of a logout
type DisconnectResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
