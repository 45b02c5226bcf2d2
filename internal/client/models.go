package client

// Chat is a read-only view of a conversation known to the session
type Chat struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsGroup bool   `json:"isGroup"`
}

// Media is a downloaded attachment ready to be uploaded to WhatsApp
type Media struct {
	Data     []byte
	MimeType string
	FileName string
}
