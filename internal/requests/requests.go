package requests

// ExtendFileRequest asks for a file's expiry to be pushed forward.
type ExtendFileRequest struct {
	Days int `json:"days"`
}

// SendMessageRequest carries a chat message. FileID optionally links a
// shared file from the transfer list.
type SendMessageRequest struct {
	Content     string  `json:"content" validate:"required"`
	Channel     string  `json:"channel"`
	SenderName  string  `json:"sender_name"`
	MessageType string  `json:"message_type"`
	FileID      *string `json:"file_id,omitempty"`
}
