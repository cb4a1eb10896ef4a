package models

import (
	"time"

	"github.com/google/uuid"
)

// Message represents a chat message in a channel. A message may link a
// shared FileRecord by id, or carry a chat-only attachment in the File*
// fields. Chat attachments are owned by the message alone: they never
// appear in the shared file listing and never expire.
type Message struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Content    string     `json:"content" gorm:"not null"`
	SenderName string     `json:"senderName" gorm:"default:'anonymous'"`
	SenderAddr string     `json:"senderAddr"`
	Channel    string     `json:"channel" gorm:"index;default:'default'"`
	Kind       string     `json:"kind" gorm:"not null;default:'text'"`
	FileID     *uuid.UUID `json:"fileId,omitempty"`
	FileName   string     `json:"fileName,omitempty"`
	FilePath   string     `json:"filePath,omitempty"`
	FileStore  string     `json:"fileStore,omitempty"`
	FileSize   int64      `json:"fileSize,omitempty"`
	FileKind   string     `json:"fileKind,omitempty"`
	Status     string     `json:"status" gorm:"not null;default:'active'"`
}

// HasAttachment reports whether the message carries a chat-only blob.
func (m *Message) HasAttachment() bool {
	return m.FileStore != ""
}
