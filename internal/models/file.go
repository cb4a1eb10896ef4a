package models

import (
	"time"

	"github.com/google/uuid"
)

// FileRecord represents a shared file visible in the transfer list.
// The blob lives on disk under StorageName; DisplayName is the
// user-supplied name used for downloads and kind classification.
// IDs are assigned by the service at ingest, never by the database.
type FileRecord struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	StorageName string    `json:"storageName" gorm:"not null;uniqueIndex"`
	DisplayName string    `json:"displayName" gorm:"not null"`
	SizeBytes   int64     `json:"sizeBytes" gorm:"not null"`
	StoragePath string    `json:"storagePath" gorm:"not null"`
	ExpiresAt   time.Time `json:"expiresAt" gorm:"not null"`
	OwnerName   string    `json:"ownerName" gorm:"default:'anonymous'"`
	OwnerAddr   string    `json:"ownerAddr"`
	Channel     string    `json:"channel" gorm:"index;default:'default'"`
	Kind        string    `json:"kind" gorm:"not null"`
	Status      string    `json:"status" gorm:"not null;default:'active'"`
}
