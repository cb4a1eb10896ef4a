package services

import (
	"errors"
	"fmt"
	"io"
	"time"

	"lanshare/internal/config"
	"lanshare/internal/constants"
	"lanshare/internal/models"
	"lanshare/internal/storage"
	"lanshare/internal/utils"

	"github.com/google/uuid"
	pkgErrors "github.com/kerimovok/go-pkg-utils/errors"
	"gorm.io/gorm"
)

// Broadcaster publishes an event to every subscriber of a channel.
// Implementations are fire-and-forget; services call Publish strictly
// after the triggering metadata mutation committed.
type Broadcaster interface {
	Publish(channel, event string, data interface{})
}

// FileView is the wire shape of a shared file, timestamps in
// millisecond epochs and remaining time pre-computed for display.
type FileView struct {
	ID                    string `json:"id"`
	Filename              string `json:"filename"`
	FileSize              int64  `json:"file_size"`
	UploadTime            int64  `json:"upload_time"`
	ExpireTime            int64  `json:"expire_time"`
	UploaderName          string `json:"uploader_name"`
	FileType              string `json:"file_type"`
	DownloadURL           string `json:"download_url"`
	PreviewURL            string `json:"preview_url,omitempty"`
	IsExpired             bool   `json:"is_expired"`
	RemainingText         string `json:"remaining_text"`
	RemainingDays         int    `json:"remaining_days"`
	RemainingHours        int    `json:"remaining_hours"`
	RemainingMinutes      int    `json:"remaining_minutes"`
	TotalRemainingSeconds int64  `json:"total_remaining_seconds"`
}

// FileService owns the shared-file lifecycle: ingest, listing, expiry
// extension, soft delete and blob delivery lookups.
type FileService struct {
	db     *gorm.DB
	store  *storage.BlobStore
	events Broadcaster
	cfg    config.ShareConfig
	now    func() time.Time
}

// NewFileService creates a file service instance.
func NewFileService(db *gorm.DB, store *storage.BlobStore, events Broadcaster, cfg config.ShareConfig) *FileService {
	return &FileService{
		db:     db,
		store:  store,
		events: events,
		cfg:    cfg,
		now:    time.Now,
	}
}

// ValidateUpload rejects uploads before any bytes hit the disk.
func (s *FileService) ValidateUpload(declaredName string, size int64) error {
	if declaredName == "" {
		return pkgErrors.BadRequestError("INVALID_FILE", "No file name provided")
	}
	if utils.SanitizeFilename(declaredName) == "" {
		return pkgErrors.BadRequestError("INVALID_FILE", "Invalid file name")
	}
	if max := s.cfg.Storage.MaxFileSize; max > 0 && size > max {
		return pkgErrors.BadRequestError("FILE_TOO_LARGE", fmt.Sprintf("File size exceeds maximum allowed size of %d bytes", max))
	}
	ext := utils.GetFileExtension(declaredName)
	for _, blocked := range s.cfg.Validation.BlockedExtensions {
		if ext == blocked {
			return pkgErrors.BadRequestError("BLOCKED_FILE_TYPE", fmt.Sprintf("File type .%s is not allowed", ext))
		}
	}
	return nil
}

// Ingest stores the blob, persists the record and publishes the
// upload event. The write is all-or-nothing: a metadata failure
// deletes the blob that was just written so no orphan bytes survive.
func (s *FileService) Ingest(content io.Reader, declaredName, channel, ownerName, ownerAddr string) (*models.FileRecord, error) {
	sanitized := utils.SanitizeFilename(declaredName)
	if sanitized == "" {
		return nil, pkgErrors.BadRequestError("INVALID_FILE", "Invalid file name")
	}
	if channel == "" {
		channel = constants.DefaultChannel
	}
	if ownerName == "" {
		ownerName = constants.DefaultActorName
	}

	storageName := utils.NewStorageName(sanitized)
	path, size, err := s.store.Save(content, storageName)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	record := models.FileRecord{
		StorageName: storageName,
		DisplayName: declaredName,
		SizeBytes:   size,
		StoragePath: path,
		ExpiresAt:   s.now().AddDate(0, 0, s.cfg.Retention.DefaultDays),
		OwnerName:   ownerName,
		OwnerAddr:   ownerAddr,
		Channel:     channel,
		Kind:        constants.KindForExtension(utils.GetFileExtension(declaredName)),
		Status:      constants.StatusActive,
	}
	record.ID = uuid.New()

	if err := s.db.Create(&record).Error; err != nil {
		// Compensating delete; a failed ingest leaves no orphan blob.
		s.store.Remove(path, storageName)
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	s.events.Publish(channel, constants.EventFileUploaded, s.View(&record))
	return &record, nil
}

// Get returns a live record by id.
func (s *FileService) Get(id uuid.UUID) (*models.FileRecord, error) {
	var record models.FileRecord
	err := s.db.Where("id = ? AND status = ?", id, constants.StatusActive).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns the live files of a channel, newest first.
func (s *FileService) List(channel string) ([]FileView, error) {
	if channel == "" {
		channel = constants.DefaultChannel
	}

	var records []models.FileRecord
	err := s.db.Where("channel = ? AND status = ?", channel, constants.StatusActive).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	views := make([]FileView, 0, len(records))
	for i := range records {
		views = append(views, s.View(&records[i]))
	}
	return views, nil
}

// Extend pushes a live record's expiry forward by days and publishes
// the extension event. The new deadline compounds from the stored
// expiry; concurrent extends race and the last commit wins.
func (s *FileService) Extend(id uuid.UUID, days int) (*models.FileRecord, error) {
	record, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	extended, err := ExtendExpiry(record.ExpiresAt, days, s.cfg.Retention.ExtendMin, s.cfg.Retention.ExtendMax)
	if err != nil {
		return nil, pkgErrors.BadRequestError("INVALID_EXTEND_DAYS", err.Error())
	}

	if err := s.db.Model(record).Update("expires_at", extended).Error; err != nil {
		return nil, err
	}
	record.ExpiresAt = extended

	remaining := RemainingAt(s.now(), extended)
	s.events.Publish(record.Channel, constants.EventFileExtended, map[string]interface{}{
		"file_id":                 record.ID.String(),
		"expire_time":             extended.UnixMilli(),
		"is_expired":              remaining.Expired,
		"remaining_text":          remaining.Text,
		"remaining_days":          remaining.Days,
		"remaining_hours":         remaining.Hours,
		"remaining_minutes":       remaining.Minutes,
		"total_remaining_seconds": remaining.TotalSeconds,
	})
	return record, nil
}

// Delete soft-deletes a record and best-effort removes its blob. The
// record row is kept for audit; a second delete of the same id reports
// not found and publishes nothing.
func (s *FileService) Delete(id uuid.UUID) error {
	record, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.db.Model(record).Update("status", constants.StatusDeleted).Error; err != nil {
		return err
	}

	s.store.Remove(record.StoragePath, record.StorageName)

	s.events.Publish(record.Channel, constants.EventFileDeleted, map[string]interface{}{
		"file_id": record.ID.String(),
	})
	return nil
}

// View builds the derived wire representation of a record.
func (s *FileService) View(record *models.FileRecord) FileView {
	remaining := RemainingAt(s.now(), record.ExpiresAt)
	view := FileView{
		ID:                    record.ID.String(),
		Filename:              record.DisplayName,
		FileSize:              record.SizeBytes,
		UploadTime:            record.CreatedAt.UnixMilli(),
		ExpireTime:            record.ExpiresAt.UnixMilli(),
		UploaderName:          record.OwnerName,
		FileType:              record.Kind,
		DownloadURL:           fmt.Sprintf("/api/v1/files/%s/download", record.ID),
		IsExpired:             remaining.Expired,
		RemainingText:         remaining.Text,
		RemainingDays:         remaining.Days,
		RemainingHours:        remaining.Hours,
		RemainingMinutes:      remaining.Minutes,
		TotalRemainingSeconds: remaining.TotalSeconds,
	}
	if constants.PreviewableKind(record.Kind) {
		view.PreviewURL = fmt.Sprintf("/api/v1/files/%s/preview", record.ID)
	}
	return view
}

// Store exposes the blob store for delivery handlers.
func (s *FileService) Store() *storage.BlobStore {
	return s.store
}
