package services

import (
	"errors"
	"fmt"
	"io"
	"strings"
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

// MessageView is the wire shape of a chat message.
type MessageView struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	SenderName  string `json:"sender_name"`
	SendTime    int64  `json:"send_time"`
	MessageType string `json:"message_type"`
	FileID      string `json:"file_id,omitempty"`
	FileName    string `json:"file_name,omitempty"`
	FileSize    int64  `json:"file_size,omitempty"`
	FileType    string `json:"file_type,omitempty"`
	FileURL     string `json:"file_url,omitempty"`
	PreviewURL  string `json:"preview_url,omitempty"`
}

// SendInput carries a plain or file-linking chat message.
type SendInput struct {
	Content    string
	Channel    string
	SenderName string
	SenderAddr string
	Kind       string
	FileID     *uuid.UUID
}

// MessageService owns chat messages and their chat-only attachments.
// Attachment blobs belong to the message alone: they are absent from
// the shared file listing and are reclaimed only on message delete.
type MessageService struct {
	db     *gorm.DB
	store  *storage.BlobStore
	events Broadcaster
	cfg    config.ShareConfig
	now    func() time.Time
}

// NewMessageService creates a message service instance.
func NewMessageService(db *gorm.DB, store *storage.BlobStore, events Broadcaster, cfg config.ShareConfig) *MessageService {
	return &MessageService{
		db:     db,
		store:  store,
		events: events,
		cfg:    cfg,
		now:    time.Now,
	}
}

// List returns the live messages of a channel, oldest first.
func (s *MessageService) List(channel string) ([]MessageView, error) {
	if channel == "" {
		channel = constants.DefaultChannel
	}

	var records []models.Message
	err := s.db.Where("channel = ? AND status = ?", channel, constants.StatusActive).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	views := make([]MessageView, 0, len(records))
	for i := range records {
		views = append(views, s.View(&records[i]))
	}
	return views, nil
}

// Send persists a text (or shared-file-linking) message and publishes
// it to the channel.
func (s *MessageService) Send(in SendInput) (*models.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, pkgErrors.BadRequestError("EMPTY_MESSAGE", "Message content must not be empty")
	}

	kind := in.Kind
	switch kind {
	case "":
		kind = constants.MessageText
	case constants.MessageText, constants.MessageFile, constants.MessageImage:
	default:
		return nil, pkgErrors.BadRequestError("INVALID_MESSAGE_TYPE", "Unknown message type")
	}

	channel := in.Channel
	if channel == "" {
		channel = constants.DefaultChannel
	}
	sender := in.SenderName
	if sender == "" {
		sender = constants.DefaultActorName
	}

	record := models.Message{
		Content:    content,
		SenderName: sender,
		SenderAddr: in.SenderAddr,
		Channel:    channel,
		Kind:       kind,
		FileID:     in.FileID,
		Status:     constants.StatusActive,
	}
	record.ID = uuid.New()

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	s.events.Publish(channel, constants.EventMessageCreated, s.View(&record))
	return &record, nil
}

// SendFile stores a chat attachment and the message carrying it in one
// all-or-nothing step; a metadata failure deletes the stored blob.
func (s *MessageService) SendFile(content io.Reader, declaredName, channel, senderName, senderAddr string) (*models.Message, error) {
	sanitized := utils.SanitizeFilename(declaredName)
	if sanitized == "" {
		return nil, pkgErrors.BadRequestError("INVALID_FILE", "Invalid file name")
	}
	if channel == "" {
		channel = constants.DefaultChannel
	}
	if senderName == "" {
		senderName = constants.DefaultActorName
	}

	storageName := utils.NewStorageName(sanitized)
	path, size, err := s.store.Save(content, storageName)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	fileKind := constants.KindForExtension(utils.GetFileExtension(declaredName))
	kind := constants.MessageFile
	if fileKind == constants.KindImage {
		kind = constants.MessageImage
	}

	record := models.Message{
		Content:    declaredName,
		SenderName: senderName,
		SenderAddr: senderAddr,
		Channel:    channel,
		Kind:       kind,
		FileName:   declaredName,
		FilePath:   path,
		FileStore:  storageName,
		FileSize:   size,
		FileKind:   fileKind,
		Status:     constants.StatusActive,
	}
	record.ID = uuid.New()

	if err := s.db.Create(&record).Error; err != nil {
		s.store.Remove(path, storageName)
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	s.events.Publish(channel, constants.EventMessageCreated, s.View(&record))
	return &record, nil
}

// Get returns a live message by id.
func (s *MessageService) Get(id uuid.UUID) (*models.Message, error) {
	var record models.Message
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

// Attachment returns a live message that carries a chat-only blob.
func (s *MessageService) Attachment(id uuid.UUID) (*models.Message, error) {
	record, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !record.HasAttachment() {
		return nil, ErrNotFound
	}
	return record, nil
}

// Delete soft-deletes a message and best-effort removes its attachment
// blob. A second delete of the same id reports not found and publishes
// nothing.
func (s *MessageService) Delete(id uuid.UUID) error {
	record, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.db.Model(record).Update("status", constants.StatusDeleted).Error; err != nil {
		return err
	}

	if record.HasAttachment() {
		s.store.Remove(record.FilePath, record.FileStore)
	}

	s.events.Publish(record.Channel, constants.EventMessageDeleted, map[string]interface{}{
		"message_id": record.ID.String(),
	})
	return nil
}

// View builds the derived wire representation of a message.
func (s *MessageService) View(record *models.Message) MessageView {
	view := MessageView{
		ID:          record.ID.String(),
		Content:     record.Content,
		SenderName:  record.SenderName,
		SendTime:    record.CreatedAt.UnixMilli(),
		MessageType: record.Kind,
	}
	if record.FileID != nil {
		view.FileID = record.FileID.String()
	}
	if record.HasAttachment() {
		view.FileName = record.FileName
		view.FileSize = record.FileSize
		view.FileType = record.FileKind
		view.FileURL = fmt.Sprintf("/api/v1/messages/%s/file/download", record.ID)
		if constants.PreviewableKind(record.FileKind) {
			view.PreviewURL = fmt.Sprintf("/api/v1/messages/%s/file/preview", record.ID)
		}
	}
	return view
}

// Store exposes the blob store for delivery handlers.
func (s *MessageService) Store() *storage.BlobStore {
	return s.store
}
