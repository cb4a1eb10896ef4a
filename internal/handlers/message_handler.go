package handlers

import (
	"lanshare/internal/constants"
	"lanshare/internal/models"
	"lanshare/internal/requests"
	"lanshare/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kerimovok/go-pkg-utils/httpx"
	"github.com/kerimovok/go-pkg-utils/validator"
)

// MessageHandler handles chat HTTP requests
type MessageHandler struct {
	messages *services.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// ListMessages returns the live messages of a channel, oldest first
func (h *MessageHandler) ListMessages(c *fiber.Ctx) error {
	channel := c.Query("channel", constants.DefaultChannel)

	views, err := h.messages.List(channel)
	if err != nil {
		return sendServiceError(c, err, "Failed to fetch messages")
	}

	response := httpx.OK("Messages retrieved successfully", fiber.Map{"messages": views})
	return httpx.SendResponse(c, response)
}

// SendMessage persists a text message and fans it out
func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	var input requests.SendMessageRequest
	if err := c.BodyParser(&input); err != nil {
		response := httpx.BadRequest("Invalid request body", err)
		return httpx.SendResponse(c, response)
	}

	// Validate request
	if err := validator.ValidateStruct(&input); err != nil {
		response := httpx.BadRequest("Validation failed", err)
		return httpx.SendResponse(c, response)
	}

	var fileID *uuid.UUID
	if input.FileID != nil && *input.FileID != "" {
		parsed, err := uuid.Parse(*input.FileID)
		if err != nil {
			response := httpx.BadRequest("Invalid file ID", err)
			return httpx.SendResponse(c, response)
		}
		fileID = &parsed
	}

	record, err := h.messages.Send(services.SendInput{
		Content:    input.Content,
		Channel:    input.Channel,
		SenderName: input.SenderName,
		SenderAddr: c.IP(),
		Kind:       input.MessageType,
		FileID:     fileID,
	})
	if err != nil {
		return sendServiceError(c, err, "Failed to send message")
	}

	response := httpx.OK("Message sent successfully", fiber.Map{
		"message_id": record.ID.String(),
	})
	return httpx.SendResponse(c, response)
}

// SendFileMessage stores a chat attachment and the message carrying it
func (h *MessageHandler) SendFileMessage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		response := httpx.BadRequest("No file provided", err)
		return httpx.SendResponse(c, response)
	}

	src, err := file.Open()
	if err != nil {
		response := httpx.InternalServerError("Failed to read upload", err)
		return httpx.SendResponse(c, response)
	}
	defer src.Close()

	record, err := h.messages.SendFile(
		src,
		file.Filename,
		c.FormValue("channel", constants.DefaultChannel),
		c.FormValue("sender_name", constants.DefaultActorName),
		c.IP(),
	)
	if err != nil {
		return sendServiceError(c, err, "Failed to send file message")
	}

	response := httpx.OK("Message sent successfully", fiber.Map{
		"message_id": record.ID.String(),
		"file_name":  record.FileName,
		"file_size":  record.FileSize,
	})
	return httpx.SendResponse(c, response)
}

// DownloadMessageFile streams a chat attachment as an attachment body
func (h *MessageHandler) DownloadMessageFile(c *fiber.Ctx) error {
	record, err := h.attachmentFromParams(c)
	if err != nil {
		return sendServiceError(c, err, "Failed to fetch message")
	}

	err = services.ServeBlob(c, h.messages.Store(), record.FilePath, record.FileStore, services.DeliveryOptions{
		DisplayName: record.FileName,
		Attachment:  true,
		ETag:        services.BlobETag(record.ID.String(), record.FileSize),
		Modified:    record.CreatedAt,
	})
	if err != nil {
		return sendServiceError(c, err, "Failed to stream file")
	}
	return nil
}

// PreviewMessageFile streams a chat attachment inline for playback
func (h *MessageHandler) PreviewMessageFile(c *fiber.Ctx) error {
	record, err := h.attachmentFromParams(c)
	if err != nil {
		return sendServiceError(c, err, "Failed to fetch message")
	}

	if !constants.PreviewableKind(record.FileKind) {
		return sendServiceError(c, services.ErrUnsupportedPreview, "")
	}

	err = services.ServeBlob(c, h.messages.Store(), record.FilePath, record.FileStore, services.DeliveryOptions{
		DisplayName: record.FileName,
		ETag:        services.BlobETag(record.ID.String(), record.FileSize),
		Modified:    record.CreatedAt,
	})
	if err != nil {
		return sendServiceError(c, err, "Failed to stream file")
	}
	return nil
}

// DeleteMessage soft-deletes a message and reclaims any attachment
func (h *MessageHandler) DeleteMessage(c *fiber.Ctx) error {
	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		response := httpx.BadRequest("Invalid message ID", err)
		return httpx.SendResponse(c, response)
	}

	if err := h.messages.Delete(messageID); err != nil {
		return sendServiceError(c, err, "Failed to delete message")
	}

	response := httpx.OK("Message deleted successfully", nil)
	return httpx.SendResponse(c, response)
}

func (h *MessageHandler) attachmentFromParams(c *fiber.Ctx) (*models.Message, error) {
	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, services.ErrNotFound
	}
	return h.messages.Attachment(messageID)
}
