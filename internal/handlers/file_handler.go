package handlers

import (
	"lanshare/internal/constants"
	"lanshare/internal/models"
	"lanshare/internal/requests"
	"lanshare/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kerimovok/go-pkg-utils/httpx"
)

// FileHandler handles shared-file HTTP requests
type FileHandler struct {
	files *services.FileService
}

// NewFileHandler creates a new file handler
func NewFileHandler(files *services.FileService) *FileHandler {
	return &FileHandler{files: files}
}

// ListFiles returns the live files of a channel with remaining-time fields
func (h *FileHandler) ListFiles(c *fiber.Ctx) error {
	channel := c.Query("channel", constants.DefaultChannel)

	views, err := h.files.List(channel)
	if err != nil {
		return sendServiceError(c, err, "Failed to fetch files")
	}

	response := httpx.OK("Files retrieved successfully", fiber.Map{"files": views})
	return httpx.SendResponse(c, response)
}

// UploadFile handles file upload requests
func (h *FileHandler) UploadFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		response := httpx.BadRequest("No file provided", err)
		return httpx.SendResponse(c, response)
	}

	if err := h.files.ValidateUpload(file.Filename, file.Size); err != nil {
		return sendServiceError(c, err, "File validation failed")
	}

	src, err := file.Open()
	if err != nil {
		response := httpx.InternalServerError("Failed to read upload", err)
		return httpx.SendResponse(c, response)
	}
	defer src.Close()

	record, err := h.files.Ingest(
		src,
		file.Filename,
		c.FormValue("channel", constants.DefaultChannel),
		c.FormValue("uploader_name", constants.DefaultActorName),
		c.IP(),
	)
	if err != nil {
		return sendServiceError(c, err, "Failed to process file upload")
	}

	response := httpx.OK("File uploaded successfully", fiber.Map{
		"file_id":   record.ID.String(),
		"filename":  record.DisplayName,
		"file_size": record.SizeBytes,
	})
	return httpx.SendResponse(c, response)
}

// DownloadFile streams the complete blob as an attachment
func (h *FileHandler) DownloadFile(c *fiber.Ctx) error {
	record, err := h.recordFromParams(c)
	if err != nil {
		return sendServiceError(c, err, "Failed to fetch file")
	}

	err = services.ServeBlob(c, h.files.Store(), record.StoragePath, record.StorageName, services.DeliveryOptions{
		DisplayName: record.DisplayName,
		Attachment:  true,
		ETag:        services.BlobETag(record.ID.String(), record.SizeBytes),
		Modified:    record.CreatedAt,
	})
	if err != nil {
		return sendServiceError(c, err, "Failed to stream file")
	}
	return nil
}

// PreviewFile streams the blob inline for media playback. Only image,
// video and audio kinds qualify; Range requests seek within the blob.
func (h *FileHandler) PreviewFile(c *fiber.Ctx) error {
	record, err := h.recordFromParams(c)
	if err != nil {
		return sendServiceError(c, err, "Failed to fetch file")
	}

	if !constants.PreviewableKind(record.Kind) {
		return sendServiceError(c, services.ErrUnsupportedPreview, "")
	}

	err = services.ServeBlob(c, h.files.Store(), record.StoragePath, record.StorageName, services.DeliveryOptions{
		DisplayName: record.DisplayName,
		ETag:        services.BlobETag(record.ID.String(), record.SizeBytes),
		Modified:    record.CreatedAt,
	})
	if err != nil {
		return sendServiceError(c, err, "Failed to stream file")
	}
	return nil
}

// ExtendFile pushes a file's expiry forward by the requested days
func (h *FileHandler) ExtendFile(c *fiber.Ctx) error {
	fileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		response := httpx.BadRequest("Invalid file ID", err)
		return httpx.SendResponse(c, response)
	}

	input := requests.ExtendFileRequest{Days: constants.DefaultExtendDays}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			response := httpx.BadRequest("Invalid request body", err)
			return httpx.SendResponse(c, response)
		}
	}

	record, err := h.files.Extend(fileID, input.Days)
	if err != nil {
		return sendServiceError(c, err, "Failed to extend file expiry")
	}

	view := h.files.View(record)
	response := httpx.OK("File expiry extended successfully", fiber.Map{
		"file_id":        record.ID.String(),
		"expire_time":    view.ExpireTime,
		"remaining_text": view.RemainingText,
	})
	return httpx.SendResponse(c, response)
}

// DeleteFile soft-deletes a record and reclaims its blob best-effort
func (h *FileHandler) DeleteFile(c *fiber.Ctx) error {
	fileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		response := httpx.BadRequest("Invalid file ID", err)
		return httpx.SendResponse(c, response)
	}

	if err := h.files.Delete(fileID); err != nil {
		return sendServiceError(c, err, "Failed to delete file")
	}

	response := httpx.OK("File deleted successfully", nil)
	return httpx.SendResponse(c, response)
}

func (h *FileHandler) recordFromParams(c *fiber.Ctx) (*models.FileRecord, error) {
	fileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, services.ErrNotFound
	}
	return h.files.Get(fileID)
}
