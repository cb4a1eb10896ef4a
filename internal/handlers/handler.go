package handlers

import (
	"errors"

	"lanshare/internal/services"
	"lanshare/internal/storage"

	"github.com/gofiber/fiber/v2"
	pkgErrors "github.com/kerimovok/go-pkg-utils/errors"
	"github.com/kerimovok/go-pkg-utils/httpx"
)

// sendServiceError maps service errors onto the response envelope.
// Sentinels are matched by identity first, then the structured status
// decides; anything else is an internal error with the fallback text.
func sendServiceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrUnsupportedPreview):
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
			"success": false,
			"message": "File type does not support inline preview",
		})
	case errors.Is(err, services.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		response := httpx.NotFound("Not found")
		return httpx.SendResponse(c, response)
	}

	var appErr *pkgErrors.Error
	if errors.As(err, &appErr) {
		switch appErr.HTTPStatus {
		case fiber.StatusBadRequest:
			response := httpx.BadRequest(appErr.Message, err)
			return httpx.SendResponse(c, response)
		case fiber.StatusNotFound:
			response := httpx.NotFound(appErr.Message)
			return httpx.SendResponse(c, response)
		}
	}

	response := httpx.InternalServerError(fallback, err)
	return httpx.SendResponse(c, response)
}
