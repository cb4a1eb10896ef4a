package services

import (
	"errors"
	"net/http"

	pkgErrors "github.com/kerimovok/go-pkg-utils/errors"
)

// Sentinel errors the handlers translate into HTTP statuses. Both are
// structured errors; handlers match them by identity before consulting
// the embedded status.
var (
	// ErrNotFound covers unknown ids, soft-deleted records and blobs
	// missing from disk.
	ErrNotFound = pkgErrors.NotFoundError("NOT_FOUND", "Not found")

	// ErrUnsupportedPreview is returned when a non image/video/audio
	// file is requested for inline preview.
	ErrUnsupportedPreview = pkgErrors.BadRequestError("UNSUPPORTED_PREVIEW", "File type does not support inline preview")
)

// IsValidation reports whether err is a client input error.
func IsValidation(err error) bool {
	var appErr *pkgErrors.Error
	return errors.As(err, &appErr) && appErr.HTTPStatus == http.StatusBadRequest
}
