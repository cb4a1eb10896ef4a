package services

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"lanshare/internal/storage"
	"lanshare/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// DeliveryOptions control how a blob is written to the response.
type DeliveryOptions struct {
	DisplayName string
	Attachment  bool
	ETag        string
	Modified    time.Time
}

// ServeBlob streams a stored blob through the response. A parseable
// Range header yields a 206 with exactly the requested span, seeking
// the file before reading; anything else is a full 200 body with
// conditional caching validators. The metadata lookup has already
// completed by the time this runs, so no transaction is held open
// while bytes move.
func ServeBlob(c *fiber.Ctx, store *storage.BlobStore, storagePath, storageName string, opts DeliveryOptions) error {
	file, stat, err := store.Open(storagePath, storageName)
	if err != nil {
		return err
	}
	size := stat.Size()

	c.Set(fiber.HeaderContentType, utils.ContentTypeFor(opts.DisplayName))
	c.Set(fiber.HeaderAcceptRanges, "bytes")
	if opts.Attachment {
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s"`, opts.DisplayName))
	}

	if rng, ok := ParseRange(c.Get(fiber.HeaderRange), size); ok {
		if _, err := file.Seek(rng.Start, io.SeekStart); err != nil {
			file.Close()
			return err
		}
		c.Set(fiber.HeaderContentRange,
			fmt.Sprintf("bytes %d-%d/%d", rng.Start, rng.End, size))
		c.Status(fiber.StatusPartialContent)
		return c.SendStream(&spanReader{file: file, remaining: rng.Length()}, int(rng.Length()))
	}

	modified := opts.Modified
	if modified.IsZero() {
		modified = stat.ModTime()
	}
	if opts.ETag != "" {
		c.Set(fiber.HeaderETag, opts.ETag)
	}
	c.Set(fiber.HeaderLastModified, modified.UTC().Format(http.TimeFormat))

	if opts.ETag != "" && c.Get(fiber.HeaderIfNoneMatch) == opts.ETag {
		file.Close()
		return c.SendStatus(fiber.StatusNotModified)
	}

	return c.SendStream(file, int(size))
}

// BlobETag derives a weak validator from the record id and blob size.
func BlobETag(id string, size int64) string {
	return fmt.Sprintf(`"%s-%d"`, id, size)
}

// spanReader reads at most remaining bytes from an already-seeked file
// and closes it when the response body has been consumed.
type spanReader struct {
	file      *os.File
	remaining int64
}

func (r *spanReader) Read(p []byte) (int, error) {
	if r.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > r.remaining {
		p = p[:r.remaining]
	}
	n, err := r.file.Read(p)
	r.remaining -= int64(n)
	if err == nil && r.remaining == 0 {
		err = io.EOF
	}
	return n, err
}

func (r *spanReader) Close() error {
	return r.file.Close()
}
