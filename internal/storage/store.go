package storage

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"

	"lanshare/internal/config"
)

// ErrNotFound is returned when a blob cannot be located under its
// persisted path or the current storage root.
var ErrNotFound = errors.New("blob not found")

// BlobStore persists raw file bytes on the local filesystem. Records
// keep both the path written at ingest and the generated storage name;
// the name is enough to find the blob again after the root moved.
type BlobStore struct {
	root       string
	createDirs bool
	perm       os.FileMode
}

// NewBlobStore creates a blob store rooted at the configured upload dir.
func NewBlobStore(cfg config.StorageConfig) *BlobStore {
	perm := os.FileMode(0o644)
	if cfg.FilePermissions != "" {
		if parsed, err := parseFileMode(cfg.FilePermissions); err == nil {
			perm = parsed
		}
	}
	return &BlobStore{
		root:       cfg.UploadDir,
		createDirs: cfg.CreateDirs,
		perm:       perm,
	}
}

// Root returns the configured storage root.
func (s *BlobStore) Root() string {
	return s.root
}

// Save writes the blob under storageName and returns the absolute path
// and the number of bytes written.
func (s *BlobStore) Save(src io.Reader, storageName string) (string, int64, error) {
	if s.createDirs {
		if err := os.MkdirAll(s.root, 0o755); err != nil {
			return "", 0, err
		}
	}

	path, err := filepath.Abs(filepath.Join(s.root, storageName))
	if err != nil {
		return "", 0, err
	}

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, s.perm)
	if err != nil {
		return "", 0, err
	}

	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// Never leave a half-written blob behind.
		os.Remove(path)
		return "", 0, err
	}

	return path, size, nil
}

// Resolve locates a blob by its persisted path, falling back to the
// storage name under the current root when the path no longer exists.
func (s *BlobStore) Resolve(storagePath, storageName string) (string, error) {
	if storagePath != "" {
		path, err := filepath.Abs(storagePath)
		if err == nil {
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	if storageName != "" {
		path, err := filepath.Abs(filepath.Join(s.root, storageName))
		if err == nil {
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	return "", ErrNotFound
}

// Open resolves and opens a blob for reading.
func (s *BlobStore) Open(storagePath, storageName string) (*os.File, os.FileInfo, error) {
	path, err := s.Resolve(storagePath, storageName)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, ErrNotFound
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, err
	}

	return file, stat, nil
}

// Remove deletes blob bytes best-effort. An already-missing blob is not
// an error; failures are logged and never propagated.
func (s *BlobStore) Remove(storagePath, storageName string) {
	path, err := s.Resolve(storagePath, storageName)
	if err != nil {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Failed to delete blob %s: %v", path, err)
	}
}

func parseFileMode(s string) (os.FileMode, error) {
	var mode uint32
	for _, r := range s {
		if r < '0' || r > '7' {
			return 0, errors.New("invalid file mode")
		}
		mode = mode*8 + uint32(r-'0')
	}
	return os.FileMode(mode), nil
}
