package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/config"
)

var (
	// ErrNotArchived is returned by Download when archiving is disabled.
	ErrNotArchived = errors.New("upload archive disabled")
	// ErrNotFound is returned by Download for a key the archive does not hold.
	ErrNotFound = errors.New("archived upload not found")
)

// Storage archives the raw uploads of a session.
type Storage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// New returns the S3 archive when ARCHIVE_UPLOADS is on and a no-op archive otherwise.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	if !cfg.ArchiveUploads {
		return NewNoopStorage(), nil
	}
	return NewS3Storage(ctx, cfg)
}

// Key builds the object key for an upload: uploads/<session>/<kind>/<file name>.
func Key(sessionID, kind, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	return fmt.Sprintf("uploads/%s/%s/%s", sessionID, kind, name)
}

type noopStorage struct{}

func NewNoopStorage() Storage {
	return noopStorage{}
}

func (noopStorage) Upload(context.Context, string, []byte, string) error { return nil }

func (noopStorage) Download(context.Context, string) ([]byte, error) { return nil, ErrNotArchived }

func (noopStorage) Delete(context.Context, string) error { return nil }
