package filesystem

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"fs-resource-server/internal/errors"
	"fs-resource-server/internal/logging"
	"fs-resource-server/internal/models"
)

// FileSystemAdapter defines the read-only filesystem queries the service layer depends on.
// This allows the service to be tested against a mock.
type FileSystemAdapter interface {
	Inspect(path string) (*models.FileMetadata, error)
	ReadContent(path string, maxBytes int64) (*Content, error)
	Walk(path string, recursive bool) ([]models.FileMetadata, error)
}

// DefaultFileSystemAdapter is the standard implementation of FileSystemAdapter using the os package.
// It keeps no state besides its logger; every call reads the filesystem afresh.
type DefaultFileSystemAdapter struct {
	logger *zap.Logger
}

// NewDefaultFileSystemAdapter creates a new DefaultFileSystemAdapter. A nil logger disables logging.
func NewDefaultFileSystemAdapter(logger *zap.Logger) *DefaultFileSystemAdapter {
	return &DefaultFileSystemAdapter{logger: logging.OrNop(logger)}
}

// Ensure DefaultFileSystemAdapter implements FileSystemAdapter
var _ FileSystemAdapter = (*DefaultFileSystemAdapter)(nil)

// classify converts an os error for path into a *errors.FileError. notFound is the
// message prefix used when the path is missing.
func classify(err error, path, notFound string) error {
	switch {
	case os.IsNotExist(err):
		return errors.NewFileError(errors.KindNotFound, path, fmt.Sprintf("%s: %s", notFound, path), err)
	case os.IsPermission(err):
		return errors.NewFileError(errors.KindUnreadable, path, fmt.Sprintf("Permission denied: %s", path), err)
	default:
		return errors.NewFileError(errors.KindIO, path, fmt.Sprintf("I/O error on %s: %v", path, err), err)
	}
}
