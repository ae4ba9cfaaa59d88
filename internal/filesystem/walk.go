package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"fs-resource-server/internal/errors"
	"fs-resource-server/internal/models"
)

// Walk lists the entries under the directory at path. Non-recursive walks
// return the immediate children only; recursive walks include path itself and
// every descendant. Order is unspecified. Entries that cannot be inspected
// (vanished, dangling links, permission problems) are dropped.
func (fs *DefaultFileSystemAdapter) Walk(path string, recursive bool) ([]models.FileMetadata, error) {
	fs.logger.Debug("listing directory", zap.String("path", path), zap.Bool("recursive", recursive))

	info, err := os.Stat(path)
	if err != nil {
		return nil, classify(err, path, "Directory does not exist")
	}
	if !info.IsDir() {
		return nil, errors.NewFileError(errors.KindNotADirectory, path,
			fmt.Sprintf("Not a directory: %s", path), nil)
	}
	if !canAccess(path, accessRead) {
		return nil, errors.NewFileError(errors.KindUnreadable, path,
			fmt.Sprintf("Directory is not readable: %s", path), nil)
	}

	var entries []models.FileMetadata
	if recursive {
		entries, err = fs.walkTree(path)
	} else {
		entries, err = fs.listChildren(path)
	}
	if err != nil {
		return nil, err
	}

	fs.logger.Debug("listed directory", zap.String("path", path), zap.Int("count", len(entries)))
	return entries, nil
}

func (fs *DefaultFileSystemAdapter) listChildren(dir string) ([]models.FileMetadata, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsPermission(err) {
			return nil, errors.NewFileError(errors.KindUnreadable, dir,
				fmt.Sprintf("Directory is not readable: %s", dir), err)
		}
		return nil, classify(err, dir, "Directory does not exist")
	}

	entries := make([]models.FileMetadata, 0, len(dirEntries))
	for _, de := range dirEntries {
		if meta, ok := fs.inspectEntry(filepath.Join(dir, de.Name())); ok {
			entries = append(entries, *meta)
		}
	}
	return entries, nil
}

func (fs *DefaultFileSystemAdapter) walkTree(root string) ([]models.FileMetadata, error) {
	rootMeta, err := fs.Inspect(root)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	entries := []models.FileMetadata{*rootMeta}
	// fastwalk reports the root in cleaned form ("dir/" becomes "dir").
	cleanRoot := filepath.Clean(root)

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			fs.logger.Warn("skipping unreadable entry", zap.String("path", p), zap.Error(err))
			return nil
		}
		if filepath.Clean(p) == cleanRoot {
			return nil
		}
		meta, ok := fs.inspectEntry(p)
		if !ok {
			return nil
		}
		mu.Lock()
		entries = append(entries, *meta)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, classify(err, root, "Directory does not exist")
	}
	return entries, nil
}

// inspectEntry inspects one walk entry, logging and dropping it on failure.
func (fs *DefaultFileSystemAdapter) inspectEntry(p string) (*models.FileMetadata, bool) {
	meta, err := fs.Inspect(p)
	if err != nil {
		fs.logger.Warn("failed to get metadata for entry", zap.String("path", p), zap.Error(err))
		return nil, false
	}
	return meta, true
}
