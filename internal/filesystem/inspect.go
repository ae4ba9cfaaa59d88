package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"fs-resource-server/internal/models"
)

// attrs is the result of a single attribute read. Type flags and times
// describe the symlink target.
type attrs struct {
	size      uint64
	modTime   *time.Time
	birthTime *time.Time
	isDir     bool
	isRegular bool
}

// Inspect builds a fresh metadata record for path. It follows symbolic links
// for everything except the isSymbolicLink flag.
func (fs *DefaultFileSystemAdapter) Inspect(path string) (*models.FileMetadata, error) {
	fs.logger.Debug("inspecting path", zap.String("path", path))

	a, err := statPath(path)
	if err != nil {
		return nil, classify(err, path, "File does not exist")
	}

	meta := &models.FileMetadata{
		Name:          filepath.Base(path),
		Path:          path,
		Size:          a.size,
		LastModified:  a.modTime,
		CreationTime:  a.birthTime,
		IsDirectory:   a.isDir,
		IsRegularFile: a.isRegular,
	}

	if li, err := os.Lstat(path); err == nil {
		meta.IsSymbolicLink = li.Mode()&os.ModeSymlink != 0
	}

	hidden, err := isHidden(path)
	if err != nil {
		fs.logger.Warn("failed to determine if file is hidden", zap.String("path", path), zap.Error(err))
		hidden = false
	}
	meta.IsHidden = hidden

	meta.IsReadable = canAccess(path, accessRead)
	meta.IsWritable = canAccess(path, accessWrite)
	meta.IsExecutable = canAccess(path, accessExecute)

	return meta, nil
}

// isHidden reports whether the final path element is a dot file.
func isHidden(path string) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(filepath.Base(abs), "."), nil
}

func utcTime(sec, nsec int64) *time.Time {
	t := time.Unix(sec, nsec).UTC()
	return &t
}

// statPortable is the os.Stat fallback. It has no birth time.
func statPortable(path string) (*attrs, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	mt := info.ModTime()
	size := info.Size()
	if size < 0 {
		size = 0
	}
	return &attrs{
		size:      uint64(size),
		modTime:   utcTime(mt.Unix(), int64(mt.Nanosecond())),
		isDir:     info.IsDir(),
		isRegular: info.Mode().IsRegular(),
	}, nil
}
