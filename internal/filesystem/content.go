package filesystem

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"fs-resource-server/internal/errors"
)

// Content is the result of reading a whole file.
type Content struct {
	Body      string
	MediaType string
	Binary    bool
}

// ReadContent reads the entire regular file at path. Text is returned as
// UTF-8 with invalid sequences replaced by U+FFFD; binary content is base64.
// maxBytes <= 0 means no limit.
func (fs *DefaultFileSystemAdapter) ReadContent(path string, maxBytes int64) (*Content, error) {
	fs.logger.Debug("reading file content", zap.String("path", path), zap.Int64("max_bytes", maxBytes))

	info, err := os.Stat(path)
	if err != nil {
		return nil, classify(err, path, "File does not exist")
	}
	if info.IsDir() {
		return nil, errors.NewFileError(errors.KindNotAFile, path,
			fmt.Sprintf("Cannot read content of a directory: %s", path), nil)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.NewFileError(errors.KindNotAFile, path,
			fmt.Sprintf("Not a regular file: %s", path), nil)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, errors.NewFileError(errors.KindTooLarge, path,
			fmt.Sprintf("File size %d exceeds limit of %d bytes: %s", info.Size(), maxBytes, path), nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, errors.NewFileError(errors.KindUnreadable, path,
				fmt.Sprintf("File is not readable: %s", path), err)
		}
		return nil, classify(err, path, "File does not exist")
	}

	if IsBinary(data) {
		fs.logger.Debug("file contains null bytes, encoding as base64", zap.String("path", path))
		return &Content{
			Body:      base64.StdEncoding.EncodeToString(data),
			MediaType: BinaryMediaType,
			Binary:    true,
		}, nil
	}

	return &Content{
		Body:      strings.ToValidUTF8(string(data), "\uFFFD"),
		MediaType: MimeTypeFor(path),
	}, nil
}
