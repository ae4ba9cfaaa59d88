package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fs-resource-server/internal/config"
	"fs-resource-server/internal/errors"
	"fs-resource-server/internal/filesystem"
	"fs-resource-server/internal/metrics"
	"fs-resource-server/internal/models"
)

// --- Mock FileSystemAdapter ---
type mockFileSystemAdapter struct {
	InspectFunc     func(path string) (*models.FileMetadata, error)
	ReadContentFunc func(path string, maxBytes int64) (*filesystem.Content, error)
	WalkFunc        func(path string, recursive bool) ([]models.FileMetadata, error)
}

func (m *mockFileSystemAdapter) Inspect(path string) (*models.FileMetadata, error) {
	if m.InspectFunc != nil {
		return m.InspectFunc(path)
	}
	return nil, errors.NewFileError(errors.KindIO, path, "InspectFunc not set", nil)
}

func (m *mockFileSystemAdapter) ReadContent(path string, maxBytes int64) (*filesystem.Content, error) {
	if m.ReadContentFunc != nil {
		return m.ReadContentFunc(path, maxBytes)
	}
	return nil, errors.NewFileError(errors.KindIO, path, "ReadContentFunc not set", nil)
}

func (m *mockFileSystemAdapter) Walk(path string, recursive bool) ([]models.FileMetadata, error) {
	if m.WalkFunc != nil {
		return m.WalkFunc(path, recursive)
	}
	return nil, errors.NewFileError(errors.KindIO, path, "WalkFunc not set", nil)
}

func newTestService(t *testing.T, fs filesystem.FileSystemAdapter, maxFileSizeMB int) *DefaultFileQueryService {
	t.Helper()
	svc, err := NewDefaultFileQueryService(fs, &config.Config{MaxFileSizeMB: maxFileSizeMB}, metrics.New(), nil)
	require.NoError(t, err)
	return svc
}

func TestNewDefaultFileQueryService_RequiresDependencies(t *testing.T) {
	_, err := NewDefaultFileQueryService(&mockFileSystemAdapter{}, nil, nil, nil)
	assert.EqualError(t, err, "configuration is required")

	_, err = NewDefaultFileQueryService(nil, &config.Config{}, nil, nil)
	assert.EqualError(t, err, "filesystem adapter is required")
}

func TestListFiles(t *testing.T) {
	modified := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var gotPath string
	var gotRecursive bool
	fs := &mockFileSystemAdapter{
		WalkFunc: func(path string, recursive bool) ([]models.FileMetadata, error) {
			gotPath, gotRecursive = path, recursive
			return []models.FileMetadata{
				{Name: "a.txt", Path: "/data/a.txt", Size: 3, LastModified: &modified, IsRegularFile: true, IsReadable: true},
			}, nil
		},
	}
	svc := newTestService(t, fs, 0)

	env, errDetail := svc.ListFiles(models.ListFilesRequest{Path: "/data", Recursive: true})
	require.Nil(t, errDetail)
	assert.Equal(t, "/data", gotPath)
	assert.True(t, gotRecursive)
	assert.Equal(t, JSONMediaType, env.MediaType)
	assert.False(t, env.IsError)
	assert.Contains(t, env.Body, "\n  {\n    \"name\": \"a.txt\"", "pretty printed with two-space indent")

	var decoded []models.FileMetadata
	require.NoError(t, json.Unmarshal([]byte(env.Body), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "/data/a.txt", decoded[0].Path)
	assert.Nil(t, decoded[0].CreationTime)
}

func TestListFiles_EmptyDirectoryIsEmptyArray(t *testing.T) {
	fs := &mockFileSystemAdapter{
		WalkFunc: func(path string, recursive bool) ([]models.FileMetadata, error) { return nil, nil },
	}
	svc := newTestService(t, fs, 0)

	env, errDetail := svc.ListFiles(models.ListFilesRequest{Path: "/empty"})
	require.Nil(t, errDetail)
	assert.Equal(t, "[]", env.Body)
}

func TestListFiles_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType string
		wantMsg  string
	}{
		{"not found", errors.NewFileError(errors.KindNotFound, "/x", "Directory does not exist: /x", nil), "not_found", "Directory does not exist: /x"},
		{"not a directory", errors.NewFileError(errors.KindNotADirectory, "/x", "Not a directory: /x", nil), "not_a_directory", "Not a directory: /x"},
		{"unreadable", errors.NewFileError(errors.KindUnreadable, "/x", "Directory is not readable: /x", nil), "unreadable", "Directory is not readable: /x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &mockFileSystemAdapter{
				WalkFunc: func(path string, recursive bool) ([]models.FileMetadata, error) { return nil, tt.err },
			}
			svc := newTestService(t, fs, 0)

			env, errDetail := svc.ListFiles(models.ListFilesRequest{Path: "/x"})
			assert.Nil(t, env)
			require.NotNil(t, errDetail)
			assert.Equal(t, errors.CodeFileSystemError, errDetail.Code)
			assert.Equal(t, tt.wantMsg, errDetail.Message)
			data := errDetail.Data.(map[string]interface{})
			assert.Equal(t, tt.wantType, data["type"])
			assert.Equal(t, OperationListFiles, data["operation"])
		})
	}
}

func TestMissingPath(t *testing.T) {
	svc := newTestService(t, &mockFileSystemAdapter{}, 0)

	_, errDetail := svc.ListFiles(models.ListFilesRequest{})
	require.NotNil(t, errDetail)
	assert.Equal(t, errors.CodeInvalidParams, errDetail.Code)

	_, errDetail = svc.GetFileMetadata(models.PathRequest{})
	require.NotNil(t, errDetail)
	assert.Equal(t, errors.CodeInvalidParams, errDetail.Code)

	_, errDetail = svc.GetFileContent(models.PathRequest{})
	require.NotNil(t, errDetail)
	assert.Equal(t, errors.CodeInvalidParams, errDetail.Code)
}

func TestGetFileMetadata(t *testing.T) {
	fs := &mockFileSystemAdapter{
		InspectFunc: func(path string) (*models.FileMetadata, error) {
			return &models.FileMetadata{Name: "b.md", Path: path, Size: 10, IsRegularFile: true}, nil
		},
	}
	svc := newTestService(t, fs, 0)

	env, errDetail := svc.GetFileMetadata(models.PathRequest{Path: "/docs/b.md"})
	require.Nil(t, errDetail)
	assert.Equal(t, JSONMediaType, env.MediaType)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(env.Body), &raw))
	for _, key := range []string{"name", "path", "size", "lastModified", "creationTime", "isDirectory",
		"isRegularFile", "isSymbolicLink", "isHidden", "isReadable", "isWritable", "isExecutable"} {
		assert.Contains(t, raw, key)
	}
	assert.Len(t, raw, 12)
}

func TestGetFileContent(t *testing.T) {
	var gotLimit int64
	fs := &mockFileSystemAdapter{
		ReadContentFunc: func(path string, maxBytes int64) (*filesystem.Content, error) {
			gotLimit = maxBytes
			return &filesystem.Content{Body: "hello", MediaType: "text/markdown"}, nil
		},
	}
	svc := newTestService(t, fs, 2)

	env, errDetail := svc.GetFileContent(models.PathRequest{Path: "/r.md"})
	require.Nil(t, errDetail)
	assert.Equal(t, "hello", env.Body)
	assert.Equal(t, "text/markdown", env.MediaType)
	assert.Equal(t, int64(2*1024*1024), gotLimit)
}

func TestGetFileContent_NotAFile(t *testing.T) {
	fs := &mockFileSystemAdapter{
		ReadContentFunc: func(path string, maxBytes int64) (*filesystem.Content, error) {
			return nil, errors.NewFileError(errors.KindNotAFile, path, "Cannot read content of a directory: "+path, nil)
		},
	}
	svc := newTestService(t, fs, 0)

	_, errDetail := svc.GetFileContent(models.PathRequest{Path: "/tmp"})
	require.NotNil(t, errDetail)
	assert.Equal(t, "Cannot read content of a directory: /tmp", errDetail.Message)
}

// Exercises the real adapter end to end.
func TestService_WithDefaultAdapter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.bin"), []byte{0, 1, 2, 3, 4}, 0o644))

	svc := newTestService(t, filesystem.NewDefaultFileSystemAdapter(nil), 0)

	env, errDetail := svc.ListFiles(models.ListFilesRequest{Path: dir})
	require.Nil(t, errDetail)
	var shallow []models.FileMetadata
	require.NoError(t, json.Unmarshal([]byte(env.Body), &shallow))
	assert.Len(t, shallow, 2)

	env, errDetail = svc.ListFiles(models.ListFilesRequest{Path: dir, Recursive: true})
	require.Nil(t, errDetail)
	var deep []models.FileMetadata
	require.NoError(t, json.Unmarshal([]byte(env.Body), &deep))
	assert.Len(t, deep, 4)

	env, errDetail = svc.GetFileContent(models.PathRequest{Path: filepath.Join(dir, "sub", "b.bin")})
	require.Nil(t, errDetail)
	assert.Equal(t, "AAECAwQ=", env.Body)
	assert.Equal(t, filesystem.BinaryMediaType, env.MediaType)

	_, errDetail = svc.GetFileMetadata(models.PathRequest{Path: filepath.Join(dir, "missing")})
	require.NotNil(t, errDetail)
	assert.Equal(t, "File does not exist: "+filepath.Join(dir, "missing"), errDetail.Message)
}
