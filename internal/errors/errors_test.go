package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileError_Is(t *testing.T) {
	err := NewFileError(KindNotFound, "/tmp/x", "File does not exist: /tmp/x", os.ErrNotExist)

	assert.True(t, stdErrors.Is(err, ErrNotFound))
	assert.False(t, stdErrors.Is(err, ErrNotADirectory))
	assert.True(t, stdErrors.Is(err, os.ErrNotExist), "cause stays reachable")
	assert.Equal(t, "File does not exist: /tmp/x", err.Error())

	wrapped := fmt.Errorf("walk failed: %w", err)
	assert.True(t, stdErrors.Is(wrapped, ErrNotFound))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, KindIO, KindOf(fmt.Errorf("boom")))
	assert.Equal(t, KindIO, KindOf(nil))
}

func TestKind_StringRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindIO, KindInvalidAddress, KindNotFound, KindNotAFile, KindNotADirectory, KindUnreadable, KindTooLarge} {
		assert.Equal(t, k, KindFromString(k.String()))
	}
	assert.Equal(t, KindIO, KindFromString("bogus"))
}

func TestKind_HTTPStatus(t *testing.T) {
	tests := map[Kind]int{
		KindInvalidAddress: http.StatusBadRequest,
		KindNotAFile:       http.StatusBadRequest,
		KindNotADirectory:  http.StatusBadRequest,
		KindNotFound:       http.StatusNotFound,
		KindUnreadable:     http.StatusForbidden,
		KindTooLarge:       http.StatusRequestEntityTooLarge,
		KindIO:             http.StatusInternalServerError,
	}
	for kind, want := range tests {
		assert.Equal(t, want, kind.HTTPStatus(), kind.String())
	}
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	notFound := NewFileSystemError("/x", "get_file_metadata", "File does not exist: /x",
		NewFileError(KindNotFound, "/x", "File does not exist: /x", nil))

	assert.Equal(t, http.StatusNotFound, MapErrorToHTTPStatus(notFound))
	assert.Equal(t, http.StatusBadRequest, MapErrorToHTTPStatus(NewInvalidParamsError("Missing required argument: path", "list_files")))
	assert.Equal(t, http.StatusBadRequest, MapErrorToHTTPStatus(NewParseError("bad")))
	assert.Equal(t, http.StatusNotFound, MapErrorToHTTPStatus(NewMethodNotFoundError("nope")))
	assert.Equal(t, http.StatusInternalServerError, MapErrorToHTTPStatus(NewInternalError("x")))
	assert.Equal(t, http.StatusInternalServerError, MapErrorToHTTPStatus(nil))
}

func TestNewFileSystemError(t *testing.T) {
	cause := NewFileError(KindNotADirectory, "/etc/hosts", "Not a directory: /etc/hosts", nil)
	detail := NewFileSystemError("/etc/hosts", "list_files", cause.Error(), cause)

	assert.Equal(t, CodeFileSystemError, detail.Code)
	assert.Equal(t, "Not a directory: /etc/hosts", detail.Message)
	data, ok := detail.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "not_a_directory", data["type"])
	assert.Equal(t, "list_files", data["operation"])
}

func TestToJSONRPCError(t *testing.T) {
	detail := NewFileSystemError("/x", "get_file_content", "File does not exist: /x", nil)
	rpcErr := ToJSONRPCError(detail)

	require.NotNil(t, rpcErr)
	assert.Equal(t, CodeFileSystemError, rpcErr.Code)
	require.NotNil(t, rpcErr.Data)
	assert.Equal(t, "/x", rpcErr.Data.Path)
	assert.Equal(t, "get_file_content", rpcErr.Data.Operation)
	assert.Equal(t, "io_error", rpcErr.Data.Type)
	assert.NotEmpty(t, rpcErr.Data.Timestamp)

	assert.Nil(t, ToJSONRPCError(nil))
}

func TestWithContext(t *testing.T) {
	detail := NewInvalidParamsError("Missing required argument: path", "list_files")
	got := WithContext(detail, "Error listing files")

	assert.Equal(t, "Error listing files: Missing required argument: path", got.Message)
	assert.Equal(t, "Missing required argument: path", detail.Message, "original is not modified")
	assert.Nil(t, WithContext(nil, "ctx"))
}
