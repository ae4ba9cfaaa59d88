package errors

import (
	stdErrors "errors"
	"net/http"
)

// Kind classifies why a file operation failed.
type Kind int

const (
	// KindIO is an unexpected operating system failure.
	KindIO Kind = iota
	// KindInvalidAddress is a resource URI missing its scheme prefix.
	KindInvalidAddress
	// KindNotFound means the path does not exist.
	KindNotFound
	// KindNotAFile means a regular file was required but a directory was given.
	KindNotAFile
	// KindNotADirectory means a directory was required.
	KindNotADirectory
	// KindUnreadable means permission to read was denied.
	KindUnreadable
	// KindTooLarge means the file exceeds the configured read limit.
	KindTooLarge
)

var kindNames = map[Kind]string{
	KindIO:             "io_error",
	KindInvalidAddress: "invalid_address",
	KindNotFound:       "not_found",
	KindNotAFile:       "not_a_file",
	KindNotADirectory:  "not_a_directory",
	KindUnreadable:     "unreadable",
	KindTooLarge:       "too_large",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindIO]
}

// KindFromString is the inverse of Kind.String. Unknown names map to KindIO.
func KindFromString(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return KindIO
}

// HTTPStatus returns the REST status code used for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidAddress, KindNotAFile, KindNotADirectory:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnreadable:
		return http.StatusForbidden
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// FileError is the error type returned at every filesystem component
// boundary. Callers switch on Kind (or use errors.Is with the sentinels).
type FileError struct {
	Kind    Kind
	Path    string
	Message string
	Err     error
}

func (e *FileError) Error() string {
	return e.Message
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Is matches any FileError of the same kind when the target is a sentinel
// (a FileError with an empty Path).
func (e *FileError) Is(target error) bool {
	t, ok := target.(*FileError)
	if !ok {
		return false
	}
	return t.Path == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrIO             = &FileError{Kind: KindIO, Message: "i/o error"}
	ErrInvalidAddress = &FileError{Kind: KindInvalidAddress, Message: "invalid address"}
	ErrNotFound       = &FileError{Kind: KindNotFound, Message: "not found"}
	ErrNotAFile       = &FileError{Kind: KindNotAFile, Message: "not a file"}
	ErrNotADirectory  = &FileError{Kind: KindNotADirectory, Message: "not a directory"}
	ErrUnreadable     = &FileError{Kind: KindUnreadable, Message: "unreadable"}
	ErrTooLarge       = &FileError{Kind: KindTooLarge, Message: "too large"}
)

// NewFileError builds a FileError for path.
func NewFileError(kind Kind, path, message string, cause error) *FileError {
	return &FileError{Kind: kind, Path: path, Message: message, Err: cause}
}

// KindOf extracts the Kind of err. Errors that are not FileErrors are KindIO.
func KindOf(err error) Kind {
	var fe *FileError
	if stdErrors.As(err, &fe) {
		return fe.Kind
	}
	return KindIO
}
