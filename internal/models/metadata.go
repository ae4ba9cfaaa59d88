package models

import "time"

// FileMetadata describes one filesystem entry. It is built fresh for every
// request and never modified after it is returned.
type FileMetadata struct {
	// Name is the final path segment.
	Name string `json:"name"`
	// Path is the path as supplied by the caller, uncleaned (or joined from it during a walk).
	Path string `json:"path"`
	// Size is in bytes and only meaningful for regular files.
	Size uint64 `json:"size"`
	// LastModified and CreationTime are nil when the platform cannot report them.
	LastModified *time.Time `json:"lastModified"`
	CreationTime *time.Time `json:"creationTime"`

	IsDirectory    bool `json:"isDirectory"`
	IsRegularFile  bool `json:"isRegularFile"`
	IsSymbolicLink bool `json:"isSymbolicLink"`
	IsHidden       bool `json:"isHidden"`
	IsReadable     bool `json:"isReadable"`
	IsWritable     bool `json:"isWritable"`
	IsExecutable   bool `json:"isExecutable"`
}
