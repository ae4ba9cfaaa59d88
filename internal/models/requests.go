package models

// ListFilesRequest holds the arguments of the list_files tool.
type ListFilesRequest struct {
	// Path is the directory to enumerate.
	Path string `json:"path"`
	// Recursive includes the directory itself and every descendant when true.
	Recursive bool `json:"recursive,omitempty"`
}

// PathRequest holds the arguments of get_file_metadata and get_file_content.
type PathRequest struct {
	Path string `json:"path"`
}
