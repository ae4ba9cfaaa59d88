package models

// InitializeResponse is the result of the "initialize" method.
type InitializeResponse struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    Capabilities `json:"capabilities"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
}

// ServerInfo provides information about the server.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Capabilities defines the server's capabilities.
type Capabilities struct {
	Tools     ToolsCapabilities     `json:"tools"`
	Resources ResourcesCapabilities `json:"resources"`
}

// ToolsCapabilities is an empty object: "tools": {}
type ToolsCapabilities struct{}

// ResourcesCapabilities is an empty object: "resources": {}
type ResourcesCapabilities struct{}

// ToolsListResponse is the result of "tools/list".
type ToolsListResponse struct {
	Tools []ToolDefinition `json:"tools"`
}

// ToolDefinition describes a single tool available through the server.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema Schema          `json:"inputSchema"`
	Annotations ToolAnnotations `json:"annotations"`
}

// Schema represents a JSON schema.
type Schema map[string]interface{}

// ToolAnnotations provides hints about the tool's behavior.
type ToolAnnotations struct {
	ReadOnlyHint    bool `json:"readOnlyHint"`
	DestructiveHint bool `json:"destructiveHint"`
}

// ResourceTemplate describes one addressable family of resources.
type ResourceTemplate struct {
	URITemplate string `json:"uriTemplate"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceTemplatesListResponse is the result of "resources/templates/list".
type ResourceTemplatesListResponse struct {
	ResourceTemplates []ResourceTemplate `json:"resourceTemplates"`
}

// Resource is a fixed resource entry of "resources/list".
type Resource struct {
	URI      string `json:"uri"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType,omitempty"`
}

// ResourcesListResponse is the result of "resources/list".
type ResourcesListResponse struct {
	Resources []Resource `json:"resources"`
}
