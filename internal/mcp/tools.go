package mcp

import (
	"fs-resource-server/internal/models"
	"fs-resource-server/internal/service"
	"fs-resource-server/internal/uri"
)

// Protocol constants reported by initialize.
const (
	ProtocolVersion = "2024-11-05"
	ServerName      = "filesystem-mcp-server"
	ServerVersion   = "1.0.0"
)

var readOnly = models.ToolAnnotations{ReadOnlyHint: true, DestructiveHint: false}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// toolDefinitions lists the tools in the order tools/list reports them.
func toolDefinitions() []models.ToolDefinition {
	return []models.ToolDefinition{
		{
			Name:        service.OperationListFiles,
			Description: "List files in a directory",
			InputSchema: models.Schema{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Directory path to list files from"),
					"recursive": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to list files recursively",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
			Annotations: readOnly,
		},
		{
			Name:        service.OperationGetFileMetadata,
			Description: "Get metadata for a file or directory",
			InputSchema: models.Schema{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Path to the file or directory"),
				},
				"required": []string{"path"},
			},
			Annotations: readOnly,
		},
		{
			Name:        service.OperationGetFileContent,
			Description: "Get content of a file",
			InputSchema: models.Schema{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Path to the file"),
				},
				"required": []string{"path"},
			},
			Annotations: readOnly,
		},
	}
}

func resourceTemplates() []models.ResourceTemplate {
	return []models.ResourceTemplate{
		{
			URITemplate: uri.MetadataPrefix + "{path}",
			Name:        "File Metadata",
			Description: "Metadata for a file or directory",
			MimeType:    service.JSONMediaType,
		},
		{
			URITemplate: uri.ContentPrefix + "{path}",
			Name:        "File Content",
			Description: "Content of a file, base64 encoded when binary",
		},
		{
			URITemplate: uri.DirectoryPrefix + "{path}{?recursive}",
			Name:        "Directory Listing",
			Description: "Entries of a directory, optionally recursive",
			MimeType:    service.JSONMediaType,
		},
	}
}
