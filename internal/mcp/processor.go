package mcp

import (
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"fs-resource-server/internal/errors"
	"fs-resource-server/internal/logging"
	"fs-resource-server/internal/metrics"
	"fs-resource-server/internal/models"
	"fs-resource-server/internal/service"
	"fs-resource-server/internal/uri"
)

// Operation-level messages prefixed to every failure.
const (
	msgListFiles        = "Error listing files"
	msgGetFileMetadata  = "Error getting file metadata"
	msgGetFileContent   = "Error reading file content"
	msgDirectoryListing = "Error handling directory listing request"
	msgFileMetadata     = "Error handling file metadata request"
	msgFileContent      = "Error handling file content request"
	msgResourceRead     = "Error handling resource request"
)

// ToolCallParams represents the parameters for a tool call.
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// MCPProcessor handles MCP (Model Context Protocol) requests.
type MCPProcessor struct {
	service service.FileQueryService
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewMCPProcessor creates a new MCPProcessor. m and logger may be nil.
func NewMCPProcessor(svc service.FileQueryService, m *metrics.Metrics, logger *zap.Logger) *MCPProcessor {
	return &MCPProcessor{
		service: svc,
		metrics: m,
		logger:  logging.OrNop(logger),
	}
}

// ProcessRequest handles a JSON-RPC request and returns its result or a JSONRPCError.
// Notifications return (nil, nil); callers must not send a response for them.
func (p *MCPProcessor) ProcessRequest(req models.JSONRPCRequest) (interface{}, *models.JSONRPCError) {
	start := time.Now()
	result, rpcErr := p.dispatch(req)

	failed := rpcErr != nil
	if tr, ok := result.(*models.MCPToolResult); ok && tr.IsError {
		failed = true
	}
	p.metrics.ObserveRequest(methodLabel(req.Method), metrics.Outcome(failed), time.Since(start))

	if rpcErr != nil {
		p.logger.Error("request failed",
			zap.String("method", req.Method),
			zap.Any("id", req.ID),
			zap.Int("code", rpcErr.Code),
			zap.String("message", rpcErr.Message),
		)
	} else {
		p.logger.Debug("request handled", zap.String("method", req.Method), zap.Any("id", req.ID))
	}
	return result, rpcErr
}

func (p *MCPProcessor) dispatch(req models.JSONRPCRequest) (interface{}, *models.JSONRPCError) {
	if req.JSONRPC != models.JSONRPCVersion {
		return nil, errors.ToJSONRPCError(errors.NewInvalidRequestError("jsonrpc must be \"2.0\""))
	}
	if req.Method == "" {
		return nil, errors.ToJSONRPCError(errors.NewInvalidRequestError("method is required"))
	}
	if strings.HasPrefix(req.Method, "notifications/") {
		return nil, nil
	}

	switch req.Method {
	case "initialize":
		return models.InitializeResponse{
			ProtocolVersion: ProtocolVersion,
			Capabilities:    models.Capabilities{},
			ServerInfo:      models.ServerInfo{Name: ServerName, Version: ServerVersion},
		}, nil
	case "ping":
		return struct{}{}, nil
	case "tools/list":
		return models.ToolsListResponse{Tools: toolDefinitions()}, nil
	case "tools/call":
		var params ToolCallParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, errors.ToJSONRPCError(errors.NewInvalidParamsError("Invalid parameters for tools/call: "+err.Error(), "tools/call"))
		}
		result, rpcErr := p.handleToolCall(params.Name, params.Arguments)
		if rpcErr != nil {
			return nil, rpcErr
		}
		return result, nil
	case "resources/list":
		return models.ResourcesListResponse{Resources: []models.Resource{}}, nil
	case "resources/templates/list":
		return models.ResourceTemplatesListResponse{ResourceTemplates: resourceTemplates()}, nil
	case "resources/read":
		var params models.ReadResourceParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, errors.ToJSONRPCError(errors.NewInvalidParamsError("Invalid parameters for resources/read: "+err.Error(), "resources/read"))
		}
		result, rpcErr := p.handleResourceRead(params.URI)
		if rpcErr != nil {
			return nil, rpcErr
		}
		return result, nil
	default:
		return nil, errors.ToJSONRPCError(errors.NewMethodNotFoundError(req.Method))
	}
}

// handleToolCall is a helper to dispatch tool calls based on name and arguments.
func (p *MCPProcessor) handleToolCall(toolName string, toolArgs json.RawMessage) (*models.MCPToolResult, *models.JSONRPCError) {
	if len(toolArgs) == 0 || string(toolArgs) == "null" {
		toolArgs = json.RawMessage("{}")
	}

	switch toolName {
	case service.OperationListFiles:
		var listParams models.ListFilesRequest
		if err := json.Unmarshal(toolArgs, &listParams); err != nil {
			return nil, invalidToolArgs(toolName, err)
		}
		env, serviceErr := p.service.ListFiles(listParams)
		return toolResult(env, serviceErr, msgListFiles), nil
	case service.OperationGetFileMetadata:
		var pathParams models.PathRequest
		if err := json.Unmarshal(toolArgs, &pathParams); err != nil {
			return nil, invalidToolArgs(toolName, err)
		}
		env, serviceErr := p.service.GetFileMetadata(pathParams)
		return toolResult(env, serviceErr, msgGetFileMetadata), nil
	case service.OperationGetFileContent:
		var pathParams models.PathRequest
		if err := json.Unmarshal(toolArgs, &pathParams); err != nil {
			return nil, invalidToolArgs(toolName, err)
		}
		env, serviceErr := p.service.GetFileContent(pathParams)
		return toolResult(env, serviceErr, msgGetFileContent), nil
	default:
		return toolResult(nil, nil, "Unknown tool: "+toolName), nil
	}
}

// handleResourceRead routes a resource URI by its scheme prefix.
func (p *MCPProcessor) handleResourceRead(rawURI string) (*models.ReadResourceResult, *models.JSONRPCError) {
	var (
		env        *models.Envelope
		serviceErr *models.ErrorDetail
		context    string
	)

	switch {
	case strings.HasPrefix(rawURI, uri.DirectoryPrefix):
		context = msgDirectoryListing
		path, recursive, err := uri.DecodeDirectory(rawURI)
		if err != nil {
			serviceErr = errors.NewFileSystemError(rawURI, "resources/read", err.Error(), err)
			break
		}
		env, serviceErr = p.service.ListFiles(models.ListFilesRequest{Path: path, Recursive: recursive})
	case strings.HasPrefix(rawURI, uri.MetadataPrefix):
		context = msgFileMetadata
		path, err := uri.Decode(rawURI, uri.MetadataPrefix)
		if err != nil {
			serviceErr = errors.NewFileSystemError(rawURI, "resources/read", err.Error(), err)
			break
		}
		env, serviceErr = p.service.GetFileMetadata(models.PathRequest{Path: path})
	case strings.HasPrefix(rawURI, uri.ContentPrefix):
		context = msgFileContent
		path, err := uri.Decode(rawURI, uri.ContentPrefix)
		if err != nil {
			serviceErr = errors.NewFileSystemError(rawURI, "resources/read", err.Error(), err)
			break
		}
		env, serviceErr = p.service.GetFileContent(models.PathRequest{Path: path})
	default:
		context = msgResourceRead
		err := errors.NewFileError(errors.KindInvalidAddress, rawURI, "Invalid URI format: "+rawURI, nil)
		serviceErr = errors.NewFileSystemError(rawURI, "resources/read", err.Error(), err)
	}

	if serviceErr != nil {
		return nil, errors.ToJSONRPCError(errors.WithContext(serviceErr, context))
	}

	return &models.ReadResourceResult{
		Contents: []models.ResourceContents{
			{URI: rawURI, MimeType: env.MediaType, Text: env.Body},
		},
	}, nil
}

// toolResult converts a service outcome into a CallToolResult. Failures are
// reported in-band with isError set, never as JSON-RPC errors.
func toolResult(env *models.Envelope, serviceErr *models.ErrorDetail, context string) *models.MCPToolResult {
	switch {
	case serviceErr != nil:
		env = models.ErrorEnvelope(errors.WithContext(serviceErr, context).Message)
	case env == nil:
		env = models.ErrorEnvelope(context)
	}
	return &models.MCPToolResult{
		Content: []models.MCPToolContent{{Type: "text", Text: env.Text()}},
		IsError: env.IsError,
	}
}

func invalidToolArgs(toolName string, err error) *models.JSONRPCError {
	return errors.ToJSONRPCError(errors.NewInvalidParamsError("Invalid parameters for "+toolName+": "+err.Error(), toolName))
}

// methodLabel bounds the cardinality of the method metric label.
func methodLabel(method string) string {
	switch method {
	case "initialize", "ping", "tools/list", "tools/call",
		"resources/list", "resources/templates/list", "resources/read":
		return method
	}
	if strings.HasPrefix(method, "notifications/") {
		return "notifications"
	}
	return "unknown"
}

// FailureContext returns the operation-level message prefixed to failures of
// the named tool.
func FailureContext(operation string) string {
	switch operation {
	case service.OperationListFiles:
		return msgListFiles
	case service.OperationGetFileMetadata:
		return msgGetFileMetadata
	case service.OperationGetFileContent:
		return msgGetFileContent
	}
	return "Error handling request"
}
