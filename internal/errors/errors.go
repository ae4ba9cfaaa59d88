package errors

import (
	"fmt"
	"net/http"
	"time"

	"fs-resource-server/internal/models"
)

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700 // Invalid JSON was received by the server.
	CodeInvalidRequest = -32600 // The JSON sent is not a valid Request object.
	CodeMethodNotFound = -32601 // The method does not exist / is not available.
	CodeInvalidParams  = -32602 // Invalid method parameter(s).
	CodeInternalError  = -32603 // Internal JSON-RPC error.
)

// Application Specific Error Codes
const (
	// CodeFileSystemError is used for every failed file operation surfaced as a
	// JSON-RPC error (resources/read). The kind is carried in the data.
	CodeFileSystemError = -32001
)

// --- Helper functions to create models.ErrorDetail ---

// NewErrorDetail creates a new ErrorDetail.
func NewErrorDetail(code int, message string, data interface{}) *models.ErrorDetail {
	return &models.ErrorDetail{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// NewParseError creates an ErrorDetail for JSON parsing errors.
// JSON-RPC: -32700
func NewParseError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeParseError, "Parse error", map[string]interface{}{"details": details})
}

// NewInvalidRequestError creates an ErrorDetail for invalid JSON-RPC Request objects.
// JSON-RPC: -32600
func NewInvalidRequestError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeInvalidRequest, "Invalid Request", map[string]interface{}{"details": details})
}

// NewMethodNotFoundError creates an ErrorDetail when a JSON-RPC method is not found.
// JSON-RPC: -32601
func NewMethodNotFoundError(methodName string) *models.ErrorDetail {
	return NewErrorDetail(CodeMethodNotFound, "Method not found: "+methodName, map[string]interface{}{"operation": methodName})
}

// NewInvalidParamsError creates an ErrorDetail for invalid method parameters.
// JSON-RPC: -32602
func NewInvalidParamsError(message string, operation string) *models.ErrorDetail {
	if message == "" {
		message = "Invalid params"
	}
	return NewErrorDetail(CodeInvalidParams, message, map[string]interface{}{
		"operation": operation,
		"details":   message,
	})
}

// NewInternalError creates an ErrorDetail for unexpected server errors.
// JSON-RPC: -32603
func NewInternalError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeInternalError, "Internal error", map[string]interface{}{"details": details})
}

// NewFileSystemError converts a failed file operation into an ErrorDetail.
// The message is the operation-level message already joined with the cause.
// App specific: -32001
func NewFileSystemError(path, operation, message string, err error) *models.ErrorDetail {
	return NewErrorDetail(CodeFileSystemError, message, map[string]interface{}{
		"path":      path,
		"operation": operation,
		"type":      KindOf(err).String(),
		"details":   errorText(err),
	})
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// --- Conversion to HTTP and JSON-RPC Error Structures ---

// ToErrorResponse converts an ErrorDetail to an HTTP models.ErrorResponse.
func ToErrorResponse(errDetail *models.ErrorDetail) *models.ErrorResponse {
	if errDetail == nil {
		return nil
	}
	return &models.ErrorResponse{Error: *errDetail}
}

// ToJSONRPCError converts an ErrorDetail to a models.JSONRPCError.
func ToJSONRPCError(errDetail *models.ErrorDetail) *models.JSONRPCError {
	if errDetail == nil {
		return nil
	}
	rpcErr := &models.JSONRPCError{
		Code:    errDetail.Code,
		Message: errDetail.Message,
	}
	dataMap, ok := errDetail.Data.(map[string]interface{})
	if !ok {
		if errDetail.Data != nil {
			rpcErr.Data = &models.JSONRPCErrorData{
				Details:   fmt.Sprintf("%v", errDetail.Data),
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			}
		}
		return rpcErr
	}
	data := &models.JSONRPCErrorData{Timestamp: time.Now().UTC().Format(time.RFC3339)}
	if val, ok := dataMap["path"].(string); ok {
		data.Path = val
	}
	if val, ok := dataMap["operation"].(string); ok {
		data.Operation = val
	}
	if val, ok := dataMap["type"].(string); ok {
		data.Type = val
	}
	if val, ok := dataMap["details"].(string); ok {
		data.Details = val
	}
	rpcErr.Data = data
	return rpcErr
}

// --- HTTP Status Mapping ---

// MapErrorToHTTPStatus maps an ErrorDetail to an HTTP status code. File
// system errors are resolved through the "type" recorded in their data.
func MapErrorToHTTPStatus(errDetail *models.ErrorDetail) int {
	if errDetail == nil {
		return http.StatusInternalServerError
	}
	switch errDetail.Code {
	case CodeParseError, CodeInvalidRequest, CodeInvalidParams:
		return http.StatusBadRequest
	case CodeMethodNotFound:
		return http.StatusNotFound
	case CodeInternalError:
		return http.StatusInternalServerError
	case CodeFileSystemError:
		dataMap, ok := errDetail.Data.(map[string]interface{})
		if !ok {
			return http.StatusInternalServerError
		}
		errorType, _ := dataMap["type"].(string)
		return KindFromString(errorType).HTTPStatus()
	default:
		return http.StatusInternalServerError
	}
}

// WithContext returns a copy of errDetail whose message is prefixed by the
// operation-level message, as "<context>: <message>".
func WithContext(errDetail *models.ErrorDetail, context string) *models.ErrorDetail {
	if errDetail == nil {
		return nil
	}
	out := *errDetail
	out.Message = context + ": " + errDetail.Message
	return &out
}
