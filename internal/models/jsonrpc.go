package models

import (
	"encoding/json"
	"strings"
)

// JSONRPCVersion is the only protocol version accepted.
const JSONRPCVersion = "2.0"

// JSONRPCRequest represents a JSON-RPC request object.
type JSONRPCRequest struct {
	// JSONRPC specifies the version of the JSON-RPC protocol, must be "2.0".
	JSONRPC string `json:"jsonrpc"`
	// ID is a unique identifier established by the client.
	// It can be a string or a number. The server must reply with the same ID.
	// This field is omitted for notifications.
	ID interface{} `json:"id,omitempty"`
	// Method is a string containing the name of the method to be invoked.
	Method string `json:"method"`
	// Params is kept raw to defer parsing until the method is known.
	Params json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the request expects no response: it has no
// ID, or it is one of the "notifications/" methods.
func (r *JSONRPCRequest) IsNotification() bool {
	return r.ID == nil || strings.HasPrefix(r.Method, "notifications/")
}

// JSONRPCErrorData defines the structure for the 'data' field within a JSON-RPC error object.
type JSONRPCErrorData struct {
	// Path is the filesystem path or resource URI involved in the error, if applicable.
	Path string `json:"path,omitempty"`
	// Operation is the operation being performed when the error occurred, if applicable.
	Operation string `json:"operation,omitempty"`
	// Type is the failure kind of a file operation (not_found, invalid_address, ...).
	Type string `json:"type,omitempty"`
	// Timestamp records when the error occurred.
	Timestamp string `json:"timestamp,omitempty"`
	// Details provides any other specific details about the error.
	Details string `json:"details,omitempty"`
}

// JSONRPCError represents a JSON-RPC error object.
type JSONRPCError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    *JSONRPCErrorData `json:"data,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC response object.
type JSONRPCResponse struct {
	// JSONRPC specifies the version of the JSON-RPC protocol, must be "2.0".
	JSONRPC string `json:"jsonrpc"`
	// ID is the identifier of the request to which this response is a reply.
	ID interface{} `json:"id"`
	// Result is required on success and must not exist on error.
	Result interface{} `json:"result,omitempty"`
	// Error is required on failure and must not exist on success.
	Error *JSONRPCError `json:"error,omitempty"`
}
