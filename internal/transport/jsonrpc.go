package transport

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"fs-resource-server/internal/errors"
	"fs-resource-server/internal/models"
)

// RequestProcessor executes one decoded JSON-RPC request.
type RequestProcessor interface {
	ProcessRequest(req models.JSONRPCRequest) (interface{}, *models.JSONRPCError)
}

// handleMessage decodes one JSON-RPC message, runs it and builds the reply.
// It returns nil when no reply is due (notifications).
func handleMessage(p RequestProcessor, raw []byte) *models.JSONRPCResponse {
	var req models.JSONRPCRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return &models.JSONRPCResponse{
			JSONRPC: models.JSONRPCVersion,
			ID:      nil,
			Error:   errors.ToJSONRPCError(errors.NewParseError(fmt.Sprintf("Invalid JSON received: %v", err))),
		}
	}

	result, rpcErr := p.ProcessRequest(req)
	if req.IsNotification() {
		return nil
	}

	resp := &models.JSONRPCResponse{JSONRPC: models.JSONRPCVersion, ID: req.ID}
	if rpcErr != nil {
		resp.Error = rpcErr
	} else {
		resp.Result = result
	}
	return resp
}

// marshalResponse encodes resp, falling back to an internal error that keeps the ID.
func marshalResponse(resp *models.JSONRPCResponse, logger *zap.Logger) []byte {
	responseBytes, err := json.Marshal(resp)
	if err == nil {
		return responseBytes
	}

	logger.Error("failed to marshal JSON-RPC response", zap.Any("id", resp.ID), zap.Error(err))
	fallback := models.JSONRPCResponse{
		JSONRPC: models.JSONRPCVersion,
		ID:      resp.ID,
		Error:   errors.ToJSONRPCError(errors.NewInternalError("Server error: failed to marshal response.")),
	}
	responseBytes, _ = json.Marshal(fallback)
	return responseBytes
}
