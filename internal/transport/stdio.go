package transport

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"go.uber.org/zap"

	"fs-resource-server/internal/logging"
)

// maxLineSize bounds a single JSON-RPC message on stdin.
const maxLineSize = 16 * 1024 * 1024

// StdioHandler handles line-delimited JSON-RPC communication over standard input/output.
// Requests are handled one at a time, in order.
type StdioHandler struct {
	processor RequestProcessor
	logger    *zap.Logger
}

// NewStdioHandler creates a new StdioHandler.
func NewStdioHandler(p RequestProcessor, logger *zap.Logger) *StdioHandler {
	return &StdioHandler{
		processor: p,
		logger:    logging.OrNop(logger),
	}
}

// Start begins processing JSON-RPC requests from input and writing responses to output.
// It returns when input is exhausted.
func (h *StdioHandler) Start(input io.Reader, output io.Writer) error {
	h.logger.Info("starting stdio JSON-RPC handler")
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(bytes.TrimSpace(lineBytes)) == 0 {
			continue
		}

		resp := handleMessage(h.processor, lineBytes)
		if resp == nil {
			continue
		}
		if _, err := fmt.Fprintln(output, string(marshalResponse(resp, h.logger))); err != nil {
			h.logger.Error("failed to write JSON-RPC response", zap.Error(err))
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		h.logger.Error("error reading from stdio", zap.Error(err))
		return err
	}

	h.logger.Info("stdio JSON-RPC handler finished")
	return nil
}
