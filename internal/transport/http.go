package transport

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fs-resource-server/internal/errors"
	"fs-resource-server/internal/logging"
	"fs-resource-server/internal/mcp"
	"fs-resource-server/internal/metrics"
	"fs-resource-server/internal/models"
	"fs-resource-server/internal/service"
)

const (
	defaultTimeout = 60 * time.Second
	// defaultMaxRequestSize bounds a JSON-RPC request body on /mcp.
	defaultMaxRequestSize = 1 << 20
	// RequestIDHeader carries the request ID in and out.
	RequestIDHeader = "X-Request-ID"
)

// HTTPHandler serves JSON-RPC on /mcp and REST file queries on /files/*.
type HTTPHandler struct {
	processor    RequestProcessor
	service      service.FileQueryService
	metrics      *metrics.Metrics
	logger       *zap.Logger
	readTimeout  time.Duration // For http.Server
	writeTimeout time.Duration // For http.Server
	maxReqSize   int64         // Max request body size in bytes
	Server       *http.Server  // Holds the server instance
}

// NewHTTPHandler creates a new HTTPHandler. A nil m disables /metrics.
// timeout <= 0 selects the default for both server timeouts.
func NewHTTPHandler(
	p RequestProcessor,
	svc service.FileQueryService,
	m *metrics.Metrics,
	logger *zap.Logger,
	timeout time.Duration,
) *HTTPHandler {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	h := &HTTPHandler{
		processor:    p,
		service:      svc,
		metrics:      m,
		logger:       logging.OrNop(logger),
		readTimeout:  timeout,
		writeTimeout: timeout,
		maxReqSize:   defaultMaxRequestSize,
	}
	h.Server = &http.Server{
		Handler:      h.Handler(),
		ReadTimeout:  h.readTimeout,
		WriteTimeout: h.writeTimeout,
	}
	return h
}

// RegisterRoutes sets up the HTTP routes for the handler.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/mcp", h.handleMCP)
	mux.HandleFunc("/health", h.handleHealthCheck)
	mux.HandleFunc("/files/metadata", h.handleFileMetadata)
	mux.HandleFunc("/files/content", h.handleFileContent)
	mux.HandleFunc("/files/list", h.handleListFiles)
	if h.metrics != nil {
		mux.Handle("/metrics", h.metrics.Handler())
	}
}

// Handler returns the routed handler with request ID propagation.
func (h *HTTPHandler) Handler() http.Handler {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return h.withRequestID(mux)
}

func (h *HTTPHandler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		h.logger.Debug("http request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r)
	})
}

// writeJSONResponse is a helper to write JSON data to the response.
func (h *HTTPHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.Error("error encoding JSON response", zap.Error(err))
		}
	}
}

// writeJSONErrorResponse is a helper to write a JSON error response.
func (h *HTTPHandler) writeJSONErrorResponse(w http.ResponseWriter, httpStatusCode int, errorDetail *models.ErrorDetail) {
	if errorDetail == nil {
		errorDetail = errors.NewInternalError("An unexpected error occurred and error details were lost.")
		httpStatusCode = http.StatusInternalServerError
	}
	h.writeJSONResponse(w, httpStatusCode, errors.ToErrorResponse(errorDetail))
}

func (h *HTTPHandler) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) handleMCP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		errDetail := errors.NewInvalidRequestError(fmt.Sprintf("Method %s not allowed for /mcp. Use POST.", r.Method))
		h.writeJSONErrorResponse(w, http.StatusMethodNotAllowed, errDetail)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		errDetail := errors.NewInvalidRequestError("Invalid Content-Type header. Must be 'application/json' or 'application/json; charset=utf-8'.")
		h.writeJSONErrorResponse(w, http.StatusUnsupportedMediaType, errDetail)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxReqSize)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if stdErrors.As(err, &maxBytesErr) {
			errDetail := errors.NewInvalidRequestError(fmt.Sprintf("Request body exceeds maximum size of %d bytes.", h.maxReqSize))
			h.writeJSONErrorResponse(w, http.StatusRequestEntityTooLarge, errDetail)
			return
		}
		h.writeJSONErrorResponse(w, http.StatusBadRequest, errors.NewParseError(fmt.Sprintf("Failed to read request body: %v", err)))
		return
	}

	resp := handleMessage(h.processor, body)
	if resp == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(marshalResponse(resp, h.logger)); err != nil {
		h.logger.Error("error writing JSON-RPC response", zap.Error(err))
	}
}

func (h *HTTPHandler) handleFileMetadata(w http.ResponseWriter, r *http.Request) {
	if !h.allowGet(w, r) {
		return
	}
	env, serviceErr := h.service.GetFileMetadata(models.PathRequest{Path: r.URL.Query().Get("path")})
	h.writeEnvelope(w, env, serviceErr, service.OperationGetFileMetadata)
}

func (h *HTTPHandler) handleFileContent(w http.ResponseWriter, r *http.Request) {
	if !h.allowGet(w, r) {
		return
	}
	env, serviceErr := h.service.GetFileContent(models.PathRequest{Path: r.URL.Query().Get("path")})
	h.writeEnvelope(w, env, serviceErr, service.OperationGetFileContent)
}

func (h *HTTPHandler) handleListFiles(w http.ResponseWriter, r *http.Request) {
	if !h.allowGet(w, r) {
		return
	}
	query := r.URL.Query()
	req := models.ListFilesRequest{Path: query.Get("path")}
	if raw := query.Get("recursive"); raw != "" {
		recursive, err := strconv.ParseBool(raw)
		if err != nil {
			errDetail := errors.NewInvalidParamsError(fmt.Sprintf("Invalid value for recursive: %q", raw), service.OperationListFiles)
			h.writeJSONErrorResponse(w, http.StatusBadRequest, errDetail)
			return
		}
		req.Recursive = recursive
	}
	env, serviceErr := h.service.ListFiles(req)
	h.writeEnvelope(w, env, serviceErr, service.OperationListFiles)
}

func (h *HTTPHandler) allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	errDetail := errors.NewInvalidRequestError(fmt.Sprintf("Method %s not allowed for %s. Use GET.", r.Method, r.URL.Path))
	h.writeJSONErrorResponse(w, http.StatusMethodNotAllowed, errDetail)
	return false
}

// writeEnvelope writes a successful body verbatim with its media type, or the
// error detail with the status derived from its kind.
func (h *HTTPHandler) writeEnvelope(w http.ResponseWriter, env *models.Envelope, serviceErr *models.ErrorDetail, operation string) {
	if serviceErr != nil {
		errDetail := errors.WithContext(serviceErr, mcp.FailureContext(operation))
		h.writeJSONErrorResponse(w, errors.MapErrorToHTTPStatus(errDetail), errDetail)
		return
	}
	if env == nil {
		h.writeJSONErrorResponse(w, http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", env.MediaType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, env.Body); err != nil {
		h.logger.Error("error writing response body", zap.String("operation", operation), zap.Error(err))
	}
}

// StartServer listens on addr and serves until the server is shut down.
func (h *HTTPHandler) StartServer(addr string) error {
	h.Server.Addr = addr

	h.logger.Info("HTTP server starting",
		zap.String("addr", addr),
		zap.Duration("read_timeout", h.readTimeout),
		zap.Duration("write_timeout", h.writeTimeout),
	)
	err := h.Server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		h.logger.Error("HTTP server ListenAndServe error", zap.Error(err))
		return err
	}
	h.logger.Info("HTTP server shut down", zap.String("addr", addr))
	return nil
}
