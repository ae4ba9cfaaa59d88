package service

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"fs-resource-server/internal/config"
	"fs-resource-server/internal/errors"
	"fs-resource-server/internal/filesystem"
	"fs-resource-server/internal/logging"
	"fs-resource-server/internal/metrics"
	"fs-resource-server/internal/models"
)

// Operation names, shared with the tool surface.
const (
	OperationListFiles       = "list_files"
	OperationGetFileMetadata = "get_file_metadata"
	OperationGetFileContent  = "get_file_content"
)

// JSONMediaType is the media type of serialized metadata bodies.
const JSONMediaType = "application/json"

// FileQueryService defines the read-only file operations exposed to transports.
// Every call yields exactly one of an envelope or an error detail.
type FileQueryService interface {
	ListFiles(req models.ListFilesRequest) (*models.Envelope, *models.ErrorDetail)
	GetFileMetadata(req models.PathRequest) (*models.Envelope, *models.ErrorDetail)
	GetFileContent(req models.PathRequest) (*models.Envelope, *models.ErrorDetail)
}

// DefaultFileQueryService implements the FileQueryService interface.
type DefaultFileQueryService struct {
	fsAdapter   filesystem.FileSystemAdapter
	maxFileSize int64 // in bytes, 0 for unlimited
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewDefaultFileQueryService creates a new DefaultFileQueryService. m and logger may be nil.
func NewDefaultFileQueryService(
	fs filesystem.FileSystemAdapter,
	cfg *config.Config,
	m *metrics.Metrics,
	logger *zap.Logger,
) (*DefaultFileQueryService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if fs == nil {
		return nil, fmt.Errorf("filesystem adapter is required")
	}

	return &DefaultFileQueryService{
		fsAdapter:   fs,
		maxFileSize: cfg.MaxFileSizeBytes(),
		metrics:     m,
		logger:      logging.OrNop(logger),
	}, nil
}

// ListFiles implements the FileQueryService interface.
func (s *DefaultFileQueryService) ListFiles(req models.ListFilesRequest) (*models.Envelope, *models.ErrorDetail) {
	if errDetail := requirePath(req.Path, OperationListFiles); errDetail != nil {
		return nil, s.fail(OperationListFiles, errDetail)
	}

	entries, err := s.fsAdapter.Walk(req.Path, req.Recursive)
	if err != nil {
		return nil, s.fail(OperationListFiles, errors.NewFileSystemError(req.Path, OperationListFiles, err.Error(), err))
	}
	if entries == nil {
		entries = []models.FileMetadata{}
	}
	s.metrics.ObserveWalk(len(entries))

	return s.respondJSON(OperationListFiles, entries)
}

// GetFileMetadata implements the FileQueryService interface.
func (s *DefaultFileQueryService) GetFileMetadata(req models.PathRequest) (*models.Envelope, *models.ErrorDetail) {
	if errDetail := requirePath(req.Path, OperationGetFileMetadata); errDetail != nil {
		return nil, s.fail(OperationGetFileMetadata, errDetail)
	}

	meta, err := s.fsAdapter.Inspect(req.Path)
	if err != nil {
		return nil, s.fail(OperationGetFileMetadata, errors.NewFileSystemError(req.Path, OperationGetFileMetadata, err.Error(), err))
	}

	return s.respondJSON(OperationGetFileMetadata, meta)
}

// GetFileContent implements the FileQueryService interface.
func (s *DefaultFileQueryService) GetFileContent(req models.PathRequest) (*models.Envelope, *models.ErrorDetail) {
	if errDetail := requirePath(req.Path, OperationGetFileContent); errDetail != nil {
		return nil, s.fail(OperationGetFileContent, errDetail)
	}

	content, err := s.fsAdapter.ReadContent(req.Path, s.maxFileSize)
	if err != nil {
		return nil, s.fail(OperationGetFileContent, errors.NewFileSystemError(req.Path, OperationGetFileContent, err.Error(), err))
	}

	s.metrics.ObserveOperation(OperationGetFileContent, metrics.OutcomeSuccess)
	return models.SuccessEnvelope(content.Body, content.MediaType), nil
}

func (s *DefaultFileQueryService) respondJSON(operation string, v interface{}) (*models.Envelope, *models.ErrorDetail) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, s.fail(operation, errors.NewInternalError(fmt.Sprintf("failed to serialize result: %v", err)))
	}
	s.metrics.ObserveOperation(operation, metrics.OutcomeSuccess)
	return models.SuccessEnvelope(string(body), JSONMediaType), nil
}

func (s *DefaultFileQueryService) fail(operation string, errDetail *models.ErrorDetail) *models.ErrorDetail {
	s.metrics.ObserveOperation(operation, metrics.OutcomeError)
	s.logger.Debug("file operation failed",
		zap.String("operation", operation),
		zap.Int("code", errDetail.Code),
		zap.String("message", errDetail.Message),
	)
	return errDetail
}

func requirePath(path, operation string) *models.ErrorDetail {
	if path == "" {
		return errors.NewInvalidParamsError("Missing required argument: path", operation)
	}
	return nil
}
