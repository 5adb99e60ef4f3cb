package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_case_deps.go -package=mocks casebrief/internal/service FileStore,Indexer,MetadataExtractor,MetadataMerger,MetadataReader
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_case_service.go -package=mocks -mock_names=CaseService=MockCaseService casebrief/internal/service CaseService

import (
	"context"
	"errors"
	"strings"

	"casebrief/internal/casemeta"
	"casebrief/internal/contextutil"
	"casebrief/internal/indexer"
	"casebrief/internal/rag"
	"casebrief/internal/storage"
	"casebrief/internal/vectorstore"
)

// FileStore is the subset of file persistence the case service needs.
type FileStore interface {
	Create(ctx context.Context, caseID int64, filename, contentType string) (*storage.CaseFile, error)
	GetByID(ctx context.Context, id int64) (*storage.CaseFile, error)
	ListByCase(ctx context.Context, caseID int64) ([]storage.CaseFile, error)
}

// Indexer stores the embeddings of a file's text.
type Indexer interface {
	IndexFile(ctx context.Context, fileID int64, text string) (indexer.Result, error)
}

// MetadataExtractor pulls a structured payload out of a file's chunks.
type MetadataExtractor interface {
	ExtractForFile(ctx context.Context, fileID int64) (casemeta.Payload, error)
}

// MetadataMerger folds a payload into the case's metadata record.
type MetadataMerger interface {
	Merge(ctx context.Context, caseID int64, payload casemeta.Payload) (*storage.CaseMetadata, error)
}

// MetadataReader reads the stored metadata record of a case.
type MetadataReader interface {
	GetByCase(ctx context.Context, caseID int64) (*storage.CaseMetadata, error)
}

// CreateCaseRequest represents a new case.
type CreateCaseRequest struct {
	Name        string
	Description string
}

// AddFileRequest registers a document and indexes its text.
type AddFileRequest struct {
	CaseID      int64
	Filename    string
	ContentType string
	Text        string
}

// AddFileResponse is the stored file and the outcome of indexing it.
type AddFileResponse struct {
	File  storage.CaseFile
	Index indexer.Result
}

// AskRequest is a stateless question about a case.
type AskRequest struct {
	CaseID   int64
	Question string
}

// CaseService provides case bookkeeping, ingestion, QA and metadata.
type CaseService interface {
	CreateCase(ctx context.Context, req CreateCaseRequest) (*storage.Case, error)
	GetCase(ctx context.Context, caseID int64) (*storage.Case, error)
	ListCases(ctx context.Context, offset, limit int) ([]storage.Case, error)
	// DeleteCase removes the case with everything it owns, including its vectors.
	DeleteCase(ctx context.Context, caseID int64) error
	// AddFile registers a file for the case and indexes its text.
	AddFile(ctx context.Context, req AddFileRequest) (AddFileResponse, error)
	ListFiles(ctx context.Context, caseID int64) ([]storage.CaseFile, error)
	// Ask answers a question without any conversation history.
	Ask(ctx context.Context, req AskRequest) (rag.AnswerResponse, error)
	// ProcessFile extracts metadata from one file and merges it into the case record.
	ProcessFile(ctx context.Context, caseID, fileID int64) (*storage.CaseMetadata, error)
	// MergeMetadata folds a caller-supplied payload into the case record.
	MergeMetadata(ctx context.Context, caseID int64, payload casemeta.Payload) (*storage.CaseMetadata, error)
	GetMetadata(ctx context.Context, caseID int64) (*storage.CaseMetadata, error)
}

// caseService implements CaseService.
type caseService struct {
	cases       CaseStore
	files       FileStore
	indexer     Indexer
	engine      rag.Engine
	extractor   MetadataExtractor
	merger      MetadataMerger
	metadata    MetadataReader
	vectorStore vectorstore.VectorStore
	collection  string
}

// CaseServiceDeps groups the collaborators of the case service.
// VectorStore may be nil when vectors are kept in SQLite only.
type CaseServiceDeps struct {
	Cases       CaseStore
	Files       FileStore
	Indexer     Indexer
	Engine      rag.Engine
	Extractor   MetadataExtractor
	Merger      MetadataMerger
	Metadata    MetadataReader
	VectorStore vectorstore.VectorStore
	Collection  string
}

// NewCaseService creates a new CaseService.
func NewCaseService(deps CaseServiceDeps) CaseService {
	return &caseService{
		cases:       deps.Cases,
		files:       deps.Files,
		indexer:     deps.Indexer,
		engine:      deps.Engine,
		extractor:   deps.Extractor,
		merger:      deps.Merger,
		metadata:    deps.Metadata,
		vectorStore: deps.VectorStore,
		collection:  deps.Collection,
	}
}

func (s *caseService) CreateCase(ctx context.Context, req CreateCaseRequest) (*storage.Case, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "cannot be empty"}
	}

	c, err := s.cases.Create(ctx, name, strings.TrimSpace(req.Description))
	if err != nil {
		return nil, WrapError(err, "failed to create case")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "case created", "case_id", c.ID, "case_no", c.CaseNo)
	return c, nil
}

func (s *caseService) GetCase(ctx context.Context, caseID int64) (*storage.Case, error) {
	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, classifyError(err, "failed to get case")
	}
	return c, nil
}

func (s *caseService) ListCases(ctx context.Context, offset, limit int) ([]storage.Case, error) {
	if offset < 0 {
		return nil, &ValidationError{Field: "offset", Message: "must not be negative"}
	}
	cases, err := s.cases.List(ctx, offset, limit)
	if err != nil {
		return nil, WrapError(err, "failed to list cases")
	}
	if cases == nil {
		cases = []storage.Case{}
	}
	return cases, nil
}

func (s *caseService) DeleteCase(ctx context.Context, caseID int64) error {
	logger := contextutil.LoggerFromContext(ctx)

	if err := s.cases.Delete(ctx, caseID); err != nil {
		return classifyError(err, "failed to delete case")
	}

	if s.vectorStore != nil {
		if err := s.vectorStore.DeleteByCase(ctx, s.collection, caseID); err != nil {
			// SQLite rows are gone; orphaned points no longer match any case.
			logger.WarnContext(ctx, "failed to delete case vectors", "case_id", caseID, "error", err)
		}
	}

	logger.InfoContext(ctx, "case deleted", "case_id", caseID)
	return nil
}

func (s *caseService) AddFile(ctx context.Context, req AddFileRequest) (AddFileResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	filename := strings.TrimSpace(req.Filename)
	if filename == "" {
		return AddFileResponse{}, &ValidationError{Field: "filename", Message: "cannot be empty"}
	}
	if strings.TrimSpace(req.Text) == "" {
		return AddFileResponse{}, &ValidationError{Field: "text", Message: "cannot be empty"}
	}

	if _, err := s.cases.GetByID(ctx, req.CaseID); err != nil {
		return AddFileResponse{}, classifyError(err, "failed to get case")
	}

	file, err := s.files.Create(ctx, req.CaseID, filename, req.ContentType)
	if err != nil {
		return AddFileResponse{}, WrapError(err, "failed to register file")
	}

	result, err := s.indexer.IndexFile(ctx, file.ID, req.Text)
	if err != nil {
		logger.ErrorContext(ctx, "failed to index file", "file_id", file.ID, "error", err)
		return AddFileResponse{File: *file}, classifyError(err, "failed to index file")
	}
	file.Processed = true

	logger.InfoContext(ctx, "file added", "case_id", req.CaseID, "file_id", file.ID, "chunks", result.Chunks)
	return AddFileResponse{File: *file, Index: result}, nil
}

func (s *caseService) ListFiles(ctx context.Context, caseID int64) ([]storage.CaseFile, error) {
	if _, err := s.cases.GetByID(ctx, caseID); err != nil {
		return nil, classifyError(err, "failed to get case")
	}
	files, err := s.files.ListByCase(ctx, caseID)
	if err != nil {
		return nil, WrapError(err, "failed to list files")
	}
	if files == nil {
		files = []storage.CaseFile{}
	}
	return files, nil
}

func (s *caseService) Ask(ctx context.Context, req AskRequest) (rag.AnswerResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		logger.WarnContext(ctx, "empty question in ask request")
		return rag.AnswerResponse{}, &ValidationError{Field: "question", Message: "cannot be empty"}
	}

	if _, err := s.cases.GetByID(ctx, req.CaseID); err != nil {
		return rag.AnswerResponse{}, classifyError(err, "failed to get case")
	}

	resp, err := s.engine.Answer(ctx, rag.AnswerRequest{CaseID: req.CaseID, Question: question})
	if err != nil {
		logger.ErrorContext(ctx, "failed to answer question", "case_id", req.CaseID, "error", err)
		return rag.AnswerResponse{}, classifyError(err, "failed to answer question")
	}
	return resp, nil
}

func (s *caseService) ProcessFile(ctx context.Context, caseID, fileID int64) (*storage.CaseMetadata, error) {
	logger := contextutil.LoggerFromContext(ctx)

	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, classifyError(err, "failed to get file")
	}
	if file.CaseID != caseID {
		return nil, classifyError(storage.ErrNotFound, "file not found for case")
	}

	payload, err := s.extractor.ExtractForFile(ctx, fileID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to extract metadata", "file_id", fileID, "error", err)
		return nil, classifyError(err, "failed to extract metadata")
	}

	record, err := s.merger.Merge(ctx, caseID, payload)
	if errors.Is(err, casemeta.ErrEmptyPayload) {
		// Nothing usable was extracted; the stored record, if any, is unchanged.
		logger.InfoContext(ctx, "no metadata extracted from file", "file_id", fileID)
		return s.GetMetadata(ctx, caseID)
	}
	if err != nil {
		return nil, WrapError(err, "failed to merge metadata")
	}
	return record, nil
}

func (s *caseService) MergeMetadata(ctx context.Context, caseID int64, payload casemeta.Payload) (*storage.CaseMetadata, error) {
	if _, err := s.cases.GetByID(ctx, caseID); err != nil {
		return nil, classifyError(err, "failed to get case")
	}

	record, err := s.merger.Merge(ctx, caseID, payload)
	if errors.Is(err, casemeta.ErrEmptyPayload) {
		return nil, &ValidationError{Field: "payload", Message: "has no known fields"}
	}
	if err != nil {
		return nil, WrapError(err, "failed to merge metadata")
	}
	return record, nil
}

func (s *caseService) GetMetadata(ctx context.Context, caseID int64) (*storage.CaseMetadata, error) {
	record, err := s.metadata.GetByCase(ctx, caseID)
	if err != nil {
		return nil, classifyError(err, "failed to get case metadata")
	}
	return record, nil
}
