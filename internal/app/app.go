// Package app wires configuration, storage, model clients and services
// together for the API server and the operator CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"casebrief/internal/casemeta"
	"casebrief/internal/config"
	"casebrief/internal/indexer"
	"casebrief/internal/llm"
	"casebrief/internal/rag"
	"casebrief/internal/service"
	"casebrief/internal/storage"
	"casebrief/internal/vectorstore"
)

// embeddingSource serves stored embeddings for both retrieval paths.
type embeddingSource interface {
	ListByCase(ctx context.Context, caseID int64) ([]storage.EmbeddingRecord, error)
	ListByFile(ctx context.Context, fileID int64) ([]storage.EmbeddingRecord, error)
}

// App holds the wired application.
type App struct {
	Config      *config.Config
	DB          *sql.DB
	VectorStore vectorstore.VectorStore // nil when Qdrant is not configured
	CaseService service.CaseService
	ChatService service.ChatService

	closers []io.Closer
}

// NewLogger builds the slog handler selected by LOG_FORMAT and LOG_LEVEL.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// New opens the database, connects to Qdrant when configured and builds the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.DB = db
	a.closers = append(a.closers, db)

	if err := storage.Migrate(db); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.InfoContext(ctx, "Database initialized", "path", cfg.DBPath)

	caseRepo := storage.NewCaseRepo(db)
	fileRepo := storage.NewFileRepo(db)
	embeddingRepo := storage.NewEmbeddingRepo(db)
	messageRepo := storage.NewMessageRepo(db)
	metadataRepo := storage.NewMetadataRepo(db)

	var source embeddingSource = embeddingRepo
	if cfg.QdrantEnabled() {
		qdrantStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
		}
		a.closers = append(a.closers, qdrantStore)

		// Ensure collection exists with correct vector size
		if err := qdrantStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.EmbeddingVectorSize); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to ensure Qdrant collection: %w", err)
		}
		slog.InfoContext(ctx, "Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.EmbeddingVectorSize)

		a.VectorStore = qdrantStore
		if cfg.EmbeddingSource == config.EmbeddingSourceQdrant {
			source = vectorstore.NewSource(qdrantStore, cfg.QdrantCollection)
		}
	}
	slog.InfoContext(ctx, "Embedding source selected", "source", cfg.EmbeddingSource)

	// LLM_RATE_LIMIT bounds embedding and generation calls combined.
	opts := []llm.Option{
		llm.WithTimeout(cfg.LLMTimeout),
		llm.WithLimiter(llm.NewLimiter(cfg.LLMRateLimit, 1)),
	}
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingVectorSize, opts...)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, opts...)

	pipeline := indexer.NewPipeline(
		indexer.Config{ChunkSize: cfg.ChunkSize, ChunkOverlap: cfg.ChunkOverlap},
		fileRepo,
		embeddingRepo,
		embedder,
		a.VectorStore,
		cfg.QdrantCollection,
	)

	engine := rag.NewEngine(embedder, llmClient, source, messageRepo)

	a.CaseService = service.NewCaseService(service.CaseServiceDeps{
		Cases:       caseRepo,
		Files:       fileRepo,
		Indexer:     pipeline,
		Engine:      engine,
		Extractor:   casemeta.NewExtractor(embedder, llmClient, source),
		Merger:      casemeta.NewMerger(metadataRepo),
		Metadata:    metadataRepo,
		VectorStore: a.VectorStore,
		Collection:  cfg.QdrantCollection,
	})
	a.ChatService = service.NewChatService(caseRepo, messageRepo, engine)

	return a, nil
}

// Close releases the database and the Qdrant connection.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
