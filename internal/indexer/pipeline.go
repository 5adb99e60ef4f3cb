package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_deps.go -package=mocks casebrief/internal/indexer FileStore,Embedder

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"casebrief/internal/contextutil"
	"casebrief/internal/storage"
	"casebrief/internal/vectorstore"
)

const (
	// DefaultBatchSize is the number of chunks sent per embeddings request.
	DefaultBatchSize = 16
	// DefaultConcurrency bounds the embeddings requests in flight per file.
	DefaultConcurrency = 4
)

// chunkNamespace seeds the name-based ids of embedding records, so indexing
// the same file twice yields the same ids in SQLite and Qdrant.
var chunkNamespace = uuid.MustParse("6f1c7a52-3d0e-4b8e-9a51-0c2f4d7e8b19")

// FileStore is the subset of file operations the pipeline needs.
type FileStore interface {
	GetByID(ctx context.Context, id int64) (*storage.CaseFile, error)
	MarkProcessed(ctx context.Context, id int64) error
}

// Embedder embeds chunk texts in one request, preserving order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Config holds pipeline tuning.
type Config struct {
	ChunkSize    int
	ChunkOverlap int
	BatchSize    int
	Concurrency  int
}

// Pipeline turns document text into stored embedding records.
type Pipeline struct {
	files       FileStore
	embeddings  storage.EmbeddingStore
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	chunker     *WordChunker
	batchSize   int
	concurrency int
}

// NewPipeline creates a new indexing pipeline. vectorStore may be nil, in
// which case records are only written to SQLite.
func NewPipeline(
	cfg Config,
	files FileStore,
	embeddings storage.EmbeddingStore,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
) *Pipeline {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
		cfg.ChunkOverlap = DefaultChunkOverlap
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return &Pipeline{
		files:       files,
		embeddings:  embeddings,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		chunker:     NewWordChunker(cfg.ChunkSize, cfg.ChunkOverlap),
		batchSize:   cfg.BatchSize,
		concurrency: cfg.Concurrency,
	}
}

// IndexFile chunks text, embeds every chunk and stores the records for the
// file. Files already marked processed are skipped.
func (p *Pipeline) IndexFile(ctx context.Context, fileID int64, text string) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	file, err := p.files.GetByID(ctx, fileID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get file %d: %w", fileID, err)
	}
	result := Result{FileID: file.ID, CaseID: file.CaseID}

	if file.Processed {
		logger.DebugContext(ctx, "skipping processed file", "file_id", fileID)
		result.Skipped = true
		return result, nil
	}

	chunks := p.chunker.Chunk(text)
	if len(chunks) == 0 {
		return result, fmt.Errorf("file %d has no text to index", fileID)
	}
	result.Chunks = len(chunks)
	result.Stats = chunkStats(chunks)

	vectors, err := p.embedChunks(ctx, chunks)
	if err != nil {
		return result, err
	}

	records := make([]storage.EmbeddingRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = storage.EmbeddingRecord{
			ID:         chunkID(file.ID, chunk.Index),
			FileID:     file.ID,
			CaseID:     file.CaseID,
			ChunkIndex: chunk.Index,
			ChunkText:  chunk.Text,
			Vector:     vectors[i],
		}
	}

	if err := p.embeddings.InsertBatch(ctx, records); err != nil {
		if !errors.Is(err, storage.ErrConflict) {
			return result, fmt.Errorf("failed to store embeddings: %w", err)
		}
		// A previous run stored the records but did not finish.
		logger.WarnContext(ctx, "embeddings already stored", "file_id", fileID)
	}

	if p.vectorStore != nil {
		if err := p.vectorStore.Upsert(ctx, p.collection, toPoints(records)); err != nil {
			return result, fmt.Errorf("failed to upsert vectors: %w", err)
		}
	}

	if err := p.files.MarkProcessed(ctx, file.ID); err != nil {
		return result, fmt.Errorf("failed to mark file processed: %w", err)
	}

	logger.InfoContext(ctx, "indexed file",
		"file_id", file.ID,
		"case_id", file.CaseID,
		"chunks", result.Chunks,
		"words_mean", result.Stats.Mean,
	)
	return result, nil
}

// embedChunks embeds chunks in batches with bounded concurrency.
func (p *Pipeline) embedChunks(ctx context.Context, chunks []Chunk) ([][]float32, error) {
	vectors := make([][]float32, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for start := 0; start < len(chunks); start += p.batchSize {
		end := min(start+p.batchSize, len(chunks))
		g.Go(func() error {
			texts := make([]string, 0, end-start)
			for _, c := range chunks[start:end] {
				texts = append(texts, c.Text)
			}
			batch, err := p.embedder.EmbedTexts(gctx, texts)
			if err != nil {
				return fmt.Errorf("failed to embed chunks %d-%d: %w", start, end-1, err)
			}
			if len(batch) != len(texts) {
				return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(batch))
			}
			copy(vectors[start:end], batch)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

func chunkID(fileID int64, index int) string {
	name := strconv.FormatInt(fileID, 10) + ":" + strconv.Itoa(index)
	return uuid.NewSHA1(chunkNamespace, []byte(name)).String()
}

func toPoints(records []storage.EmbeddingRecord) []vectorstore.Point {
	points := make([]vectorstore.Point, len(records))
	for i, rec := range records {
		points[i] = vectorstore.Point{
			ID:  rec.ID,
			Vec: rec.Vector,
			Meta: map[string]any{
				vectorstore.PayloadCaseID:     rec.CaseID,
				vectorstore.PayloadFileID:     rec.FileID,
				vectorstore.PayloadChunkIndex: rec.ChunkIndex,
				vectorstore.PayloadChunkText:  rec.ChunkText,
			},
		}
	}
	return points
}
