package casemeta

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_deps.go -package=mocks casebrief/internal/casemeta Embedder,Generator,ChunkSource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"casebrief/internal/contextutil"
	"casebrief/internal/llm"
	"casebrief/internal/ranking"
	"casebrief/internal/storage"
)

const (
	// ExtractionQuery is embedded once per file to pick the chunks most likely to hold case facts.
	ExtractionQuery = "case parties court judge lawyer filing date evidence next hearing deadline attorney"
	// ExtractionMaxTokens caps the length of the JSON reply.
	ExtractionMaxTokens = 500
)

const extractionPrompt = `Extract the following fields from the case document excerpts below and reply with strict JSON only, no commentary.
Use exactly these keys: %s.
Rules:
- Use null for any field that is not stated in the text.
- "parties" may be a string, a list of names, or an object mapping role to name.
- "filing_date" and "next_court_date" must be "YYYY-MM-DD" or null.
- "approaching_deadline" must be true, false or null.

Document excerpts:
%s`

// ErrExternalService marks failures of the embedding or generation backend.
var ErrExternalService = errors.New("external service error")

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces a completion for a list of chat messages.
type Generator interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// ChunkSource lists the stored embeddings of a single file.
type ChunkSource interface {
	ListByFile(ctx context.Context, fileID int64) ([]storage.EmbeddingRecord, error)
}

// Extractor asks the model for structured case facts found in one file.
type Extractor struct {
	embedder  Embedder
	generator Generator
	source    ChunkSource
}

// NewExtractor creates a new Extractor.
func NewExtractor(embedder Embedder, generator Generator, source ChunkSource) *Extractor {
	return &Extractor{
		embedder:  embedder,
		generator: generator,
		source:    source,
	}
}

// ExtractForFile returns the fields the model found in the file's most relevant
// chunks. A file without embeddings, or a reply that is not JSON, yields an
// empty Payload and no error. Embedding and generation failures are returned.
func (e *Extractor) ExtractForFile(ctx context.Context, fileID int64) (Payload, error) {
	logger := contextutil.LoggerFromContext(ctx)

	records, err := e.source.ListByFile(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load embeddings: %w", err)
	}
	if len(records) == 0 {
		logger.InfoContext(ctx, "no embeddings for file", "file_id", fileID)
		return Payload{}, nil
	}

	queryVector, err := e.embedder.Embed(ctx, ExtractionQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: embed extraction query: %w", ErrExternalService, err)
	}

	vectors := make([][]float32, len(records))
	for i, r := range records {
		vectors[i] = r.Vector
	}
	ranked, err := ranking.Rank(queryVector, vectors, ranking.ExtractionResultLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank embeddings: %w", err)
	}

	texts := make([]string, 0, len(ranked))
	for _, r := range ranked {
		texts = append(texts, records[r.Index].ChunkText)
	}
	prompt := fmt.Sprintf(extractionPrompt, strings.Join(Fields, ", "), strings.Join(texts, "\n\n"))

	reply, err := e.generator.ChatWithMessages(ctx, []llm.Message{
		{Role: llm.RoleUser, Content: prompt},
	}, llm.ChatParams{
		MaxTokens:   ExtractionMaxTokens,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: generate extraction: %w", ErrExternalService, err)
	}

	payload := ParsePayload(reply)
	if len(payload) == 0 {
		logger.WarnContext(ctx, "extraction reply was not a JSON object", "file_id", fileID, "reply_length", len(reply))
	}
	logger.InfoContext(ctx, "extracted case metadata", "file_id", fileID, "chunks_used", len(ranked), "fields", len(Normalize(payload)))
	return payload, nil
}
