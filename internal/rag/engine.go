package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_deps.go -package=mocks casebrief/internal/rag Embedder,Generator,EmbeddingSource
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks casebrief/internal/rag Engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"casebrief/internal/contextutil"
	"casebrief/internal/llm"
	"casebrief/internal/ranking"
	"casebrief/internal/storage"
)

const (
	// HistoryLimit is the number of recent conversation turns folded into a prompt.
	HistoryLimit = 6
	// AnswerMaxTokens caps the length of a generated answer.
	AnswerMaxTokens = 300
)

const systemPrompt = "You are a legal assistant answering questions about a single case. " +
	"Answer using only the information in the provided context. If the context does not " +
	"contain information relevant to the question, say explicitly that the case documents " +
	"do not contain it. Answer concisely."

var (
	// ErrNoEmbeddings is returned when the case has no indexed chunks yet.
	ErrNoEmbeddings = errors.New("no embeddings indexed for case")
	// ErrExternalService marks failures of the embedding or generation backend.
	ErrExternalService = errors.New("external service error")
)

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces a completion for a list of chat messages.
type Generator interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// EmbeddingSource lists the stored embeddings of a case.
type EmbeddingSource interface {
	ListByCase(ctx context.Context, caseID int64) ([]storage.EmbeddingRecord, error)
}

// Engine answers questions about a case from its indexed documents.
type Engine interface {
	// Answer retrieves the chunks most similar to the question and asks the
	// model to answer from them. Returns ErrNoEmbeddings if nothing is indexed.
	Answer(ctx context.Context, req AnswerRequest) (AnswerResponse, error)
}

// ragEngine implements the Engine interface.
type ragEngine struct {
	embedder  Embedder
	generator Generator
	source    EmbeddingSource
	history   storage.MessageStore
}

// NewEngine creates a new RAG engine.
func NewEngine(embedder Embedder, generator Generator, source EmbeddingSource, history storage.MessageStore) Engine {
	return &ragEngine{
		embedder:  embedder,
		generator: generator,
		source:    source,
		history:   history,
	}
}

// Answer answers a question using RAG.
func (e *ragEngine) Answer(ctx context.Context, req AnswerRequest) (AnswerResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return AnswerResponse{}, errors.New("question is required")
	}

	logger.InfoContext(ctx, "RAG query started", "case_id", req.CaseID, "session_id", req.SessionID)

	queryVector, err := e.embedder.Embed(ctx, question)
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed question", "error", err)
		return AnswerResponse{}, fmt.Errorf("%w: embed question: %w", ErrExternalService, err)
	}

	records, err := e.source.ListByCase(ctx, req.CaseID)
	if err != nil {
		return AnswerResponse{}, fmt.Errorf("failed to load embeddings: %w", err)
	}
	if len(records) == 0 {
		logger.InfoContext(ctx, "no embeddings for case", "case_id", req.CaseID)
		return AnswerResponse{}, ErrNoEmbeddings
	}

	vectors := make([][]float32, len(records))
	for i, r := range records {
		vectors[i] = r.Vector
	}
	ranked, err := ranking.Rank(queryVector, vectors, ranking.QAResultLimit)
	if err != nil {
		return AnswerResponse{}, fmt.Errorf("failed to rank embeddings: %w", err)
	}

	texts := make([]string, 0, len(ranked))
	sources := make([]Source, 0, len(ranked))
	ids := make([]string, 0, len(ranked))
	for _, r := range ranked {
		rec := records[r.Index]
		texts = append(texts, rec.ChunkText)
		ids = append(ids, rec.ID)
		sources = append(sources, Source{
			EmbeddingID: rec.ID,
			FileID:      rec.FileID,
			ChunkIndex:  rec.ChunkIndex,
			Score:       r.Score,
		})
	}
	contextText := strings.Join(texts, "\n\n")

	logger.DebugContext(ctx, "retrieved chunks",
		"candidates", len(records),
		"selected", len(ranked),
		"top_score", ranked[0].Score,
		"context_length", len(contextText),
	)

	history, err := e.recentHistory(ctx, req.SessionID)
	if err != nil {
		return AnswerResponse{}, err
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{
		Role:    llm.RoleUser,
		Content: fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextText, question),
	})

	answer, err := e.generator.ChatWithMessages(ctx, messages, llm.ChatParams{
		MaxTokens:   AnswerMaxTokens,
		Temperature: 0,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to get LLM response", "error", err)
		return AnswerResponse{}, fmt.Errorf("%w: generate answer: %w", ErrExternalService, err)
	}

	if req.SessionID != 0 {
		e.persistAnswer(ctx, logger, req.SessionID, answer)
	}

	logger.InfoContext(ctx, "RAG query completed", "case_id", req.CaseID, "chunks_used", len(ids), "answer_length", len(answer))
	return AnswerResponse{
		Answer:         answer,
		SourceChunkIDs: ids,
		Sources:        sources,
	}, nil
}

// recentHistory returns up to HistoryLimit turns of the session in chronological order.
func (e *ragEngine) recentHistory(ctx context.Context, sessionID int64) ([]storage.Message, error) {
	if sessionID == 0 {
		return nil, nil
	}
	turns, err := e.history.Recent(ctx, sessionID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation history: %w", err)
	}
	slices.Reverse(turns)
	return turns, nil
}

// persistAnswer stores the answer as an assistant turn. Failures are logged only.
func (e *ragEngine) persistAnswer(ctx context.Context, logger *slog.Logger, sessionID int64, answer string) {
	if _, err := e.history.Append(ctx, sessionID, storage.RoleAssistant, answer); err != nil {
		logger.WarnContext(ctx, "failed to persist assistant turn", "session_id", sessionID, "error", err)
	}
}
