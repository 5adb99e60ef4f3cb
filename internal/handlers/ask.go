package handlers

import (
	"context"
	"net/http"

	"github.com/yuin/goldmark"

	"casebrief/internal/contextutil"
	"casebrief/internal/rag"
	"casebrief/internal/service"
)

// AskHandler handles stateless questions about a case.
type AskHandler struct {
	caseService service.CaseService
	markdown    goldmark.Markdown
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(caseService service.CaseService) *AskHandler {
	return &AskHandler{
		caseService: caseService,
		markdown:    newMarkdown(),
	}
}

// AskRequest represents the HTTP request payload for a question.
type AskRequest struct {
	Question string `json:"question"`
}

// SourceResponse describes one chunk used as context.
type SourceResponse struct {
	EmbeddingID string  `json:"embedding_id"`
	FileID      int64   `json:"file_id"`
	ChunkIndex  int     `json:"chunk_index"`
	Score       float64 `json:"score"`
}

// AskResponse represents the HTTP response payload for an answer.
type AskResponse struct {
	// The generated answer
	Answer string `json:"answer"`

	// AnswerHTML is the answer rendered from markdown (only with ?format=html).
	AnswerHTML string `json:"answer_html,omitempty"`

	// Identifiers of the chunks used as context, best first
	SourceChunks []string `json:"source_chunks"`

	Sources []SourceResponse `json:"sources"`
}

// ServeHTTP handles POST /api/cases/{caseID}/ask.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, ok := idParam(w, r, "caseID")
	if !ok {
		return
	}

	var req AskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.caseService.Ask(ctx, service.AskRequest{CaseID: caseID, Question: req.Question})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to answer question")
		return
	}

	writeJSON(w, ctx, http.StatusOK, toAskResponse(ctx, h.markdown, resp, r.URL.Query().Get("format") == "html"))
}

func toAskResponse(ctx context.Context, md goldmark.Markdown, resp rag.AnswerResponse, html bool) AskResponse {
	out := AskResponse{
		Answer:       resp.Answer,
		SourceChunks: resp.SourceChunkIDs,
		Sources:      make([]SourceResponse, len(resp.Sources)),
	}
	if out.SourceChunks == nil {
		out.SourceChunks = []string{}
	}
	for i, s := range resp.Sources {
		out.Sources[i] = SourceResponse{
			EmbeddingID: s.EmbeddingID,
			FileID:      s.FileID,
			ChunkIndex:  s.ChunkIndex,
			Score:       s.Score,
		}
	}
	if html {
		rendered, err := renderMarkdown(md, resp.Answer)
		if err != nil {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to render answer", "error", err)
		}
		out.AnswerHTML = rendered
	}
	return out
}
