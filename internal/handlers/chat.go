package handlers

import (
	"net/http"
	"time"

	"github.com/yuin/goldmark"

	"casebrief/internal/service"
	"casebrief/internal/storage"
)

// ChatHandler handles HTTP requests for case chat sessions.
type ChatHandler struct {
	chatService service.ChatService
	markdown    goldmark.Markdown
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		markdown:    newMarkdown(),
	}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// MessageResponse is one stored conversation turn.
type MessageResponse struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse is an open session and its history.
type SessionResponse struct {
	SessionID int64             `json:"session_id"`
	CaseID    int64             `json:"case_id"`
	Messages  []MessageResponse `json:"messages"`
}

// OpenSession handles POST /api/cases/{caseID}/chat/sessions.
func (h *ChatHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, ok := idParam(w, r, "caseID")
	if !ok {
		return
	}

	view, err := h.chatService.OpenSession(ctx, caseID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to open session")
		return
	}

	writeJSON(w, ctx, http.StatusOK, SessionResponse{
		SessionID: view.Session.ID,
		CaseID:    view.Session.CaseID,
		Messages:  toMessages(view.Messages),
	})
}

// SendMessage handles POST /api/cases/{caseID}/chat/sessions/{sessionID}/messages.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, ok := idParam(w, r, "caseID")
	if !ok {
		return
	}
	sessionID, ok := idParam(w, r, "sessionID")
	if !ok {
		return
	}

	var req ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.chatService.SendMessage(ctx, service.SendMessageRequest{
		CaseID:    caseID,
		SessionID: sessionID,
		Message:   req.Message,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to process chat message")
		return
	}

	writeJSON(w, ctx, http.StatusOK, toAskResponse(ctx, h.markdown, resp, r.URL.Query().Get("format") == "html"))
}

// CloseSession handles DELETE /api/cases/{caseID}/chat/sessions/{sessionID}.
func (h *ChatHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, ok := idParam(w, r, "caseID")
	if !ok {
		return
	}
	sessionID, ok := idParam(w, r, "sessionID")
	if !ok {
		return
	}

	if err := h.chatService.CloseSession(ctx, caseID, sessionID); err != nil {
		handleServiceError(w, ctx, err, "Failed to close session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toMessages(messages []storage.Message) []MessageResponse {
	out := make([]MessageResponse, len(messages))
	for i, m := range messages {
		out[i] = MessageResponse{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
	}
	return out
}
