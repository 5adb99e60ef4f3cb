package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_stores.go -package=mocks casebrief/internal/service CaseStore,SessionStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService casebrief/internal/service ChatService

import (
	"context"
	"errors"
	"strings"

	"casebrief/internal/contextutil"
	"casebrief/internal/rag"
	"casebrief/internal/storage"
)

// CaseStore is the subset of case persistence the services need.
// This interface is defined from the service layer's perspective (consumer-first).
type CaseStore interface {
	Create(ctx context.Context, name, description string) (*storage.Case, error)
	GetByID(ctx context.Context, id int64) (*storage.Case, error)
	List(ctx context.Context, offset, limit int) ([]storage.Case, error)
	Delete(ctx context.Context, id int64) error
}

// SessionStore manages chat sessions and their turns.
type SessionStore interface {
	OpenSession(ctx context.Context, caseID int64) (*storage.Session, error)
	GetSession(ctx context.Context, id int64) (*storage.Session, error)
	CloseSession(ctx context.Context, id int64) error
	Append(ctx context.Context, sessionID int64, role, content string) (*storage.Message, error)
	ListBySession(ctx context.Context, sessionID int64) ([]storage.Message, error)
}

// SessionView is an open session together with its turns in chronological order.
type SessionView struct {
	Session  storage.Session
	Messages []storage.Message
}

// SendMessageRequest represents one user turn in a chat session.
type SendMessageRequest struct {
	CaseID    int64
	SessionID int64
	Message   string
}

// ChatService provides case-scoped chat sessions.
type ChatService interface {
	// OpenSession returns the case's open session, creating one if needed.
	OpenSession(ctx context.Context, caseID int64) (SessionView, error)
	// SendMessage stores the user turn and answers it with the session history.
	SendMessage(ctx context.Context, req SendMessageRequest) (rag.AnswerResponse, error)
	// CloseSession closes a session so that the next OpenSession starts fresh.
	CloseSession(ctx context.Context, caseID, sessionID int64) error
}

// chatService implements ChatService.
type chatService struct {
	cases    CaseStore
	sessions SessionStore
	engine   rag.Engine
}

// NewChatService creates a new ChatService.
func NewChatService(cases CaseStore, sessions SessionStore, engine rag.Engine) ChatService {
	return &chatService{
		cases:    cases,
		sessions: sessions,
		engine:   engine,
	}
}

func (s *chatService) OpenSession(ctx context.Context, caseID int64) (SessionView, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if _, err := s.cases.GetByID(ctx, caseID); err != nil {
		return SessionView{}, classifyError(err, "failed to get case")
	}

	session, err := s.sessions.OpenSession(ctx, caseID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to open session", "case_id", caseID, "error", err)
		return SessionView{}, WrapError(err, "failed to open session")
	}

	messages, err := s.sessions.ListBySession(ctx, session.ID)
	if err != nil {
		return SessionView{}, WrapError(err, "failed to list messages")
	}

	logger.InfoContext(ctx, "session opened", "case_id", caseID, "session_id", session.ID, "messages", len(messages))
	return SessionView{Session: *session, Messages: messages}, nil
}

func (s *chatService) SendMessage(ctx context.Context, req SendMessageRequest) (rag.AnswerResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	text := strings.TrimSpace(req.Message)
	if text == "" {
		logger.WarnContext(ctx, "empty message in chat request")
		return rag.AnswerResponse{}, &ValidationError{
			Field:   "message",
			Message: "cannot be empty",
		}
	}

	if err := s.checkSession(ctx, req.CaseID, req.SessionID); err != nil {
		return rag.AnswerResponse{}, err
	}

	if _, err := s.sessions.Append(ctx, req.SessionID, storage.RoleUser, text); err != nil {
		logger.ErrorContext(ctx, "failed to store user message", "session_id", req.SessionID, "error", err)
		return rag.AnswerResponse{}, WrapError(err, "failed to store message")
	}

	resp, err := s.engine.Answer(ctx, rag.AnswerRequest{
		CaseID:    req.CaseID,
		SessionID: req.SessionID,
		Question:  text,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to answer chat message", "session_id", req.SessionID, "error", err)
		return rag.AnswerResponse{}, classifyError(err, "failed to answer message")
	}

	logger.InfoContext(ctx, "chat message processed", "session_id", req.SessionID, "sources", len(resp.SourceChunkIDs))
	return resp, nil
}

func (s *chatService) CloseSession(ctx context.Context, caseID, sessionID int64) error {
	if err := s.checkSession(ctx, caseID, sessionID); err != nil {
		return err
	}
	if err := s.sessions.CloseSession(ctx, sessionID); err != nil {
		return classifyError(err, "failed to close session")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "session closed", "session_id", sessionID)
	return nil
}

// checkSession verifies the session exists, belongs to the case and is open.
func (s *chatService) checkSession(ctx context.Context, caseID, sessionID int64) error {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if errors.Is(err, storage.ErrNotFound) {
		return classifyError(err, "session not found")
	}
	if err != nil {
		return WrapError(err, "failed to get session")
	}
	if session.CaseID != caseID {
		return classifyError(storage.ErrNotFound, "session not found for case")
	}
	if session.Closed {
		return &ValidationError{Field: "session_id", Message: "session is closed"}
	}
	return nil
}
