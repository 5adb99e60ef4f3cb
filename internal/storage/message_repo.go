package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_message_store.go -package=mocks casebrief/internal/storage MessageStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// MessageStore defines the interface for conversation storage operations.
type MessageStore interface {
	// Append stores a new turn for the session.
	Append(ctx context.Context, sessionID int64, role, content string) (*Message, error)
	// Recent returns up to limit turns for the session, newest first.
	Recent(ctx context.Context, sessionID int64, limit int) ([]Message, error)
}

// MessageRepo provides methods for chat session and message operations.
// It implements the MessageStore interface.
type MessageRepo struct {
	db *sql.DB
}

// NewMessageRepo creates a new MessageRepo.
func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// OpenSession returns the newest open session of a case, creating one if none exists.
func (r *MessageRepo) OpenSession(ctx context.Context, caseID int64) (*Session, error) {
	var s Session
	err := r.db.QueryRowContext(ctx,
		"SELECT id, case_id, closed, created_at FROM chat_sessions WHERE case_id = ? AND closed = 0 ORDER BY created_at DESC, id DESC LIMIT 1",
		caseID,
	).Scan(&s.ID, &s.CaseID, &s.Closed, &s.CreatedAt)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO chat_sessions (case_id, closed, created_at) VALUES (?, 0, ?)",
		caseID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get session id: %w", err)
	}
	return &Session{ID: id, CaseID: caseID, CreatedAt: now}, nil
}

// GetSession returns a session by id. Returns ErrNotFound if not found.
func (r *MessageRepo) GetSession(ctx context.Context, id int64) (*Session, error) {
	var s Session
	err := r.db.QueryRowContext(ctx,
		"SELECT id, case_id, closed, created_at FROM chat_sessions WHERE id = ?",
		id,
	).Scan(&s.ID, &s.CaseID, &s.Closed, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return &s, nil
}

// CloseSession marks a session closed.
func (r *MessageRepo) CloseSession(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "UPDATE chat_sessions SET closed = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Append stores a new turn for the session.
func (r *MessageRepo) Append(ctx context.Context, sessionID int64, role, content string) (*Message, error) {
	switch role {
	case RoleUser, RoleAssistant, RoleSystem:
	default:
		return nil, fmt.Errorf("invalid message role %q", role)
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO chat_messages (session_id, role, content, created_at) VALUES (?, ?, ?, ?)",
		sessionID, role, content, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get message id: %w", err)
	}
	return &Message{ID: id, SessionID: sessionID, Role: role, Content: content, CreatedAt: now}, nil
}

// Recent returns up to limit turns for the session, newest first.
// Turns sharing a timestamp are ordered by id.
func (r *MessageRepo) Recent(ctx context.Context, sessionID int64, limit int) ([]Message, error) {
	if limit <= 0 {
		return []Message{}, nil
	}
	return r.list(ctx,
		"SELECT id, session_id, role, content, created_at FROM chat_messages WHERE session_id = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		sessionID, limit,
	)
}

// ListBySession returns every turn of the session in chronological order.
func (r *MessageRepo) ListBySession(ctx context.Context, sessionID int64) ([]Message, error) {
	return r.list(ctx,
		"SELECT id, session_id, role, content, created_at FROM chat_messages WHERE session_id = ? ORDER BY created_at ASC, id ASC",
		sessionID,
	)
}

func (r *MessageRepo) list(ctx context.Context, query string, args ...any) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	messages := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return messages, nil
}
