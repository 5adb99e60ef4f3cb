package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"casebrief/internal/rag"
	rag_mocks "casebrief/internal/rag/mocks"
	"casebrief/internal/service"
	"casebrief/internal/service/mocks"
	"casebrief/internal/storage"

	"go.uber.org/mock/gomock"
)

func init() {
	// Set default logger to discard output for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// testContext returns a context for testing.
func testContext() context.Context {
	return context.Background()
}

type chatDeps struct {
	cases    *mocks.MockCaseStore
	sessions *mocks.MockSessionStore
	engine   *rag_mocks.MockEngine
	svc      service.ChatService
}

func newChatService(t *testing.T) *chatDeps {
	ctrl := gomock.NewController(t)
	d := &chatDeps{
		cases:    mocks.NewMockCaseStore(ctrl),
		sessions: mocks.NewMockSessionStore(ctrl),
		engine:   rag_mocks.NewMockEngine(ctrl),
	}
	d.svc = service.NewChatService(d.cases, d.sessions, d.engine)
	return d
}

func TestChatService_OpenSession(t *testing.T) {
	d := newChatService(t)
	ctx := testContext()

	history := []storage.Message{
		{ID: 1, SessionID: 4, Role: storage.RoleUser, Content: "Who is the judge?"},
		{ID: 2, SessionID: 4, Role: storage.RoleAssistant, Content: "Judge Smith."},
	}
	d.cases.EXPECT().GetByID(ctx, int64(3)).Return(&storage.Case{ID: 3}, nil)
	d.sessions.EXPECT().OpenSession(ctx, int64(3)).Return(&storage.Session{ID: 4, CaseID: 3}, nil)
	d.sessions.EXPECT().ListBySession(ctx, int64(4)).Return(history, nil)

	view, err := d.svc.OpenSession(ctx, 3)
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	if view.Session.ID != 4 {
		t.Errorf("Session.ID = %d, want 4", view.Session.ID)
	}
	if len(view.Messages) != 2 || view.Messages[0].Role != storage.RoleUser {
		t.Errorf("Messages = %+v", view.Messages)
	}
}

func TestChatService_OpenSession_UnknownCase(t *testing.T) {
	d := newChatService(t)
	ctx := testContext()

	d.cases.EXPECT().GetByID(ctx, int64(3)).Return(nil, storage.ErrNotFound)

	_, err := d.svc.OpenSession(ctx, 3)
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("OpenSession() error = %v, want ErrNotFound", err)
	}
}

func TestChatService_SendMessage(t *testing.T) {
	ctx := testContext()
	answer := rag.AnswerResponse{Answer: "Judge Smith.", SourceChunkIDs: []string{"e-judge"}}

	tests := []struct {
		name         string
		req          service.SendMessageRequest
		mockSetup    func(d *chatDeps)
		wantAnswer   string
		checkErrType func(error) bool
	}{
		{
			name: "stores the turn then answers",
			req:  service.SendMessageRequest{CaseID: 3, SessionID: 4, Message: "  Who is the judge? "},
			mockSetup: func(d *chatDeps) {
				gomock.InOrder(
					d.sessions.EXPECT().GetSession(ctx, int64(4)).Return(&storage.Session{ID: 4, CaseID: 3}, nil),
					d.sessions.EXPECT().Append(ctx, int64(4), storage.RoleUser, "Who is the judge?").Return(&storage.Message{ID: 9}, nil),
					d.engine.EXPECT().Answer(ctx, rag.AnswerRequest{CaseID: 3, SessionID: 4, Question: "Who is the judge?"}).Return(answer, nil),
				)
			},
			wantAnswer: "Judge Smith.",
		},
		{
			name:      "empty message",
			req:       service.SendMessageRequest{CaseID: 3, SessionID: 4, Message: "   "},
			mockSetup: func(d *chatDeps) {},
			checkErrType: func(err error) bool {
				var validationErr *service.ValidationError
				return errors.As(err, &validationErr) && validationErr.Field == "message"
			},
		},
		{
			name: "unknown session",
			req:  service.SendMessageRequest{CaseID: 3, SessionID: 4, Message: "hi"},
			mockSetup: func(d *chatDeps) {
				d.sessions.EXPECT().GetSession(ctx, int64(4)).Return(nil, storage.ErrNotFound)
			},
			checkErrType: func(err error) bool { return errors.Is(err, service.ErrNotFound) },
		},
		{
			name: "session of another case",
			req:  service.SendMessageRequest{CaseID: 3, SessionID: 4, Message: "hi"},
			mockSetup: func(d *chatDeps) {
				d.sessions.EXPECT().GetSession(ctx, int64(4)).Return(&storage.Session{ID: 4, CaseID: 8}, nil)
			},
			checkErrType: func(err error) bool { return errors.Is(err, service.ErrNotFound) },
		},
		{
			name: "closed session",
			req:  service.SendMessageRequest{CaseID: 3, SessionID: 4, Message: "hi"},
			mockSetup: func(d *chatDeps) {
				d.sessions.EXPECT().GetSession(ctx, int64(4)).Return(&storage.Session{ID: 4, CaseID: 3, Closed: true}, nil)
			},
			checkErrType: func(err error) bool {
				var validationErr *service.ValidationError
				return errors.As(err, &validationErr) && validationErr.Field == "session_id"
			},
		},
		{
			name: "nothing indexed",
			req:  service.SendMessageRequest{CaseID: 3, SessionID: 4, Message: "hi"},
			mockSetup: func(d *chatDeps) {
				d.sessions.EXPECT().GetSession(ctx, int64(4)).Return(&storage.Session{ID: 4, CaseID: 3}, nil)
				d.sessions.EXPECT().Append(ctx, int64(4), storage.RoleUser, "hi").Return(&storage.Message{}, nil)
				d.engine.EXPECT().Answer(ctx, gomock.Any()).Return(rag.AnswerResponse{}, rag.ErrNoEmbeddings)
			},
			checkErrType: func(err error) bool {
				return errors.Is(err, service.ErrNotFound) && errors.Is(err, rag.ErrNoEmbeddings)
			},
		},
		{
			name: "model failure",
			req:  service.SendMessageRequest{CaseID: 3, SessionID: 4, Message: "hi"},
			mockSetup: func(d *chatDeps) {
				d.sessions.EXPECT().GetSession(ctx, int64(4)).Return(&storage.Session{ID: 4, CaseID: 3}, nil)
				d.sessions.EXPECT().Append(ctx, int64(4), storage.RoleUser, "hi").Return(&storage.Message{}, nil)
				d.engine.EXPECT().Answer(ctx, gomock.Any()).Return(rag.AnswerResponse{}, rag.ErrExternalService)
			},
			checkErrType: func(err error) bool { return errors.Is(err, service.ErrExternalService) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newChatService(t)
			tt.mockSetup(d)

			resp, err := d.svc.SendMessage(ctx, tt.req)
			if tt.checkErrType != nil {
				if err == nil || !tt.checkErrType(err) {
					t.Fatalf("SendMessage() error = %v, unexpected type", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SendMessage() error = %v", err)
			}
			if resp.Answer != tt.wantAnswer {
				t.Errorf("Answer = %q, want %q", resp.Answer, tt.wantAnswer)
			}
		})
	}
}

func TestChatService_CloseSession(t *testing.T) {
	d := newChatService(t)
	ctx := testContext()

	d.sessions.EXPECT().GetSession(ctx, int64(4)).Return(&storage.Session{ID: 4, CaseID: 3}, nil)
	d.sessions.EXPECT().CloseSession(ctx, int64(4)).Return(nil)

	if err := d.svc.CloseSession(ctx, 3, 4); err != nil {
		t.Fatalf("CloseSession() error = %v", err)
	}
}
