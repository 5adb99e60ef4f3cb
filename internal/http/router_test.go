package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"casebrief/internal/rag"
	"casebrief/internal/service"
	"casebrief/internal/service/mocks"
	"casebrief/internal/storage"

	"go.uber.org/mock/gomock"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockCaseService, *mocks.MockChatService) {
	ctrl := gomock.NewController(t)
	caseSvc := mocks.NewMockCaseService(ctrl)
	chatSvc := mocks.NewMockChatService(ctrl)

	router := NewRouter(&Deps{
		CaseService: caseSvc,
		ChatService: chatSvc,
		DB:          okPinger{},
	})
	return router, caseSvc, chatSvc
}

func TestNewRouter(t *testing.T) {
	router, _, _ := newTestRouter(t)
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	router, caseSvc, chatSvc := newTestRouter(t)

	caseSvc.EXPECT().GetCase(gomock.Any(), int64(3)).Return(&storage.Case{ID: 3}, nil)
	caseSvc.EXPECT().ListFiles(gomock.Any(), int64(3)).Return([]storage.CaseFile{}, nil)
	caseSvc.EXPECT().Ask(gomock.Any(), service.AskRequest{CaseID: 3, Question: "Who?"}).Return(rag.AnswerResponse{Answer: "Smith"}, nil)
	caseSvc.EXPECT().GetMetadata(gomock.Any(), int64(3)).Return(&storage.CaseMetadata{CaseID: 3}, nil)
	chatSvc.EXPECT().OpenSession(gomock.Any(), int64(3)).Return(service.SessionView{Session: storage.Session{ID: 1, CaseID: 3}}, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/api/health", wantStatus: http.StatusOK},
		{name: "get case", method: http.MethodGet, path: "/api/cases/3", wantStatus: http.StatusOK},
		{name: "list files", method: http.MethodGet, path: "/api/cases/3/files", wantStatus: http.StatusOK},
		{name: "ask", method: http.MethodPost, path: "/api/cases/3/ask", body: `{"question":"Who?"}`, wantStatus: http.StatusOK},
		{name: "metadata", method: http.MethodGet, path: "/api/cases/3/metadata", wantStatus: http.StatusOK},
		{name: "open session", method: http.MethodPost, path: "/api/cases/3/chat/sessions", wantStatus: http.StatusOK},
		{name: "create case with bad body", method: http.MethodPost, path: "/api/cases", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "ask method not allowed", method: http.MethodGet, path: "/api/cases/3/ask", wantStatus: http.StatusMethodNotAllowed},
		{name: "unknown route", method: http.MethodGet, path: "/api/notes", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/cases", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
