package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"casebrief/internal/casemeta"
	"casebrief/internal/indexer"
	"casebrief/internal/service"
	"casebrief/internal/service/mocks"
	"casebrief/internal/storage"

	"go.uber.org/mock/gomock"
)

func TestCaseHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCaseService(ctrl)
	handler := NewCaseHandler(svc)

	svc.EXPECT().CreateCase(gomock.Any(), service.CreateCaseRequest{Name: "Doe v. Roe"}).
		Return(&storage.Case{ID: 1, CaseNo: "CASE-20260101-1", Name: "Doe v. Roe"}, nil)

	w := httptest.NewRecorder()
	handler.Create(w, newRequest(http.MethodPost, "/api/cases", `{"name":"Doe v. Roe"}`, nil))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	var resp CaseResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CaseNo != "CASE-20260101-1" {
		t.Errorf("CaseNo = %q", resp.CaseNo)
	}
}

func TestCaseHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mockSetup      func(m *mocks.MockCaseService)
		expectedStatus int
	}{
		{
			name:  "defaults",
			query: "",
			mockSetup: func(m *mocks.MockCaseService) {
				m.EXPECT().ListCases(gomock.Any(), 0, 20).Return([]storage.Case{{ID: 2}, {ID: 1}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "paging",
			query: "?offset=20&limit=10",
			mockSetup: func(m *mocks.MockCaseService) {
				m.EXPECT().ListCases(gomock.Any(), 20, 10).Return([]storage.Case{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{name: "bad limit", query: "?limit=1000", mockSetup: func(m *mocks.MockCaseService) {}, expectedStatus: http.StatusBadRequest},
		{name: "bad offset", query: "?offset=x", mockSetup: func(m *mocks.MockCaseService) {}, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockCaseService(ctrl)
			tt.mockSetup(svc)

			w := httptest.NewRecorder()
			NewCaseHandler(svc).List(w, newRequest(http.MethodGet, "/api/cases"+tt.query, "", nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestCaseHandler_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCaseService(ctrl)
	svc.EXPECT().GetCase(gomock.Any(), int64(9)).Return(nil, fmt.Errorf("get: %w", service.ErrNotFound))

	w := httptest.NewRecorder()
	NewCaseHandler(svc).Get(w, newRequest(http.MethodGet, "/", "", map[string]string{"caseID": "9"}))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestCaseHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCaseService(ctrl)
	svc.EXPECT().DeleteCase(gomock.Any(), int64(2)).Return(nil)

	w := httptest.NewRecorder()
	NewCaseHandler(svc).Delete(w, newRequest(http.MethodDelete, "/", "", map[string]string{"caseID": "2"}))

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
}

func TestCaseHandler_AddFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCaseService(ctrl)

	svc.EXPECT().AddFile(gomock.Any(), service.AddFileRequest{
		CaseID: 1, Filename: "complaint.txt", ContentType: "text/plain", Text: "The plaintiff alleges",
	}).Return(service.AddFileResponse{
		File:  storage.CaseFile{ID: 7, CaseID: 1, Filename: "complaint.txt", Processed: true},
		Index: indexer.Result{FileID: 7, CaseID: 1, Chunks: 1},
	}, nil)

	body := `{"filename":"complaint.txt","content_type":"text/plain","text":"The plaintiff alleges"}`
	w := httptest.NewRecorder()
	NewCaseHandler(svc).AddFile(w, newRequest(http.MethodPost, "/", body, map[string]string{"caseID": "1"}))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	var resp AddFileResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.File.Processed || resp.Index.Chunks != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestCaseHandler_ProcessFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCaseService(ctrl)

	court := "Superior Court"
	filed := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	svc.EXPECT().ProcessFile(gomock.Any(), int64(1), int64(7)).Return(&storage.CaseMetadata{
		CaseID:     1,
		Parties:    storage.ListParties("Alice", "Bob"),
		CourtName:  &court,
		FilingDate: &filed,
	}, nil)

	w := httptest.NewRecorder()
	NewCaseHandler(svc).ProcessFile(w, newRequest(http.MethodPost, "/", "", map[string]string{"caseID": "1", "fileID": "7"}))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["filing_date"] != "2024-03-01" {
		t.Errorf("filing_date = %v", resp["filing_date"])
	}
	if parties, ok := resp["parties"].([]any); !ok || len(parties) != 2 {
		t.Errorf("parties = %v", resp["parties"])
	}
	if resp["judge"] != nil {
		t.Errorf("judge = %v, want null", resp["judge"])
	}
}

func TestCaseHandler_GetMetadata_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCaseService(ctrl)
	svc.EXPECT().GetMetadata(gomock.Any(), int64(1)).Return(nil, fmt.Errorf("get: %w", service.ErrNotFound))

	w := httptest.NewRecorder()
	NewCaseHandler(svc).GetMetadata(w, newRequest(http.MethodGet, "/", "", map[string]string{"caseID": "1"}))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestCaseHandler_MergeMetadata(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCaseService(ctrl)

	judge := "Judge Smith"
	svc.EXPECT().MergeMetadata(gomock.Any(), int64(1), casemeta.Payload{"judge": "Judge Smith", "approaching_deadline": true}).
		Return(&storage.CaseMetadata{CaseID: 1, Judge: &judge}, nil)

	body := `{"judge":"Judge Smith","approaching_deadline":true}`
	w := httptest.NewRecorder()
	NewCaseHandler(svc).MergeMetadata(w, newRequest(http.MethodPost, "/", body, map[string]string{"caseID": "1"}))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp MetadataResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Judge == nil || *resp.Judge != judge {
		t.Errorf("Judge = %v", resp.Judge)
	}
}
