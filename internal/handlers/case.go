package handlers

import (
	"net/http"
	"strconv"
	"time"

	"casebrief/internal/casemeta"
	"casebrief/internal/indexer"
	"casebrief/internal/service"
	"casebrief/internal/storage"
)

// CaseHandler handles case, file and metadata requests.
type CaseHandler struct {
	caseService service.CaseService
}

// NewCaseHandler creates a new CaseHandler.
func NewCaseHandler(caseService service.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

// CreateCaseRequest represents the HTTP request payload for a new case.
type CreateCaseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CaseResponse represents a case.
type CaseResponse struct {
	ID          int64     `json:"id"`
	CaseNo      string    `json:"case_no"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AddFileRequest carries the extracted text of a document.
type AddFileRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Text        string `json:"text"`
}

// FileResponse represents a case file.
type FileResponse struct {
	ID          int64     `json:"id"`
	CaseID      int64     `json:"case_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type,omitempty"`
	Processed   bool      `json:"processed"`
	CreatedAt   time.Time `json:"created_at"`
}

// AddFileResponse is the stored file and its indexing outcome.
type AddFileResponse struct {
	File  FileResponse   `json:"file"`
	Index indexer.Result `json:"index"`
}

// MetadataResponse is the structured record of a case.
type MetadataResponse struct {
	CaseID              int64           `json:"case_id"`
	Parties             storage.Parties `json:"parties"`
	CourtName           *string         `json:"court_name"`
	FilingDate          *string         `json:"filing_date"`
	Judge               *string         `json:"judge"`
	Attorney            *string         `json:"attorney"`
	NextCourtDate       *string         `json:"next_court_date"`
	StrongEvidence      *string         `json:"strong_evidence"`
	ApproachingDeadline *bool           `json:"approaching_deadline"`
	CaseDescription     *string         `json:"case_description"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           *time.Time      `json:"updated_at,omitempty"`
}

// Create handles POST /api/cases.
func (h *CaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateCaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.caseService.CreateCase(ctx, service.CreateCaseRequest{Name: req.Name, Description: req.Description})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create case")
		return
	}
	writeJSON(w, ctx, http.StatusCreated, toCase(c))
}

// List handles GET /api/cases?offset=&limit=.
func (h *CaseHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	offset, limit := 0, 20
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid offset")
			return
		}
		offset = n
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	cases, err := h.caseService.ListCases(ctx, offset, limit)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list cases")
		return
	}

	out := make([]CaseResponse, len(cases))
	for i := range cases {
		out[i] = toCase(&cases[i])
	}
	writeJSON(w, ctx, http.StatusOK, out)
}

// Get handles GET /api/cases/{caseID}.
func (h *CaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, ok := idParam(w, r, "caseID")
	if !ok {
		return
	}

	c, err := h.caseService.GetCase(ctx, caseID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get case")
		return
	}
	writeJSON(w, ctx, http.StatusOK, toCase(c))
}

// Delete handles DELETE /api/cases/{caseID}.
func (h *CaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, ok := idParam(w, r, "caseID")
	if !ok {
		return
	}

	if err := h.caseService.DeleteCase(ctx, caseID); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete case")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddFile handles POST /api/cases/{caseID}/files.
func (h *CaseHandler) AddFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, ok := idParam(w, r, "caseID")
	if !ok {
		return
	}

	var req AddFileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.caseService.AddFile(ctx, service.AddFileRequest{
		CaseID:      caseID,
		Filename:    req.Filename,
		ContentType: req.ContentType,
		Text:        req.Text,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to add file")
		return
	}
	writeJSON(w, ctx, http.StatusCreated, AddFileResponse{File: toFile(resp.File), Index: resp.Index})
}

// ListFiles handles GET /api/cases/{caseID}/files.
func (h *CaseHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, ok := idParam(w, r, "caseID")
	if !ok {
		return
	}

	files, err := h.caseService.ListFiles(ctx, caseID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list files")
		return
	}

	out := make([]FileResponse, len(files))
	for i, f := range files {
		out[i] = toFile(f)
	}
	writeJSON(w, ctx, http.StatusOK, out)
}

// ProcessFile handles POST /api/cases/{caseID}/files/{fileID}/metadata.
func (h *CaseHandler) ProcessFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, ok := idParam(w, r, "caseID")
	if !ok {
		return
	}
	fileID, ok := idParam(w, r, "fileID")
	if !ok {
		return
	}

	record, err := h.caseService.ProcessFile(ctx, caseID, fileID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to process file")
		return
	}
	writeJSON(w, ctx, http.StatusOK, toMetadata(record))
}

// MergeMetadata handles POST /api/cases/{caseID}/metadata with a JSON
// object of metadata fields.
func (h *CaseHandler) MergeMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, ok := idParam(w, r, "caseID")
	if !ok {
		return
	}

	var payload casemeta.Payload
	if !decodeJSON(w, r, &payload) {
		return
	}

	record, err := h.caseService.MergeMetadata(ctx, caseID, payload)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to merge case metadata")
		return
	}
	writeJSON(w, ctx, http.StatusOK, toMetadata(record))
}

// GetMetadata handles GET /api/cases/{caseID}/metadata.
func (h *CaseHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, ok := idParam(w, r, "caseID")
	if !ok {
		return
	}

	record, err := h.caseService.GetMetadata(ctx, caseID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get case metadata")
		return
	}
	writeJSON(w, ctx, http.StatusOK, toMetadata(record))
}

func toCase(c *storage.Case) CaseResponse {
	return CaseResponse{
		ID:          c.ID,
		CaseNo:      c.CaseNo,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func toFile(f storage.CaseFile) FileResponse {
	return FileResponse{
		ID:          f.ID,
		CaseID:      f.CaseID,
		Filename:    f.Filename,
		ContentType: f.ContentType,
		Processed:   f.Processed,
		CreatedAt:   f.CreatedAt,
	}
}

func toMetadata(m *storage.CaseMetadata) MetadataResponse {
	return MetadataResponse{
		CaseID:              m.CaseID,
		Parties:             m.Parties,
		CourtName:           m.CourtName,
		FilingDate:          formatDate(m.FilingDate),
		Judge:               m.Judge,
		Attorney:            m.Attorney,
		NextCourtDate:       formatDate(m.NextCourtDate),
		StrongEvidence:      m.StrongEvidence,
		ApproachingDeadline: m.ApproachingDeadline,
		CaseDescription:     m.CaseDescription,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(storage.DateLayout)
	return &s
}
