package app

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"casebrief/internal/config"
	"casebrief/internal/service"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		LLMBaseURL:          "http://127.0.0.1:1",
		EmbeddingBaseURL:    "http://127.0.0.1:1",
		EmbeddingVectorSize: 4,
		EmbeddingSource:     config.EmbeddingSourceSQLite,
		DBPath:              filepath.Join(t.TempDir(), "casebrief.db"),
		QdrantCollection:    "case_chunks",
		ChunkSize:           800,
		ChunkOverlap:        100,
		LogFormat:           "text",
	}
}

func TestNew_SQLiteOnly(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = a.Close()
	}()

	if a.VectorStore != nil {
		t.Error("VectorStore should be nil without QDRANT_URL")
	}

	c, err := a.CaseService.CreateCase(ctx, service.CreateCaseRequest{Name: "Doe v. Roe"})
	if err != nil {
		t.Fatalf("CreateCase() error = %v", err)
	}
	if !strings.HasPrefix(c.CaseNo, "CASE-") {
		t.Errorf("CaseNo = %q", c.CaseNo)
	}

	view, err := a.ChatService.OpenSession(ctx, c.ID)
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	if view.Session.CaseID != c.ID || len(view.Messages) != 0 {
		t.Errorf("OpenSession() = %+v", view)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(t)
	cfg.LogFormat = "json"
	cfg.LogLevel = slog.LevelWarn

	logger := NewLogger(cfg, &buf)
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("expected JSON record, got %q", out)
	}
}
