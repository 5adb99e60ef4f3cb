package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

// run executes casectl with args against a database in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DB_PATH", filepath.Join(dir, "casebrief.db"))
	t.Setenv("EMBEDDING_VECTOR_SIZE", "4")
	t.Setenv("EMBEDDING_SOURCE", "sqlite")
	t.Setenv("QDRANT_URL", "")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := execute(context.Background())
	return out.String(), err
}

func TestCaseCreateAndList(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "case", "create", "Doe v. Roe", "--description", "contract dispute")
	if err != nil {
		t.Fatalf("case create error = %v", err)
	}
	if !strings.Contains(out, "CASE-") || !strings.Contains(out, "Doe v. Roe") {
		t.Errorf("case create output = %q", out)
	}

	out, err = run(t, dir, "case", "list")
	if err != nil {
		t.Fatalf("case list error = %v", err)
	}
	if !strings.Contains(out, "Doe v. Roe") {
		t.Errorf("case list output = %q", out)
	}
}

func TestMerge(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, dir, "case", "create", "Doe v. Roe"); err != nil {
		t.Fatalf("case create error = %v", err)
	}

	out, err := run(t, dir, "merge", "1", `{"court_name":"Superior Court","parties":["Alice","Bob"]}`)
	if err != nil {
		t.Fatalf("merge error = %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(out), &record); err != nil {
		t.Fatalf("merge output is not JSON: %v (%q)", err, out)
	}
	if record["CourtName"] != "Superior Court" {
		t.Errorf("CourtName = %v", record["CourtName"])
	}

	if _, err := run(t, dir, "merge", "1", `{"unknown":"x"}`); err == nil {
		t.Error("expected error for payload without known fields")
	}
	if _, err := run(t, dir, "merge", "1", `[1,2]`); err == nil {
		t.Error("expected error for non-object payload")
	}
}

func TestFailedCommandClosesApp(t *testing.T) {
	dir := t.TempDir()

	if _, err := run(t, dir, "merge", "1", `{"unknown":"x"}`); err == nil {
		t.Fatal("expected error for payload without known fields")
	}
	if application != nil {
		t.Fatal("application should be closed after a failed command")
	}

	// A closed app releases the database, so the next command can open it again.
	if _, err := run(t, dir, "case", "list"); err != nil {
		t.Fatalf("case list after failure error = %v", err)
	}
	if application != nil {
		t.Error("application should be closed after a successful command")
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		value   string
		want    int64
		wantErr bool
	}{
		{value: "7", want: 7},
		{value: "0", wantErr: true},
		{value: "-1", wantErr: true},
		{value: "seven", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := parseID("case id", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseID(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseID(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}
