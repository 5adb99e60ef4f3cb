package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestCaseRepo_Create(t *testing.T) {
	db := newTestDB(t)
	repo := NewCaseRepo(db)
	ctx := context.Background()

	c, err := repo.Create(ctx, "  Doe v. Roe ", "desc")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.Name != "Doe v. Roe" {
		t.Errorf("Create() name = %q, want trimmed", c.Name)
	}
	wantNo := fmt.Sprintf("CASE-%s-%d", time.Now().UTC().Format("20060102"), c.ID)
	if c.CaseNo != wantNo {
		t.Errorf("Create() case_no = %q, want %q", c.CaseNo, wantNo)
	}

	got, err := repo.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.CaseNo != c.CaseNo || got.Description != "desc" {
		t.Errorf("GetByID() = %+v, want %+v", got, c)
	}

	if _, err := repo.Create(ctx, "   ", ""); err == nil {
		t.Error("Create() with blank name should fail")
	}
}

func TestCaseRepo_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	if _, err := NewCaseRepo(db).GetByID(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestCaseRepo_List(t *testing.T) {
	db := newTestDB(t)
	repo := NewCaseRepo(db)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if _, err := repo.Create(ctx, name, ""); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	cases, err := repo.List(ctx, 0, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("List() returned %d cases, want 2", len(cases))
	}
	if cases[0].Name != "third" || cases[1].Name != "second" {
		t.Errorf("List() order = [%s %s], want newest first", cases[0].Name, cases[1].Name)
	}
}

func TestCaseRepo_Delete_Cascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c, f := seedCaseFile(t, db)

	if err := NewEmbeddingRepo(db).InsertBatch(ctx, []EmbeddingRecord{
		{ID: "e1", FileID: f.ID, ChunkText: "text", Vector: []float32{1}},
	}); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}
	if err := NewMetadataRepo(db).Create(ctx, &CaseMetadata{CaseID: c.ID, Judge: strPtr("Judge Judy")}); err != nil {
		t.Fatalf("Create metadata error = %v", err)
	}

	if err := NewCaseRepo(db).Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	for _, table := range []string{"case_files", "embeddings", "case_metadata"} {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("%s has %d rows after case delete, want 0", table, count)
		}
	}

	if err := NewCaseRepo(db).Delete(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestFileRepo(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c, f := seedCaseFile(t, db)
	repo := NewFileRepo(db)

	got, err := repo.GetByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Processed {
		t.Error("new file should not be processed")
	}

	if err := repo.MarkProcessed(ctx, f.ID); err != nil {
		t.Fatalf("MarkProcessed() error = %v", err)
	}
	got, _ = repo.GetByID(ctx, f.ID)
	if !got.Processed {
		t.Error("MarkProcessed() did not persist")
	}

	files, err := repo.ListByCase(ctx, c.ID)
	if err != nil {
		t.Fatalf("ListByCase() error = %v", err)
	}
	if len(files) != 1 || files[0].Filename != "complaint.pdf" {
		t.Errorf("ListByCase() = %+v", files)
	}

	if err := repo.MarkProcessed(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("MarkProcessed(missing) error = %v, want ErrNotFound", err)
	}
}
