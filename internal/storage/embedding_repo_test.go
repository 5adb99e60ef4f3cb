package storage

import (
	"context"
	"errors"
	"testing"
)

func TestEmbeddingRepo_InsertAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c, f := seedCaseFile(t, db)
	f2, err := NewFileRepo(db).Create(ctx, c.ID, "answer.docx", "")
	if err != nil {
		t.Fatalf("Create file error = %v", err)
	}
	repo := NewEmbeddingRepo(db)

	// ids deliberately not in lexical order so insertion order is observable
	if err := repo.InsertBatch(ctx, []EmbeddingRecord{
		{ID: "zz", FileID: f.ID, ChunkIndex: 0, ChunkText: "first", Vector: []float32{0.5, -1.25}},
		{ID: "aa", FileID: f.ID, ChunkIndex: 1, ChunkText: "second", Vector: []float32{1, 2}, Metadata: `{"page":2}`},
	}); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}
	if err := repo.InsertBatch(ctx, []EmbeddingRecord{
		{ID: "mm", FileID: f2.ID, ChunkIndex: 0, ChunkText: "third", Vector: []float32{3, 4}},
	}); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	byCase, err := repo.ListByCase(ctx, c.ID)
	if err != nil {
		t.Fatalf("ListByCase() error = %v", err)
	}
	wantIDs := []string{"zz", "aa", "mm"}
	if len(byCase) != len(wantIDs) {
		t.Fatalf("ListByCase() returned %d records, want %d", len(byCase), len(wantIDs))
	}
	for i, rec := range byCase {
		if rec.ID != wantIDs[i] {
			t.Errorf("ListByCase()[%d].ID = %s, want %s", i, rec.ID, wantIDs[i])
		}
		if rec.CaseID != c.ID {
			t.Errorf("ListByCase()[%d].CaseID = %d, want %d", i, rec.CaseID, c.ID)
		}
	}
	if v := byCase[0].Vector; len(v) != 2 || v[0] != 0.5 || v[1] != -1.25 {
		t.Errorf("vector round trip = %v", v)
	}
	if byCase[1].Metadata != `{"page":2}` {
		t.Errorf("metadata = %q", byCase[1].Metadata)
	}

	byFile, err := repo.ListByFile(ctx, f2.ID)
	if err != nil {
		t.Fatalf("ListByFile() error = %v", err)
	}
	if len(byFile) != 1 || byFile[0].ChunkText != "third" {
		t.Errorf("ListByFile() = %+v", byFile)
	}
}

func TestEmbeddingRepo_ListEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmbeddingRepo(db)

	recs, err := repo.ListByCase(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByCase() error = %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("ListByCase() = %v, want empty non-nil slice", recs)
	}
}

func TestEmbeddingRepo_InsertBatch_Atomic(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	_, f := seedCaseFile(t, db)
	repo := NewEmbeddingRepo(db)

	if err := repo.InsertBatch(ctx, []EmbeddingRecord{
		{ID: "dup", FileID: f.ID, ChunkText: "a", Vector: []float32{1}},
	}); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	err := repo.InsertBatch(ctx, []EmbeddingRecord{
		{ID: "fresh", FileID: f.ID, ChunkText: "b", Vector: []float32{1}},
		{ID: "dup", FileID: f.ID, ChunkText: "c", Vector: []float32{1}},
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("InsertBatch() error = %v, want ErrConflict", err)
	}

	recs, _ := repo.ListByFile(ctx, f.ID)
	if len(recs) != 1 {
		t.Errorf("partial batch was written: %d records", len(recs))
	}

	if err := repo.InsertBatch(ctx, []EmbeddingRecord{{ID: "x", FileID: f.ID, Vector: []float32{1}}}); err == nil {
		t.Error("InsertBatch() with empty chunk text should fail")
	}
}
