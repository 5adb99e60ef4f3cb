package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMetadataRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c, _ := seedCaseFile(t, db)
	repo := NewMetadataRepo(db)

	filing := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	deadline := true
	m := &CaseMetadata{
		CaseID:              c.ID,
		Parties:             MapParties(map[string]string{"plaintiff": "Alice", "defendant": "Bob"}),
		CourtName:           strPtr("Superior Court"),
		FilingDate:          &filing,
		ApproachingDeadline: &deadline,
		CaseDescription:     strPtr("Breach of contract."),
	}
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if m.ID == 0 {
		t.Error("Create() should set ID")
	}

	got, err := repo.GetByCase(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByCase() error = %v", err)
	}
	if !got.Parties.Equal(m.Parties) {
		t.Errorf("Parties = %+v, want %+v", got.Parties, m.Parties)
	}
	if got.CourtName == nil || *got.CourtName != "Superior Court" {
		t.Errorf("CourtName = %v", got.CourtName)
	}
	if got.FilingDate == nil || !got.FilingDate.Equal(filing) {
		t.Errorf("FilingDate = %v, want %v", got.FilingDate, filing)
	}
	if got.NextCourtDate != nil || got.Judge != nil || got.Attorney != nil || got.StrongEvidence != nil {
		t.Errorf("unset fields should stay nil: %+v", got)
	}
	if got.ApproachingDeadline == nil || !*got.ApproachingDeadline {
		t.Errorf("ApproachingDeadline = %v, want true", got.ApproachingDeadline)
	}
	if got.UpdatedAt != nil {
		t.Errorf("UpdatedAt = %v, want nil before first update", got.UpdatedAt)
	}
}

func TestMetadataRepo_Create_Conflict(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c, _ := seedCaseFile(t, db)
	repo := NewMetadataRepo(db)

	if err := repo.Create(ctx, &CaseMetadata{CaseID: c.ID}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, &CaseMetadata{CaseID: c.ID}); !errors.Is(err, ErrConflict) {
		t.Errorf("second Create() error = %v, want ErrConflict", err)
	}
}

func TestMetadataRepo_Update(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c, _ := seedCaseFile(t, db)
	repo := NewMetadataRepo(db)

	if err := repo.Update(ctx, &CaseMetadata{CaseID: c.ID}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() without record error = %v, want ErrNotFound", err)
	}

	m := &CaseMetadata{CaseID: c.ID, Parties: TextParties("Alice v. Bob")}
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	m.Parties = ListParties("Alice v. Bob", "Alice v. Carol")
	m.Judge = strPtr("Hon. Smith")
	if err := repo.Update(ctx, m); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByCase(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByCase() error = %v", err)
	}
	if got.Parties.Kind != PartiesList || len(got.Parties.List) != 2 {
		t.Errorf("Parties = %+v, want two-element list", got.Parties)
	}
	if got.Judge == nil || *got.Judge != "Hon. Smith" {
		t.Errorf("Judge = %v", got.Judge)
	}
	if got.UpdatedAt == nil {
		t.Error("UpdatedAt should be set after update")
	}
}

func TestMetadataRepo_RunInTx(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c, _ := seedCaseFile(t, db)
	repo := NewMetadataRepo(db)

	boom := errors.New("boom")
	err := repo.RunInTx(ctx, func(store MetadataStore) error {
		if err := store.Create(ctx, &CaseMetadata{CaseID: c.ID, Judge: strPtr("rolled back")}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("RunInTx() error = %v, want boom", err)
	}
	if _, err := repo.GetByCase(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("record survived rollback: %v", err)
	}

	err = repo.RunInTx(ctx, func(store MetadataStore) error {
		return store.Create(ctx, &CaseMetadata{CaseID: c.ID, Judge: strPtr("committed")})
	})
	if err != nil {
		t.Fatalf("RunInTx() error = %v", err)
	}
	got, err := repo.GetByCase(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByCase() error = %v", err)
	}
	if *got.Judge != "committed" {
		t.Errorf("Judge = %q, want committed", *got.Judge)
	}
}
