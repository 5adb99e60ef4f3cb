package casemeta

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"casebrief/internal/storage"
	storage_mocks "casebrief/internal/storage/mocks"

	"go.uber.org/mock/gomock"
)

var (
	_ storage.MetadataStore      = (*storage_mocks.MockMetadataStore)(nil)
	_ storage.MetadataRepository = (*storage_mocks.MockMetadataRepository)(nil)
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newMergeFixture opens a migrated database with one case and returns a Merger over it.
func newMergeFixture(t *testing.T) (*Merger, *sql.DB, int64) {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "merge.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	c, err := storage.NewCaseRepo(db).Create(context.Background(), "Alice v. Bob", "")
	if err != nil {
		t.Fatalf("create case error = %v", err)
	}
	return NewMerger(storage.NewMetadataRepo(db)), db, c.ID
}

func mustMerge(t *testing.T, m *Merger, caseID int64, p Payload) *storage.CaseMetadata {
	t.Helper()
	rec, err := m.Merge(context.Background(), caseID, p)
	if err != nil {
		t.Fatalf("Merge(%v) error = %v", p, err)
	}
	if rec == nil {
		t.Fatal("Merge() returned nil record with nil error")
	}
	return rec
}

func str(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func TestMerger_FirstMergeCreatesRecord(t *testing.T) {
	m, db, caseID := newMergeFixture(t)

	mustMerge(t, m, caseID, Payload{
		FieldCourtName:           "Superior Court",
		FieldApproachingDeadline: "true",
	})

	got, err := storage.NewMetadataRepo(db).GetByCase(context.Background(), caseID)
	if err != nil {
		t.Fatalf("GetByCase() error = %v", err)
	}
	if str(got.CourtName) != "Superior Court" {
		t.Errorf("CourtName = %s", str(got.CourtName))
	}
	if got.ApproachingDeadline == nil || !*got.ApproachingDeadline {
		t.Errorf("ApproachingDeadline = %v, want true", got.ApproachingDeadline)
	}
	if !got.Parties.IsEmpty() || got.Judge != nil || got.Attorney != nil || got.FilingDate != nil ||
		got.NextCourtDate != nil || got.StrongEvidence != nil || got.CaseDescription != nil {
		t.Errorf("other fields should be null: %+v", got)
	}
}

func TestMerger_AppendDeduplicates(t *testing.T) {
	m, _, caseID := newMergeFixture(t)

	mustMerge(t, m, caseID, Payload{FieldStrongEvidence: "Exhibit A"})
	rec := mustMerge(t, m, caseID, Payload{FieldStrongEvidence: "Exhibit A"})

	if str(rec.StrongEvidence) != "Exhibit A" {
		t.Errorf("StrongEvidence = %q, want %q", str(rec.StrongEvidence), "Exhibit A")
	}
}

func TestMerger_ConflictingPartiesBecomeList(t *testing.T) {
	m, _, caseID := newMergeFixture(t)

	mustMerge(t, m, caseID, Payload{FieldParties: "Alice v. Bob"})
	rec := mustMerge(t, m, caseID, Payload{FieldParties: "Alice v. Carol"})

	want := storage.ListParties("Alice v. Bob", "Alice v. Carol")
	if !rec.Parties.Equal(want) {
		t.Errorf("Parties = %+v, want %+v", rec.Parties, want)
	}
}

func TestMerger_Idempotent(t *testing.T) {
	m, _, caseID := newMergeFixture(t)
	payload := Payload{
		FieldParties:             map[string]any{"plaintiff": "Alice", "defendant": "Bob"},
		FieldCourtName:           "Superior Court",
		FieldFilingDate:          "2024-03-15",
		FieldJudge:               "Hon. Smith",
		FieldAttorney:            "Jane Doe",
		FieldNextCourtDate:       "Hearing set for 2024-06-01.",
		FieldStrongEvidence:      "Signed contract.",
		FieldApproachingDeadline: false,
		FieldCaseDescription:     "Breach of a supply contract.",
	}

	first := mustMerge(t, m, caseID, payload)
	second := mustMerge(t, m, caseID, payload)

	if !first.Parties.Equal(second.Parties) ||
		str(first.CourtName) != str(second.CourtName) ||
		str(first.Judge) != str(second.Judge) ||
		str(first.Attorney) != str(second.Attorney) ||
		!first.FilingDate.Equal(*second.FilingDate) ||
		!first.NextCourtDate.Equal(*second.NextCourtDate) ||
		*first.ApproachingDeadline != *second.ApproachingDeadline ||
		str(first.StrongEvidence) != str(second.StrongEvidence) ||
		str(first.CaseDescription) != str(second.CaseDescription) {
		t.Errorf("second merge changed the record:\nfirst  %+v\nsecond %+v", first, second)
	}
	if second.NextCourtDate.Format(storage.DateLayout) != "2024-06-01" {
		t.Errorf("NextCourtDate = %v", second.NextCourtDate)
	}
}

func TestMerger_ScalarsFillOnce(t *testing.T) {
	m, _, caseID := newMergeFixture(t)

	mustMerge(t, m, caseID, Payload{FieldCourtName: "Superior Court", FieldFilingDate: "2024-03-15", FieldApproachingDeadline: true})
	rec := mustMerge(t, m, caseID, Payload{
		FieldCourtName:           "District Court",
		FieldFilingDate:          "2025-01-01",
		FieldApproachingDeadline: false,
		FieldJudge:               "Hon. Smith",
	})

	if str(rec.CourtName) != "Superior Court" {
		t.Errorf("CourtName = %s, want Superior Court", str(rec.CourtName))
	}
	if rec.FilingDate.Format(storage.DateLayout) != "2024-03-15" {
		t.Errorf("FilingDate = %v", rec.FilingDate)
	}
	if !*rec.ApproachingDeadline {
		t.Error("ApproachingDeadline was overwritten")
	}
	if str(rec.Judge) != "Hon. Smith" {
		t.Errorf("Judge = %s, want fill of empty field", str(rec.Judge))
	}
}

func TestMerger_AppendMonotonic(t *testing.T) {
	m, _, caseID := newMergeFixture(t)
	texts := []string{"Filed in March.", "Defendant answered in April.", "Discovery closes in June."}

	var rec *storage.CaseMetadata
	for _, text := range texts {
		rec = mustMerge(t, m, caseID, Payload{FieldCaseDescription: text})
	}

	want := strings.Join(texts, "\n\n")
	if str(rec.CaseDescription) != want {
		t.Errorf("CaseDescription = %q, want %q", str(rec.CaseDescription), want)
	}
}

func TestMerger_EmptyPayload(t *testing.T) {
	m, db, caseID := newMergeFixture(t)

	for _, p := range []Payload{{}, {FieldJudge: "null", FieldAttorney: "None", FieldCourtName: ""}, {"other": "x"}} {
		rec, err := m.Merge(context.Background(), caseID, p)
		if !errors.Is(err, ErrEmptyPayload) || rec != nil {
			t.Errorf("Merge(%v) = %v, %v; want ErrEmptyPayload", p, rec, err)
		}
	}
	if _, err := storage.NewMetadataRepo(db).GetByCase(context.Background(), caseID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("empty payload created a record: %v", err)
	}
}

func TestMerger_PersistenceFailureRollsBack(t *testing.T) {
	m, db, _ := newMergeFixture(t)

	// No such case: the foreign key rejects the insert.
	rec, err := m.Merge(context.Background(), 9999, Payload{FieldJudge: "Hon. Smith"})
	if !errors.Is(err, ErrMergeFailed) || rec != nil {
		t.Fatalf("Merge() = %v, %v; want ErrMergeFailed", rec, err)
	}
	if _, err := storage.NewMetadataRepo(db).GetByCase(context.Background(), 9999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("failed merge left a record: %v", err)
	}
}

func TestMerger_ConcurrentMergesSameCase(t *testing.T) {
	m, _, caseID := newMergeFixture(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := m.Merge(context.Background(), caseID, Payload{FieldStrongEvidence: fmt.Sprintf("Exhibit %d", i)})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent Merge() error = %v", err)
		}
	}

	rec := mustMerge(t, m, caseID, Payload{FieldJudge: "Hon. Smith"})
	for i := 0; i < n; i++ {
		if !strings.Contains(str(rec.StrongEvidence), fmt.Sprintf("Exhibit %d", i)) {
			t.Errorf("evidence from merge %d lost: %q", i, str(rec.StrongEvidence))
		}
	}
}

func TestMerger_ConflictFallsBackToUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := storage_mocks.NewMockMetadataRepository(ctrl)
	store := storage_mocks.NewMockMetadataStore(ctrl)
	m := NewMerger(repo)
	ctx := context.Background()

	existing := &storage.CaseMetadata{ID: 1, CaseID: 5, Judge: strPtr("Hon. Smith")}
	runFn := func(_ context.Context, fn func(storage.MetadataStore) error) error {
		return fn(store)
	}

	gomock.InOrder(
		repo.EXPECT().RunInTx(ctx, gomock.Any()).DoAndReturn(runFn),
		store.EXPECT().GetByCase(ctx, int64(5)).Return(nil, storage.ErrNotFound),
		store.EXPECT().Create(ctx, gomock.Any()).Return(fmt.Errorf("case 5 metadata: %w", storage.ErrConflict)),
		repo.EXPECT().RunInTx(ctx, gomock.Any()).DoAndReturn(runFn),
		store.EXPECT().GetByCase(ctx, int64(5)).Return(existing, nil),
		store.EXPECT().Update(ctx, existing).Return(nil),
	)

	rec, err := m.Merge(ctx, 5, Payload{FieldJudge: "Hon. Jones", FieldAttorney: "Jane Doe"})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if str(rec.Judge) != "Hon. Smith" || str(rec.Attorney) != "Jane Doe" {
		t.Errorf("record = %+v", rec)
	}
}

func TestMerger_TransactionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := storage_mocks.NewMockMetadataRepository(ctrl)
	m := NewMerger(repo)

	repo.EXPECT().RunInTx(gomock.Any(), gomock.Any()).Return(errors.New("database is locked"))

	rec, err := m.Merge(context.Background(), 5, Payload{FieldJudge: "Hon. Jones"})
	if !errors.Is(err, ErrMergeFailed) || rec != nil {
		t.Errorf("Merge() = %v, %v; want ErrMergeFailed", rec, err)
	}
}

func TestMergeParties(t *testing.T) {
	tests := []struct {
		name     string
		existing storage.Parties
		incoming storage.Parties
		want     storage.Parties
	}{
		{
			name:     "adopt when empty",
			existing: storage.Parties{},
			incoming: storage.TextParties("Alice v. Bob"),
			want:     storage.TextParties("Alice v. Bob"),
		},
		{
			name:     "empty incoming keeps existing",
			existing: storage.TextParties("Alice v. Bob"),
			incoming: storage.ListParties(),
			want:     storage.TextParties("Alice v. Bob"),
		},
		{
			name:     "equal text after trim",
			existing: storage.TextParties("Alice v. Bob"),
			incoming: storage.TextParties("  Alice v. Bob "),
			want:     storage.TextParties("Alice v. Bob"),
		},
		{
			name:     "different text",
			existing: storage.TextParties("Alice v. Bob"),
			incoming: storage.TextParties("Alice v. Carol"),
			want:     storage.ListParties("Alice v. Bob", "Alice v. Carol"),
		},
		{
			name:     "map union keeps existing values",
			existing: storage.MapParties(map[string]string{"plaintiff": "Alice", "defendant": ""}),
			incoming: storage.MapParties(map[string]string{"plaintiff": "Alicia", "defendant": "Bob", "counsel": "Jane"}),
			want:     storage.MapParties(map[string]string{"plaintiff": "Alice", "defendant": "Bob", "counsel": "Jane"}),
		},
		{
			name:     "list appends missing items",
			existing: storage.ListParties("Alice", "Bob"),
			incoming: storage.ListParties("Bob", "Carol"),
			want:     storage.ListParties("Alice", "Bob", "Carol"),
		},
		{
			name:     "list appends scalar",
			existing: storage.ListParties("Alice"),
			incoming: storage.TextParties("Bob"),
			want:     storage.ListParties("Alice", "Bob"),
		},
		{
			name:     "list ignores present scalar",
			existing: storage.ListParties("Alice", "Bob"),
			incoming: storage.TextParties("Bob"),
			want:     storage.ListParties("Alice", "Bob"),
		},
		{
			name:     "text and map collapse to list",
			existing: storage.TextParties("Alice v. Bob"),
			incoming: storage.MapParties(map[string]string{"plaintiff": "Alice"}),
			want:     storage.ListParties("Alice v. Bob", "plaintiff: Alice"),
		},
		{
			name:     "map and list collapse to list",
			existing: storage.MapParties(map[string]string{"plaintiff": "Alice"}),
			incoming: storage.ListParties("Bob", "Carol"),
			want:     storage.ListParties("plaintiff: Alice", "Bob; Carol"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeParties(tt.existing, tt.incoming)
			if got.Kind != tt.want.Kind || !got.Equal(tt.want) {
				t.Errorf("mergeParties() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAppendText(t *testing.T) {
	tests := []struct {
		existing, incoming, want string
	}{
		{"", "  Exhibit A ", "Exhibit A"},
		{"Exhibit A", "", "Exhibit A"},
		{"Exhibit A", "   ", "Exhibit A"},
		{"Exhibit A and Exhibit B", "Exhibit B", "Exhibit A and Exhibit B"},
		{"Exhibit A", "Exhibit C", "Exhibit A\n\nExhibit C"},
	}
	for _, tt := range tests {
		if got := appendText(tt.existing, tt.incoming); got != tt.want {
			t.Errorf("appendText(%q, %q) = %q, want %q", tt.existing, tt.incoming, got, tt.want)
		}
	}
}

func strPtr(s string) *string { return &s }
