package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_metadata_store.go -package=mocks casebrief/internal/storage MetadataStore,MetadataRepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// MetadataStore defines the case metadata operations available inside a transaction.
type MetadataStore interface {
	// GetByCase returns the metadata record of a case. Returns ErrNotFound if none exists.
	GetByCase(ctx context.Context, caseID int64) (*CaseMetadata, error)
	// Create inserts a record and sets its ID. Returns ErrConflict if the case already has one.
	Create(ctx context.Context, md *CaseMetadata) error
	// Update overwrites every field of the record identified by md.CaseID.
	Update(ctx context.Context, md *CaseMetadata) error
}

// MetadataRepository is a MetadataStore that can scope work to a transaction.
type MetadataRepository interface {
	MetadataStore
	// RunInTx calls fn with a store bound to a new transaction. The transaction
	// commits if fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(store MetadataStore) error) error
}

// MetadataRepo provides methods for case metadata operations.
// It implements the MetadataRepository interface.
type MetadataRepo struct {
	db *sql.DB
	q  dbtx
}

// NewMetadataRepo creates a new MetadataRepo.
func NewMetadataRepo(db *sql.DB) *MetadataRepo {
	return &MetadataRepo{db: db, q: db}
}

// RunInTx runs fn inside a single transaction.
func (r *MetadataRepo) RunInTx(ctx context.Context, fn func(store MetadataStore) error) error {
	if r.db == nil {
		return fmt.Errorf("nested transactions are not supported")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&MetadataRepo{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const metadataColumns = `id, case_id, parties, court_name, filing_date, judge, attorney,
	next_court_date, strong_evidence, approaching_deadline, case_description, created_at, updated_at`

// GetByCase returns the metadata record of a case. Returns ErrNotFound if none exists.
func (r *MetadataRepo) GetByCase(ctx context.Context, caseID int64) (*CaseMetadata, error) {
	var m CaseMetadata
	var court, judge, attorney, evidence, descr sql.NullString
	var filing, next sql.NullString
	var deadline sql.NullBool
	var updated sql.NullTime
	err := r.q.QueryRowContext(ctx,
		"SELECT "+metadataColumns+" FROM case_metadata WHERE case_id = ?",
		caseID,
	).Scan(&m.ID, &m.CaseID, &m.Parties, &court, &filing, &judge, &attorney,
		&next, &evidence, &deadline, &descr, &m.CreatedAt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query case metadata: %w", err)
	}

	m.CourtName = fromNullString(court)
	m.Judge = fromNullString(judge)
	m.Attorney = fromNullString(attorney)
	m.StrongEvidence = fromNullString(evidence)
	m.CaseDescription = fromNullString(descr)
	if deadline.Valid {
		v := deadline.Bool
		m.ApproachingDeadline = &v
	}
	if updated.Valid {
		t := updated.Time
		m.UpdatedAt = &t
	}
	if m.FilingDate, err = fromNullDate(filing); err != nil {
		return nil, fmt.Errorf("invalid filing_date: %w", err)
	}
	if m.NextCourtDate, err = fromNullDate(next); err != nil {
		return nil, fmt.Errorf("invalid next_court_date: %w", err)
	}
	return &m, nil
}

// Create inserts a record and sets its ID. Returns ErrConflict if the case already has one.
func (r *MetadataRepo) Create(ctx context.Context, m *CaseMetadata) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	result, err := r.q.ExecContext(ctx,
		`INSERT INTO case_metadata (case_id, parties, court_name, filing_date, judge, attorney,
			next_court_date, strong_evidence, approaching_deadline, case_description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.CaseID, m.Parties, toNullString(m.CourtName), toNullDate(m.FilingDate),
		toNullString(m.Judge), toNullString(m.Attorney), toNullDate(m.NextCourtDate),
		toNullString(m.StrongEvidence), toNullBool(m.ApproachingDeadline),
		toNullString(m.CaseDescription), m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("case %d metadata: %w", m.CaseID, ErrConflict)
		}
		return fmt.Errorf("failed to insert case metadata: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get case metadata id: %w", err)
	}
	m.ID = id
	return nil
}

// Update overwrites every field of the record identified by m.CaseID.
func (r *MetadataRepo) Update(ctx context.Context, m *CaseMetadata) error {
	now := time.Now().UTC()
	result, err := r.q.ExecContext(ctx,
		`UPDATE case_metadata SET parties = ?, court_name = ?, filing_date = ?, judge = ?, attorney = ?,
			next_court_date = ?, strong_evidence = ?, approaching_deadline = ?, case_description = ?, updated_at = ?
		WHERE case_id = ?`,
		m.Parties, toNullString(m.CourtName), toNullDate(m.FilingDate),
		toNullString(m.Judge), toNullString(m.Attorney), toNullDate(m.NextCourtDate),
		toNullString(m.StrongEvidence), toNullBool(m.ApproachingDeadline),
		toNullString(m.CaseDescription), now, m.CaseID,
	)
	if err != nil {
		return fmt.Errorf("failed to update case metadata: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	m.UpdatedAt = &now
	return nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func toNullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

func toNullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(DateLayout), Valid: true}
}

func fromNullDate(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
