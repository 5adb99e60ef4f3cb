package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CaseRepo provides methods for case operations.
type CaseRepo struct {
	db *sql.DB
}

// NewCaseRepo creates a new CaseRepo.
func NewCaseRepo(db *sql.DB) *CaseRepo {
	return &CaseRepo{db: db}
}

// Create inserts a case and assigns its case number ("CASE-YYYYMMDD-<id>")
// from the generated id, in a single transaction.
func (r *CaseRepo) Create(ctx context.Context, name, description string) (*Case, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("case name is required")
	}

	now := time.Now().UTC()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// case_no is unique, so a placeholder derived from the timestamp is used until the id is known
	placeholder := fmt.Sprintf("pending-%d", now.UnixNano())
	result, err := tx.ExecContext(ctx,
		"INSERT INTO cases (case_no, case_name, description, created_at) VALUES (?, ?, ?, ?)",
		placeholder, name, description, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert case: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get case id: %w", err)
	}

	caseNo := fmt.Sprintf("CASE-%s-%d", now.Format("20060102"), id)
	if _, err := tx.ExecContext(ctx, "UPDATE cases SET case_no = ? WHERE id = ?", caseNo, id); err != nil {
		return nil, fmt.Errorf("failed to set case number: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit case: %w", err)
	}

	return &Case{
		ID:          id,
		CaseNo:      caseNo,
		Name:        name,
		Description: description,
		CreatedAt:   now,
	}, nil
}

// GetByID returns a case by id. Returns ErrNotFound if not found.
func (r *CaseRepo) GetByID(ctx context.Context, id int64) (*Case, error) {
	var c Case
	var description sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT id, case_no, case_name, description, created_at FROM cases WHERE id = ?",
		id,
	).Scan(&c.ID, &c.CaseNo, &c.Name, &description, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query case: %w", err)
	}
	c.Description = description.String
	return &c, nil
}

// List returns cases newest first.
func (r *CaseRepo) List(ctx context.Context, offset, limit int) ([]Case, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, case_no, case_name, description, created_at FROM cases ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cases: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var cases []Case
	for rows.Next() {
		var c Case
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.CaseNo, &c.Name, &description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}
		c.Description = description.String
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return cases, nil
}

// Delete removes a case; files, embeddings, sessions and metadata cascade.
func (r *CaseRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM cases WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete case: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
