package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// FileRepo provides methods for case file operations.
type FileRepo struct {
	db *sql.DB
}

// NewFileRepo creates a new FileRepo.
func NewFileRepo(db *sql.DB) *FileRepo {
	return &FileRepo{db: db}
}

// Create registers a file for a case.
func (r *FileRepo) Create(ctx context.Context, caseID int64, filename, contentType string) (*CaseFile, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO case_files (case_id, filename, content_type, processed, created_at) VALUES (?, ?, ?, 0, ?)",
		caseID, filename, contentType, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert file: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get file id: %w", err)
	}
	return &CaseFile{
		ID:          id,
		CaseID:      caseID,
		Filename:    filename,
		ContentType: contentType,
		CreatedAt:   now,
	}, nil
}

// GetByID returns a file by id. Returns ErrNotFound if not found.
func (r *FileRepo) GetByID(ctx context.Context, id int64) (*CaseFile, error) {
	var f CaseFile
	var contentType sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT id, case_id, filename, content_type, processed, created_at FROM case_files WHERE id = ?",
		id,
	).Scan(&f.ID, &f.CaseID, &f.Filename, &contentType, &f.Processed, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query file: %w", err)
	}
	f.ContentType = contentType.String
	return &f, nil
}

// ListByCase returns the files of a case, newest first.
func (r *FileRepo) ListByCase(ctx context.Context, caseID int64) ([]CaseFile, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, case_id, filename, content_type, processed, created_at FROM case_files WHERE case_id = ? ORDER BY created_at DESC, id DESC",
		caseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var files []CaseFile
	for rows.Next() {
		var f CaseFile
		var contentType sql.NullString
		if err := rows.Scan(&f.ID, &f.CaseID, &f.Filename, &contentType, &f.Processed, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		f.ContentType = contentType.String
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return files, nil
}

// MarkProcessed flags a file as having embeddings.
func (r *FileRepo) MarkProcessed(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "UPDATE case_files SET processed = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to mark file processed: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
