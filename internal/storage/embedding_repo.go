package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedding_store.go -package=mocks casebrief/internal/storage EmbeddingStore

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
)

// EmbeddingStore defines the interface for embedding storage operations.
type EmbeddingStore interface {
	// InsertBatch stores records atomically. Each record.ID must be set (UUID).
	InsertBatch(ctx context.Context, records []EmbeddingRecord) error
	// ListByCase returns every record whose file belongs to the case, in insertion order.
	ListByCase(ctx context.Context, caseID int64) ([]EmbeddingRecord, error)
	// ListByFile returns every record of a file, in insertion order.
	ListByFile(ctx context.Context, fileID int64) ([]EmbeddingRecord, error)
}

// EmbeddingRepo provides methods for embedding operations.
// It implements the EmbeddingStore interface.
type EmbeddingRepo struct {
	db *sql.DB
}

// NewEmbeddingRepo creates a new EmbeddingRepo.
func NewEmbeddingRepo(db *sql.DB) *EmbeddingRepo {
	return &EmbeddingRepo{db: db}
}

// InsertBatch stores records in one transaction; either all or none are written.
func (r *EmbeddingRepo) InsertBatch(ctx context.Context, records []EmbeddingRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO embeddings (id, file_id, chunk_index, chunk_text, vector, metadata) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("embedding record id is required")
		}
		if rec.ChunkText == "" {
			return fmt.Errorf("embedding record %s has empty chunk text", rec.ID)
		}
		var metadata any
		if rec.Metadata != "" {
			metadata = rec.Metadata
		}
		if _, err := stmt.ExecContext(ctx,
			rec.ID, rec.FileID, rec.ChunkIndex, rec.ChunkText, encodeVector(rec.Vector), metadata,
		); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("embedding %s: %w", rec.ID, ErrConflict)
			}
			return fmt.Errorf("failed to insert embedding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit embeddings: %w", err)
	}
	return nil
}

// ListByCase returns every record whose file belongs to caseID.
// Returns an empty slice if nothing is indexed (not an error).
func (r *EmbeddingRepo) ListByCase(ctx context.Context, caseID int64) ([]EmbeddingRecord, error) {
	return r.list(ctx,
		`SELECT e.id, e.file_id, f.case_id, e.chunk_index, e.chunk_text, e.vector, e.metadata
		FROM embeddings e JOIN case_files f ON f.id = e.file_id
		WHERE f.case_id = ? ORDER BY e.rowid`,
		caseID,
	)
}

// ListByFile returns every record of fileID.
// Returns an empty slice if the file has no embeddings (not an error).
func (r *EmbeddingRepo) ListByFile(ctx context.Context, fileID int64) ([]EmbeddingRecord, error) {
	return r.list(ctx,
		`SELECT e.id, e.file_id, f.case_id, e.chunk_index, e.chunk_text, e.vector, e.metadata
		FROM embeddings e JOIN case_files f ON f.id = e.file_id
		WHERE e.file_id = ? ORDER BY e.rowid`,
		fileID,
	)
}

func (r *EmbeddingRepo) list(ctx context.Context, query string, arg int64) ([]EmbeddingRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query embeddings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := []EmbeddingRecord{}
	for rows.Next() {
		var rec EmbeddingRecord
		var blob []byte
		var metadata sql.NullString
		if err := rows.Scan(&rec.ID, &rec.FileID, &rec.CaseID, &rec.ChunkIndex, &rec.ChunkText, &blob, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan embedding: %w", err)
		}
		rec.Vector, err = decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("embedding %s: %w", rec.ID, err)
		}
		rec.Metadata = metadata.String
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return records, nil
}

// encodeVector serializes a float32 slice to little-endian bytes.
func encodeVector(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// decodeVector deserializes little-endian bytes into a float32 slice.
func decodeVector(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("vector byte length %d is not a multiple of 4", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}
