package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks casebrief/internal/vectorstore VectorStore

import "context"

// Payload keys written for every embedding point.
const (
	PayloadCaseID     = "case_id"
	PayloadFileID     = "file_id"
	PayloadChunkIndex = "chunk_index"
	PayloadChunkText  = "chunk_text"
	PayloadMetadata   = "metadata"
)

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// DeleteByCase removes every point whose payload belongs to the case.
	DeleteByCase(ctx context.Context, collection string, caseID int64) error

	// CollectionExists reports whether the collection has been created.
	CollectionExists(ctx context.Context, collection string) (bool, error)
}
