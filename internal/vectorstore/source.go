package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/qdrant/go-client/qdrant"

	"casebrief/internal/storage"
)

const scrollPageSize = 256

// Source reads embedding records back out of a Qdrant collection so the
// ranking stage can run against the mirror instead of SQLite.
type Source struct {
	store      *QdrantStore
	collection string
}

// NewSource creates a Source over the given collection.
func NewSource(store *QdrantStore, collection string) *Source {
	return &Source{store: store, collection: collection}
}

// ListByCase returns every point of the case ordered by file and chunk index.
func (s *Source) ListByCase(ctx context.Context, caseID int64) ([]storage.EmbeddingRecord, error) {
	return s.scroll(ctx, qdrant.NewMatchInt(PayloadCaseID, caseID))
}

// ListByFile returns every point of the file ordered by chunk index.
func (s *Source) ListByFile(ctx context.Context, fileID int64) ([]storage.EmbeddingRecord, error) {
	return s.scroll(ctx, qdrant.NewMatchInt(PayloadFileID, fileID))
}

func (s *Source) scroll(ctx context.Context, cond *qdrant.Condition) ([]storage.EmbeddingRecord, error) {
	limit := uint32(scrollPageSize)
	req := &qdrant.ScrollPoints{
		CollectionName: s.collection,
		Filter:         &qdrant.Filter{Must: []*qdrant.Condition{cond}},
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(true),
	}

	records := make([]storage.EmbeddingRecord, 0)
	for {
		points, next, err := s.store.client.ScrollAndOffset(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to scroll points: %w", err)
		}
		for _, p := range points {
			rec, err := recordFromPoint(p)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		if next == nil || len(points) == 0 {
			break
		}
		req.Offset = next
	}

	sortRecords(records)
	return records, nil
}

// recordFromPoint maps a retrieved point and its payload to an EmbeddingRecord.
func recordFromPoint(p *qdrant.RetrievedPoint) (storage.EmbeddingRecord, error) {
	id := p.GetId().GetUuid()
	if id == "" {
		return storage.EmbeddingRecord{}, errors.New("point without uuid id")
	}

	vec := p.GetVectors().GetVector().GetDenseVector().GetData()
	if len(vec) == 0 {
		return storage.EmbeddingRecord{}, fmt.Errorf("point %s has no dense vector", id)
	}

	meta := convertPayloadToMap(p.GetPayload())
	text, _ := meta[PayloadChunkText].(string)
	if text == "" {
		return storage.EmbeddingRecord{}, fmt.Errorf("point %s has no chunk text", id)
	}
	extra, _ := meta[PayloadMetadata].(string)

	return storage.EmbeddingRecord{
		ID:         id,
		FileID:     intPayload(meta[PayloadFileID]),
		CaseID:     intPayload(meta[PayloadCaseID]),
		ChunkIndex: int(intPayload(meta[PayloadChunkIndex])),
		ChunkText:  text,
		Vector:     vec,
		Metadata:   extra,
	}, nil
}

func intPayload(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// sortRecords restores insertion order, which Qdrant does not keep.
func sortRecords(records []storage.EmbeddingRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].FileID != records[j].FileID {
			return records[i].FileID < records[j].FileID
		}
		return records[i].ChunkIndex < records[j].ChunkIndex
	})
}
