package casemeta

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"casebrief/internal/contextutil"
	"casebrief/internal/storage"
)

var (
	// ErrEmptyPayload is returned when a payload has no usable fields.
	ErrEmptyPayload = errors.New("payload has no fields")
	// ErrMergeFailed is returned when the merge could not be persisted. Nothing was written.
	ErrMergeFailed = errors.New("metadata merge failed")
)

// Merger folds extraction payloads into the per-case metadata record.
// Merges for the same case are serialised.
type Merger struct {
	repo  storage.MetadataRepository
	locks caseLocks
}

// NewMerger creates a new Merger.
func NewMerger(repo storage.MetadataRepository) *Merger {
	return &Merger{repo: repo}
}

// Merge applies payload to the case's record, creating it on first use.
// Scalar fields are filled only while empty, free-text fields accumulate and
// parties merge structurally. A nil error always comes with the stored record.
func (m *Merger) Merge(ctx context.Context, caseID int64, payload Payload) (*storage.CaseMetadata, error) {
	logger := contextutil.LoggerFromContext(ctx)

	fields := Normalize(payload)
	if len(fields) == 0 {
		return nil, ErrEmptyPayload
	}

	unlock := m.locks.lock(caseID)
	defer unlock()

	record, err := m.mergeTx(ctx, caseID, fields, true)
	if errors.Is(err, storage.ErrConflict) {
		logger.WarnContext(ctx, "metadata created concurrently, retrying as update", "case_id", caseID)
		record, err = m.mergeTx(ctx, caseID, fields, false)
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to merge case metadata", "case_id", caseID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrMergeFailed, err)
	}

	logger.InfoContext(ctx, "merged case metadata", "case_id", caseID, "fields", len(fields))
	return record, nil
}

func (m *Merger) mergeTx(ctx context.Context, caseID int64, fields Payload, allowCreate bool) (*storage.CaseMetadata, error) {
	var record *storage.CaseMetadata
	err := m.repo.RunInTx(ctx, func(store storage.MetadataStore) error {
		existing, err := store.GetByCase(ctx, caseID)
		if errors.Is(err, storage.ErrNotFound) && allowCreate {
			created := &storage.CaseMetadata{CaseID: caseID}
			applyFields(created, fields)
			if err := store.Create(ctx, created); err != nil {
				return err
			}
			record = created
			return nil
		}
		if err != nil {
			return err
		}

		applyFields(existing, fields)
		if err := store.Update(ctx, existing); err != nil {
			return err
		}
		record = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// applyFields merges normalised fields into rec in place.
func applyFields(rec *storage.CaseMetadata, fields Payload) {
	if v, ok := fields[FieldParties]; ok {
		rec.Parties = mergeParties(rec.Parties, storage.PartiesFromValue(v))
	}

	fillText(&rec.CourtName, fields[FieldCourtName])
	fillText(&rec.Judge, fields[FieldJudge])
	fillText(&rec.Attorney, fields[FieldAttorney])

	fillDate(&rec.FilingDate, fields[FieldFilingDate])
	fillDate(&rec.NextCourtDate, fields[FieldNextCourtDate])

	if v, ok := fields[FieldApproachingDeadline]; ok && rec.ApproachingDeadline == nil {
		rec.ApproachingDeadline = coerceBool(v)
	}

	appendField(&rec.StrongEvidence, fields[FieldStrongEvidence])
	appendField(&rec.CaseDescription, fields[FieldCaseDescription])
}

func fillText(dst **string, v any) {
	if v == nil || (*dst != nil && strings.TrimSpace(**dst) != "") {
		return
	}
	if s := textValue(v); s != "" {
		*dst = &s
	}
}

func fillDate(dst **time.Time, v any) {
	if v == nil || *dst != nil {
		return
	}
	if t := parseDate(v); t != nil {
		*dst = t
	}
}

func appendField(dst **string, v any) {
	if v == nil {
		return
	}
	var existing string
	if *dst != nil {
		existing = **dst
	}
	merged := appendText(existing, textValue(v))
	if merged != "" {
		*dst = &merged
	}
}

// appendText adds incoming to existing separated by a blank line, unless it
// is empty or already contained in existing.
func appendText(existing, incoming string) string {
	incoming = strings.TrimSpace(incoming)
	if incoming == "" {
		return existing
	}
	if strings.TrimSpace(existing) == "" {
		return incoming
	}
	if strings.Contains(existing, incoming) {
		return existing
	}
	return existing + "\n\n" + incoming
}

// mergeParties combines two parties values without dropping either side.
func mergeParties(existing, incoming storage.Parties) storage.Parties {
	if incoming.IsEmpty() {
		return existing
	}
	if existing.IsEmpty() {
		return incoming
	}

	switch {
	case existing.Kind == storage.PartiesMap && incoming.Kind == storage.PartiesMap:
		merged := maps.Clone(existing.Map)
		for k, v := range incoming.Map {
			cur, ok := merged[k]
			if !ok || (strings.TrimSpace(cur) == "" && strings.TrimSpace(v) != "") {
				merged[k] = v
			}
		}
		return storage.MapParties(merged)

	case existing.Kind == storage.PartiesList:
		add := []string{incoming.String()}
		if incoming.Kind == storage.PartiesList {
			add = incoming.List
		}
		list := slices.Clone(existing.List)
		for _, item := range add {
			if !slices.Contains(list, item) {
				list = append(list, item)
			}
		}
		return storage.ListParties(list...)

	case existing.Equal(incoming):
		return existing

	default:
		// Conflicting observations are both kept.
		return storage.ListParties(existing.String(), incoming.String())
	}
}
