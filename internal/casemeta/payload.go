// Package casemeta extracts structured case facts from indexed documents and
// folds them into the single metadata record kept per case.
package casemeta

import (
	"regexp"
	"strings"
	"time"

	"casebrief/internal/storage"
)

// Field names of an extraction payload.
const (
	FieldParties             = "parties"
	FieldCourtName           = "court_name"
	FieldFilingDate          = "filing_date"
	FieldJudge               = "judge"
	FieldAttorney            = "attorney"
	FieldNextCourtDate       = "next_court_date"
	FieldStrongEvidence      = "strong_evidence"
	FieldApproachingDeadline = "approaching_deadline"
	FieldCaseDescription     = "case_description"
)

// Fields lists every field the extractor asks for, in prompt order.
var Fields = []string{
	FieldParties,
	FieldCourtName,
	FieldFilingDate,
	FieldJudge,
	FieldAttorney,
	FieldNextCourtDate,
	FieldStrongEvidence,
	FieldApproachingDeadline,
	FieldCaseDescription,
}

// Payload is the untrusted field mapping decoded from a model reply.
// Values are whatever JSON produced: strings, numbers, booleans, lists or objects.
type Payload map[string]any

var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Normalize returns the known fields of p that carry a value. nil, empty
// strings and the literals "null" and "None" all count as absent.
func Normalize(p Payload) Payload {
	out := make(Payload, len(Fields))
	for _, k := range Fields {
		if v, ok := p[k]; ok && !isAbsent(v) {
			out[k] = v
		}
	}
	return out
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	switch strings.TrimSpace(s) {
	case "", "null", "None":
		return true
	}
	return false
}

// parseDate accepts YYYY-MM-DD, falling back to the first such substring.
func parseDate(v any) *time.Time {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse(storage.DateLayout, s); err == nil {
		return &t
	}
	if m := datePattern.FindString(s); m != "" {
		if t, err := time.Parse(storage.DateLayout, m); err == nil {
			return &t
		}
	}
	return nil
}

// coerceBool maps true, "true", "True", "1" and 1 to true and anything else to false.
func coerceBool(v any) *bool {
	var b bool
	switch x := v.(type) {
	case bool:
		b = x
	case string:
		switch strings.TrimSpace(x) {
		case "true", "True", "1":
			b = true
		}
	case float64:
		b = x == 1
	case int:
		b = x == 1
	case int64:
		b = x == 1
	}
	return &b
}

// textValue renders a scalar field value as trimmed text.
func textValue(v any) string {
	return storage.PartiesFromValue(v).String()
}
