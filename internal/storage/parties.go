package storage

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// PartiesKind tags the shape held by a Parties value.
type PartiesKind int

const (
	PartiesNone PartiesKind = iota
	PartiesText
	PartiesList
	PartiesMap
)

// Parties holds the parties of a case, which extraction may report as free
// text, a list of names, or a role → name mapping.
type Parties struct {
	Kind PartiesKind
	Text string
	List []string
	Map  map[string]string
}

// TextParties returns a Text variant.
func TextParties(s string) Parties {
	return Parties{Kind: PartiesText, Text: s}
}

// ListParties returns a List variant.
func ListParties(items ...string) Parties {
	return Parties{Kind: PartiesList, List: items}
}

// MapParties returns a Map variant.
func MapParties(m map[string]string) Parties {
	return Parties{Kind: PartiesMap, Map: m}
}

// IsEmpty reports whether the value carries no information.
func (p Parties) IsEmpty() bool {
	switch p.Kind {
	case PartiesText:
		return strings.TrimSpace(p.Text) == ""
	case PartiesList:
		return len(p.List) == 0
	case PartiesMap:
		return len(p.Map) == 0
	default:
		return true
	}
}

// Equal reports whether p and o hold the same variant and content.
func (p Parties) Equal(o Parties) bool {
	if p.IsEmpty() && o.IsEmpty() {
		return true
	}
	if p.Kind != o.Kind {
		return false
	}
	switch p.Kind {
	case PartiesText:
		return strings.TrimSpace(p.Text) == strings.TrimSpace(o.Text)
	case PartiesList:
		return slices.Equal(p.List, o.List)
	case PartiesMap:
		return maps.Equal(p.Map, o.Map)
	}
	return false
}

// String renders the value as a single line, with map keys sorted.
func (p Parties) String() string {
	switch p.Kind {
	case PartiesText:
		return strings.TrimSpace(p.Text)
	case PartiesList:
		return strings.Join(p.List, "; ")
	case PartiesMap:
		keys := slices.Sorted(maps.Keys(p.Map))
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, p.Map[k]))
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

// MarshalJSON encodes Text as a string, List as an array, Map as an object and None as null.
func (p Parties) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PartiesText:
		return json.Marshal(p.Text)
	case PartiesList:
		if p.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(p.List)
	case PartiesMap:
		return json.Marshal(p.Map)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts any JSON value; see PartiesFromValue.
func (p *Parties) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = PartiesFromValue(v)
	return nil
}

// PartiesFromValue converts a decoded JSON value into a Parties variant.
// Strings become Text, arrays become List, objects become Map; other scalars
// are rendered as Text. Nested values are flattened to their compact JSON form.
func PartiesFromValue(v any) Parties {
	switch val := v.(type) {
	case nil:
		return Parties{}
	case string:
		return TextParties(strings.TrimSpace(val))
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			if s := scalarString(item); s != "" {
				items = append(items, s)
			}
		}
		return ListParties(items...)
	case []string:
		return ListParties(val...)
	case map[string]any:
		m := make(map[string]string, len(val))
		for k, item := range val {
			m[k] = scalarString(item)
		}
		return MapParties(m)
	case map[string]string:
		return MapParties(val)
	default:
		return TextParties(scalarString(val))
	}
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}

// Value implements driver.Valuer; empty values are stored as NULL.
func (p Parties) Value() (driver.Value, error) {
	if p.IsEmpty() {
		return nil, nil
	}
	b, err := p.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for the JSON text column.
func (p *Parties) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = Parties{}
		return nil
	case string:
		return p.UnmarshalJSON([]byte(v))
	case []byte:
		return p.UnmarshalJSON(v)
	default:
		return fmt.Errorf("cannot scan %T into Parties", src)
	}
}
