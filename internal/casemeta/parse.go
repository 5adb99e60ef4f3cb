package casemeta

import (
	"encoding/json"
	"strings"
)

// ParsePayload decodes a model reply into a Payload. The whole reply is tried
// first, then the first balanced {...} span in it. Anything that still fails
// to decode to a JSON object yields an empty Payload.
func ParsePayload(text string) Payload {
	if p, ok := decodeObject(strings.TrimSpace(text)); ok {
		return p
	}
	if span := firstObjectSpan(text); span != "" {
		if p, ok := decodeObject(span); ok {
			return p
		}
	}
	return Payload{}
}

func decodeObject(s string) (Payload, bool) {
	if s == "" {
		return nil, false
	}
	var p Payload
	if err := json.Unmarshal([]byte(s), &p); err != nil || p == nil {
		return nil, false
	}
	return p, true
}

// firstObjectSpan returns the first balanced brace-delimited substring,
// ignoring braces inside JSON strings.
func firstObjectSpan(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
