package sources

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// timeLayouts is tried in order. Providers mix full RFC 3339, bare
// second-resolution stamps, minute-resolution stamps and plain dates.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime coerces a provider timestamp, tolerating a trailing Z on
// layouts that do not carry an offset.
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
		if strings.HasSuffix(s, "Z") {
			if t, err := time.Parse(layout, strings.TrimSuffix(s, "Z")); err == nil {
				return t.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

// timePtr is parseTime for nullable columns.
func timePtr(s string) *time.Time {
	if t, ok := parseTime(s); ok {
		return &t
	}
	return nil
}

// asString reads a string field, coercing numbers when the provider is
// loose about types. Absent fields default to "".
func asString(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// asFloat reads a numeric field. Absent or unparsable fields default to 0.
func asFloat(m map[string]any, key string) float64 {
	return coerceFloat(m[key])
}

func coerceFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	case json.Number:
		f, _ := n.Float64()
		return f
	default:
		return 0
	}
}

// floatPtr is asFloat for nullable columns: absent or empty yields nil.
func floatPtr(m map[string]any, key string) *float64 {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return nil
	}
	f := coerceFloat(v)
	return &f
}

// asInt reads an integer field. Absent or unparsable fields default to 0.
func asInt(m map[string]any, key string) int {
	return int(coerceFloat(m[key]))
}

// asBool reads a boolean field, defaulting to false.
func asBool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

// asMap reads a nested object field, nil when absent or mistyped.
func asMap(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

// asSlice reads a nested array field, nil when absent or mistyped.
func asSlice(m map[string]any, key string) []any {
	v, _ := m[key].([]any)
	return v
}

// toJSON re-serializes a decoded fragment for a JSON column. nil input
// stays nil so the column is NULL rather than the string "null".
func toJSON(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
