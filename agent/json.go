package agent

import (
	"encoding/json"
	"strings"
)

// DecodeJSON extracts a JSON object from model output. A single leading and
// trailing fenced-block marker (```json ... ``` or ``` ... ```) is stripped
// if present, then the remainder is parsed. On any failure the sentinel
// object {"error": ..., "raw": ...} is returned; DecodeJSON never fails with
// an error. Every downstream stage relies on receiving a map, not a panic.
func DecodeJSON(text string) map[string]any {
	cleaned := stripFence(text)

	var out map[string]any
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return map[string]any{
			"error": "failed to parse model output as JSON: " + err.Error(),
			"raw":   text,
		}
	}
	return out
}

// IsDecodeError reports whether a DecodeJSON result is the sentinel object.
func IsDecodeError(m map[string]any) bool {
	_, hasErr := m["error"]
	_, hasRaw := m["raw"]
	return hasErr && hasRaw && len(m) == 2
}

// decodeInto is the typed variant: fence stripping plus unmarshal into a
// destination struct. Unlike DecodeJSON it surfaces the parse error so the
// caller can fall back to its stage-specific degraded result.
func decodeInto(text string, v any) error {
	return json.Unmarshal([]byte(stripFence(text)), v)
}

// stripFence removes one leading and one trailing code fence marker. Inner
// fences are left alone: only the outermost wrapping is the model's framing.
func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag on the opening fence line.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		first := strings.TrimSpace(s[:i])
		if first == "json" || first == "" {
			s = s[i+1:]
		}
	} else {
		s = strings.TrimSpace(strings.TrimPrefix(s, "json"))
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Helpers for reading loosely typed decoded maps. Model output is JSON, so
// numbers arrive as float64 and lists as []any.

func mapString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func mapFloat(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func mapBool(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

func mapStrings(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func mapObjects(m map[string]any, key string) []map[string]any {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}
