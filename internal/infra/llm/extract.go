package llm

import (
	"fmt"
	"strings"
)

// Text extraction over decoded vendor responses.
//
// Vendor SDK versions disagree about where the answer text lives: a bare
// string, {"output": ...}, {"text": ...}, {"content": ...}, a candidates
// list (Gemini), or a choices/message/content chain (OpenAI). Instead of
// probing attributes dynamically, a fixed-order chain of extraction
// strategies is tried; the first one that yields non-empty text wins.
// Extraction never fails: an unrecognizable shape degrades to the value's
// string form, and nil degrades to "".

// maxExtractDepth bounds recursion into nested maps/lists.
const maxExtractDepth = 6

// extractStrategy attempts to pull answer text out of a decoded JSON value.
type extractStrategy func(v any, depth int) (string, bool)

// ExtractText returns the answer text contained in a decoded vendor
// response, or "" when nothing resembling text can be found in a nil value.
func ExtractText(raw any) string {
	if text, ok := extractValue(raw, 0); ok {
		return strings.TrimSpace(text)
	}
	if raw == nil {
		return ""
	}
	// Last resort: the response's string form, like the vendor object's repr.
	return strings.TrimSpace(fmt.Sprintf("%v", raw))
}

func extractValue(v any, depth int) (string, bool) {
	if v == nil || depth > maxExtractDepth {
		return "", false
	}
	// Fixed probe order; order matters: scalar text first, then known
	// envelope keys, then list envelopes. The strategies recurse back
	// through extractValue, so the order lives here rather than in a
	// package-level slice.
	for _, strat := range []extractStrategy{fromString, fromMappingKeys, fromListKeys} {
		if text, ok := strat(v, depth); ok {
			return text, true
		}
	}
	return "", false
}

// fromString handles responses that already are plain text.
func fromString(v any, _ int) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// mappingTextKeys are probed in order on every JSON object. "message" and
// "parts" cover the OpenAI choice and Gemini content envelopes.
var mappingTextKeys = []string{"output", "text", "content", "message", "parts"}

// fromMappingKeys probes known object keys, recursing into nested values.
func fromMappingKeys(v any, depth int) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	for _, key := range mappingTextKeys {
		nested, present := m[key]
		if !present {
			continue
		}
		if text, found := extractValue(nested, depth+1); found {
			return text, true
		}
	}
	return "", false
}

// mappingListKeys hold list-shaped envelopes whose items each carry text.
var mappingListKeys = []string{"candidates", "choices"}

// fromListKeys probes list envelopes ("candidates", "choices") and bare
// lists, joining the text of every item with newlines.
func fromListKeys(v any, depth int) (string, bool) {
	switch val := v.(type) {
	case map[string]any:
		for _, key := range mappingListKeys {
			if items, ok := val[key].([]any); ok {
				if text, found := joinItems(items, depth+1); found {
					return text, true
				}
			}
		}
		return "", false
	case []any:
		return joinItems(val, depth+1)
	default:
		return "", false
	}
}

func joinItems(items []any, depth int) (string, bool) {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if text, ok := extractValue(item, depth); ok {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}
