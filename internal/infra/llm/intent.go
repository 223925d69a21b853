package llm

import "strings"

// Intent keyword sets, checked in fixed priority order; first match wins.
// The sets and their order are deliberate product behavior — do not sort
// or merge them.
var (
	searchKeywords         = []string{"price", "cost", "buy", "purchase"}
	analysisKeywords       = []string{"analyze", "review", "compare"}
	recommendationKeywords = []string{"recommend", "suggest", "alternative"}
)

// Classify maps a prompt and its extracted answer text to a Result.
// Matching is a case-insensitive substring check against the prompt only;
// the answer text never influences the kind. Classification is pure: the
// same inputs always produce the same Result.
func Classify(prompt, text string) Result {
	lower := strings.ToLower(prompt)

	switch {
	case containsAny(lower, searchKeywords):
		return Result{Kind: KindProductSearch, Query: prompt, Answer: text}
	case containsAny(lower, analysisKeywords):
		return Result{Kind: KindProductAnalysis, Answer: text}
	case containsAny(lower, recommendationKeywords):
		return Result{Kind: KindRecommendation, Recommendations: splitRecommendations(text)}
	default:
		return Result{Kind: KindGeneralResponse, Answer: text}
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// splitRecommendations splits the answer into trimmed, non-empty lines.
// Empty text yields an empty (non-nil) slice, not an error.
func splitRecommendations(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
