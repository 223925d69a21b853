// Package llm contains the provider abstraction for Sherpa: a common client
// interface, the normalized result shape every provider produces, and the
// registry that selects a backend. All types here are shared between the
// provider interface and adapters.
package llm

// Kind tags a normalized result. Exactly one Kind is produced per request.
type Kind string

const (
	// KindGeneralResponse carries free text with no recognized intent.
	KindGeneralResponse Kind = "general_response"
	// KindProductSearch carries the original query plus the model's text.
	KindProductSearch Kind = "product_search"
	// KindProductAnalysis carries analysis text.
	KindProductAnalysis Kind = "product_analysis"
	// KindRecommendation carries an ordered list of suggestions.
	KindRecommendation Kind = "recommendation"
	// KindError carries a human-readable failure message.
	KindError Kind = "error"
)

// Result is the unified outcome of a single prompt request, regardless of
// provider. Created once per request and never mutated.
type Result struct {
	Kind Kind `json:"kind"`

	// Query is the original prompt, set only for KindProductSearch.
	Query string `json:"query,omitempty"`

	// Answer is the extracted model text. Set for general_response,
	// product_search and product_analysis.
	Answer string `json:"answer,omitempty"`

	// Recommendations holds the non-empty lines of the model text,
	// set only for KindRecommendation. May be empty, never nil, so an
	// empty recommendation list serializes as [] rather than vanishing.
	Recommendations []string `json:"recommendations"`

	// ErrorMessage is set only for KindError and is always non-empty there.
	ErrorMessage string `json:"error,omitempty"`
}

// errorResult wraps a failure into the uniform error shape.
// Callers above the client boundary never see a raised error.
func errorResult(err error) Result {
	return Result{Kind: KindError, ErrorMessage: err.Error()}
}

// ModelMeta describes the model / provider identity.
type ModelMeta struct {
	ID       string // e.g. "gemini-2.0-flash", "gpt-4o"
	Provider string // e.g. "gemini", "openai", "mock"
}
