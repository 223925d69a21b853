// Client interface implemented by every provider adapter (Gemini, OpenAI,
// mock) so the application is never coupled to a specific LLM vendor.
package llm

import "context"

// Client is the provider-agnostic interface for a single-turn request.
type Client interface {
	// ProcessRequest sends the prompt to the backend, extracts the answer
	// text and classifies the intent. It always returns exactly one Result;
	// every failure is reported as Kind == KindError, never as a panic or
	// an error value escaping this boundary.
	ProcessRequest(ctx context.Context, prompt string) Result

	// ModelInfo returns static metadata about the provider/model.
	ModelInfo() ModelMeta

	// HealthCheck returns nil if the provider is reachable and operational.
	HealthCheck(ctx context.Context) error
}
