// Gemini HTTP adapter. Calls the Generative Language REST API:
//   - POST /models/{model}:generateContent — current call shape
//   - POST /models/{model}:generateText   — legacy fallback on 404
//   - GET  /models                        — health check
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/nverdier/sherpa/internal/infra/config"
)

func init() {
	Register(ProviderGemini, func(cfg config.Config) (Client, error) {
		if cfg.GeminiAPIKey == "" {
			return nil, errors.New("gemini: missing API key — set GOOGLE_API_KEY")
		}
		return NewGeminiClient(cfg), nil
	})
}

// GeminiClient implements Client against the Generative Language API.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiClient builds a Gemini client from resolved configuration.
// Empty model/base URL fields fall back to the package defaults.
func NewGeminiClient(cfg config.Config) *GeminiClient {
	model := cfg.GeminiModel
	if model == "" {
		model = config.DefaultGeminiModel
	}
	baseURL := cfg.GeminiBaseURL
	if baseURL == "" {
		baseURL = config.DefaultGeminiBaseURL
	}
	return &GeminiClient{
		apiKey:     cfg.GeminiAPIKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: newHTTPClient(cfg.TimeoutSeconds),
	}
}

// ─── wire shapes ─────────────────────────────────────────────────────────────

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerateContentRequest struct {
	Contents []geminiContent `json:"contents"`
}

// legacy generateText shape (pre-generateContent API surface)
type geminiGenerateTextRequest struct {
	Prompt geminiTextPrompt `json:"prompt"`
}

type geminiTextPrompt struct {
	Text string `json:"text"`
}

// ─── Client implementation ──────────────────────────────────────────────────

// ProcessRequest runs the full pipeline: vendor call, text extraction,
// intent classification. Failures surface as a KindError Result.
func (c *GeminiClient) ProcessRequest(ctx context.Context, prompt string) Result {
	text, err := c.complete(ctx, prompt)
	if err != nil {
		return errorResult(fmt.Errorf("gemini: %w", err))
	}
	return Classify(prompt, text)
}

// complete calls the first supported endpoint and extracts the answer text.
// The response is decoded generically; the extraction strategies handle the
// candidates/content/parts nesting without a typed response struct.
func (c *GeminiClient) complete(ctx context.Context, prompt string) (string, error) {
	raw, err := postJSON(ctx, c.httpClient, c.endpoint("generateContent"), nil,
		geminiGenerateContentRequest{
			Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		})
	if errors.Is(err, errUnsupportedEndpoint) {
		raw, err = postJSON(ctx, c.httpClient, c.endpoint("generateText"), nil,
			geminiGenerateTextRequest{Prompt: geminiTextPrompt{Text: prompt}})
	}
	if errors.Is(err, errUnsupportedEndpoint) {
		return "", errors.New("no supported generation endpoint on this API version")
	}
	if err != nil {
		return "", err
	}
	return ExtractText(raw), nil
}

func (c *GeminiClient) endpoint(method string) string {
	return fmt.Sprintf("%s/models/%s:%s?key=%s", c.baseURL, c.model, method, c.apiKey)
}

// ModelInfo returns static metadata for this provider/model.
func (c *GeminiClient) ModelInfo() ModelMeta {
	return ModelMeta{ID: c.model, Provider: ProviderGemini}
}

// HealthCheck lists models — returns nil if the API accepts the key.
func (c *GeminiClient) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/models?key=%s", c.baseURL, c.apiKey)
	if err := getStatus(ctx, c.httpClient, url, nil); err != nil {
		return fmt.Errorf("gemini healthcheck: %w", err)
	}
	return nil
}
