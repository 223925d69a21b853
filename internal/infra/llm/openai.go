// OpenAI HTTP adapter. SDK major versions renamed the completion surface,
// so the adapter probes call shapes in order:
//   - POST /chat/completions — messages shape (current)
//   - POST /completions      — legacy prompt shape, tried on 404
//   - GET  /models           — health check
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nverdier/sherpa/internal/infra/config"
)

func init() {
	Register(ProviderOpenAI, func(cfg config.Config) (Client, error) {
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("openai: missing API key — set OPENAI_API_KEY")
		}
		return NewOpenAIClient(cfg), nil
	})
}

// legacyMaxTokens caps legacy /completions answers, which have no
// conversation-level default.
const legacyMaxTokens = 150

// OpenAIClient implements Client against the OpenAI REST API.
type OpenAIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIClient builds an OpenAI client from resolved configuration.
// Empty model/base URL fields fall back to the package defaults.
func NewOpenAIClient(cfg config.Config) *OpenAIClient {
	model := cfg.OpenAIModel
	if model == "" {
		model = config.DefaultOpenAIModel
	}
	baseURL := cfg.OpenAIBaseURL
	if baseURL == "" {
		baseURL = config.DefaultOpenAIBaseURL
	}
	return &OpenAIClient{
		apiKey:     cfg.OpenAIAPIKey,
		model:      model,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: newHTTPClient(cfg.TimeoutSeconds),
	}
}

// ─── wire shapes ─────────────────────────────────────────────────────────────

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiChatRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
}

type openaiLegacyRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

// ─── Client implementation ──────────────────────────────────────────────────

// ProcessRequest runs the full pipeline: vendor call, text extraction,
// intent classification. Failures surface as a KindError Result.
func (c *OpenAIClient) ProcessRequest(ctx context.Context, prompt string) Result {
	text, err := c.complete(ctx, prompt)
	if err != nil {
		return errorResult(fmt.Errorf("openai: %w", err))
	}
	return Classify(prompt, text)
}

// complete calls the first supported completion endpoint and extracts the
// answer text. The response is decoded generically; the extraction
// strategies walk the choices/message/content (or choices/text) chain.
func (c *OpenAIClient) complete(ctx context.Context, prompt string) (string, error) {
	raw, err := postJSON(ctx, c.httpClient, c.baseURL+"/chat/completions", c.headers(),
		openaiChatRequest{
			Model:    c.model,
			Messages: []openaiMessage{{Role: "user", Content: prompt}},
		})
	if errors.Is(err, errUnsupportedEndpoint) {
		raw, err = postJSON(ctx, c.httpClient, c.baseURL+"/completions", c.headers(),
			openaiLegacyRequest{Model: c.model, Prompt: prompt, MaxTokens: legacyMaxTokens})
	}
	if errors.Is(err, errUnsupportedEndpoint) {
		return "", errors.New("no supported completion endpoint on this API version")
	}
	if err != nil {
		return "", err
	}
	return ExtractText(raw), nil
}

func (c *OpenAIClient) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + c.apiKey}
}

// ModelInfo returns static metadata for this provider/model.
func (c *OpenAIClient) ModelInfo() ModelMeta {
	return ModelMeta{ID: c.model, Provider: ProviderOpenAI}
}

// HealthCheck lists models — returns nil if the API accepts the key.
func (c *OpenAIClient) HealthCheck(ctx context.Context) error {
	if err := getStatus(ctx, c.httpClient, c.baseURL+"/models", c.headers()); err != nil {
		return fmt.Errorf("openai healthcheck: %w", err)
	}
	return nil
}
