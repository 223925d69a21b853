package llm

import (
	"context"

	"github.com/nverdier/sherpa/internal/infra/config"
)

func init() {
	Register(ProviderMock, func(config.Config) (Client, error) {
		return NewMockClient(), nil
	})
}

// MockClient is a deterministic stand-in provider used when no real
// credentials are configured, and for offline development.
type MockClient struct{}

// NewMockClient returns the echo client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// ProcessRequest always succeeds and echoes the prompt back as a
// general response.
func (c *MockClient) ProcessRequest(_ context.Context, prompt string) Result {
	return Result{Kind: KindGeneralResponse, Answer: prompt}
}

// ModelInfo returns static metadata for the mock backend.
func (c *MockClient) ModelInfo() ModelMeta {
	return ModelMeta{ID: "echo", Provider: ProviderMock}
}

// HealthCheck always reports healthy; there is nothing to reach.
func (c *MockClient) HealthCheck(_ context.Context) error {
	return nil
}
