// Package chat implements the prompt/response round-trip: pick a backend,
// forward the prompt, persist the normalized result, notify subscribers.
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/nverdier/sherpa/internal/infra/eventbus"
	"github.com/nverdier/sherpa/internal/infra/llm"
	"github.com/nverdier/sherpa/pkg/uuid"
)

// Exchange is one persisted prompt/response round-trip.
type Exchange struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	Prompt          string   `json:"prompt"`
	Kind            llm.Kind `json:"kind"`
	Query           string   `json:"query,omitempty"`
	Answer          string   `json:"answer,omitempty"`
	Recommendations []string `json:"recommendations"`
	ErrorMessage    string   `json:"error,omitempty"`
	Provider        string   `json:"provider"`
	Model           string   `json:"model"`
	CreatedAt       string   `json:"created_at"`
}

// AskInput holds a single user prompt.
type AskInput struct {
	UserID string
	Prompt string
}

// ExchangeSaver persists exchanges; *Store satisfies it.
type ExchangeSaver interface {
	Save(ctx context.Context, ex Exchange) error
	ListRecent(ctx context.Context, userID string, limit, offset int) ([]Exchange, error)
}

// Service routes prompts to the configured LLM backend and records the result.
type Service struct {
	client llm.Client
	store  ExchangeSaver
	bus    eventbus.EventBus
}

// NewService wires a chat service. bus may be nil when nobody listens.
func NewService(client llm.Client, store ExchangeSaver, bus eventbus.EventBus) *Service {
	return &Service{client: client, store: store, bus: bus}
}

// Ask forwards the prompt and persists the outcome. The backend call itself
// cannot fail: provider errors come back as an error-kind result and are
// stored like any other exchange. Only persistence can return an error.
func (s *Service) Ask(ctx context.Context, in AskInput) (Exchange, error) {
	res := s.client.ProcessRequest(ctx, in.Prompt)
	meta := s.client.ModelInfo()

	ex := Exchange{
		ID:              uuid.NewV7().String(),
		UserID:          in.UserID,
		Prompt:          in.Prompt,
		Kind:            res.Kind,
		Query:           res.Query,
		Answer:          res.Answer,
		Recommendations: res.Recommendations,
		ErrorMessage:    res.ErrorMessage,
		Provider:        meta.Provider,
		Model:           meta.ID,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.store.Save(ctx, ex); err != nil {
		return Exchange{}, fmt.Errorf("chat: save exchange: %w", err)
	}

	if s.bus != nil {
		s.bus.Publish(eventbus.TopicExchange, ex)
	}

	return ex, nil
}

// History returns the user's most recent exchanges, newest first.
func (s *Service) History(ctx context.Context, userID string, limit, offset int) ([]Exchange, error) {
	return s.store.ListRecent(ctx, userID, limit, offset)
}

// Backend describes the client currently serving this service.
func (s *Service) Backend() llm.ModelMeta {
	return s.client.ModelInfo()
}

// HealthCheck proxies to the underlying client.
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.client.HealthCheck(ctx)
}
