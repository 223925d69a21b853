// Provider registry and selection.
//
// Each provider adapter registers a factory in its init under a lowercase
// name, so the registry never imports a concrete client. Selection walks a
// fixed priority order and falls through on any construction failure; the
// mock client is the guaranteed terminal fallback, which makes Select
// total — it never returns nil and never panics.
package llm

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/nverdier/sherpa/internal/infra/config"
)

// Canonical provider names.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

// selectionOrder is the credential-priority fallback chain. Gemini is
// checked before OpenAI; mock terminates the chain unconditionally.
var selectionOrder = []string{ProviderGemini, ProviderOpenAI, ProviderMock}

// Factory constructs a provider client from resolved configuration.
// Factories return an error when their provider cannot work with cfg
// (typically: credential missing); Select treats that as "try the next one".
type Factory func(cfg config.Config) (Client, error)

var (
	registryMu sync.RWMutex
	factories  = map[string]Factory{}
)

// Register adds a provider factory under the given name (lowercased).
// Called from provider init functions; later registrations replace earlier
// ones, which tests use to install stubs.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[strings.ToLower(name)] = factory
}

// Names returns the registered provider names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(factories))
	for name := range factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// New constructs the named provider, or fails if it is unregistered or its
// factory rejects the configuration. Use Select for the never-fails path.
func New(name string, cfg config.Config) (Client, error) {
	registryMu.RLock()
	factory := factories[strings.ToLower(strings.TrimSpace(name))]
	registryMu.RUnlock()

	if factory == nil {
		return nil, fmt.Errorf("llm: provider %q not registered (available: %v)", name, Names())
	}
	return factory(cfg)
}

// Select picks a client for cfg. An explicit cfg.Provider is tried first;
// otherwise, and whenever construction fails, the credential priority chain
// (Gemini, OpenAI, mock) decides. Select never fails: construction errors
// fall through to the next provider and the mock client is always last.
func Select(cfg config.Config) Client {
	if name := strings.TrimSpace(cfg.Provider); name != "" {
		if client, err := New(name, cfg); err == nil {
			return client
		}
	}

	for _, name := range selectionOrder {
		if client, err := New(name, cfg); err == nil {
			return client
		}
	}

	// Unreachable while the mock factory is registered, but Select must be
	// total even if a test wipes the registry entry.
	return NewMockClient()
}
