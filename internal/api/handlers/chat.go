package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nverdier/sherpa/internal/domain/chat"
	"github.com/nverdier/sherpa/internal/infra/llm"
)

// ChatService is the surface of the chat domain the HTTP layer needs.
type ChatService interface {
	Ask(ctx context.Context, in chat.AskInput) (chat.Exchange, error)
	History(ctx context.Context, userID string, limit, offset int) ([]chat.Exchange, error)
	Backend() llm.ModelMeta
	HealthCheck(ctx context.Context) error
}

// ChatHandler handles chat, history and provider endpoints.
type ChatHandler struct {
	chatService ChatService
}

// NewChatHandler creates a ChatHandler backed by the provided service.
func NewChatHandler(chatService ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest is the request body for POST /api/v1/chat.
type ChatRequest struct {
	Prompt string `json:"prompt"`
}

// HistoryResponse is the response body for GET /api/v1/chat/history.
type HistoryResponse struct {
	Exchanges []chat.Exchange `json:"exchanges"`
	Limit     int             `json:"limit"`
	Offset    int             `json:"offset"`
}

// ProviderResponse is the response body for GET /api/v1/providers.
type ProviderResponse struct {
	Provider   string   `json:"provider"`
	Model      string   `json:"model"`
	Healthy    bool     `json:"healthy"`
	Registered []string `json:"registered"`
}

// Chat handles POST /api/v1/chat.
//
// A provider failure is not an HTTP failure: the exchange comes back with an
// error kind and still gets a 200. Only bad input or a persistence problem
// produce non-2xx codes.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	ex, err := h.chatService.Ask(r.Context(), chat.AskInput{UserID: userID, Prompt: req.Prompt})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to process chat")
		return
	}

	writeJSON(w, http.StatusOK, ex)
}

// History handles GET /api/v1/chat/history?limit=&offset=.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	p := parsePaginationParams(r)
	exchanges, err := h.chatService.History(r.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	writeJSON(w, http.StatusOK, HistoryResponse{Exchanges: exchanges, Limit: p.Limit, Offset: p.Offset})
}

// Providers handles GET /api/v1/providers: the registered backends, which
// one is live, and whether it currently answers its health endpoint.
func (h *ChatHandler) Providers(w http.ResponseWriter, r *http.Request) {
	meta := h.chatService.Backend()
	healthy := h.chatService.HealthCheck(r.Context()) == nil

	writeJSON(w, http.StatusOK, ProviderResponse{
		Provider:   meta.Provider,
		Model:      meta.ID,
		Healthy:    healthy,
		Registered: llm.Names(),
	})
}
