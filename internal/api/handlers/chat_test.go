package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nverdier/sherpa/internal/api/ctxkeys"
	"github.com/nverdier/sherpa/internal/api/handlers"
	"github.com/nverdier/sherpa/internal/domain/chat"
	"github.com/nverdier/sherpa/internal/infra/llm"
)

// stubChatService lets each test script the domain responses.
type stubChatService struct {
	askResult     chat.Exchange
	askErr        error
	history       []chat.Exchange
	historyErr    error
	gotLimit      int
	gotOffset     int
	meta          llm.ModelMeta
	healthCheckOK bool
}

func (s *stubChatService) Ask(_ context.Context, _ chat.AskInput) (chat.Exchange, error) {
	return s.askResult, s.askErr
}

func (s *stubChatService) History(_ context.Context, _ string, limit, offset int) ([]chat.Exchange, error) {
	s.gotLimit, s.gotOffset = limit, offset
	return s.history, s.historyErr
}

func (s *stubChatService) Backend() llm.ModelMeta { return s.meta }

func (s *stubChatService) HealthCheck(_ context.Context) error {
	if s.healthCheckOK {
		return nil
	}
	return errors.New("backend down")
}

// authedRequest builds a request carrying an authenticated user, the way
// AuthMiddleware would have left it.
func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := ctxkeys.WithValue(req.Context(), ctxkeys.UserID, "u-1")
	return req.WithContext(ctx)
}

func TestChat_Success(t *testing.T) {
	t.Parallel()

	svc := &stubChatService{
		askResult: chat.Exchange{ID: "x-1", Kind: llm.KindGeneralResponse, Answer: "hi"},
	}
	h := handlers.NewChatHandler(svc)

	rec := httptest.NewRecorder()
	h.Chat(rec, authedRequest(http.MethodPost, "/api/v1/chat", `{"prompt":"hello"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	var got chat.Exchange
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != "x-1" || got.Answer != "hi" {
		t.Errorf("unexpected body %#v", got)
	}
}

func TestChat_ErrorKindStillHTTP200(t *testing.T) {
	t.Parallel()

	svc := &stubChatService{
		askResult: chat.Exchange{ID: "x-1", Kind: llm.KindError, ErrorMessage: "provider down"},
	}
	h := handlers.NewChatHandler(svc)

	rec := httptest.NewRecorder()
	h.Chat(rec, authedRequest(http.MethodPost, "/api/v1/chat", `{"prompt":"hello"}`))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d; want 200 for error-kind exchange", rec.Code)
	}
	var got chat.Exchange
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Kind != llm.KindError || got.ErrorMessage == "" {
		t.Errorf("expected error-kind body, got %#v", got)
	}
}

func TestChat_MissingPrompt(t *testing.T) {
	t.Parallel()

	h := handlers.NewChatHandler(&stubChatService{})

	rec := httptest.NewRecorder()
	h.Chat(rec, authedRequest(http.MethodPost, "/api/v1/chat", `{}`))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", rec.Code)
	}
}

func TestChat_InvalidBody(t *testing.T) {
	t.Parallel()

	h := handlers.NewChatHandler(&stubChatService{})

	rec := httptest.NewRecorder()
	h.Chat(rec, authedRequest(http.MethodPost, "/api/v1/chat", `{not json`))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", rec.Code)
	}
}

func TestChat_NoUserInContext(t *testing.T) {
	t.Parallel()

	h := handlers.NewChatHandler(&stubChatService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{"prompt":"x"}`))
	h.Chat(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", rec.Code)
	}
}

func TestChat_PersistenceFailure(t *testing.T) {
	t.Parallel()

	h := handlers.NewChatHandler(&stubChatService{askErr: errors.New("db gone")})

	rec := httptest.NewRecorder()
	h.Chat(rec, authedRequest(http.MethodPost, "/api/v1/chat", `{"prompt":"x"}`))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d; want 500", rec.Code)
	}
}

func TestHistory_DefaultsAndClamping(t *testing.T) {
	t.Parallel()

	svc := &stubChatService{history: []chat.Exchange{}}
	h := handlers.NewChatHandler(svc)

	rec := httptest.NewRecorder()
	h.History(rec, authedRequest(http.MethodGet, "/api/v1/chat/history", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	if svc.gotLimit != 20 || svc.gotOffset != 0 {
		t.Errorf("defaults limit/offset = %d/%d; want 20/0", svc.gotLimit, svc.gotOffset)
	}

	rec = httptest.NewRecorder()
	h.History(rec, authedRequest(http.MethodGet, "/api/v1/chat/history?limit=500&offset=3", ""))
	if svc.gotLimit != 100 || svc.gotOffset != 3 {
		t.Errorf("clamped limit/offset = %d/%d; want 100/3", svc.gotLimit, svc.gotOffset)
	}
}

func TestHistory_ReturnsExchanges(t *testing.T) {
	t.Parallel()

	svc := &stubChatService{history: []chat.Exchange{
		{ID: "x-2", Kind: llm.KindGeneralResponse},
		{ID: "x-1", Kind: llm.KindProductSearch},
	}}
	h := handlers.NewChatHandler(svc)

	rec := httptest.NewRecorder()
	h.History(rec, authedRequest(http.MethodGet, "/api/v1/chat/history", ""))

	var got handlers.HistoryResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Exchanges) != 2 || got.Exchanges[0].ID != "x-2" {
		t.Errorf("unexpected history %#v", got)
	}
}

func TestProviders_ReportsBackendAndHealth(t *testing.T) {
	t.Parallel()

	svc := &stubChatService{
		meta:          llm.ModelMeta{ID: "gpt-4o", Provider: "openai"},
		healthCheckOK: true,
	}
	h := handlers.NewChatHandler(svc)

	rec := httptest.NewRecorder()
	h.Providers(rec, authedRequest(http.MethodGet, "/api/v1/providers", ""))

	var got handlers.ProviderResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Provider != "openai" || got.Model != "gpt-4o" || !got.Healthy {
		t.Errorf("unexpected provider response %#v", got)
	}
	if len(got.Registered) < 3 {
		t.Errorf("expected the built-in providers listed, got %v", got.Registered)
	}

	svc.healthCheckOK = false
	rec = httptest.NewRecorder()
	h.Providers(rec, authedRequest(http.MethodGet, "/api/v1/providers", ""))
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Healthy {
		t.Error("expected healthy=false when health check fails")
	}
}
