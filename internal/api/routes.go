// Package api wires the chi router: public auth routes plus JWT-protected
// chat routes under /api/v1.
package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nverdier/sherpa/internal/api/handlers"
	apmiddleware "github.com/nverdier/sherpa/internal/api/middleware"
	domainauth "github.com/nverdier/sherpa/internal/domain/auth"
	"github.com/nverdier/sherpa/internal/domain/chat"
)

// NewRouter creates the chi router over an already-wired chat service.
func NewRouter(db *sql.DB, chatService *chat.Service) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// ===== PUBLIC ROUTES =====

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	authHandler := handlers.NewAuthHandler(domainauth.NewAuthService(db))
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register) // POST /auth/register
		r.Post("/login", authHandler.Login)       // POST /auth/login
	})

	// ===== PROTECTED ROUTES (Bearer JWT) =====

	chatHandler := handlers.NewChatHandler(chatService)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apmiddleware.AuthMiddleware)

		r.Post("/chat", chatHandler.Chat)            // POST /api/v1/chat
		r.Get("/chat/history", chatHandler.History)  // GET  /api/v1/chat/history
		r.Get("/providers", chatHandler.Providers)   // GET  /api/v1/providers
	})

	return r
}
