// Package handlers translates HTTP requests into domain service calls.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/nverdier/sherpa/internal/api/ctxkeys"
)

type paginationParams struct {
	Limit  int
	Offset int
}

const (
	defaultPaginationLimit = 20
	maxPaginationLimit     = 100
)

// getUserID retrieves the authenticated user from context. The middleware
// injected it under the typed key, so a miss means a wiring bug.
func getUserID(ctx context.Context) (string, error) {
	uid, ok := ctx.Value(ctxkeys.UserID).(string)
	if !ok || uid == "" {
		return "", fmt.Errorf("user_id not found in context")
	}
	return uid, nil
}

// parsePaginationParams extracts and clamps limit/offset query params.
func parsePaginationParams(r *http.Request) paginationParams {
	limit := defaultPaginationLimit
	offset := 0

	if lim, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && lim > 0 {
		if lim > maxPaginationLimit {
			lim = maxPaginationLimit
		}
		limit = lim
	}
	if off, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && off >= 0 {
		offset = off
	}

	return paginationParams{Limit: limit, Offset: offset}
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
