package chat

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/nverdier/sherpa/internal/infra/llm"
)

// Store persists exchanges in the exchanges table.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store over the given DB.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save inserts a single exchange. Recommendations are stored as a JSON array
// so the column round-trips without a join table.
func (s *Store) Save(ctx context.Context, ex Exchange) error {
	recs := ex.Recommendations
	if recs == nil {
		recs = []string{}
	}
	recsJSON, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO exchanges (id, user_id, prompt, kind, query, answer, recommendations, error, provider, model, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ex.ID, ex.UserID, ex.Prompt, string(ex.Kind), ex.Query, ex.Answer, string(recsJSON),
		ex.ErrorMessage, ex.Provider, ex.Model, ex.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert exchange: %w", err)
	}
	return nil
}

// ListRecent returns the user's exchanges ordered newest first.
// limit <= 0 defaults to 20; limit is capped at 100.
func (s *Store) ListRecent(ctx context.Context, userID string, limit, offset int) ([]Exchange, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, prompt, kind, query, answer, recommendations, error, provider, model, created_at
		FROM exchanges
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query exchanges: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	exchanges := []Exchange{}
	for rows.Next() {
		var ex Exchange
		var kind, recsJSON string
		if err := rows.Scan(&ex.ID, &ex.UserID, &ex.Prompt, &kind, &ex.Query, &ex.Answer,
			&recsJSON, &ex.ErrorMessage, &ex.Provider, &ex.Model, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan exchange: %w", err)
		}
		ex.Kind = llm.Kind(kind)
		if err := json.Unmarshal([]byte(recsJSON), &ex.Recommendations); err != nil {
			return nil, fmt.Errorf("unmarshal recommendations for %s: %w", ex.ID, err)
		}
		exchanges = append(exchanges, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exchanges: %w", err)
	}

	return exchanges, nil
}
