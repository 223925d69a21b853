// Package auth implements user registration and login over the users table.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/nverdier/sherpa/pkg/auth"
	"github.com/nverdier/sherpa/pkg/uuid"
)

// ErrInvalidCredentials is returned by Login for both a wrong password and
// an unknown email, so responses never reveal whether the email exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailAlreadyExists is returned by Register when the email is taken.
var ErrEmailAlreadyExists = errors.New("email already registered")

// RegisterInput holds the data needed to create a user.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// LoginInput holds login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned after a successful Register or Login.
//
//nolint:revive // established API name
type AuthResult struct {
	Token  string
	UserID string
}

// AuthService defines the authentication operations.
//
//nolint:revive // established API name
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
}

type authService struct {
	db *sql.DB
}

// NewAuthService creates an AuthService backed by the provided DB.
func NewAuthService(db *sql.DB) AuthService {
	return &authService{db: db}
}

// Register creates a user and returns a JWT. The password is bcrypt-hashed
// before storage; plaintext never touches the database.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	hash, err := pkgauth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.NewV7().String()
	now := time.Now().UTC().Format(time.RFC3339)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, display_name, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, userID, email, hash, input.DisplayName, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := pkgauth.GenerateJWT(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JWT: %w", err)
	}

	return &AuthResult{Token: token, UserID: userID}, nil
}

// Login verifies credentials and returns a JWT. Any failure collapses to
// ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	var userID, passwordHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM users WHERE email = ? LIMIT 1
	`, email).Scan(&userID, &passwordHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !pkgauth.VerifyPassword(passwordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := pkgauth.GenerateJWT(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JWT: %w", err)
	}

	return &AuthResult{Token: token, UserID: userID}, nil
}

// isUniqueViolation reports whether an SQLite error is a UNIQUE constraint
// failure; the driver exposes it only through the message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
