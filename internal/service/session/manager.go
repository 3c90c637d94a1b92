// Package session issues and verifies the per-session anti-forgery tokens the
// panel requires on every request.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"customer-panel/internal/domain"
	tokenrepo "customer-panel/internal/repository/token"
)

// Manager hands out opaque tokens bound to a user and validates them later.
type Manager struct {
	tokens tokenrepo.Repository
	ttl    time.Duration
}

// New creates a Manager with a 12 hour token lifetime.
func New(tokens tokenrepo.Repository) *Manager {
	return &Manager{tokens: tokens, ttl: 12 * time.Hour}
}

// Issue creates a fresh token for the user's session.
func (m *Manager) Issue(ctx context.Context, userID int64) (string, error) {
	tok, err := randomToken()
	if err != nil {
		return "", err
	}
	if err := m.tokens.Create(ctx, tokenrepo.Token{
		Token:     tok,
		UserID:    userID,
		ExpiresAt: time.Now().Add(m.ttl),
	}); err != nil {
		return "", err
	}
	return tok, nil
}

// Verify resolves a token to the acting user id. A missing, unknown or expired
// token fails with domain.ErrSecurityCheckFailed.
func (m *Manager) Verify(ctx context.Context, tok string) (int64, error) {
	if tok == "" {
		return 0, domain.ErrSecurityCheckFailed
	}
	rec, err := m.tokens.Get(ctx, tok)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrSecurityCheckFailed
		}
		return 0, err
	}
	if time.Now().After(rec.ExpiresAt) {
		// Best effort cleanup; an expired token is invalid either way.
		_ = m.tokens.Delete(ctx, tok)
		return 0, domain.ErrSecurityCheckFailed
	}
	return rec.UserID, nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
