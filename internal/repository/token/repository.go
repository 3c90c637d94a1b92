package token

import (
	"context"
	"time"
)

// Token is an anti-forgery token bound to a signed-in user's session.
type Token struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Repository persists session anti-forgery tokens.
type Repository interface {
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}
