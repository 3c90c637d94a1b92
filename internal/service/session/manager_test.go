package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer-panel/internal/domain"
	tokenrepo "customer-panel/internal/repository/token"
)

type memoryTokens struct {
	byToken map[string]tokenrepo.Token
}

func newMemoryTokens() *memoryTokens {
	return &memoryTokens{byToken: make(map[string]tokenrepo.Token)}
}

func (m *memoryTokens) Create(_ context.Context, t tokenrepo.Token) error {
	m.byToken[t.Token] = t
	return nil
}

func (m *memoryTokens) Get(_ context.Context, tok string) (*tokenrepo.Token, error) {
	t, ok := m.byToken[tok]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *memoryTokens) Delete(_ context.Context, tok string) error {
	delete(m.byToken, tok)
	return nil
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := New(newMemoryTokens())

	tok, err := m.Issue(context.Background(), 42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := m.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestVerifyRejectsEmptyAndUnknownTokens(t *testing.T) {
	m := New(newMemoryTokens())

	_, err := m.Verify(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrSecurityCheckFailed)

	_, err = m.Verify(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, domain.ErrSecurityCheckFailed)
}

func TestVerifyRejectsExpiredTokenAndCleansUp(t *testing.T) {
	store := newMemoryTokens()
	store.byToken["stale"] = tokenrepo.Token{
		Token:     "stale",
		UserID:    42,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	m := New(store)

	_, err := m.Verify(context.Background(), "stale")
	assert.ErrorIs(t, err, domain.ErrSecurityCheckFailed)
	assert.NotContains(t, store.byToken, "stale")
}

func TestIssuedTokensAreUnique(t *testing.T) {
	m := New(newMemoryTokens())
	a, err := m.Issue(context.Background(), 1)
	require.NoError(t, err)
	b, err := m.Issue(context.Background(), 1)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
