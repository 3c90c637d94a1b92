package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCertificateIDStore(t *testing.T) {
	store := NewMemoryCertificateIDStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, 5, 100)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, 5, 100, "CERT-100-5-abc"))

	got, ok, err := store.Get(ctx, 5, 100)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "CERT-100-5-abc", got)

	// Other pairs stay isolated.
	_, ok, err = store.Get(ctx, 6, 100)
	require.NoError(t, err)
	assert.False(t, ok)
}
