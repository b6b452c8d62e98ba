package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorageCodeSent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	sent, err := store.IsCodeSent(ctx, "1")
	require.NoError(t, err)
	require.False(t, sent)

	require.NoError(t, store.MarkCodeSent(ctx, "1"))
	require.NoError(t, store.MarkCodeSent(ctx, "1"))
	sent, err = store.IsCodeSent(ctx, "1")
	require.NoError(t, err)
	require.True(t, sent)

	require.NoError(t, store.ClearCodeSent(ctx, "1"))
	sent, err = store.IsCodeSent(ctx, "1")
	require.NoError(t, err)
	require.False(t, sent)
}
