package filestore

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openclaims/riskprice/internal/config"
)

func newLocalStore(t *testing.T) Store {
	t.Helper()
	store, err := New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)
	return store
}

func TestLocalStore_SaveAndOpen(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "doc_1.txt", strings.NewReader("severe case notes")))

	r, err := store.Open(ctx, "doc_1.txt")
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "severe case notes", string(data))
}

func TestLocalStore_OpenMissing(t *testing.T) {
	store := newLocalStore(t)
	_, err := store.Open(context.Background(), "missing.txt")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store := newLocalStore(t)
	err := store.Save(context.Background(), "../escape.txt", strings.NewReader("x"))
	require.Error(t, err)
}
