package doctext

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openclaims/riskprice/internal/config"
	"github.com/openclaims/riskprice/internal/filestore"
)

func newTestStore(t *testing.T) filestore.Store {
	t.Helper()
	store, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)
	return store
}

func TestReadText_MissingIsEmptyNotError(t *testing.T) {
	reader := NewReader(newTestStore(t))
	text, err := reader.ReadText(context.Background(), "missing.txt")
	require.NoError(t, err)
	require.Empty(t, text)
}

func TestReadText_TrimsContent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "doc.txt", strings.NewReader("  severe case \n")))

	reader := NewReader(store)
	text, err := reader.ReadText(ctx, "doc.txt")
	require.NoError(t, err)
	require.Equal(t, "severe case", text)
}

type countingReader struct {
	next  Reader
	calls int
}

func (c *countingReader) ReadText(ctx context.Context, key string) (string, error) {
	c.calls++
	return c.next.ReadText(ctx, key)
}

func TestWrapLRUCache_CachesNonEmptyReads(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "doc.txt", strings.NewReader("tumor markers elevated")))

	counter := &countingReader{next: NewReader(store)}
	cached := WrapLRUCache(counter, 16, time.Minute)

	for i := 0; i < 3; i++ {
		text, err := cached.ReadText(ctx, "doc.txt")
		require.NoError(t, err)
		require.Equal(t, "tumor markers elevated", text)
	}
	require.Equal(t, 1, counter.calls)

	// empty results are not cached, every miss goes through
	for i := 0; i < 2; i++ {
		text, err := cached.ReadText(ctx, "missing.txt")
		require.NoError(t, err)
		require.Empty(t, text)
	}
	require.Equal(t, 3, counter.calls)
}
