package doctext

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// WrapLRUCache caches non-empty text reads. Documents are immutable after
// ingestion, so a TTL only bounds memory, not staleness.
func WrapLRUCache(next Reader, size int, ttl time.Duration) Reader {
	if next == nil || size <= 0 || ttl <= 0 {
		return next
	}
	return &lruReader{
		next:  next,
		cache: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

type lruReader struct {
	next  Reader
	cache *expirable.LRU[string, string]
}

func (l *lruReader) ReadText(ctx context.Context, storageKey string) (string, error) {
	if cached, ok := l.cache.Get(storageKey); ok {
		return cached, nil
	}
	text, err := l.next.ReadText(ctx, storageKey)
	if err != nil {
		return "", err
	}
	if text != "" {
		l.cache.Add(storageKey, text)
	}
	return text, nil
}
