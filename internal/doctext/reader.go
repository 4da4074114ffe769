// Package doctext loads the raw text behind a document's storage key.
// Missing or unreadable content yields an empty string, never an error:
// callers treat empty text as "unusable" and skip the document.
package doctext

import (
	"context"
	"io"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/openclaims/riskprice/internal/filestore"
)

type Reader interface {
	ReadText(ctx context.Context, storageKey string) (string, error)
}

type storeReader struct {
	store filestore.Store
}

func NewReader(store filestore.Store) Reader {
	return &storeReader{store: store}
}

func (r *storeReader) ReadText(ctx context.Context, storageKey string) (string, error) {
	rc, err := r.store.Open(ctx, storageKey)
	if err != nil {
		if err != filestore.ErrKeyNotFound {
			logutil.GetLogger(ctx).Warn("document content unreadable",
				zap.String("storage_key", storageKey), zap.Error(err))
		}
		return "", nil
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		logutil.GetLogger(ctx).Warn("document content read failed",
			zap.String("storage_key", storageKey), zap.Error(err))
		return "", nil
	}
	return strings.TrimSpace(string(data)), nil
}
