package service

import (
	"bytes"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/openclaims/riskprice/internal/db"
	"github.com/openclaims/riskprice/internal/doctext"
	"github.com/openclaims/riskprice/internal/filestore"
	"github.com/openclaims/riskprice/internal/model"
	appErr "github.com/openclaims/riskprice/internal/pkg/errors"
	"github.com/openclaims/riskprice/internal/repo"
	"github.com/openclaims/riskprice/internal/textextract"
)

// DocumentService is the document-store boundary for the predictive
// pipeline: time-ordered listings plus lazy text loading. Document rows are
// read-only once ingested.
type DocumentService struct {
	db    *db.DB
	docs  *repo.DocumentRepo
	files filestore.Store
	text  doctext.Reader
	now   func() time.Time
}

func NewDocumentService(d *db.DB, docs *repo.DocumentRepo, files filestore.Store, text doctext.Reader) *DocumentService {
	return &DocumentService{db: d, docs: docs, files: files, text: text, now: time.Now}
}

type IngestInput struct {
	FileName   string
	Content    []byte
	CustomerID int64
}

// Ingest extracts plain text from the uploaded file, stores it, and
// registers the document linked to its customer. The stored text is what
// training and scoring will read later.
func (s *DocumentService) Ingest(ctx context.Context, in IngestInput) (*model.Document, error) {
	if in.CustomerID <= 0 || in.FileName == "" {
		return nil, appErr.ErrInvalid
	}
	plain := textextract.FromFile(in.FileName, in.Content)

	suffix := make([]byte, 8)
	_, _ = rand.Read(suffix)
	key := fmt.Sprintf("doc_%s.txt", hex.EncodeToString(suffix))

	if err := s.files.Save(ctx, key, bytes.NewReader([]byte(plain))); err != nil {
		return nil, err
	}

	now := s.now()
	metadata, _ := json.Marshal(map[string]interface{}{
		"filename":    in.FileName,
		"char_length": len(plain),
		"ingested_at": now.Format(time.RFC3339),
	})
	doc := &model.Document{
		DocType:    "TextReport",
		StorageKey: key,
		IngestedAt: now.Unix(),
		Metadata:   string(metadata),
	}
	err := repo.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := s.docs.Insert(ctx, tx, doc); err != nil {
			return err
		}
		return s.docs.Link(ctx, tx, &model.DocumentLink{
			DocID:      doc.ID,
			EntityType: "Customer",
			EntityID:   in.CustomerID,
		})
	})
	if err != nil {
		// The stored object is orphaned but harmless; nothing references it.
		logutil.GetLogger(ctx).Warn("document registration failed after store write",
			zap.String("storage_key", key), zap.Error(err))
		return nil, err
	}
	logutil.GetLogger(ctx).Info("document ingested",
		zap.Int64("doc_id", doc.ID),
		zap.Int64("customer_id", in.CustomerID),
		zap.Int("chars", len(plain)))
	return doc, nil
}

// ListAscending returns the full history, oldest first.
func (s *DocumentService) ListAscending(ctx context.Context) ([]model.Document, error) {
	return s.docs.List(ctx, repo.OrderAscending, 0)
}

// ListRecent returns the newest documents first, bounded by limit.
func (s *DocumentService) ListRecent(ctx context.Context, limit uint) ([]model.Document, error) {
	return s.docs.List(ctx, repo.OrderDescending, limit)
}

// ReadText loads a document's stored text. Empty means unusable, not an
// error; callers skip such documents.
func (s *DocumentService) ReadText(ctx context.Context, doc *model.Document) (string, error) {
	return s.text.ReadText(ctx, doc.StorageKey)
}
