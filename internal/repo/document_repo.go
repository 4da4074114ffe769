package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/openclaims/riskprice/internal/db"
	"github.com/openclaims/riskprice/internal/model"
	"github.com/openclaims/riskprice/internal/pkg/dbutil"
)

// Document orderings. Inference wants the most recent window, retraining
// walks the full history oldest-first.
const (
	OrderAscending  = "ingested_at asc, id asc"
	OrderDescending = "ingested_at desc, id desc"
)

type DocumentRepo struct {
	db *db.DB
}

func NewDocumentRepo(d *db.DB) *DocumentRepo {
	return &DocumentRepo{db: d}
}

// Insert writes the document row inside the caller's transaction and
// returns the assigned id.
func (r *DocumentRepo) Insert(ctx context.Context, tx *sql.Tx, doc *model.Document) (int64, error) {
	id, err := NextID(ctx, tx, "documents")
	if err != nil {
		return 0, err
	}
	data := map[string]interface{}{
		"id":            id,
		"doc_type":      doc.DocType,
		"storage_key":   doc.StorageKey,
		"ingested_at":   doc.IngestedAt,
		"json_metadata": doc.Metadata,
	}
	sqlStr, args, err := builder.BuildInsert("documents", []map[string]interface{}{data})
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return 0, err
	}
	doc.ID = id
	return id, nil
}

func (r *DocumentRepo) Link(ctx context.Context, tx *sql.Tx, link *model.DocumentLink) error {
	data := map[string]interface{}{
		"doc_id":      link.DocID,
		"entity_type": link.EntityType,
		"entity_id":   link.EntityID,
	}
	sqlStr, args, err := builder.BuildInsert("document_links", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	_, err = tx.ExecContext(ctx, sqlStr, args...)
	return err
}

// List returns documents in the given ingestion-time order. limit 0 means
// no limit. An empty table yields an empty slice, not an error.
func (r *DocumentRepo) List(ctx context.Context, order string, limit uint) ([]model.Document, error) {
	where := map[string]interface{}{
		"_orderby": order,
	}
	if limit > 0 {
		where["_limit"] = []uint{limit}
	}
	sqlStr, args, err := builder.BuildSelect("documents", where,
		[]string{"id", "doc_type", "storage_key", "ingested_at", "json_metadata"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []model.Document{}
	for rows.Next() {
		var doc model.Document
		var metadata sql.NullString
		if err := rows.Scan(&doc.ID, &doc.DocType, &doc.StorageKey, &doc.IngestedAt, &metadata); err != nil {
			return nil, err
		}
		doc.Metadata = metadata.String
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
