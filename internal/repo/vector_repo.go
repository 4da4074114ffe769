package repo

import (
	"context"
	"database/sql"
	"strings"

	"github.com/didi/gendry/builder"
	"github.com/pgvector/pgvector-go"

	"github.com/openclaims/riskprice/internal/db"
	"github.com/openclaims/riskprice/internal/model"
	"github.com/openclaims/riskprice/internal/pkg/dbutil"
)

// VectorRepo caches the feature vector each model version produced for each
// document. Entries are advisory: a miss just means the text gets
// re-vectorized.
type VectorRepo struct {
	db *db.DB
}

func NewVectorRepo(d *db.DB) *VectorRepo {
	return &VectorRepo{db: d}
}

func (r *VectorRepo) Get(ctx context.Context, docID, modelVersion int64) ([]float32, bool, error) {
	where := map[string]interface{}{
		"doc_id":        docID,
		"model_version": modelVersion,
	}
	sqlStr, args, err := builder.BuildSelect("document_vectors", where, []string{"features"})
	if err != nil {
		return nil, false, err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	var features pgvector.Vector
	if err := row.Scan(&features); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	return features.Slice(), true, nil
}

func (r *VectorRepo) Save(ctx context.Context, vec *model.DocumentVector) error {
	data := map[string]interface{}{
		"doc_id":        vec.DocID,
		"model_version": vec.ModelVersion,
		"features":      pgvector.NewVector(vec.Features),
		"ctime":         vec.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("document_vectors", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	if r.db.Driver == "postgres" {
		sqlStr += " ON CONFLICT (doc_id, model_version) DO UPDATE SET features = EXCLUDED.features, ctime = EXCLUDED.ctime"
	} else {
		sqlStr = strings.Replace(sqlStr, "INSERT INTO", "INSERT OR REPLACE INTO", 1)
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// PurgeBefore drops cache rows for model versions older than the given one.
// Superseded versions are never scored again.
func (r *VectorRepo) PurgeBefore(ctx context.Context, modelVersion int64) error {
	where := map[string]interface{}{
		"model_version <": modelVersion,
	}
	sqlStr, args, err := builder.BuildDelete("document_vectors", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}
