package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/openclaims/riskprice/internal/db"
	"github.com/openclaims/riskprice/internal/model"
	"github.com/openclaims/riskprice/internal/pkg/dbutil"
)

type RegionRepo struct {
	db *db.DB
}

func NewRegionRepo(d *db.DB) *RegionRepo {
	return &RegionRepo{db: d}
}

// GetOrCreateByState resolves a region id for a state, creating the region
// on first sight.
func (r *RegionRepo) GetOrCreateByState(ctx context.Context, q Execer, country, state string) (int64, error) {
	where := map[string]interface{}{"country": country, "state": state}
	sqlStr, args, err := builder.BuildSelect("regions", where, []string{"id"})
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	var id int64
	err = q.QueryRowContext(ctx, sqlStr, args...).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	id, err = NextID(ctx, q, "regions")
	if err != nil {
		return 0, err
	}
	data := map[string]interface{}{
		"id":      id,
		"country": country,
		"state":   state,
	}
	sqlStr, args, err = builder.BuildInsert("regions", []map[string]interface{}{data})
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	if _, err := q.ExecContext(ctx, sqlStr, args...); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *RegionRepo) InsertRate(ctx context.Context, q Execer, rate *model.ExternalDiseaseRate) error {
	id, err := NextID(ctx, q, "external_disease_rates")
	if err != nil {
		return err
	}
	data := map[string]interface{}{
		"id":           id,
		"region_id":    rate.RegionID,
		"year":         rate.Year,
		"disease_code": rate.DiseaseCode,
		"rate_value":   rate.RateValue,
	}
	sqlStr, args, err := builder.BuildInsert("external_disease_rates", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	if _, err := q.ExecContext(ctx, sqlStr, args...); err != nil {
		return err
	}
	rate.ID = id
	return nil
}
