package repo

import (
	"context"

	"github.com/didi/gendry/builder"

	"github.com/openclaims/riskprice/internal/db"
	"github.com/openclaims/riskprice/internal/model"
	"github.com/openclaims/riskprice/internal/pkg/dbutil"
)

// ActivityRepo appends to the audit trail. There is deliberately no update
// or delete here.
type ActivityRepo struct {
	db *db.DB
}

func NewActivityRepo(d *db.DB) *ActivityRepo {
	return &ActivityRepo{db: d}
}

func (r *ActivityRepo) Append(ctx context.Context, q Execer, activity *model.Activity) error {
	id, err := NextID(ctx, q, "activities")
	if err != nil {
		return err
	}
	data := map[string]interface{}{
		"id":                 id,
		"policy_id":          activity.PolicyID,
		"customer_id":        activity.CustomerID,
		"activity_type":      activity.ActivityType,
		"activity_timestamp": activity.Timestamp,
		"notes":              activity.Notes,
	}
	sqlStr, args, err := builder.BuildInsert("activities", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	if _, err := q.ExecContext(ctx, sqlStr, args...); err != nil {
		return err
	}
	activity.ID = id
	return nil
}

func (r *ActivityRepo) ListByType(ctx context.Context, activityType string, limit uint) ([]model.Activity, error) {
	where := map[string]interface{}{
		"activity_type": activityType,
		"_orderby":      "activity_timestamp desc, id desc",
	}
	if limit > 0 {
		where["_limit"] = []uint{limit}
	}
	sqlStr, args, err := builder.BuildSelect("activities", where,
		[]string{"id", "policy_id", "customer_id", "activity_type", "activity_timestamp", "notes"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Activity{}
	for rows.Next() {
		var item model.Activity
		if err := rows.Scan(&item.ID, &item.PolicyID, &item.CustomerID, &item.ActivityType, &item.Timestamp, &item.Notes); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
