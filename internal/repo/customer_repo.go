package repo

import (
	"context"

	"github.com/didi/gendry/builder"

	"github.com/openclaims/riskprice/internal/db"
	"github.com/openclaims/riskprice/internal/model"
	"github.com/openclaims/riskprice/internal/pkg/dbutil"
)

type CustomerRepo struct {
	db *db.DB
}

func NewCustomerRepo(d *db.DB) *CustomerRepo {
	return &CustomerRepo{db: d}
}

func (r *CustomerRepo) Insert(ctx context.Context, q Execer, customer *model.Customer) error {
	data := map[string]interface{}{
		"id":            customer.ID,
		"full_name":     customer.FullName,
		"date_of_birth": customer.DateOfBirth,
	}
	if customer.RegionID != nil {
		data["region_id"] = *customer.RegionID
	}
	sqlStr, args, err := builder.BuildInsert("customers", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	_, err = q.ExecContext(ctx, sqlStr, args...)
	return err
}
