package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/openclaims/riskprice/internal/db"
	"github.com/openclaims/riskprice/internal/model"
	"github.com/openclaims/riskprice/internal/pkg/dbutil"
	appErr "github.com/openclaims/riskprice/internal/pkg/errors"
)

type ProductRepo struct {
	db *db.DB
}

func NewProductRepo(d *db.DB) *ProductRepo {
	return &ProductRepo{db: d}
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (*model.Product, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("products", where,
		[]string{"id", "product_name", "base_price", "status", "effective_from"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)

	var product model.Product
	var basePrice sql.NullFloat64
	var effectiveFrom sql.NullString
	if err := row.Scan(&product.ID, &product.Name, &basePrice, &product.Status, &effectiveFrom); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrProductNotFound
		}
		return nil, err
	}
	if basePrice.Valid {
		price := basePrice.Float64
		product.BasePrice = &price
	}
	product.EffectiveFrom = effectiveFrom.String
	return &product, nil
}

func (r *ProductRepo) Insert(ctx context.Context, q Execer, product *model.Product) error {
	data := map[string]interface{}{
		"id":             product.ID,
		"product_name":   product.Name,
		"status":         product.Status,
		"effective_from": product.EffectiveFrom,
	}
	if product.BasePrice != nil {
		data["base_price"] = *product.BasePrice
	}
	sqlStr, args, err := builder.BuildInsert("products", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	_, err = q.ExecContext(ctx, sqlStr, args...)
	return err
}

// SetBasePrice overwrites the product's price inside the caller's
// transaction so it can commit together with its audit record.
func (r *ProductRepo) SetBasePrice(ctx context.Context, q Execer, id int64, newPrice float64) error {
	where := map[string]interface{}{"id": id}
	update := map[string]interface{}{"base_price": newPrice}
	sqlStr, args, err := builder.BuildUpdate("products", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	result, err := q.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrProductNotFound
	}
	return nil
}
