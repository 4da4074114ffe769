package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/openclaims/riskprice/internal/db"
	"github.com/openclaims/riskprice/internal/model"
	"github.com/openclaims/riskprice/internal/pkg/dbutil"
)

type PolicyRepo struct {
	db *db.DB
}

func NewPolicyRepo(d *db.DB) *PolicyRepo {
	return &PolicyRepo{db: d}
}

func (r *PolicyRepo) Insert(ctx context.Context, tx *sql.Tx, policy *model.Policy) (int64, error) {
	id, err := NextID(ctx, tx, "policies")
	if err != nil {
		return 0, err
	}
	data := map[string]interface{}{
		"id":         id,
		"product_id": policy.ProductID,
		"issue_date": policy.IssueDate,
		"status":     policy.Status,
	}
	sqlStr, args, err := builder.BuildInsert("policies", []map[string]interface{}{data})
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return 0, err
	}
	policy.ID = id
	return id, nil
}

func (r *PolicyRepo) InsertParty(ctx context.Context, tx *sql.Tx, party *model.PolicyParty) error {
	data := map[string]interface{}{
		"policy_id":   party.PolicyID,
		"customer_id": party.CustomerID,
		"role_code":   party.RoleCode,
	}
	sqlStr, args, err := builder.BuildInsert("policy_parties", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	_, err = tx.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *PolicyRepo) InsertPayment(ctx context.Context, tx *sql.Tx, payment *model.PremiumPayment) error {
	id, err := NextID(ctx, tx, "premium_payments")
	if err != nil {
		return err
	}
	data := map[string]interface{}{
		"id":             id,
		"policy_id":      payment.PolicyID,
		"due_date":       payment.DueDate,
		"amount":         payment.Amount,
		"payment_status": payment.Status,
	}
	sqlStr, args, err := builder.BuildInsert("premium_payments", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return err
	}
	payment.ID = id
	return nil
}

func (r *PolicyRepo) ListPayments(ctx context.Context, policyID int64) ([]model.PremiumPayment, error) {
	where := map[string]interface{}{
		"policy_id": policyID,
		"_orderby":  "due_date asc, id asc",
	}
	sqlStr, args, err := builder.BuildSelect("premium_payments", where,
		[]string{"id", "policy_id", "due_date", "amount", "payment_status"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(r.db.Driver, sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.PremiumPayment{}
	for rows.Next() {
		var item model.PremiumPayment
		if err := rows.Scan(&item.ID, &item.PolicyID, &item.DueDate, &item.Amount, &item.Status); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
