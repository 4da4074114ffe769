package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/openclaims/riskprice/internal/db"
	"github.com/openclaims/riskprice/internal/model"
	appErr "github.com/openclaims/riskprice/internal/pkg/errors"
	"github.com/openclaims/riskprice/internal/repo"
)

const scheduledPaymentCount = 3

// QuoteService covers the plain policy-sale flows that consume the price
// the predictive pipeline maintains.
type QuoteService struct {
	db         *db.DB
	products   *repo.ProductRepo
	policies   *repo.PolicyRepo
	activities *repo.ActivityRepo
	now        func() time.Time
}

func NewQuoteService(d *db.DB, products *repo.ProductRepo, policies *repo.PolicyRepo, activities *repo.ActivityRepo) *QuoteService {
	return &QuoteService{db: d, products: products, policies: policies, activities: activities, now: time.Now}
}

type QuoteResult struct {
	CustomerID  int64   `json:"customer_id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Status      string  `json:"status"`
	Price       float64 `json:"price"`
}

// Quote reads the current base price and logs the quote event. policy_id 0
// in the audit row means "no policy yet".
func (s *QuoteService) Quote(ctx context.Context, customerID, productID int64) (*QuoteResult, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.BasePrice == nil {
		return nil, fmt.Errorf("%w: product %d has no base_price", appErr.ErrInvalidPrice, productID)
	}
	note := fmt.Sprintf("Quote generated for product_id=%d (%s). base_price=%.2f.",
		productID, product.Name, *product.BasePrice)
	err = repo.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.activities.Append(ctx, tx, &model.Activity{
			PolicyID:     0,
			CustomerID:   customerID,
			ActivityType: model.ActivityQuoteGenerated,
			Timestamp:    s.now().Unix(),
			Notes:        note,
		})
	})
	if err != nil {
		return nil, err
	}
	return &QuoteResult{
		CustomerID:  customerID,
		ProductID:   productID,
		ProductName: product.Name,
		Status:      product.Status,
		Price:       *product.BasePrice,
	}, nil
}

type PurchaseResult struct {
	PolicyID    int64   `json:"policy_id"`
	CustomerID  int64   `json:"customer_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Payments    int     `json:"payments"`
}

// Purchase creates the policy, links the insured customer, and schedules
// monthly premium payments at the current base price, all in one commit.
func (s *QuoteService) Purchase(ctx context.Context, customerID, productID int64) (*PurchaseResult, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.BasePrice == nil {
		return nil, fmt.Errorf("%w: product %d has no base_price", appErr.ErrInvalidPrice, productID)
	}
	price := *product.BasePrice
	now := s.now()

	var policyID int64
	err = repo.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		policy := &model.Policy{
			ProductID: productID,
			IssueDate: now.Format("2006-01-02"),
			Status:    "ACTIVE",
		}
		var err error
		if policyID, err = s.policies.Insert(ctx, tx, policy); err != nil {
			return err
		}
		if err := s.policies.InsertParty(ctx, tx, &model.PolicyParty{
			PolicyID:   policyID,
			CustomerID: customerID,
			RoleCode:   "INSURED",
		}); err != nil {
			return err
		}
		for i := 1; i <= scheduledPaymentCount; i++ {
			due := now.AddDate(0, 0, 30*i).Format("2006-01-02")
			if err := s.policies.InsertPayment(ctx, tx, &model.PremiumPayment{
				PolicyID: policyID,
				DueDate:  due,
				Amount:   price,
				Status:   "SCHEDULED",
			}); err != nil {
				return err
			}
		}
		note := fmt.Sprintf("Policy purchased using current base_price=%.2f for product %q.", price, product.Name)
		return s.activities.Append(ctx, tx, &model.Activity{
			PolicyID:     policyID,
			CustomerID:   customerID,
			ActivityType: model.ActivityPolicyPurchased,
			Timestamp:    now.Unix(),
			Notes:        note,
		})
	})
	if err != nil {
		return nil, err
	}

	logutil.GetLogger(ctx).Info("policy purchased",
		zap.Int64("policy_id", policyID),
		zap.Int64("customer_id", customerID),
		zap.Float64("price", price))
	return &PurchaseResult{
		PolicyID:    policyID,
		CustomerID:  customerID,
		ProductName: product.Name,
		Price:       price,
		Payments:    scheduledPaymentCount,
	}, nil
}
