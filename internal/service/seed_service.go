package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/openclaims/riskprice/internal/db"
	"github.com/openclaims/riskprice/internal/model"
	appErr "github.com/openclaims/riskprice/internal/pkg/errors"
	"github.com/openclaims/riskprice/internal/repo"
)

// SeedService loads the baseline demo data the CLI defaults point at:
// product 1 with an initial price, customer 1, and policy 1.
type SeedService struct {
	db         *db.DB
	products   *repo.ProductRepo
	customers  *repo.CustomerRepo
	policies   *repo.PolicyRepo
	regions    *repo.RegionRepo
	activities *repo.ActivityRepo
	now        func() time.Time
}

func NewSeedService(d *db.DB, products *repo.ProductRepo, customers *repo.CustomerRepo, policies *repo.PolicyRepo, regions *repo.RegionRepo, activities *repo.ActivityRepo) *SeedService {
	return &SeedService{db: d, products: products, customers: customers, policies: policies, regions: regions, activities: activities, now: time.Now}
}

// Seed inserts the baseline rows once; a database that already has product 1
// is left untouched.
func (s *SeedService) Seed(ctx context.Context) (bool, error) {
	if _, err := s.products.Get(ctx, 1); err == nil {
		return false, nil
	} else if !errors.Is(err, appErr.ErrProductNotFound) {
		return false, err
	}

	now := s.now()
	err := repo.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		regionID, err := s.regions.GetOrCreateByState(ctx, tx, "USA", "CA")
		if err != nil {
			return err
		}
		if err := s.customers.Insert(ctx, tx, &model.Customer{
			ID:          1,
			FullName:    "Alice Demo",
			DateOfBirth: "1984-06-15",
			RegionID:    &regionID,
		}); err != nil {
			return err
		}
		basePrice := 100.0
		if err := s.products.Insert(ctx, tx, &model.Product{
			ID:            1,
			Name:          "Health Shield Basic",
			BasePrice:     &basePrice,
			Status:        "ACTIVE",
			EffectiveFrom: now.Format("2006-01-02"),
		}); err != nil {
			return err
		}
		policy := &model.Policy{ProductID: 1, IssueDate: now.Format("2006-01-02"), Status: "ACTIVE"}
		policyID, err := s.policies.Insert(ctx, tx, policy)
		if err != nil {
			return err
		}
		return s.policies.InsertParty(ctx, tx, &model.PolicyParty{
			PolicyID:   policyID,
			CustomerID: 1,
			RoleCode:   "INSURED",
		})
	})
	if err != nil {
		return false, err
	}
	logutil.GetLogger(ctx).Info("seed data inserted", zap.Int64("product_id", 1))
	return true, nil
}
