package job

import (
	"context"
	"errors"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/openclaims/riskprice/internal/pkg/errors"
	"github.com/openclaims/riskprice/internal/service"
)

// PricingJob periodically reprices the configured product from the latest
// model output. Conditions where no safe factor exists yet are logged and
// skipped rather than treated as failures.
type PricingJob struct {
	pricing    *service.PricingService
	productID  int64
	policyID   int64
	customerID int64
}

func NewPricingJob(pricing *service.PricingService, productID, policyID, customerID int64) *PricingJob {
	return &PricingJob{pricing: pricing, productID: productID, policyID: policyID, customerID: customerID}
}

func (j *PricingJob) Name() string {
	return "pricing_apply"
}

func (j *PricingJob) Run(ctx context.Context) error {
	result, err := j.pricing.ApplyPricing(ctx, j.productID, j.policyID, j.customerID)
	if errors.Is(err, appErr.ErrMissingArtifact) || errors.Is(err, appErr.ErrNoUsableDocuments) {
		logutil.GetLogger(ctx).Info("pricing skipped", zap.Error(err))
		return nil
	}
	if err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("price updated",
		zap.Int64("product_id", j.productID),
		zap.Float64("old_price", result.OldPrice),
		zap.Float64("new_price", result.NewPrice),
		zap.Float64("factor", result.Factor.Factor))
	return nil
}
