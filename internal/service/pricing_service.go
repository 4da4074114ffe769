package service

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/openclaims/riskprice/internal/config"
	"github.com/openclaims/riskprice/internal/db"
	"github.com/openclaims/riskprice/internal/model"
	appErr "github.com/openclaims/riskprice/internal/pkg/errors"
	"github.com/openclaims/riskprice/internal/repo"
	"github.com/openclaims/riskprice/internal/risk"
)

// ModelSource loads the trained pair for a model version.
type ModelSource interface {
	Load(ctx context.Context, version int64) (*risk.Model, error)
}

// PricingService computes the bounded pricing factor from recent documents
// and applies it to a product price together with its audit record in one
// transaction.
type PricingService struct {
	db         *db.DB
	documents  *DocumentService
	products   *repo.ProductRepo
	activities *repo.ActivityRepo
	state      *repo.StateRepo
	vectors    *repo.VectorRepo
	models     ModelSource
	cfg        config.PricingConfig
	now        func() time.Time
}

func NewPricingService(d *db.DB, documents *DocumentService, products *repo.ProductRepo, activities *repo.ActivityRepo, state *repo.StateRepo, vectors *repo.VectorRepo, models ModelSource, cfg config.PricingConfig) *PricingService {
	return &PricingService{
		db:         d,
		documents:  documents,
		products:   products,
		activities: activities,
		state:      state,
		vectors:    vectors,
		models:     models,
		cfg:        cfg,
		now:        time.Now,
	}
}

type FactorResult struct {
	ModelVersion int64   `json:"model_version"`
	AverageRisk  float64 `json:"average_risk"`
	Factor       float64 `json:"factor"`
	DocumentIDs  []int64 `json:"document_ids"`
}

// PredictFactor computes the factor over the standalone prediction window
// without touching any price.
func (s *PricingService) PredictFactor(ctx context.Context) (*FactorResult, error) {
	return s.computeFactor(ctx, uint(s.cfg.PredictWindow))
}

func (s *PricingService) computeFactor(ctx context.Context, window uint) (*FactorResult, error) {
	state, err := s.state.Get(ctx)
	if err != nil {
		return nil, err
	}
	trained, err := s.models.Load(ctx, state.ModelVersion)
	if err != nil {
		return nil, err
	}
	docs, err := s.documents.ListRecent(ctx, window)
	if err != nil {
		return nil, err
	}

	var probs []float64
	var usedIDs []int64
	for i := range docs {
		text, err := s.documents.ReadText(ctx, &docs[i])
		if err != nil {
			return nil, err
		}
		if text == "" {
			continue
		}
		probs = append(probs, s.scoreDocument(ctx, trained, state.ModelVersion, &docs[i], text))
		usedIDs = append(usedIDs, docs[i].ID)
	}
	if len(probs) == 0 {
		return nil, appErr.ErrNoUsableDocuments
	}

	avgRisk, factor := risk.PricingFactor(probs)
	return &FactorResult{
		ModelVersion: state.ModelVersion,
		AverageRisk:  avgRisk,
		Factor:       factor,
		DocumentIDs:  usedIDs,
	}, nil
}

// scoreDocument reuses the persisted feature vector for this model version
// when one exists; otherwise it vectorizes the text and caches the result
// best-effort.
func (s *PricingService) scoreDocument(ctx context.Context, trained *risk.Model, version int64, doc *model.Document, text string) float64 {
	if cached, ok, err := s.vectors.Get(ctx, doc.ID, version); err == nil && ok {
		return trained.ScoreVector(toFloat64(cached))
	}
	features := trained.Vectorize(text)
	if err := s.vectors.Save(ctx, &model.DocumentVector{
		DocID:        doc.ID,
		ModelVersion: version,
		Features:     toFloat32(features),
		Ctime:        s.now().Unix(),
	}); err != nil {
		logutil.GetLogger(ctx).Warn("vector cache write failed",
			zap.Int64("doc_id", doc.ID), zap.Error(err))
	}
	return trained.ScoreVector(features)
}

type ApplyResult struct {
	ProductID   int64         `json:"product_id"`
	ProductName string        `json:"product_name"`
	OldPrice    float64       `json:"old_price"`
	NewPrice    float64       `json:"new_price"`
	Factor      *FactorResult `json:"factor"`
}

// ApplyPricing reprices one product from the current model output. The
// price overwrite and its audit record commit together or not at all, and
// no default factor is ever substituted: any failure to compute a safe
// factor aborts the update.
func (s *PricingService) ApplyPricing(ctx context.Context, productID, policyID, customerID int64) (*ApplyResult, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.BasePrice == nil {
		return nil, fmt.Errorf("%w: product %d has no base_price", appErr.ErrInvalidPrice, productID)
	}
	oldPrice := *product.BasePrice

	factor, err := s.computeFactor(ctx, uint(s.cfg.ApplyWindow))
	if err != nil {
		return nil, err
	}
	newPrice := roundPrice(oldPrice * factor.Factor)

	note := fmt.Sprintf(
		"Predictive pricing update (v%d). Computed avg_high_risk_prob=%.3f from docs=%v. Applied factor=%.3f to product %q base_price: %.2f -> %.2f.",
		factor.ModelVersion, factor.AverageRisk, factor.DocumentIDs, factor.Factor, product.Name, oldPrice, newPrice)

	err = repo.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.products.SetBasePrice(ctx, tx, productID, newPrice); err != nil {
			return err
		}
		return s.activities.Append(ctx, tx, &model.Activity{
			PolicyID:     policyID,
			CustomerID:   customerID,
			ActivityType: model.ActivityPricingUpdated,
			Timestamp:    s.now().Unix(),
			Notes:        note,
		})
	})
	if err != nil {
		return nil, err
	}

	logutil.GetLogger(ctx).Info("pricing applied",
		zap.Int64("product_id", productID),
		zap.Int64("model_version", factor.ModelVersion),
		zap.Float64("factor", factor.Factor),
		zap.Float64("old_price", oldPrice),
		zap.Float64("new_price", newPrice))
	return &ApplyResult{
		ProductID:   productID,
		ProductName: product.Name,
		OldPrice:    oldPrice,
		NewPrice:    newPrice,
		Factor:      factor,
	}, nil
}

// roundPrice rounds to 2 decimal places at the single point of price
// application.
func roundPrice(x float64) float64 {
	return math.Round(x*100) / 100
}

func toFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
