package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openclaims/riskprice/internal/artifact"
	"github.com/openclaims/riskprice/internal/config"
	"github.com/openclaims/riskprice/internal/db"
	"github.com/openclaims/riskprice/internal/doctext"
	"github.com/openclaims/riskprice/internal/filestore"
	"github.com/openclaims/riskprice/internal/model"
	"github.com/openclaims/riskprice/internal/repo"
)

type testEnv struct {
	db         *db.DB
	files      filestore.Store
	documents  *DocumentService
	training   *TrainingService
	pricing    *PricingService
	quotes     *QuoteService
	rates      *RatesService
	seed       *SeedService
	artifacts  *artifact.Store
	products   *repo.ProductRepo
	activities *repo.ActivityRepo
	policies   *repo.PolicyRepo
	state      *repo.StateRepo
	vectors    *repo.VectorRepo
	clock      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	d, err := db.Open(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, db.ApplyMigrations(d))

	files, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)

	env := &testEnv{
		db:         d,
		files:      files,
		artifacts:  artifact.NewStore(files),
		products:   repo.NewProductRepo(d),
		activities: repo.NewActivityRepo(d),
		policies:   repo.NewPolicyRepo(d),
		state:      repo.NewStateRepo(d),
		vectors:    repo.NewVectorRepo(d),
		clock:      time.Unix(1700000000, 0),
	}
	docRepo := repo.NewDocumentRepo(d)
	customers := repo.NewCustomerRepo(d)
	regions := repo.NewRegionRepo(d)

	env.documents = NewDocumentService(d, docRepo, files, doctext.NewReader(files))
	env.documents.now = func() time.Time { return env.clock }
	env.training = NewTrainingService(env.documents, env.artifacts, env.state, env.vectors)
	env.pricing = NewPricingService(d, env.documents, env.products, env.activities, env.state, env.vectors, env.artifacts, config.PricingConfig{PredictWindow: 5, ApplyWindow: 10})
	env.pricing.now = func() time.Time { return env.clock }
	env.quotes = NewQuoteService(d, env.products, env.policies, env.activities)
	env.quotes.now = func() time.Time { return env.clock }
	env.rates = NewRatesService(d, regions)
	env.seed = NewSeedService(d, env.products, customers, env.policies, regions, env.activities)
	env.seed.now = func() time.Time { return env.clock }
	return env
}

// ingest registers one document and advances the test clock so ingestion
// times strictly increase.
func (env *testEnv) ingest(t *testing.T, text string) *model.Document {
	t.Helper()
	env.clock = env.clock.Add(time.Minute)
	doc, err := env.documents.Ingest(context.Background(), IngestInput{
		FileName:   "report.txt",
		Content:    []byte(text),
		CustomerID: 1,
	})
	require.NoError(t, err)
	return doc
}

func (env *testEnv) insertProduct(t *testing.T, id int64, price *float64) {
	t.Helper()
	require.NoError(t, env.products.Insert(context.Background(), env.db, &model.Product{
		ID:        id,
		Name:      "Health Shield Basic",
		BasePrice: price,
		Status:    "ACTIVE",
	}))
}

func (env *testEnv) trainCorpus(t *testing.T) {
	t.Helper()
	env.ingest(t, "patient presents severe malignant tumor, oncology referral")
	env.ingest(t, "metastatic cancer diagnosis confirmed")
	env.ingest(t, "routine annual checkup, no findings")
	env.ingest(t, "normal blood panel, patient in good health")
}
