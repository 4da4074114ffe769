package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/openclaims/riskprice/internal/artifact"
	"github.com/openclaims/riskprice/internal/config"
	"github.com/openclaims/riskprice/internal/db"
	"github.com/openclaims/riskprice/internal/doctext"
	"github.com/openclaims/riskprice/internal/filestore"
	"github.com/openclaims/riskprice/internal/handler"
	"github.com/openclaims/riskprice/internal/job"
	"github.com/openclaims/riskprice/internal/middleware"
	appErr "github.com/openclaims/riskprice/internal/pkg/errors"
	"github.com/openclaims/riskprice/internal/pkg/jwt"
	"github.com/openclaims/riskprice/internal/pkg/password"
	"github.com/openclaims/riskprice/internal/repo"
	"github.com/openclaims/riskprice/internal/schedule"
	"github.com/openclaims/riskprice/internal/service"
)

const (
	docTextCacheSize = 256
	docTextCacheTTL  = 10 * time.Minute
)

// app wires the full service graph once per command invocation.
type app struct {
	cfg        *config.Config
	db         *db.DB
	files      filestore.Store
	documents  *service.DocumentService
	training   *service.TrainingService
	pricing    *service.PricingService
	quotes     *service.QuoteService
	rates      *service.RatesService
	seed       *service.SeedService
	state      *repo.StateRepo
	artifacts  *artifact.Store
}

func newApp(configPath string) (*app, error) {
	if configPath == "" {
		return nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)

	d, err := db.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.ApplyMigrations(d); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	files, err := filestore.New(cfg.FileStore)
	if err != nil {
		return nil, fmt.Errorf("init file store: %w", err)
	}

	docRepo := repo.NewDocumentRepo(d)
	productRepo := repo.NewProductRepo(d)
	activityRepo := repo.NewActivityRepo(d)
	policyRepo := repo.NewPolicyRepo(d)
	customerRepo := repo.NewCustomerRepo(d)
	regionRepo := repo.NewRegionRepo(d)
	stateRepo := repo.NewStateRepo(d)
	vectorRepo := repo.NewVectorRepo(d)

	reader := doctext.WrapLRUCache(doctext.NewReader(files), docTextCacheSize, docTextCacheTTL)
	artifacts := artifact.NewStore(files)
	documents := service.NewDocumentService(d, docRepo, files, reader)

	a := &app{
		cfg:       cfg,
		db:        d,
		files:     files,
		documents: documents,
		training:  service.NewTrainingService(documents, artifacts, stateRepo, vectorRepo),
		pricing:   service.NewPricingService(d, documents, productRepo, activityRepo, stateRepo, vectorRepo, artifacts, cfg.Pricing),
		quotes:    service.NewQuoteService(d, productRepo, policyRepo, activityRepo),
		rates:     service.NewRatesService(d, regionRepo),
		seed:      service.NewSeedService(d, productRepo, customerRepo, policyRepo, regionRepo, activityRepo),
		state:     stateRepo,
		artifacts: artifacts,
	}
	return a, nil
}

func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

// friendlyError rewrites the domain errors into operator-facing guidance.
func friendlyError(err error) error {
	switch {
	case errors.Is(err, appErr.ErrMissingArtifact):
		return fmt.Errorf("no trained model artifacts found: run `riskprice retrain` first")
	case errors.Is(err, appErr.ErrInsufficientData):
		return fmt.Errorf("not enough documents to train: ingest more with `riskprice ingest`")
	case errors.Is(err, appErr.ErrNoUsableDocuments):
		return fmt.Errorf("no recent documents with readable text: ingest documents before pricing")
	case errors.Is(err, appErr.ErrProductNotFound):
		return fmt.Errorf("product not found: run `riskprice seed` or check the id")
	case errors.Is(err, appErr.ErrInvalidPrice):
		return fmt.Errorf("product has no base price set: run `riskprice seed` or set one manually")
	default:
		return err
	}
}

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "riskprice",
		Short:         "predictive text-risk pricing pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json")

	withApp := func(fn func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.Close()
			return friendlyError(fn(cmd.Context(), a, args))
		}
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "run the HTTP API and scheduled jobs",
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			return runServer(a)
		}),
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "insert the baseline demo data",
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			created, err := a.seed.Seed(ctx)
			if err != nil {
				return err
			}
			if !created {
				fmt.Println("seed data already present")
				return nil
			}
			fmt.Println("seed data inserted: product 1, customer 1, policy 1")
			return nil
		}),
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "ingest <file> <customer_id>",
		Short: "register a document for the pipeline",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			customerID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("bad customer_id %q: %w", args[1], err)
			}
			doc, err := a.documents.Ingest(ctx, service.IngestInput{
				FileName:   args[0],
				Content:    content,
				CustomerID: customerID,
			})
			if err != nil {
				return err
			}
			fmt.Printf("ingested document %d (storage key %s)\n", doc.ID, doc.StorageKey)
			return nil
		}),
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "retrain",
		Short: "run the retraining gate once",
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			result, err := a.training.TrainIfNeeded(ctx)
			if err != nil {
				return err
			}
			if !result.Retrained {
				fmt.Printf("retrain skipped: %s (model version %d)\n", result.SkipReason, result.ModelVersion)
				return nil
			}
			fmt.Printf("trained model version %d from %d documents\n", result.ModelVersion, result.UsableDocuments)
			return nil
		}),
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "predict",
		Short: "compute the current pricing factor without applying it",
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			result, err := a.pricing.PredictFactor(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("model v%d: avg_high_risk_prob=%.3f factor=%.3f over docs=%v\n",
				result.ModelVersion, result.AverageRisk, result.Factor, result.DocumentIDs)
			return nil
		}),
	})

	applyCmd := &cobra.Command{
		Use:   "apply-pricing [product_id [policy_id [customer_id]]]",
		Short: "recompute the factor and write the new price with its audit record",
		Args:  cobra.MaximumNArgs(3),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			ids := []int64{1, 1, 1}
			for i, arg := range args {
				parsed, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("bad id %q: %w", arg, err)
				}
				ids[i] = parsed
			}
			result, err := a.pricing.ApplyPricing(ctx, ids[0], ids[1], ids[2])
			if err != nil {
				return err
			}
			fmt.Printf("product %d (%s): %.2f -> %.2f (factor %.3f, model v%d)\n",
				result.ProductID, result.ProductName, result.OldPrice, result.NewPrice,
				result.Factor.Factor, result.Factor.ModelVersion)
			return nil
		}),
	}
	rootCmd.AddCommand(applyCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "quote <customer_id> <product_id>",
		Short: "quote a product at the current base price",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			customerID, productID, err := parseIDPair(args)
			if err != nil {
				return err
			}
			result, err := a.quotes.Quote(ctx, customerID, productID)
			if err != nil {
				return err
			}
			fmt.Printf("quote for customer %d: %s at %.2f\n", result.CustomerID, result.ProductName, result.Price)
			return nil
		}),
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "purchase <customer_id> <product_id>",
		Short: "sell a policy at the current base price",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			customerID, productID, err := parseIDPair(args)
			if err != nil {
				return err
			}
			result, err := a.quotes.Purchase(ctx, customerID, productID)
			if err != nil {
				return err
			}
			fmt.Printf("policy %d issued for customer %d at %.2f (%d scheduled payments)\n",
				result.PolicyID, result.CustomerID, result.Price, result.Payments)
			return nil
		}),
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "import-rates <csv>",
		Short: "load external disease rates from a csv file",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			imported, err := a.rates.ImportCSV(ctx, f)
			if err != nil {
				return err
			}
			fmt.Printf("imported %d rate rows\n", imported)
			return nil
		}),
	})

	var tokenPassword string
	authTokenCmd := &cobra.Command{
		Use:   "auth-token <subject>",
		Short: "issue an API bearer token",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			if a.cfg.Server.JWTSecret == "" {
				return fmt.Errorf("server.jwt_secret is not configured")
			}
			if a.cfg.Server.AdminPasswordHash == "" {
				return fmt.Errorf("server.admin_password_hash is not configured")
			}
			if err := password.Compare(a.cfg.Server.AdminPasswordHash, tokenPassword); err != nil {
				return fmt.Errorf("invalid credentials")
			}
			ttl := time.Hour * time.Duration(a.cfg.Server.JWTTTLHours)
			token, err := jwt.GenerateToken(args[0], []byte(a.cfg.Server.JWTSecret), ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		}),
	}
	authTokenCmd.Flags().StringVar(&tokenPassword, "password", "", "operator password")
	rootCmd.AddCommand(authTokenCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "hash-password <password>",
		Short: "hash a password for server.admin_password_hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := password.Hash(args[0])
			if err != nil {
				return err
			}
			fmt.Println(hash)
			return nil
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func parseIDPair(args []string) (int64, int64, error) {
	first, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad id %q: %w", args[0], err)
	}
	second, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad id %q: %w", args[1], err)
	}
	return first, second, nil
}

func runServer(a *app) error {
	cfg := a.cfg
	logutil.GetLogger(context.Background()).Info("starting server",
		zap.Int("port", cfg.Server.Port),
		zap.String("driver", cfg.Database.Driver),
		zap.String("file_store", cfg.FileStore.Type),
	)

	ttl := time.Hour * time.Duration(cfg.Server.JWTTTLHours)
	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler([]byte(cfg.Server.JWTSecret), ttl, cfg.Server.AdminPasswordHash),
		Documents: handler.NewDocumentHandler(a.documents),
		Model:     handler.NewModelHandler(a.training, a.state),
		Pricing:   handler.NewPricingHandler(a.pricing),
		Quotes:    handler.NewQuoteHandler(a.quotes),
		JWTSecret: []byte(cfg.Server.JWTSecret),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Server.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sched schedule.Scheduler
	if cfg.Schedule.Enable {
		cronSched := schedule.NewCronScheduler()
		if err := cronSched.AddJob(job.NewRetrainJob(a.training), cfg.Schedule.RetrainSpec); err != nil {
			return err
		}
		pricingJob := job.NewPricingJob(a.pricing, cfg.Schedule.ProductID, cfg.Schedule.PolicyID, cfg.Schedule.CustomerID)
		if err := cronSched.AddJob(pricingJob, cfg.Schedule.PricingSpec); err != nil {
			return err
		}
		cronSched.Start(ctx)
		sched = cronSched
	}

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	if sched != nil {
		sched.Stop()
	}
	return nil
}
