package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/openclaims/riskprice/internal/service"
)

// RetrainJob runs the retraining gate on a schedule. The gate itself
// decides whether anything happens.
type RetrainJob struct {
	training *service.TrainingService
}

func NewRetrainJob(training *service.TrainingService) *RetrainJob {
	return &RetrainJob{training: training}
}

func (j *RetrainJob) Name() string {
	return "model_retrain"
}

func (j *RetrainJob) Run(ctx context.Context) error {
	result, err := j.training.TrainIfNeeded(ctx)
	if err != nil {
		return err
	}
	if result.Retrained {
		logutil.GetLogger(ctx).Info("model retrained",
			zap.Int64("model_version", result.ModelVersion),
			zap.Int("usable_documents", result.UsableDocuments))
	} else {
		logutil.GetLogger(ctx).Info("retrain skipped", zap.String("reason", result.SkipReason))
	}
	return nil
}
