package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/openclaims/riskprice/internal/artifact"
	"github.com/openclaims/riskprice/internal/model"
	"github.com/openclaims/riskprice/internal/repo"
	"github.com/openclaims/riskprice/internal/risk"
)

// TrainingService is the retraining gate. It retrains only when a document
// newer than the last-trained watermark exists, and it persists the trained
// artifact pair before committing the advanced state record, so the state
// never points at an artifact version that was not fully written.
//
// Callers serialize retraining against pricing runs themselves (separate
// process steps or the scheduler's sequential jobs); the gate does not lock.
type TrainingService struct {
	documents *DocumentService
	artifacts *artifact.Store
	state     *repo.StateRepo
	vectors   *repo.VectorRepo
}

func NewTrainingService(documents *DocumentService, artifacts *artifact.Store, state *repo.StateRepo, vectors *repo.VectorRepo) *TrainingService {
	return &TrainingService{documents: documents, artifacts: artifacts, state: state, vectors: vectors}
}

type TrainResult struct {
	Retrained       bool   `json:"retrained"`
	SkipReason      string `json:"skip_reason,omitempty"`
	ModelVersion    int64  `json:"model_version"`
	UsableDocuments int    `json:"usable_documents,omitempty"`
	LastTrainedAt   *int64 `json:"last_trained_at,omitempty"`
}

// TrainIfNeeded runs the gate once. A second run with no new documents is a
// no-op that leaves the persisted state byte-identical.
func (s *TrainingService) TrainIfNeeded(ctx context.Context) (*TrainResult, error) {
	state, err := s.state.Get(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := s.documents.ListAscending(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return &TrainResult{
			Retrained:     false,
			SkipReason:    "no documents ingested",
			ModelVersion:  state.ModelVersion,
			LastTrainedAt: state.LastTrainedAt,
		}, nil
	}

	newest := docs[len(docs)-1].IngestedAt
	if state.LastTrainedAt != nil && newest <= *state.LastTrainedAt {
		return &TrainResult{
			Retrained:     false,
			SkipReason:    "no new documents since last training",
			ModelVersion:  state.ModelVersion,
			LastTrainedAt: state.LastTrainedAt,
		}, nil
	}

	var samples []risk.Sample
	for i := range docs {
		text, err := s.documents.ReadText(ctx, &docs[i])
		if err != nil {
			return nil, err
		}
		if text == "" {
			continue
		}
		samples = append(samples, risk.Sample{Text: text, Label: risk.Label(text)})
	}

	trained, err := risk.Train(samples)
	if err != nil {
		// Insufficient data is a soft failure: state stays untouched.
		return nil, err
	}

	version := state.ModelVersion + 1
	if err := s.artifacts.Save(ctx, trained, version); err != nil {
		return nil, err
	}
	if err := s.state.Put(ctx, &model.ModelState{
		ModelVersion:  version,
		LastTrainedAt: &newest,
	}); err != nil {
		return nil, err
	}
	if err := s.vectors.PurgeBefore(ctx, version); err != nil {
		logutil.GetLogger(ctx).Warn("stale vector cache purge failed", zap.Error(err))
	}

	logutil.GetLogger(ctx).Info("model retrained",
		zap.Int64("model_version", version),
		zap.Int("usable_documents", len(samples)),
		zap.Int64("last_trained_at", newest))
	return &TrainResult{
		Retrained:       true,
		ModelVersion:    version,
		UsableDocuments: len(samples),
		LastTrainedAt:   &newest,
	}, nil
}
