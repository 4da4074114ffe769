package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/openclaims/riskprice/internal/pkg/errors"
)

func TestTrainIfNeeded_FirstRunTrains(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.trainCorpus(t)

	result, err := env.training.TrainIfNeeded(ctx)
	require.NoError(t, err)
	require.True(t, result.Retrained)
	require.Equal(t, int64(1), result.ModelVersion)
	require.Equal(t, 4, result.UsableDocuments)

	state, err := env.state.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), state.ModelVersion)
	require.NotNil(t, state.LastTrainedAt)

	// artifact pair is loadable under the committed version
	_, err = env.artifacts.Load(ctx, 1)
	require.NoError(t, err)
}

func TestTrainIfNeeded_IdempotentWithoutNewDocuments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.trainCorpus(t)

	first, err := env.training.TrainIfNeeded(ctx)
	require.NoError(t, err)
	require.True(t, first.Retrained)

	second, err := env.training.TrainIfNeeded(ctx)
	require.NoError(t, err)
	require.False(t, second.Retrained)
	require.Equal(t, first.ModelVersion, second.ModelVersion)
	require.Equal(t, *first.LastTrainedAt, *second.LastTrainedAt)

	state, err := env.state.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), state.ModelVersion)
	require.Equal(t, *first.LastTrainedAt, *state.LastTrainedAt)
}

func TestTrainIfNeeded_NewDocumentAdvancesVersion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.trainCorpus(t)

	first, err := env.training.TrainIfNeeded(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), first.ModelVersion)

	env.ingest(t, "new oncology report, severe progression")

	second, err := env.training.TrainIfNeeded(ctx)
	require.NoError(t, err)
	require.True(t, second.Retrained)
	require.Equal(t, int64(2), second.ModelVersion)
	require.Greater(t, *second.LastTrainedAt, *first.LastTrainedAt)
}

func TestTrainIfNeeded_InsufficientDataLeavesStateUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.ingest(t, "severe malignant tumor")
	env.ingest(t, "routine checkup")
	env.ingest(t, "normal blood panel")

	_, err := env.training.TrainIfNeeded(ctx)
	require.ErrorIs(t, err, appErr.ErrInsufficientData)

	state, err := env.state.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), state.ModelVersion)
	require.Nil(t, state.LastTrainedAt)

	_, err = env.artifacts.Load(ctx, 1)
	require.ErrorIs(t, err, appErr.ErrMissingArtifact)
}

func TestTrainIfNeeded_EmptyTextSkippedNotLabeled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.trainCorpus(t)
	env.ingest(t, "   ")

	result, err := env.training.TrainIfNeeded(ctx)
	require.NoError(t, err)
	require.True(t, result.Retrained)
	require.Equal(t, 4, result.UsableDocuments)
}

func TestTrainIfNeeded_NoDocumentsIsSkipNotError(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.training.TrainIfNeeded(context.Background())
	require.NoError(t, err)
	require.False(t, result.Retrained)
	require.NotEmpty(t, result.SkipReason)
	require.Equal(t, int64(0), result.ModelVersion)
}
