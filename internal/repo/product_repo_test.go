package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openclaims/riskprice/internal/model"
	appErr "github.com/openclaims/riskprice/internal/pkg/errors"
)

func TestProductRepo_GetMissing(t *testing.T) {
	repo := NewProductRepo(newTestDB(t))
	_, err := repo.Get(context.Background(), 42)
	require.ErrorIs(t, err, appErr.ErrProductNotFound)
}

func TestProductRepo_NullPriceRoundTrip(t *testing.T) {
	d := newTestDB(t)
	repo := NewProductRepo(d)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, d, &model.Product{ID: 1, Name: "Health Basic", Status: "ACTIVE"}))

	product, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, product.BasePrice)
}

func TestProductRepo_SetBasePrice(t *testing.T) {
	d := newTestDB(t)
	repo := NewProductRepo(d)
	ctx := context.Background()

	price := 100.0
	require.NoError(t, repo.Insert(ctx, d, &model.Product{ID: 1, Name: "Health Basic", BasePrice: &price, Status: "ACTIVE"}))
	require.NoError(t, repo.SetBasePrice(ctx, d, 1, 110.0))

	product, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, product.BasePrice)
	require.Equal(t, 110.0, *product.BasePrice)
}

func TestProductRepo_SetBasePriceMissing(t *testing.T) {
	d := newTestDB(t)
	repo := NewProductRepo(d)
	err := repo.SetBasePrice(context.Background(), d, 9, 50.0)
	require.ErrorIs(t, err, appErr.ErrProductNotFound)
}
