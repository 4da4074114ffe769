package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openclaims/riskprice/internal/model"
	appErr "github.com/openclaims/riskprice/internal/pkg/errors"
)

func TestQuote_ReturnsPriceAndLogsActivity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	price := 123.45
	env.insertProduct(t, 1, &price)

	result, err := env.quotes.Quote(ctx, 42, 1)
	require.NoError(t, err)
	require.Equal(t, 123.45, result.Price)
	require.Equal(t, "Health Shield Basic", result.ProductName)

	audits, err := env.activities.ListByType(ctx, model.ActivityQuoteGenerated, 0)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	require.Equal(t, int64(0), audits[0].PolicyID)
	require.Equal(t, int64(42), audits[0].CustomerID)
	require.Contains(t, audits[0].Notes, "base_price=123.45")
}

func TestQuote_NullPrice(t *testing.T) {
	env := newTestEnv(t)
	env.insertProduct(t, 1, nil)

	_, err := env.quotes.Quote(context.Background(), 1, 1)
	require.ErrorIs(t, err, appErr.ErrInvalidPrice)
}

func TestQuote_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.quotes.Quote(context.Background(), 1, 99)
	require.ErrorIs(t, err, appErr.ErrProductNotFound)
}

func TestPurchase_CreatesPolicyPartyPaymentsAndAudit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	price := 200.0
	env.insertProduct(t, 1, &price)

	result, err := env.quotes.Purchase(ctx, 5, 1)
	require.NoError(t, err)
	require.NotZero(t, result.PolicyID)
	require.Equal(t, scheduledPaymentCount, result.Payments)

	payments, err := env.policies.ListPayments(ctx, result.PolicyID)
	require.NoError(t, err)
	require.Len(t, payments, scheduledPaymentCount)
	for _, p := range payments {
		require.Equal(t, 200.0, p.Amount)
		require.Equal(t, "SCHEDULED", p.Status)
	}

	audits, err := env.activities.ListByType(ctx, model.ActivityPolicyPurchased, 0)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	require.Equal(t, result.PolicyID, audits[0].PolicyID)
}

func TestPurchase_UsesCurrentPriceAfterUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	price := 100.0
	env.insertProduct(t, 1, &price)
	require.NoError(t, env.products.SetBasePrice(ctx, env.db, 1, 110.0))

	result, err := env.quotes.Purchase(ctx, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 110.0, result.Price)

	payments, err := env.policies.ListPayments(ctx, result.PolicyID)
	require.NoError(t, err)
	for _, p := range payments {
		require.Equal(t, 110.0, p.Amount)
	}
}
