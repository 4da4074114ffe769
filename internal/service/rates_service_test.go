package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImportCSV_LoadsRatesAndReusesRegions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	data := strings.Join([]string{
		"state,year,rate_value",
		"CA,2021,442.3",
		"CA,2022,448.9",
		"NY,2022,431.0",
	}, "\n")

	imported, err := env.rates.ImportCSV(ctx, strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 3, imported)

	var regions int
	require.NoError(t, env.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM regions").Scan(&regions))
	require.Equal(t, 2, regions)

	var rates int
	require.NoError(t, env.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM external_disease_rates").Scan(&rates))
	require.Equal(t, 3, rates)
}

func TestImportCSV_MissingColumn(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.rates.ImportCSV(context.Background(), strings.NewReader("state,year\nCA,2021"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "rate_value")
}

func TestImportCSV_BadRowRollsBackWholeFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	data := "state,year,rate_value\nCA,2021,442.3\nNY,not-a-year,431.0\n"

	_, err := env.rates.ImportCSV(ctx, strings.NewReader(data))
	require.Error(t, err)

	var rates int
	require.NoError(t, env.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM external_disease_rates").Scan(&rates))
	require.Zero(t, rates)
}
