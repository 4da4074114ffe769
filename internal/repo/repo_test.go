package repo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openclaims/riskprice/internal/config"
	"github.com/openclaims/riskprice/internal/db"
)

func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Open(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, db.ApplyMigrations(d))
	return d
}
