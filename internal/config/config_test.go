package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `{
		"database": {"driver": "sqlite", "dsn": "riskprice.db"},
		"file_store": {"type": "local", "data": {"dir": "docs"}}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Pricing.PredictWindow)
	require.Equal(t, 10, cfg.Pricing.ApplyWindow)
	require.Equal(t, "info", cfg.LogConfig.Level)
	require.Equal(t, int64(1), cfg.Schedule.ProductID)
}

func TestLoad_MissingDriver(t *testing.T) {
	path := writeConfig(t, `{"file_store": {"type": "local"}}`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_ScheduleNeedsSpecs(t *testing.T) {
	path := writeConfig(t, `{
		"database": {"driver": "sqlite", "dsn": "riskprice.db"},
		"file_store": {"type": "local", "data": {"dir": "docs"}},
		"schedule": {"enable": true}
	}`)
	_, err := Load(path)
	require.Error(t, err)
}
