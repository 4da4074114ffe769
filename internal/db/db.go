package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/openclaims/riskprice/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps the sql handle together with its driver name so repositories can
// finalize builder output for the right placeholder dialect.
type DB struct {
	*sql.DB
	Driver string
}

func Open(cfg config.DatabaseConfig) (*DB, error) {
	switch cfg.Driver {
	case "postgres":
		dsn := cfg.DSN
		if dsn == "" {
			sslmode := cfg.SSLMode
			if sslmode == "" {
				sslmode = "disable"
			}
			dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
				cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslmode)
		}
		handle, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}
		if err := handle.Ping(); err != nil {
			return nil, err
		}
		return &DB{DB: handle, Driver: "postgres"}, nil
	case "sqlite":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("database.dsn is required for sqlite")
		}
		handle, err := sql.Open("sqlite", cfg.DSN)
		if err != nil {
			return nil, err
		}
		// The predictive pipeline is single-writer; one connection keeps
		// sqlite's locking out of the picture entirely.
		handle.SetMaxOpenConns(1)
		if err := handle.Ping(); err != nil {
			return nil, err
		}
		return &DB{DB: handle, Driver: "sqlite"}, nil
	default:
		return nil, fmt.Errorf("database.driver must be postgres or sqlite, got %q", cfg.Driver)
	}
}

func ApplyMigrations(d *DB) error {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	for _, file := range files {
		content, err := fs.ReadFile(migrationsFS, "migrations/"+file)
		if err != nil {
			return err
		}
		queries := strings.Split(string(content), ";")
		for _, q := range queries {
			q = strings.TrimSpace(q)
			if q == "" {
				continue
			}
			if _, err := d.Exec(q); err != nil {
				if strings.Contains(err.Error(), "already exists") {
					continue
				}
				return fmt.Errorf("execute query in %s: %w", file, err)
			}
		}
	}
	return nil
}
