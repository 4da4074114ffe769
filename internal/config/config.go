package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Database  DatabaseConfig  `json:"database"`
	FileStore FileStoreConfig `json:"file_store"`
	LogConfig logger.LogConfig `json:"log_config"`
	Pricing   PricingConfig   `json:"pricing"`
	Server    ServerConfig    `json:"server"`
	Schedule  ScheduleConfig  `json:"schedule"`
}

type DatabaseConfig struct {
	Driver   string `json:"driver"`
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type PricingConfig struct {
	// PredictWindow bounds the recent-document window for the standalone
	// factor computation; ApplyWindow is the window used when a factor is
	// actually applied to a price.
	PredictWindow int `json:"predict_window"`
	ApplyWindow   int `json:"apply_window"`
}

type ServerConfig struct {
	Port              int    `json:"port"`
	JWTSecret         string `json:"jwt_secret"`
	JWTTTLHours       int    `json:"jwt_ttl_hours"`
	AdminPasswordHash string `json:"admin_password_hash"`
}

type ScheduleConfig struct {
	Enable      bool   `json:"enable"`
	RetrainSpec string `json:"retrain_spec"`
	PricingSpec string `json:"pricing_spec"`
	ProductID   int64  `json:"product_id"`
	PolicyID    int64  `json:"policy_id"`
	CustomerID  int64  `json:"customer_id"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Database.Driver == "" {
		return nil, fmt.Errorf("database.driver is required")
	}
	if cfg.FileStore.Type == "" {
		return nil, fmt.Errorf("file_store.type is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Pricing.PredictWindow <= 0 {
		cfg.Pricing.PredictWindow = 5
	}
	if cfg.Pricing.ApplyWindow <= 0 {
		cfg.Pricing.ApplyWindow = 10
	}
	if cfg.Server.JWTTTLHours <= 0 {
		cfg.Server.JWTTTLHours = 72
	}
	if cfg.Schedule.ProductID <= 0 {
		cfg.Schedule.ProductID = 1
	}
	if cfg.Schedule.PolicyID <= 0 {
		cfg.Schedule.PolicyID = 1
	}
	if cfg.Schedule.CustomerID <= 0 {
		cfg.Schedule.CustomerID = 1
	}
	if cfg.Schedule.Enable {
		if cfg.Schedule.RetrainSpec == "" || cfg.Schedule.PricingSpec == "" {
			return nil, fmt.Errorf("schedule.retrain_spec and schedule.pricing_spec are required when schedule.enable is set")
		}
	}
	return &cfg, nil
}
