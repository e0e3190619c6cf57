package config

import (
	"gametale-ranker/pkg/config"
)

// Catalog holds the configuration for the game catalog API (RAWG).
type Catalog struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	CacheTTL            string `mapstructure:"cache_ttl"`
}

// YouTube holds the configuration for the YouTube Data API.
type YouTube struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Scoring holds the tunable constants of the score fusion stage. Only the
// momentum scale is exposed; the bucket values encode tuned behavior and are
// kept in code.
type Scoring struct {
	MomentumScale float64 `mapstructure:"momentum_scale"`
}

// Refresher holds the configuration for the trending cache refresh worker.
type Refresher struct {
	Schedule      string `mapstructure:"schedule"`
	BatchSize     int    `mapstructure:"batch_size"`
	BatchPause    string `mapstructure:"batch_pause"`
	TrendingPages int    `mapstructure:"trending_pages"`
	SecretToken   string `mapstructure:"secret_token"`
}

// Telegram holds configuration for the refresh summary notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the ranker services.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Catalog   Catalog         `mapstructure:"catalog"`
	YouTube   YouTube         `mapstructure:"youtube"`
	Scoring   Scoring         `mapstructure:"scoring"`
	Refresher Refresher       `mapstructure:"refresher"`
	Telegram  Telegram        `mapstructure:"telegram"`
}

// Load loads the ranker configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.Scoring.MomentumScale == 0 {
		cfg.Scoring.MomentumScale = 10
	}
	if cfg.Refresher.BatchSize == 0 {
		cfg.Refresher.BatchSize = 3
	}
	if cfg.Refresher.BatchPause == "" {
		cfg.Refresher.BatchPause = "300ms"
	}

	return &cfg, nil
}
