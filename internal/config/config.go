package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		Wallet  string `yaml:"wallet"`
	} `yaml:"api"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		FarmIntervalMinutes         int `yaml:"farm_interval_minutes"`
		CompoundIntervalMinutes     int `yaml:"compound_interval_minutes"`
		StakingCheckIntervalMinutes int `yaml:"staking_check_interval_minutes"`
	} `yaml:"schedule"`
	Thresholds struct {
		Activity float64 `yaml:"activity"`
		Reward   float64 `yaml:"reward"`
	} `yaml:"thresholds"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level      string `yaml:"level"`
		FilePath   string `yaml:"file_path"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A local .env file is honored before the environment is read.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("API_KEY"); v != "" {
		cfg.API.APIKey = v
	}
	if v := os.Getenv("WALLET_ADDRESS"); v != "" {
		cfg.API.Wallet = v
	}
	if v := os.Getenv("TENEO_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.teneo.finance/v1"
	}
	if cfg.Schedule.FarmIntervalMinutes == 0 {
		cfg.Schedule.FarmIntervalMinutes = 15
	}
	if cfg.Schedule.CompoundIntervalMinutes == 0 {
		cfg.Schedule.CompoundIntervalMinutes = 60
	}
	if cfg.Schedule.StakingCheckIntervalMinutes == 0 {
		cfg.Schedule.StakingCheckIntervalMinutes = 30
	}
	if cfg.Thresholds.Activity == 0 {
		cfg.Thresholds.Activity = 75
	}
	if cfg.Thresholds.Reward == 0 {
		cfg.Thresholds.Reward = 1.0
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.FilePath == "" {
		cfg.Log.FilePath = "teneo_bot.log"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 3
	}
	if cfg.Log.MaxAgeDays == 0 {
		cfg.Log.MaxAgeDays = 7
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/teneo_keeper.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.API.APIKey == "" {
		return fmt.Errorf("api.api_key is required (or API_KEY env)")
	}
	if c.API.Wallet == "" {
		return fmt.Errorf("api.wallet is required (or WALLET_ADDRESS env)")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Schedule.FarmIntervalMinutes < 0 || c.Schedule.CompoundIntervalMinutes < 0 || c.Schedule.StakingCheckIntervalMinutes < 0 {
		return fmt.Errorf("schedule intervals must not be negative")
	}
	return nil
}
