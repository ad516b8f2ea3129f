package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Market struct {
		Symbol       string   `yaml:"symbol"`
		HistoryDays  int      `yaml:"history_days"`
		Benchmark    string   `yaml:"benchmark"`
		RiskFreeRate *float64 `yaml:"risk_free_rate"`
	} `yaml:"market"`
	Ledger struct {
		StateFile      string  `yaml:"state_file"`
		OpeningBalance float64 `yaml:"opening_balance"`
	} `yaml:"ledger"`
	Schedule struct {
		ValuationCron string `yaml:"valuation_cron"`
		ScanCron      string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("WATCH_SYMBOL"); v != "" {
		cfg.Market.Symbol = v
	}
	if v := os.Getenv("RISK_FREE_RATE"); v != "" {
		var rate float64
		if _, err := fmt.Sscanf(v, "%f", &rate); err == nil {
			cfg.Market.RiskFreeRate = &rate
		}
	}
	if v := os.Getenv("PORTFOLIO_FILE"); v != "" {
		cfg.Ledger.StateFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Market.Symbol == "" {
		cfg.Market.Symbol = "GOOGL"
	}
	if cfg.Market.HistoryDays == 0 {
		cfg.Market.HistoryDays = 365
	}
	if cfg.Market.Benchmark == "" {
		cfg.Market.Benchmark = "^GSPC"
	}
	if cfg.Ledger.StateFile == "" {
		cfg.Ledger.StateFile = "data/portfolio.csv"
	}
	if cfg.Ledger.OpeningBalance == 0 {
		cfg.Ledger.OpeningBalance = 100000
	}
	if cfg.Schedule.ValuationCron == "" {
		cfg.Schedule.ValuationCron = "0 0 22 * * 1-5"
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 30 15 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/paperdesk.db"
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Market.Symbol == "" {
		return fmt.Errorf("market.symbol is required")
	}
	if c.Market.HistoryDays < 2 {
		return fmt.Errorf("market.history_days must be at least 2")
	}
	if c.Ledger.OpeningBalance <= 0 {
		return fmt.Errorf("ledger.opening_balance must be positive")
	}
	// Telegram is optional, but a token without a chat id (or vice versa)
	// is a misconfiguration.
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
