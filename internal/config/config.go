package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/collector"
)

// Config holds all application configuration.
type Config struct {
	ETFs   []string `yaml:"etfs"`
	Period string   `yaml:"period"` // e.g. "1y", "6mo", "90d"

	DataSource struct {
		Source string `yaml:"source"` // "yahoo" or "sample"
	} `yaml:"data_source"`

	Telegram struct {
		BotToken   string `yaml:"bot_token"`
		ChatID     string `yaml:"chat_id"`
		WebhookURL string `yaml:"webhook_url"` // empty means long polling
	} `yaml:"telegram"`

	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`

	Web struct {
		Addr string `yaml:"addr"`
	} `yaml:"web"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	Reports struct {
		Dir string `yaml:"dir"`
	} `yaml:"reports"`

	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; the defaults
// alone form a working configuration.
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
	if v := os.Getenv("ETF_CODES"); v != "" {
		cfg.ETFs = splitCodes(v)
	}
	if v := os.Getenv("DATA_PERIOD"); v != "" {
		cfg.Period = v
	}
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		cfg.DataSource.Source = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("TELEGRAM_WEBHOOK_URL"); v != "" {
		cfg.Telegram.WebhookURL = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("WEB_ADDR"); v != "" {
		cfg.Web.Addr = v
	} else if v := os.Getenv("PORT"); v != "" {
		cfg.Web.Addr = ":" + v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REPORTS_DIR"); v != "" {
		cfg.Reports.Dir = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if len(cfg.ETFs) == 0 {
		cfg.ETFs = []string{"0050", "006208"}
	}
	if cfg.Period == "" {
		cfg.Period = "1y"
	}
	if cfg.DataSource.Source == "" {
		cfg.DataSource.Source = "yahoo"
	}
	if cfg.Schedule.DailyCron == "" {
		// Taiwan market close, Monday through Friday.
		cfg.Schedule.DailyCron = "0 30 14 * * 1-5"
	}
	if cfg.Web.Addr == "" {
		cfg.Web.Addr = ":8080"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/etf_tracker.db"
	}
	if cfg.Reports.Dir == "" {
		cfg.Reports.Dir = "reports"
	}

	return cfg, nil
}

// Validate checks that the configuration is usable. Telegram credentials
// are optional: without them the bot is simply disabled.
func (c *Config) Validate() error {
	if len(c.ETFs) == 0 {
		return fmt.Errorf("at least one ETF code is required")
	}
	for _, code := range c.ETFs {
		if !collector.Supported(code) {
			return fmt.Errorf("ETF code %s not supported, available: %v", code, collector.SupportedETFs())
		}
	}
	if _, err := PeriodDays(c.Period); err != nil {
		return err
	}
	if c.DataSource.Source != "yahoo" && c.DataSource.Source != "sample" {
		return fmt.Errorf("data_source.source must be yahoo or sample, got %q", c.DataSource.Source)
	}
	return nil
}

// BotEnabled reports whether Telegram credentials are configured.
func (c *Config) BotEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// PeriodDays converts a period string like "1y", "6mo", or "90d" into a
// calendar day count.
func PeriodDays(period string) (int, error) {
	var n int
	var err error
	switch {
	case strings.HasSuffix(period, "mo"):
		n, err = strconv.Atoi(strings.TrimSuffix(period, "mo"))
		n *= 30
	case strings.HasSuffix(period, "y"):
		n, err = strconv.Atoi(strings.TrimSuffix(period, "y"))
		n *= 365
	case strings.HasSuffix(period, "d"):
		n, err = strconv.Atoi(strings.TrimSuffix(period, "d"))
	default:
		return 0, fmt.Errorf("invalid period %q (want e.g. 1y, 6mo, 90d)", period)
	}
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid period %q (want e.g. 1y, 6mo, 90d)", period)
	}
	return n, nil
}

func splitCodes(s string) []string {
	var codes []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			codes = append(codes, part)
		}
	}
	return codes
}
