package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ETF_CODES", "DATA_PERIOD", "DATA_SOURCE",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "TELEGRAM_WEBHOOK_URL",
		"CRON_DAILY", "WEB_ADDR", "PORT", "SQLITE_PATH", "REPORTS_DIR", "HTTPS_PROXY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"0050", "006208"}, cfg.ETFs)
	assert.Equal(t, "1y", cfg.Period)
	assert.Equal(t, "yahoo", cfg.DataSource.Source)
	assert.Equal(t, "0 30 14 * * 1-5", cfg.Schedule.DailyCron)
	assert.Equal(t, ":8080", cfg.Web.Addr)
	assert.Equal(t, "data/etf_tracker.db", cfg.Database.SQLitePath)
	assert.Equal(t, "reports", cfg.Reports.Dir)
	assert.False(t, cfg.BotEnabled())

	require.NoError(t, cfg.Validate())
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
etfs: ["00878"]
period: "6mo"
data_source:
  source: sample
web:
  addr: ":9000"
telegram:
  bot_token: "token"
  chat_id: "12345"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"00878"}, cfg.ETFs)
	assert.Equal(t, "6mo", cfg.Period)
	assert.Equal(t, "sample", cfg.DataSource.Source)
	assert.Equal(t, ":9000", cfg.Web.Addr)
	assert.True(t, cfg.BotEnabled())
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ETF_CODES", "0050, 00929")
	t.Setenv("DATA_PERIOD", "90d")
	t.Setenv("DATA_SOURCE", "sample")
	t.Setenv("PORT", "9090")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"0050", "00929"}, cfg.ETFs)
	assert.Equal(t, "90d", cfg.Period)
	assert.Equal(t, "sample", cfg.DataSource.Source)
	assert.Equal(t, ":9090", cfg.Web.Addr)
	require.NoError(t, cfg.Validate())
}

func TestLoad_WebAddrBeatsPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEB_ADDR", "127.0.0.1:7000")
	t.Setenv("PORT", "9090")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Web.Addr)
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.ETFs = []string{"2330"}
	assert.ErrorContains(t, cfg.Validate(), "not supported")

	cfg = base()
	cfg.ETFs = nil
	assert.ErrorContains(t, cfg.Validate(), "at least one ETF")

	cfg = base()
	cfg.Period = "forever"
	assert.ErrorContains(t, cfg.Validate(), "invalid period")

	cfg = base()
	cfg.DataSource.Source = "csv"
	assert.ErrorContains(t, cfg.Validate(), "yahoo or sample")
}

func TestPeriodDays(t *testing.T) {
	tests := []struct {
		period string
		want   int
	}{
		{"1y", 365},
		{"2y", 730},
		{"6mo", 180},
		{"1mo", 30},
		{"90d", 90},
	}
	for _, tt := range tests {
		got, err := PeriodDays(tt.period)
		require.NoError(t, err, tt.period)
		assert.Equal(t, tt.want, got, tt.period)
	}

	for _, bad := range []string{"", "abc", "0d", "-1y", "y", "mo"} {
		_, err := PeriodDays(bad)
		assert.Error(t, err, "period %q", bad)
	}
}
