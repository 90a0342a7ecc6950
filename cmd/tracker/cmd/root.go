package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/collector"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Daily technical-analysis signals for Taiwan ETFs",
	Long: `Tracker fetches daily price history for Taiwan ETFs, derives classic
technical indicators (moving averages, KD, MACD, RSI), scores them into a
buy/sell/hold signal, and distributes the result via a web page and a
Telegram bot.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default configs/config.yaml)")
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// newCollector builds the collector for the configured data source.
func newCollector(cfg *config.Config) *collector.Collector {
	if cfg.DataSource.Source == "sample" {
		return collector.NewCollector(nil)
	}
	return collector.NewCollector(collector.NewYahooFetcher(cfg.Proxy))
}
