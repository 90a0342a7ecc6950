package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/bot"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/config"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/pipeline"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/recorder"
)

var (
	analyzePeriod string
	analyzeNotify bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [code...]",
	Short: "Run the analysis pipeline once and print the signals",
	Long: `Analyze fetches price history for the given ETF codes (or the configured
defaults when none are given), computes indicators and signals, writes the
CSV and JSON report files, and prints a summary. With --notify the report
is also broadcast to the configured Telegram chat.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzePeriod, "period", "", "data period, e.g. 1y, 6mo (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeNotify, "notify", false, "broadcast the report via Telegram")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if analyzePeriod != "" {
		cfg.Period = analyzePeriod
	}
	days, err := config.PeriodDays(cfg.Period)
	if err != nil {
		return err
	}

	codes := args
	if len(codes) == 0 {
		codes = cfg.ETFs
	}

	rec := openRecorder(cfg)
	defer rec.Close()

	pipe := pipeline.New(newCollector(cfg), rec, cfg.Reports.Dir, days)

	var notifier *bot.Bot
	if analyzeNotify {
		if !cfg.BotEnabled() {
			log.Println("[WARN] --notify requested but Telegram is not configured")
		} else if notifier, err = bot.New(cfg.Telegram.BotToken, cfg.Telegram.ChatID, pipe); err != nil {
			return err
		}
	}

	results, errs := pipe.RunAll(codes, pipeline.Options{SaveReports: true, Record: true})
	for code, err := range errs {
		log.Printf("[ERROR] analyze %s: %v", code, err)
	}

	for _, code := range codes {
		res, ok := results[code]
		if !ok {
			continue
		}
		sig := res.Latest
		fmt.Printf("%s  %s  close=%.2f  signal=%s", code, sig.Date.Format("2006-01-02"), sig.Close, sig.Category)
		if sig.Strength != nil {
			fmt.Printf("  strength=%+.2f", *sig.Strength)
		}
		fmt.Println()
		if res.CSVPath != "" {
			fmt.Printf("  report: %s\n", res.CSVPath)
		}

		if notifier != nil {
			if err := notifier.Broadcast(context.Background(), bot.FormatReport(res)); err != nil {
				log.Printf("[ERROR] broadcast %s: %v", code, err)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d ETFs failed", len(errs), len(codes))
	}
	return nil
}

// openRecorder opens the SQLite recorder, falling back to a no-op
// recorder when the database cannot be opened.
func openRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return rec
}
