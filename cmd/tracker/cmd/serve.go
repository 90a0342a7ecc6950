package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/bot"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/config"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/pipeline"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/scheduler"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/web"
)

var serveRunNow bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server, Telegram bot, and daily scheduler",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveRunNow, "run-now", false, "run the daily analysis immediately on start")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ETF tracker starting...")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	days, err := config.PeriodDays(cfg.Period)
	if err != nil {
		return err
	}

	rec := openRecorder(cfg)
	defer rec.Close()

	pipe := pipeline.New(newCollector(cfg), rec, cfg.Reports.Dir, days)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telegram bot is optional: without credentials the web surface
	// still works.
	var tgBot *bot.Bot
	if cfg.BotEnabled() {
		tgBot, err = bot.New(cfg.Telegram.BotToken, cfg.Telegram.ChatID, pipe)
		if err != nil {
			return err
		}
		if cfg.Telegram.WebhookURL == "" {
			go tgBot.StartPolling(ctx)
			log.Println("[INFO] telegram polling started")
		} else {
			log.Printf("[INFO] telegram webhook mode: %s", cfg.Telegram.WebhookURL)
		}
	} else {
		log.Println("[WARN] telegram not configured, bot disabled")
	}

	var notifier scheduler.Notifier
	if tgBot != nil {
		notifier = tgBot
	}
	sched := scheduler.NewScheduler(ctx, pipe, notifier, cfg.ETFs)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if serveRunNow || os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] running daily analysis on start")
		go sched.RunNow()
	}

	srv := web.NewServer(pipe, rec, tgBot)
	if err := srv.Start(ctx, cfg.Web.Addr); err != nil {
		return err
	}
	log.Println("[INFO] ETF tracker stopped")
	return nil
}
