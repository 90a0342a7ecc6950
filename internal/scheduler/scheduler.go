package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/bot"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/pipeline"
)

// Notifier delivers a report to subscribers. Satisfied by *bot.Bot; nil
// disables notifications.
type Notifier interface {
	Broadcast(ctx context.Context, text string) error
}

// Scheduler triggers the daily analysis run on trading days.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
	Notifier Notifier
	Codes    []string
	Ctx      context.Context
}

// NewScheduler creates a Scheduler for the given ETF codes.
func NewScheduler(ctx context.Context, pipe *pipeline.Pipeline, notifier Notifier, codes []string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: pipe,
		Notifier: notifier,
		Codes:    codes,
		Ctx:      ctx,
	}
}

// Register adds the daily analysis task with the given cron spec.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the daily task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Printf("[INFO] running daily analysis for %v", s.Codes)

	results, errs := s.Pipeline.RunAll(s.Codes, pipeline.Options{SaveReports: true, Record: true})
	for code, err := range errs {
		log.Printf("[ERROR] daily analysis %s: %v", code, err)
	}

	for _, code := range s.Codes {
		res, ok := results[code]
		if !ok {
			continue
		}
		log.Printf("[INFO] %s: %s (close %.2f)", code, res.Latest.Category, res.Latest.Close)
		if s.Notifier == nil {
			continue
		}
		if err := s.Notifier.Broadcast(s.Ctx, bot.FormatReport(res)); err != nil {
			log.Printf("[ERROR] broadcast %s: %v", code, err)
		}
	}
}
