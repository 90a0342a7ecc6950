// Package pipeline wires the data, indicator, and signal stages into
// the per-ETF analysis flow used by the CLI, the scheduler, the web
// server, and the bot.
package pipeline

import (
	"fmt"
	"log"
	"sync"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/collector"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/indicator"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/recorder"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/report"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/signal"
)

// Options control the side effects of a pipeline run.
type Options struct {
	SaveReports bool // write CSV + JSON artifacts
	Record      bool // persist the latest signal
}

// Result is the outcome of processing one ETF.
type Result struct {
	Code     string
	Series   *model.PriceSeries
	Rows     []model.SignalRow
	Latest   model.LatestSignal
	CSVPath  string
	JSONPath string
}

// Pipeline runs fetch -> indicators -> signals -> extraction for ETFs.
type Pipeline struct {
	Collector  *collector.Collector
	Recorder   recorder.Recorder
	IndicatorC indicator.Config
	SignalC    signal.Config
	ReportsDir string
	Days       int
}

// New creates a Pipeline with default engine configs.
func New(col *collector.Collector, rec recorder.Recorder, reportsDir string, days int) *Pipeline {
	return &Pipeline{
		Collector:  col,
		Recorder:   rec,
		IndicatorC: indicator.DefaultConfig(),
		SignalC:    signal.DefaultConfig(),
		ReportsDir: reportsDir,
		Days:       days,
	}
}

// Process runs the full analysis for one ETF code.
func (p *Pipeline) Process(code string, opts Options) (*Result, error) {
	series, err := p.Collector.Collect(code, p.Days)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", code, err)
	}

	indRows, err := indicator.Compute(series, p.IndicatorC)
	if err != nil {
		return nil, fmt.Errorf("indicators %s: %w", code, err)
	}

	sigRows, err := signal.Generate(indRows, p.SignalC)
	if err != nil {
		return nil, fmt.Errorf("signals %s: %w", code, err)
	}

	latest, err := signal.Latest(sigRows)
	if err != nil {
		return nil, fmt.Errorf("latest signal %s: %w", code, err)
	}

	res := &Result{Code: code, Series: series, Rows: sigRows, Latest: latest}

	if opts.SaveReports {
		if res.CSVPath, err = report.WriteCSV(p.ReportsDir, code, sigRows); err != nil {
			log.Printf("[WARN] write csv for %s: %v", code, err)
		}
		if res.JSONPath, err = report.WriteJSON(p.ReportsDir, code, latest); err != nil {
			log.Printf("[WARN] write json for %s: %v", code, err)
		}
	}
	if opts.Record && p.Recorder != nil {
		if err := p.Recorder.RecordSignal(code, latest); err != nil {
			log.Printf("[WARN] record signal for %s: %v", code, err)
		}
	}
	return res, nil
}

// RunAll processes the given ETF codes concurrently. Each code is
// independent, so failures are collected per code rather than aborting
// the batch.
func (p *Pipeline) RunAll(codes []string, opts Options) (map[string]*Result, map[string]error) {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]*Result, len(codes))
		errs    = make(map[string]error)
	)
	for _, code := range codes {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			res, err := p.Process(code, opts)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs[code] = err
				return
			}
			results[code] = res
		}(code)
	}
	wg.Wait()
	return results, errs
}
