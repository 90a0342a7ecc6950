// Package signal turns indicator rows into a scored buy/sell/hold
// signal. Three independent crossover rules each vote -1, 0, or +1 per
// row; the votes are summed, smoothed over a trailing window, and
// mapped to a categorical label.
package signal

import (
	"errors"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"
)

// Input-shape errors surfaced to callers.
var (
	ErrTooFewRows = errors.New("signal generation needs at least 2 rows")
	ErrNoRows     = errors.New("no signal rows")
)

// Config holds the signal-rule parameters. The zero value is replaced
// by DefaultConfig().
type Config struct {
	KOversold   float64 // KD buy crossovers only count below this level
	KOverbought float64 // KD sell crossovers only count above this level

	StrengthWindow int // trailing rows averaged into SignalStrength

	BuyThreshold    float64 // strength >= this is at least Buy
	StrongThreshold float64 // strength >= this is Strong Buy (negated for sells)
}

// DefaultConfig returns the standard rule set: KD zones at 30/70,
// 3-row smoothing, category thresholds at 0.3 and 0.7.
func DefaultConfig() Config {
	return Config{
		KOversold:       30,
		KOverbought:     70,
		StrengthWindow:  3,
		BuyThreshold:    0.3,
		StrongThreshold: 0.7,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.KOversold == 0 {
		c.KOversold = def.KOversold
	}
	if c.KOverbought == 0 {
		c.KOverbought = def.KOverbought
	}
	if c.StrengthWindow <= 0 {
		c.StrengthWindow = def.StrengthWindow
	}
	if c.BuyThreshold == 0 {
		c.BuyThreshold = def.BuyThreshold
	}
	if c.StrongThreshold == 0 {
		c.StrongThreshold = def.StrongThreshold
	}
	return c
}

// Generate evaluates the three sub-rules for every row and returns a
// new slice with the vote sum, smoothed strength, and category filled
// in. The input is not mutated and row count is preserved. Crossover
// detection needs a predecessor row, so fewer than 2 rows is an error.
func Generate(rows []model.IndicatorRow, cfg Config) ([]model.SignalRow, error) {
	if len(rows) < 2 {
		return nil, ErrTooFewRows
	}
	cfg = cfg.withDefaults()

	out := make([]model.SignalRow, len(rows))
	for i := range rows {
		vote := 0
		if i > 0 {
			vote += kdVote(&rows[i-1], &rows[i], cfg)
			vote += macdVote(&rows[i-1], &rows[i])
			vote += maVote(&rows[i-1], &rows[i])
		}
		out[i] = model.SignalRow{
			IndicatorRow: rows[i],
			Signal:       vote,
		}
	}

	for i := range out {
		if i < cfg.StrengthWindow-1 {
			out[i].Category = Categorize(nil, cfg)
			continue
		}
		sum := 0
		for j := i - cfg.StrengthWindow + 1; j <= i; j++ {
			sum += out[j].Signal
		}
		strength := float64(sum) / float64(cfg.StrengthWindow)
		out[i].Strength = &strength
		out[i].Category = Categorize(&strength, cfg)
	}
	return out, nil
}

// kdVote implements the KD crossover rule: a K-over-D upward cross in
// the oversold zone votes +1, a downward cross in the overbought zone
// votes -1. Rows without defined K/D on both sides vote 0.
func kdVote(prev, cur *model.IndicatorRow, cfg Config) int {
	if prev.K == nil || prev.D == nil || cur.K == nil || cur.D == nil {
		return 0
	}
	switch {
	case *cur.K > *cur.D && *prev.K <= *prev.D && *cur.K < cfg.KOversold:
		return 1
	case *cur.K < *cur.D && *prev.K >= *prev.D && *cur.K > cfg.KOverbought:
		return -1
	}
	return 0
}

// macdVote votes on MACD line crossings of its signal line.
func macdVote(prev, cur *model.IndicatorRow) int {
	if prev.MACD == nil || prev.MACDSignal == nil || cur.MACD == nil || cur.MACDSignal == nil {
		return 0
	}
	switch {
	case *cur.MACD > *cur.MACDSignal && *prev.MACD <= *prev.MACDSignal:
		return 1
	case *cur.MACD < *cur.MACDSignal && *prev.MACD >= *prev.MACDSignal:
		return -1
	}
	return 0
}

// maVote votes on MA5 crossings of MA20.
func maVote(prev, cur *model.IndicatorRow) int {
	if prev.MA5 == nil || prev.MA20 == nil || cur.MA5 == nil || cur.MA20 == nil {
		return 0
	}
	switch {
	case *cur.MA5 > *cur.MA20 && *prev.MA5 <= *prev.MA20:
		return 1
	case *cur.MA5 < *cur.MA20 && *prev.MA5 >= *prev.MA20:
		return -1
	}
	return 0
}

// Categorize maps a smoothed strength value to its category. The
// boundaries are inclusive on the buy side at 0.7 and 0.3 and on the
// sell side at -0.7 and -0.3. An undefined strength is Hold, matching
// the behaviour of rows that have not accumulated a full window yet.
func Categorize(strength *float64, cfg Config) model.SignalCategory {
	cfg = cfg.withDefaults()
	if strength == nil {
		return model.Hold
	}
	s := *strength
	switch {
	case s >= cfg.StrongThreshold:
		return model.StrongBuy
	case s >= cfg.BuyThreshold:
		return model.Buy
	case s <= -cfg.StrongThreshold:
		return model.StrongSell
	case s <= -cfg.BuyThreshold:
		return model.Sell
	}
	return model.Hold
}
