// Package indicator derives technical indicator columns from raw price
// history. Every computation is a pure left-to-right pass: the value at
// row i depends only on rows <= i, and values that do not have enough
// history yet are represented as nil, never as zero or NaN.
package indicator

import (
	"errors"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"
)

// ErrEmptySeries is returned when the input series has no bars.
var ErrEmptySeries = errors.New("empty price series")

// Moving average windows are fixed because the output columns are named
// after them (MA5/MA10/MA20/MA60).
const (
	maShort  = 5
	maMedium = 10
	maLong   = 20
	maWide   = 60
)

// Config holds the tunable indicator periods. The zero value is replaced
// by the standard defaults, so callers normally pass DefaultConfig().
type Config struct {
	KPeriod    int // stochastic %K lookback
	DPeriod    int // %D smoothing window
	MACDFast   int
	MACDSlow   int
	MACDSmooth int // signal-line EMA window
	RSIPeriod  int
}

// DefaultConfig returns the classic parameter set: KD(9,3),
// MACD(12,26,9), RSI(14).
func DefaultConfig() Config {
	return Config{
		KPeriod:    9,
		DPeriod:    3,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSmooth: 9,
		RSIPeriod:  14,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.KPeriod <= 0 {
		c.KPeriod = def.KPeriod
	}
	if c.DPeriod <= 0 {
		c.DPeriod = def.DPeriod
	}
	if c.MACDFast <= 0 {
		c.MACDFast = def.MACDFast
	}
	if c.MACDSlow <= 0 {
		c.MACDSlow = def.MACDSlow
	}
	if c.MACDSmooth <= 0 {
		c.MACDSmooth = def.MACDSmooth
	}
	if c.RSIPeriod <= 0 {
		c.RSIPeriod = def.RSIPeriod
	}
	return c
}

// Compute derives all indicator columns for the given series. The input
// is never mutated; the result has exactly one row per input bar, in the
// same order.
func Compute(series *model.PriceSeries, cfg Config) ([]model.IndicatorRow, error) {
	if series == nil || len(series.Bars) == 0 {
		return nil, ErrEmptySeries
	}
	cfg = cfg.withDefaults()

	closes := series.Closes()

	ma5 := SMASeries(closes, maShort)
	ma10 := SMASeries(closes, maMedium)
	ma20 := SMASeries(closes, maLong)
	ma60 := SMASeries(closes, maWide)

	k, d := Stochastic(series.Bars, cfg.KPeriod, cfg.DPeriod)
	macd, macdSignal, macdHist := MACD(closes, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSmooth)
	rsi := RSISeries(closes, cfg.RSIPeriod)

	rows := make([]model.IndicatorRow, len(series.Bars))
	for i, bar := range series.Bars {
		rows[i] = model.IndicatorRow{
			PriceBar:   bar,
			MA5:        ma5[i],
			MA10:       ma10[i],
			MA20:       ma20[i],
			MA60:       ma60[i],
			K:          k[i],
			D:          d[i],
			MACD:       macd[i],
			MACDSignal: macdSignal[i],
			MACDHist:   macdHist[i],
			RSI:        rsi[i],
		}
	}
	return rows, nil
}
