package collector

import (
	"math/rand"
	"time"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"
)

// Typical price levels used to seed synthetic data per ETF.
var sampleBasePrices = map[string]float64{
	"0050":   150,
	"006208": 20,
	"00878":  70,
	"00929":  25,
}

const sampleSeed = 42

// SampleFetcher generates deterministic synthetic OHLCV data. It is the
// last-resort fallback so the pipeline never sees an empty series, and
// doubles as the data source in tests.
type SampleFetcher struct{}

func NewSampleFetcher() *SampleFetcher { return &SampleFetcher{} }

func (f *SampleFetcher) Name() string { return "sample" }

// FetchDailyBars generates days business-day bars ending today, oldest
// first. The random walk is seeded with a fixed value, so repeated calls
// with the same arguments yield identical bars.
func (f *SampleFetcher) FetchDailyBars(code string, days int) ([]model.PriceBar, error) {
	base, ok := sampleBasePrices[code]
	if !ok {
		base = 100
	}

	// Walk backwards to collect the last `days` business days.
	dates := make([]time.Time, 0, days)
	day := time.Now().Truncate(24 * time.Hour)
	for len(dates) < days {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			dates = append(dates, day)
		}
		day = day.AddDate(0, 0, -1)
	}
	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}

	rng := rand.New(rand.NewSource(sampleSeed))
	bars := make([]model.PriceBar, len(dates))

	cum := 0.0
	prevClose := base
	for i, date := range dates {
		// Slight upward drift with daily volatility around 1%.
		cum += rng.NormFloat64()*0.01 + 0.0002
		closePrice := base * (1 + cum)
		if closePrice < 0.01 {
			closePrice = 0.01
		}

		open := prevClose * (1 + rng.NormFloat64()*0.005)
		hi := closePrice * (1 + rng.Float64()*0.02)
		lo := closePrice * (1 - rng.Float64()*0.02)
		if open > hi {
			hi = open
		}
		if open < lo {
			lo = open
		}
		if closePrice > hi {
			hi = closePrice
		}
		if closePrice < lo {
			lo = closePrice
		}

		bars[i] = model.PriceBar{
			Date:   date,
			Open:   open,
			High:   hi,
			Low:    lo,
			Close:  closePrice,
			Volume: 50_000 + rng.Int63n(4_950_000),
		}
		prevClose = closePrice
	}
	return bars, nil
}
