package collector

import (
	"fmt"
	"log"
	"time"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"
)

// Collector resolves an ETF code to a ticker, fetches its daily history,
// and falls back through alternative ticker formats and finally synthetic
// sample data so callers always receive a non-empty, well-formed series.
type Collector struct {
	Fetcher Fetcher // live data source; nil means sample data only
	Sample  *SampleFetcher
}

// NewCollector creates a Collector backed by the given live fetcher.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher, Sample: NewSampleFetcher()}
}

// Collect fetches days of daily history for the ETF code.
func (c *Collector) Collect(code string, days int) (*model.PriceSeries, error) {
	primary, ok := etfTickers[code]
	if !ok {
		return nil, fmt.Errorf("ETF code %s not supported, available: %v", code, SupportedETFs())
	}

	if c.Fetcher != nil {
		for _, ticker := range append([]string{primary}, alternativeTickers[code]...) {
			bars, err := c.Fetcher.FetchDailyBars(ticker, days)
			if err != nil {
				log.Printf("[WARN] fetch %s via %s (%s): %v", code, ticker, c.Fetcher.Name(), err)
				continue
			}
			return &model.PriceSeries{
				Code:      code,
				Ticker:    ticker,
				Bars:      bars,
				FetchedAt: time.Now(),
			}, nil
		}
		log.Printf("[WARN] all tickers failed for %s, using sample data", code)
	}

	bars, err := c.Sample.FetchDailyBars(code, days)
	if err != nil {
		return nil, fmt.Errorf("generate sample data for %s: %w", code, err)
	}
	return &model.PriceSeries{
		Code:      code,
		Ticker:    "sample",
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}
