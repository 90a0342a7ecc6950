package collector

import "github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	FetchDailyBars(ticker string, days int) ([]model.PriceBar, error)
	Name() string
}
