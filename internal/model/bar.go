package model

import "time"

// PriceBar represents one trading day of OHLCV data.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// PriceSeries holds the raw price history for one ETF, oldest bar first.
type PriceSeries struct {
	Code      string
	Ticker    string
	Bars      []PriceBar
	FetchedAt time.Time
}

// Closes returns the close price of every bar in order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}
