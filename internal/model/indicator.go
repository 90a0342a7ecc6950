package model

// IndicatorRow is a PriceBar augmented with derived indicator values.
// A nil pointer means the value is undefined for that row (not enough
// history yet); consumers must branch on nil rather than compare blindly.
type IndicatorRow struct {
	PriceBar

	MA5  *float64
	MA10 *float64
	MA20 *float64
	MA60 *float64

	K *float64
	D *float64

	MACD       *float64
	MACDSignal *float64
	MACDHist   *float64

	RSI *float64
}
