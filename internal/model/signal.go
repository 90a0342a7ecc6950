package model

import (
	"encoding/json"
	"time"
)

// SignalCategory is the categorical trading signal for one row.
type SignalCategory string

const (
	StrongBuy  SignalCategory = "Strong Buy"
	Buy        SignalCategory = "Buy"
	Hold       SignalCategory = "Hold"
	Sell       SignalCategory = "Sell"
	StrongSell SignalCategory = "Strong Sell"
)

// SignalRow is an IndicatorRow augmented with the scored signal.
// Signal is the sum of the three sub-rule votes, always in [-3, 3].
// Strength is the trailing 3-row mean of Signal, nil for the first
// two rows.
type SignalRow struct {
	IndicatorRow

	Signal   int
	Strength *float64
	Category SignalCategory
}

// LatestSignal is an immutable snapshot of the final SignalRow, used by
// the web API, the bot reply formatter, and the JSON report file. Its
// JSON field names are the wire contract and must not change.
type LatestSignal struct {
	Date       time.Time
	Close      float64
	Category   SignalCategory
	Strength   *float64
	K          *float64
	D          *float64
	MACD       *float64
	MACDSignal *float64
	RSI        *float64
}

type latestSignalJSON struct {
	Date       string         `json:"date"`
	Close      float64        `json:"close"`
	Signal     SignalCategory `json:"signal"`
	Strength   *float64       `json:"strength"`
	K          *float64       `json:"k_value"`
	D          *float64       `json:"d_value"`
	MACD       *float64       `json:"macd"`
	MACDSignal *float64       `json:"macd_signal"`
	RSI        *float64       `json:"rsi"`
}

// MarshalJSON serializes the date as an ISO-8601 calendar date and the
// indicator values as numbers (null when undefined).
func (l LatestSignal) MarshalJSON() ([]byte, error) {
	return json.Marshal(latestSignalJSON{
		Date:       l.Date.Format("2006-01-02"),
		Close:      l.Close,
		Signal:     l.Category,
		Strength:   l.Strength,
		K:          l.K,
		D:          l.D,
		MACD:       l.MACD,
		MACDSignal: l.MACDSignal,
		RSI:        l.RSI,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (l *LatestSignal) UnmarshalJSON(data []byte) error {
	var raw latestSignalJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := time.Parse("2006-01-02", raw.Date)
	if err != nil {
		return err
	}
	*l = LatestSignal{
		Date:       date,
		Close:      raw.Close,
		Category:   raw.Signal,
		Strength:   raw.Strength,
		K:          raw.K,
		D:          raw.D,
		MACD:       raw.MACD,
		MACDSignal: raw.MACDSignal,
		RSI:        raw.RSI,
	}
	return nil
}
