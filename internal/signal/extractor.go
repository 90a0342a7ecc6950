package signal

import "github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"

// Latest projects the final signal row into the summary record consumed
// by the web API, the bot reply formatter, and the JSON report file.
// It performs no computation beyond field selection.
func Latest(rows []model.SignalRow) (model.LatestSignal, error) {
	if len(rows) == 0 {
		return model.LatestSignal{}, ErrNoRows
	}
	last := rows[len(rows)-1]
	return model.LatestSignal{
		Date:       last.Date,
		Close:      last.Close,
		Category:   last.Category,
		Strength:   last.Strength,
		K:          last.K,
		D:          last.D,
		MACD:       last.MACD,
		MACDSignal: last.MACDSignal,
		RSI:        last.RSI,
	}, nil
}
