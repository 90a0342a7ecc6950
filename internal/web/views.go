package web

import (
	"fmt"
	"strconv"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/pipeline"
)

// signalResponse is the JSON shape of /api/etf/:code. The indicator
// field names mirror the latest-signal wire contract, extended with the
// identifying and day-change fields the web layer owns.
type signalResponse struct {
	ETFCode       string               `json:"etf_code"`
	Date          string               `json:"date"`
	Close         float64              `json:"close"`
	ChangePercent float64              `json:"change_percent"`
	Volume        int64                `json:"volume"`
	Signal        model.SignalCategory `json:"signal"`
	Strength      *float64             `json:"strength"`
	K             *float64             `json:"k_value"`
	D             *float64             `json:"d_value"`
	MACD          *float64             `json:"macd"`
	MACDSignal    *float64             `json:"macd_signal"`
	RSI           *float64             `json:"rsi"`
}

type historyItem struct {
	ETFCode    string             `json:"etf_code"`
	RecordedAt string             `json:"recorded_at"`
	Signal     model.LatestSignal `json:"signal"`
}

func newSignalResponse(res *pipeline.Result) signalResponse {
	sig := res.Latest
	resp := signalResponse{
		ETFCode:    res.Code,
		Date:       sig.Date.Format("2006-01-02"),
		Close:      sig.Close,
		Signal:     sig.Category,
		Strength:   sig.Strength,
		K:          sig.K,
		D:          sig.D,
		MACD:       sig.MACD,
		MACDSignal: sig.MACDSignal,
		RSI:        sig.RSI,
	}
	if n := len(res.Rows); n > 0 {
		resp.Volume = res.Rows[n-1].Volume
		if n > 1 && res.Rows[n-2].Close != 0 {
			resp.ChangePercent = (res.Rows[n-1].Close/res.Rows[n-2].Close - 1) * 100
		}
	}
	return resp
}

// reportView carries pre-formatted strings for the HTML report page.
type reportView struct {
	Code          string
	Date          string
	Category      model.SignalCategory
	CategoryClass string
	Close         string
	ChangePercent string
	Volume        string
	Strength      string
	K             string
	D             string
	MACD          string
	MACDSignal    string
	RSI           string
}

func newReportView(res *pipeline.Result) reportView {
	resp := newSignalResponse(res)
	return reportView{
		Code:          res.Code,
		Date:          resp.Date,
		Category:      resp.Signal,
		CategoryClass: categoryClass(resp.Signal),
		Close:         fmt.Sprintf("%.2f", resp.Close),
		ChangePercent: fmt.Sprintf("%+.2f", resp.ChangePercent),
		Volume:        strconv.FormatInt(resp.Volume, 10),
		Strength:      formatOpt(resp.Strength, "%+.2f"),
		K:             formatOpt(resp.K, "%.2f"),
		D:             formatOpt(resp.D, "%.2f"),
		MACD:          formatOpt(resp.MACD, "%.3f"),
		MACDSignal:    formatOpt(resp.MACDSignal, "%.3f"),
		RSI:           formatOpt(resp.RSI, "%.2f"),
	}
}

func categoryClass(c model.SignalCategory) string {
	switch c {
	case model.StrongBuy, model.Buy:
		return "buy"
	case model.StrongSell, model.Sell:
		return "sell"
	}
	return "hold"
}

func formatOpt(v *float64, format string) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf(format, *v)
}

func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("limit must be positive, got %d", n)
	}
	return n, nil
}
