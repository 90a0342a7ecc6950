package bot

import (
	"fmt"
	"strings"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/pipeline"
)

const helpText = `Available commands:
/signal <code> - latest signal for an ETF (e.g. /signal 0050)
/list - supported ETF codes
/help - this message`

var categoryEmoji = map[model.SignalCategory]string{
	model.StrongBuy:  "🟢🟢",
	model.Buy:        "🟢",
	model.Hold:       "⚪",
	model.Sell:       "🔴",
	model.StrongSell: "🔴🔴",
}

// FormatReport formats one ETF analysis result as a Telegram HTML message.
func FormatReport(res *pipeline.Result) string {
	sig := res.Latest
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>ETF %s</b> | %s\n\n", res.Code, sig.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Close: %.2f", sig.Close))
	if pct, ok := changePercent(res.Rows); ok {
		b.WriteString(fmt.Sprintf(" (%+.2f%%)", pct))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Signal: %s <b>%s</b>", categoryEmoji[sig.Category], sig.Category))
	if sig.Strength != nil {
		b.WriteString(fmt.Sprintf(" (strength %+.2f)", *sig.Strength))
	}
	b.WriteString("\n\n")

	b.WriteString("📈 <b>Indicators</b>\n")
	b.WriteString(fmt.Sprintf("  K/D: %s / %s\n", formatValue(sig.K), formatValue(sig.D)))
	b.WriteString(fmt.Sprintf("  MACD: %s (signal %s)\n", formatValue(sig.MACD), formatValue(sig.MACDSignal)))
	b.WriteString(fmt.Sprintf("  RSI: %s\n", formatValue(sig.RSI)))

	if res.Series != nil && res.Series.Ticker == "sample" {
		b.WriteString("\n⚠️ Live data unavailable, based on sample data\n")
	}
	return b.String()
}

// FormatList formats the supported ETF codes.
func FormatList(codes []string) string {
	var b strings.Builder
	b.WriteString("Supported ETFs:\n")
	for _, code := range codes {
		b.WriteString(fmt.Sprintf("• %s\n", code))
	}
	return b.String()
}

func formatValue(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

func changePercent(rows []model.SignalRow) (float64, bool) {
	if len(rows) < 2 {
		return 0, false
	}
	prev := rows[len(rows)-2].Close
	if prev == 0 {
		return 0, false
	}
	return (rows[len(rows)-1].Close/prev - 1) * 100, true
}
