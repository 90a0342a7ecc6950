// Package chart renders the signal-augmented series as an HTML page of
// echarts panels: candlesticks with MA overlays, volume, KD, MACD, and
// RSI, mirroring the layout of the classic technical-analysis report.
package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"
)

// DefaultLastN is how many trailing rows are plotted by default.
const DefaultLastN = 180

// Render writes the full technical-analysis page for one ETF.
func Render(w io.Writer, code string, rows []model.SignalRow, lastN int) error {
	if len(rows) == 0 {
		return fmt.Errorf("no rows to plot for %s", code)
	}
	if lastN <= 0 {
		lastN = DefaultLastN
	}
	if len(rows) > lastN {
		rows = rows[len(rows)-lastN:]
	}

	dates := make([]string, len(rows))
	for i, r := range rows {
		dates[i] = r.Date.Format("2006-01-02")
	}

	last := rows[len(rows)-1]
	title := fmt.Sprintf("%s Technical Analysis | %s | Close: %.2f | Signal: %s",
		code, last.Date.Format("2006-01-02"), last.Close, last.Category)

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%s | ETF Tracker", code)
	page.AddCharts(
		priceChart(title, dates, rows),
		volumeChart(dates, rows),
		kdChart(dates, rows),
		macdChart(dates, rows),
		rsiChart(dates, rows),
	)
	return page.Render(w)
}

func priceChart(title string, dates []string, rows []model.SignalRow) *charts.Kline {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Scale: true}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "420px"}),
	)

	kData := make([]opts.KlineData, len(rows))
	for i, r := range rows {
		kData[i] = opts.KlineData{Value: [4]float64{r.Open, r.Close, r.Low, r.High}}
	}
	kline.SetXAxis(dates).AddSeries("price", kData)

	for _, ma := range []struct {
		name   string
		values func(r model.SignalRow) *float64
	}{
		{"MA5", func(r model.SignalRow) *float64 { return r.MA5 }},
		{"MA10", func(r model.SignalRow) *float64 { return r.MA10 }},
		{"MA20", func(r model.SignalRow) *float64 { return r.MA20 }},
		{"MA60", func(r model.SignalRow) *float64 { return r.MA60 }},
	} {
		line := charts.NewLine()
		data := make([]opts.LineData, len(rows))
		for i, r := range rows {
			data[i] = opts.LineData{Value: optValue(ma.values(r))}
		}
		line.SetXAxis(dates).AddSeries(ma.name, data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: true}))
		kline.Overlap(line)
	}
	return kline
}

func volumeChart(dates []string, rows []model.SignalRow) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Volume"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "180px"}),
	)
	data := make([]opts.BarData, len(rows))
	for i, r := range rows {
		data[i] = opts.BarData{Value: r.Volume}
	}
	bar.SetXAxis(dates).AddSeries("volume", data)
	return bar
}

func kdChart(dates []string, rows []model.SignalRow) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Stochastic KD(9,3)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "220px"}),
	)
	k := make([]opts.LineData, len(rows))
	d := make([]opts.LineData, len(rows))
	for i, r := range rows {
		k[i] = opts.LineData{Value: optValue(r.K)}
		d[i] = opts.LineData{Value: optValue(r.D)}
	}
	line.SetXAxis(dates).
		AddSeries("K", k).
		AddSeries("D", d)
	return line
}

func macdChart(dates []string, rows []model.SignalRow) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "MACD(12,26,9)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "220px"}),
	)
	macd := make([]opts.LineData, len(rows))
	sig := make([]opts.LineData, len(rows))
	for i, r := range rows {
		macd[i] = opts.LineData{Value: optValue(r.MACD)}
		sig[i] = opts.LineData{Value: optValue(r.MACDSignal)}
	}
	line.SetXAxis(dates).
		AddSeries("MACD", macd).
		AddSeries("Signal", sig)

	hist := charts.NewBar()
	histData := make([]opts.BarData, len(rows))
	for i, r := range rows {
		histData[i] = opts.BarData{Value: optValue(r.MACDHist)}
	}
	hist.SetXAxis(dates).AddSeries("Hist", histData)
	line.Overlap(hist)
	return line
}

func rsiChart(dates []string, rows []model.SignalRow) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "RSI(14)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "220px"}),
	)
	data := make([]opts.LineData, len(rows))
	for i, r := range rows {
		data[i] = opts.LineData{Value: optValue(r.RSI)}
	}
	line.SetXAxis(dates).AddSeries("RSI", data)
	return line
}

// optValue maps undefined values to the echarts missing-data marker.
func optValue(v *float64) interface{} {
	if v == nil {
		return "-"
	}
	return *v
}
