// Package report writes the per-ETF analysis artifacts: a CSV of the
// signal-augmented price history and a JSON file with the latest signal.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"
)

var csvHeader = []string{
	"date", "open", "high", "low", "close", "volume",
	"ma_5", "ma_10", "ma_20", "ma_60",
	"k", "d", "macd", "macd_signal", "macd_hist", "rsi",
	"signal", "signal_strength", "signal_category",
}

// WriteCSV writes the full signal-augmented series for an ETF to
// <dir>/<code>_<today>.csv. Undefined indicator values are left blank.
func WriteCSV(dir, code string, rows []model.SignalRow) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", code, time.Now().Format("2006-01-02")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, row := range rows {
		record := []string{
			row.Date.Format("2006-01-02"),
			formatFloat(row.Open),
			formatFloat(row.High),
			formatFloat(row.Low),
			formatFloat(row.Close),
			strconv.FormatInt(row.Volume, 10),
			formatOpt(row.MA5),
			formatOpt(row.MA10),
			formatOpt(row.MA20),
			formatOpt(row.MA60),
			formatOpt(row.K),
			formatOpt(row.D),
			formatOpt(row.MACD),
			formatOpt(row.MACDSignal),
			formatOpt(row.MACDHist),
			formatOpt(row.RSI),
			strconv.Itoa(row.Signal),
			formatOpt(row.Strength),
			string(row.Category),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	return path, nil
}

// WriteJSON writes the latest signal to <dir>/<code>_signal_<today>.json
// using the wire-contract field names.
func WriteJSON(dir, code string, sig model.LatestSignal) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_signal_%s.json", code, time.Now().Format("2006-01-02")))

	data, err := json.MarshalIndent(sig, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write signal json: %w", err)
	}
	return path, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOpt(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
