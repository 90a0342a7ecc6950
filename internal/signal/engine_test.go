package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/indicator"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"
)

func fptr(v float64) *float64 { return &v }

// rowsFromCloses runs the indicator stage over a synthetic flat-bar
// series so signal tests operate on realistic input.
func rowsFromCloses(t *testing.T, closes []float64) []model.IndicatorRow {
	t.Helper()
	bars := make([]model.PriceBar, len(closes))
	day := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = model.PriceBar{Date: day, Open: c, High: c, Low: c, Close: c, Volume: 1000}
		day = day.AddDate(0, 0, 1)
	}
	rows, err := indicator.Compute(&model.PriceSeries{Code: "0050", Bars: bars}, indicator.DefaultConfig())
	require.NoError(t, err)
	return rows
}

func TestGenerate_TooFewRows(t *testing.T) {
	_, err := Generate(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrTooFewRows)

	_, err = Generate([]model.IndicatorRow{{}}, DefaultConfig())
	assert.ErrorIs(t, err, ErrTooFewRows)
}

// A flat series that starts ramping generates exactly one MA crossover
// vote on the day MA5 breaks above MA20.
func TestGenerate_MACrossover(t *testing.T) {
	closes := make([]float64, 25)
	for i := 0; i < 20; i++ {
		closes[i] = 100
	}
	for i := 20; i < 25; i++ {
		closes[i] = 100 + 2*float64(i-19)
	}

	out, err := Generate(rowsFromCloses(t, closes), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, out, 25)

	for i, row := range out {
		if i == 20 {
			assert.Equal(t, 1, row.Signal, "row %d", i)
		} else {
			assert.Equal(t, 0, row.Signal, "row %d", i)
		}
	}

	// Strength is the trailing 3-row mean, so the single vote lifts
	// rows 20-22 into Buy territory.
	for i := 20; i <= 22; i++ {
		require.NotNil(t, out[i].Strength, "row %d", i)
		assert.InDelta(t, 1.0/3.0, *out[i].Strength, 1e-12, "row %d", i)
		assert.Equal(t, model.Buy, out[i].Category, "row %d", i)
	}
	assert.Equal(t, model.Hold, out[19].Category)
	assert.Equal(t, model.Hold, out[23].Category)
}

func TestGenerate_StrengthWindowWarmup(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i%5)
	}
	out, err := Generate(rowsFromCloses(t, closes), DefaultConfig())
	require.NoError(t, err)

	assert.Nil(t, out[0].Strength)
	assert.Nil(t, out[1].Strength)
	assert.Equal(t, model.Hold, out[0].Category)
	assert.Equal(t, model.Hold, out[1].Category)
	for i := 2; i < len(out); i++ {
		require.NotNil(t, out[i].Strength, "row %d", i)
	}
}

func TestGenerate_SignalBounds(t *testing.T) {
	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 100 + 10*float64((i*17)%23)/23
	}
	out, err := Generate(rowsFromCloses(t, closes), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, out, 120)

	for i, row := range out {
		assert.GreaterOrEqual(t, row.Signal, -3, "row %d", i)
		assert.LessOrEqual(t, row.Signal, 3, "row %d", i)
	}
	assert.Equal(t, 0, out[0].Signal, "first row has no predecessor")
}

func TestKDVote(t *testing.T) {
	cfg := DefaultConfig()
	row := func(k, d *float64) *model.IndicatorRow {
		return &model.IndicatorRow{K: k, D: d}
	}

	tests := []struct {
		name      string
		prev, cur *model.IndicatorRow
		want      int
	}{
		{"golden cross in oversold zone", row(fptr(25), fptr(28)), row(fptr(29), fptr(27)), 1},
		{"golden cross above oversold zone", row(fptr(45), fptr(48)), row(fptr(52), fptr(49)), 0},
		{"death cross in overbought zone", row(fptr(78), fptr(75)), row(fptr(74), fptr(76)), -1},
		{"death cross below overbought zone", row(fptr(55), fptr(52)), row(fptr(48), fptr(50)), 0},
		{"no cross", row(fptr(20), fptr(25)), row(fptr(22), fptr(26)), 0},
		{"touch then rise counts as cross", row(fptr(26), fptr(26)), row(fptr(28), fptr(27)), 1},
		{"undefined prev", row(nil, nil), row(fptr(29), fptr(27)), 0},
		{"undefined cur", row(fptr(25), fptr(28)), row(nil, fptr(27)), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kdVote(tt.prev, tt.cur, cfg))
		})
	}
}

func TestMACDVote(t *testing.T) {
	row := func(macd, sig *float64) *model.IndicatorRow {
		return &model.IndicatorRow{MACD: macd, MACDSignal: sig}
	}

	tests := []struct {
		name      string
		prev, cur *model.IndicatorRow
		want      int
	}{
		{"bullish cross", row(fptr(-0.5), fptr(-0.3)), row(fptr(0.2), fptr(0.1)), 1},
		{"bearish cross", row(fptr(0.5), fptr(0.3)), row(fptr(0.1), fptr(0.2)), -1},
		{"stays above", row(fptr(0.5), fptr(0.3)), row(fptr(0.6), fptr(0.4)), 0},
		{"undefined", row(nil, nil), row(fptr(0.2), fptr(0.1)), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, macdVote(tt.prev, tt.cur))
		})
	}
}

func TestMAVote(t *testing.T) {
	row := func(ma5, ma20 *float64) *model.IndicatorRow {
		return &model.IndicatorRow{MA5: ma5, MA20: ma20}
	}

	tests := []struct {
		name      string
		prev, cur *model.IndicatorRow
		want      int
	}{
		{"bullish cross", row(fptr(99), fptr(100)), row(fptr(101), fptr(100)), 1},
		{"bearish cross", row(fptr(101), fptr(100)), row(fptr(99), fptr(100)), -1},
		{"stays below", row(fptr(98), fptr(100)), row(fptr(99), fptr(100)), 0},
		{"undefined prev", row(nil, fptr(100)), row(fptr(101), fptr(100)), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maVote(tt.prev, tt.cur))
		})
	}
}

func TestCategorize_Boundaries(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		strength float64
		want     model.SignalCategory
	}{
		{1.0, model.StrongBuy},
		{0.7, model.StrongBuy},
		{0.69, model.Buy},
		{0.3, model.Buy},
		{0.29, model.Hold},
		{0.0, model.Hold},
		{-0.29, model.Hold},
		{-0.3, model.Sell},
		{-0.69, model.Sell},
		{-0.7, model.StrongSell},
		{-1.0, model.StrongSell},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(fptr(tt.strength), cfg), "strength %.2f", tt.strength)
	}
	assert.Equal(t, model.Hold, Categorize(nil, cfg))
}

func TestGenerate_Deterministic(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64((i*29)%17)
	}
	rows := rowsFromCloses(t, closes)

	a, err := Generate(rows, DefaultConfig())
	require.NoError(t, err)
	b, err := Generate(rows, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
