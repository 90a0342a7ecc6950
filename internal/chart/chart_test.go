package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/collector"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/indicator"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/signal"
)

func sampleRows(t *testing.T, days int) []model.SignalRow {
	t.Helper()
	bars, err := collector.NewSampleFetcher().FetchDailyBars("0050", days)
	require.NoError(t, err)

	ind, err := indicator.Compute(&model.PriceSeries{Code: "0050", Bars: bars}, indicator.DefaultConfig())
	require.NoError(t, err)

	rows, err := signal.Generate(ind, signal.DefaultConfig())
	require.NoError(t, err)
	return rows
}

func TestRender(t *testing.T) {
	rows := sampleRows(t, 200)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "0050", rows, DefaultLastN))

	html := buf.String()
	assert.Contains(t, html, "0050")
	assert.Contains(t, html, "echarts")
}

func TestRender_FewRows(t *testing.T) {
	// Fewer rows than the window still renders, indicators mostly
	// undefined.
	rows := sampleRows(t, 10)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "006208", rows, DefaultLastN))
	assert.NotEmpty(t, buf.String())
}
