package pipeline

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/collector"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/recorder"
)

// countingRecorder records how many signals were persisted.
type countingRecorder struct {
	recorder.NoopRecorder
	records []string
}

func (c *countingRecorder) RecordSignal(code string, _ model.LatestSignal) error {
	c.records = append(c.records, code)
	return nil
}

func newTestPipeline(t *testing.T) (*Pipeline, *countingRecorder) {
	t.Helper()
	rec := &countingRecorder{}
	return New(collector.NewCollector(nil), rec, t.TempDir(), 120), rec
}

func TestProcess(t *testing.T) {
	p, rec := newTestPipeline(t)

	res, err := p.Process("0050", Options{})
	require.NoError(t, err)

	assert.Equal(t, "0050", res.Code)
	assert.Len(t, res.Rows, 120, "one signal row per input bar")
	assert.Equal(t, "sample", res.Series.Ticker)

	last := res.Rows[len(res.Rows)-1]
	assert.Equal(t, last.Date, res.Latest.Date)
	assert.Equal(t, last.Close, res.Latest.Close)
	assert.Equal(t, last.Category, res.Latest.Category)

	// 120 rows is plenty of history for every indicator.
	assert.NotNil(t, res.Latest.K)
	assert.NotNil(t, res.Latest.MACD)
	assert.NotNil(t, res.Latest.RSI)
	assert.NotNil(t, res.Latest.Strength)

	// No side effects requested.
	assert.Empty(t, res.CSVPath)
	assert.Empty(t, res.JSONPath)
	assert.Empty(t, rec.records)
}

func TestProcess_SideEffects(t *testing.T) {
	p, rec := newTestPipeline(t)

	res, err := p.Process("0050", Options{SaveReports: true, Record: true})
	require.NoError(t, err)

	require.NotEmpty(t, res.CSVPath)
	_, err = os.Stat(res.CSVPath)
	assert.NoError(t, err)

	require.NotEmpty(t, res.JSONPath)
	_, err = os.Stat(res.JSONPath)
	assert.NoError(t, err)

	assert.Equal(t, []string{"0050"}, rec.records)
}

func TestProcess_UnknownCode(t *testing.T) {
	p, _ := newTestPipeline(t)
	_, err := p.Process("9999", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestRunAll(t *testing.T) {
	p, _ := newTestPipeline(t)

	results, errs := p.RunAll([]string{"0050", "006208"}, Options{})
	assert.Empty(t, errs)
	require.Len(t, results, 2)
	assert.Equal(t, "0050", results["0050"].Code)
	assert.Equal(t, "006208", results["006208"].Code)
}

func TestRunAll_CollectsErrorsPerCode(t *testing.T) {
	p, _ := newTestPipeline(t)

	results, errs := p.RunAll([]string{"0050", "9999"}, Options{})
	require.Len(t, results, 1)
	require.Len(t, errs, 1)
	assert.Contains(t, errs["9999"].Error(), "not supported")
}
