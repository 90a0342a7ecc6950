package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/collector"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/pipeline"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/recorder"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	pipe := pipeline.New(collector.NewCollector(nil), recorder.NewNoopRecorder(), t.TempDir(), 120)
	return NewServer(pipe, recorder.NewNoopRecorder(), nil)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := get(t, newTestServer(t), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAPIETFs(t *testing.T) {
	w := get(t, newTestServer(t), "/api/etfs")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ETFs []string `json:"etfs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, collector.SupportedETFs(), resp.ETFs)
}

func TestAPIETF(t *testing.T) {
	w := get(t, newTestServer(t), "/api/etf/0050")
	require.Equal(t, http.StatusOK, w.Code)

	var resp signalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "0050", resp.ETFCode)
	assert.NotEmpty(t, resp.Date)
	assert.Positive(t, resp.Close)
	assert.Positive(t, resp.Volume)
	assert.Contains(t, []string{"Strong Buy", "Buy", "Hold", "Sell", "Strong Sell"}, string(resp.Signal))
	// 120 days of data defines every indicator.
	assert.NotNil(t, resp.K)
	assert.NotNil(t, resp.D)
	assert.NotNil(t, resp.MACD)
	assert.NotNil(t, resp.RSI)
	assert.NotNil(t, resp.Strength)
}

func TestAPIETF_UnsupportedCode(t *testing.T) {
	w := get(t, newTestServer(t), "/api/etf/2330")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not supported")
}

func TestAPIHistory(t *testing.T) {
	w := get(t, newTestServer(t), "/api/etf/0050/history?limit=5")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ETFCode string        `json:"etf_code"`
		History []historyItem `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "0050", resp.ETFCode)
	assert.Empty(t, resp.History, "noop recorder has no history")
}

func TestAPIHistory_UnsupportedCode(t *testing.T) {
	w := get(t, newTestServer(t), "/api/etf/2330/history")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIndexPage(t *testing.T) {
	w := get(t, newTestServer(t), "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "0050")
}

func TestReportPage(t *testing.T) {
	w := get(t, newTestServer(t), "/etf/0050")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0050")
}

func TestReportPage_UnsupportedCode(t *testing.T) {
	w := get(t, newTestServer(t), "/etf/2330")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChartPage(t *testing.T) {
	w := get(t, newTestServer(t), "/chart/0050")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestWebhookRouteDisabledWithoutBot(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
