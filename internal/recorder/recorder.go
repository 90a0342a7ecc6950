package recorder

import (
	"time"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"
)

// SignalRecord is one persisted daily signal for an ETF.
type SignalRecord struct {
	Code       string
	Signal     model.LatestSignal
	RecordedAt time.Time
}

// Recorder persists daily signal history for later analysis and the web
// history API.
type Recorder interface {
	RecordSignal(code string, sig model.LatestSignal) error
	Recent(code string, limit int) ([]SignalRecord, error)
	Close() error
}
