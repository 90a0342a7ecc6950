package recorder

import "github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSignal(_ string, _ model.LatestSignal) error { return nil }
func (n *NoopRecorder) Recent(_ string, _ int) ([]SignalRecord, error)    { return nil, nil }
func (n *NoopRecorder) Close() error                                      { return nil }
