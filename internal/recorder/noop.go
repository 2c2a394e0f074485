package recorder

import "StockRadar/internal/model"

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRadar(_ model.AnomalyReport) error { return nil }
func (n *NoopRecorder) RecordScore(_ model.ScoreReport) error   { return nil }
func (n *NoopRecorder) RadarHistory(_ string, _ int) ([]RadarRow, error) {
	return []RadarRow{}, nil
}
func (n *NoopRecorder) Close() error { return nil }
