package recorder

import (
	"time"

	"StockRadar/internal/model"
)

// RadarRow is one stored radar snapshot.
type RadarRow struct {
	Timestamp  time.Time       `json:"timestamp"`
	Symbol     string          `json:"symbol"`
	Level      model.RiskLevel `json:"level"`
	Price      float64         `json:"price"`
	ChangePct  float64         `json:"change_pct"`
	Sigma      float64         `json:"sigma"`
	Volatility float64         `json:"volatility"`
	Signals    []string        `json:"signals"`
}

// Recorder journals radar and score snapshots for later review.
type Recorder interface {
	RecordRadar(r model.AnomalyReport) error
	RecordScore(r model.ScoreReport) error
	RadarHistory(symbol string, limit int) ([]RadarRow, error)
	Close() error
}
