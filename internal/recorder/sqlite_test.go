package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockRadar/internal/model"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "db", "radar.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSQLiteRecorder_RadarRoundTrip(t *testing.T) {
	r := openTestRecorder(t)
	base := time.Date(2024, 6, 3, 21, 0, 0, 0, time.UTC)

	r.now = func() time.Time { return base }
	require.NoError(t, r.RecordRadar(model.AnomalyReport{
		Symbol:  "NVDA",
		Level:   model.LevelYellow,
		Signals: []string{"volume surge, 2.1×"},
		Data:    &model.AnomalyData{Price: 120.5, ChangePct: 1.2, Sigma: 0.8, Volatility: 2.3},
	}))
	r.now = func() time.Time { return base.Add(24 * time.Hour) }
	require.NoError(t, r.RecordRadar(model.GrayReport("NVDA", "insufficient data")))
	require.NoError(t, r.RecordRadar(model.GrayReport("AAPL", "insufficient data")))

	rows, err := r.RadarHistory("NVDA", 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, model.LevelGray, rows[0].Level)
	assert.Equal(t, 0.0, rows[0].Price)
	assert.Equal(t, model.LevelYellow, rows[1].Level)
	assert.Equal(t, 120.5, rows[1].Price)
	assert.Equal(t, []string{"volume surge, 2.1×"}, rows[1].Signals)
	assert.Equal(t, base, rows[1].Timestamp)
}

func TestSQLiteRecorder_RecordScore(t *testing.T) {
	r := openTestRecorder(t)
	err := r.RecordScore(model.ScoreReport{
		Symbol:  "AAPL",
		Score:   72,
		Rating:  model.RatingAccumulate,
		Anomaly: model.AnomalyReport{Level: model.LevelGreen},
		Details: []string{"trend stable [+10]"},
		Metrics: model.ScoreMetrics{RSI: 55.2, PEG: model.Float(1.4)},
	})
	require.NoError(t, err)

	var score int
	var peg, margin *float64
	require.NoError(t, r.db.QueryRow(`SELECT score, peg, profit_margin_pct FROM score_snapshots WHERE symbol = 'AAPL'`).
		Scan(&score, &peg, &margin))
	assert.Equal(t, 72, score)
	require.NotNil(t, peg)
	assert.Equal(t, 1.4, *peg)
	assert.Nil(t, margin)
}

func TestNoopRecorder(t *testing.T) {
	n := NewNoopRecorder()
	assert.NoError(t, n.RecordRadar(model.AnomalyReport{}))
	rows, err := n.RadarHistory("X", 5)
	assert.NoError(t, err)
	assert.Empty(t, rows)
}
