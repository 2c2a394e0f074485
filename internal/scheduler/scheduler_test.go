package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockRadar/internal/collector"
	"StockRadar/internal/dashboard"
	"StockRadar/internal/model"
	"StockRadar/internal/watchlist"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return f.err
}

func newTestScheduler(t *testing.T, defaults ...string) (*Scheduler, *collector.MockSource, *fakeSender) {
	t.Helper()
	src := collector.NewMockSource(100)
	store := watchlist.NewStore(filepath.Join(t.TempDir(), "wl.json"), defaults, zerolog.Nop())
	dash := dashboard.New(dashboard.Options{Source: src, Watchlist: store, Log: zerolog.Nop()})
	sender := &fakeSender{}
	s := NewScheduler(context.Background(), dash, sender, zerolog.Nop())
	s.now = func() time.Time { return time.Date(2024, 6, 3, 22, 0, 0, 0, time.UTC) }
	return s, src, sender
}

// crashBars ends with an 8% drop after a calm run.
func crashBars() []model.OHLCV {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, 30)
	price := 100.0
	for i := range bars {
		if i == len(bars)-1 {
			price *= 0.92
		} else if i%2 == 0 {
			price *= 1.001
		} else {
			price *= 0.999
		}
		bars[i] = model.OHLCV{Time: start.AddDate(0, 0, i), Close: price, High: price, Low: price, Volume: 1000}
	}
	return bars
}

func TestRegisterAll_RejectsBadSpec(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	assert.Error(t, s.RegisterAll("not a cron", "0 0 8 * * 1"))

	s, _, _ = newTestScheduler(t)
	require.NoError(t, s.RegisterAll("0 0 22 * * 1-5", "0 0 8 * * 1"))
	assert.Len(t, s.cron.Entries(), 2)
}

func TestRadarTask_QuietSweepSendsNothing(t *testing.T) {
	s, src, sender := newTestScheduler(t, "AAPL")
	src.Errors["AAPL"] = errors.New("offline")

	s.RunRadarNow()
	assert.Empty(t, sender.sent)
}

func TestRadarTask_AlertsOnRed(t *testing.T) {
	s, src, sender := newTestScheduler(t, "CRSH", "FLAT")
	src.Bars["CRSH"] = crashBars()
	src.Errors["FLAT"] = errors.New("offline")

	s.RunRadarNow()
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "🔴 <b>CRSH</b>")
	assert.Contains(t, sender.sent[0], "sharp drop -8.0%")
}

func TestDigestTask_SendsRankedScores(t *testing.T) {
	s, src, sender := newTestScheduler(t, "AAPL", "MSFT")
	src.Fundamental["MSFT"] = &model.Fundamentals{Symbol: "MSFT", ROE: model.Float(0.3), ProfitMargin: model.Float(0.3)}
	src.Errors["AAPL"] = errors.New("offline")

	s.RunDigestNow()
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "1. <b>MSFT</b>")
	assert.Contains(t, sender.sent[0], "2. <b>AAPL</b>")
}

func TestHandleCommand(t *testing.T) {
	s, src, _ := newTestScheduler(t, "AAPL")
	src.Fundamental["AAPL"] = &model.Fundamentals{Symbol: "AAPL", Name: "Apple", ROE: model.Float(0.3)}
	ctx := context.Background()

	assert.Contains(t, s.HandleCommand(ctx, "/list"), "AAPL")
	assert.Equal(t, "✅ TSLA added to watchlist", s.HandleCommand(ctx, "/add tsla"))
	assert.Equal(t, "ℹ️ TSLA already in watchlist", s.HandleCommand(ctx, "/add@StockRadarBot TSLA"))
	assert.Equal(t, "✅ TSLA removed from watchlist", s.HandleCommand(ctx, "/remove TSLA"))
	assert.Equal(t, "ℹ️ TSLA not in watchlist", s.HandleCommand(ctx, "/remove TSLA"))

	score := s.HandleCommand(ctx, "/score aapl")
	assert.Contains(t, score, "AAPL (Apple)")
	assert.Contains(t, score, "6M range:")

	assert.Contains(t, s.HandleCommand(ctx, "/radar"), "<b>AAPL</b>")
	assert.Contains(t, s.HandleCommand(ctx, "/news AAPL"), "<b>AAPL</b> news: NEUTRAL")

	assert.Equal(t, "Usage: /score TICKER", s.HandleCommand(ctx, "/score"))
	assert.Equal(t, helpText, s.HandleCommand(ctx, "hello"))
	assert.Equal(t, helpText, s.HandleCommand(ctx, ""))
}
