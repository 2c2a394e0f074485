package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"StockRadar/internal/model"
)

var sweepTime = time.Date(2024, 6, 3, 22, 0, 0, 0, time.UTC)

func TestFormatRadarDigest_SortsBySeverity(t *testing.T) {
	reports := []model.AnomalyReport{
		{Symbol: "AAPL", Level: model.LevelGreen, Signals: []string{"stable, 0.4σ"},
			Data: &model.AnomalyData{Price: 190.1, ChangePct: 0.3}},
		model.GrayReport("XYZ", "insufficient data"),
		{Symbol: "NVDA", Level: model.LevelRed, Signals: []string{"extreme anomaly, 4.0σ", "sharp drop -8.0%"},
			Data: &model.AnomalyData{Price: 100, ChangePct: -8}},
	}

	out := FormatRadarDigest(reports, sweepTime)
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines[0], "2024-06-03 22:00")
	assert.Equal(t, "🔴 <b>NVDA</b> 100.00 (-8.00%) · extreme anomaly, 4.0σ; sharp drop -8.0%", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "🟢 <b>AAPL</b>"))
	assert.Equal(t, "⚪ <b>XYZ</b> insufficient data", lines[4])
}

func TestNeedsAttention(t *testing.T) {
	assert.False(t, NeedsAttention([]model.AnomalyReport{{Level: model.LevelGreen}, {Level: model.LevelGray}}))
	assert.True(t, NeedsAttention([]model.AnomalyReport{{Level: model.LevelGreen}, {Level: model.LevelYellow}}))
	assert.False(t, NeedsAttention(nil))
}

func TestFormatScoreCard(t *testing.T) {
	r := model.ScoreReport{
		Symbol:       "MSFT",
		Fundamentals: &model.Fundamentals{Symbol: "MSFT", Name: "Microsoft & Co"},
		Anomaly:      model.AnomalyReport{Level: model.LevelGreen, Signals: []string{"stable, 0.5σ"}},
		Score:        80,
		Rating:       model.RatingStrongBuy,
		Details:      []string{"ROE above 20% [+20]", "RSI <30 oversold [+10]"},
		Metrics:      model.ScoreMetrics{RSI: 28.4, PEG: model.Float(0.9)},
	}

	out := FormatScoreCard(r, &model.PriceRange{High: 120, Low: 80, Position: 0.25})

	assert.Contains(t, out, "MSFT (Microsoft &amp; Co)")
	assert.Contains(t, out, "Score: <b>80</b>/100 · strong-buy")
	assert.Contains(t, out, "RSI: 28.4 | PEG: 0.90")
	assert.NotContains(t, out, "Margin")
	assert.Contains(t, out, "6M range: 80.00 – 120.00 (at 25%)")
	assert.Contains(t, out, "• RSI &lt;30 oversold [+10]")
}

func TestFormatScoreDigest_Ranked(t *testing.T) {
	out := FormatScoreDigest([]model.ScoreReport{
		{Symbol: "A", Score: 40, Rating: model.RatingNeutral},
		{Symbol: "B", Score: 90, Rating: model.RatingStrongBuy},
	}, sweepTime)

	assert.Less(t, strings.Index(out, "1. <b>B</b> 90"), strings.Index(out, "2. <b>A</b> 40"))
}

func TestFormatSentiment_LimitsAndEscapes(t *testing.T) {
	r := model.SentimentReport{Symbol: "TSLA", Level: model.SentimentNegative, Score: -0.3, Suggestion: "caution"}
	for i := 0; i < 7; i++ {
		r.Articles = append(r.Articles, model.Article{Title: "Q<1>", Link: "#", Icon: "🔴"})
	}
	r.Articles[0].Link = "https://example.com/a?b=1&c=2"

	out := FormatSentiment(r)
	assert.Equal(t, 5, strings.Count(out, "🔴 "))
	assert.Contains(t, out, `<a href="https://example.com/a?b=1&amp;c=2">Q&lt;1&gt;</a>`)
	assert.Contains(t, out, "NEGATIVE (-0.30)")
}

func TestFormatWatchlist(t *testing.T) {
	assert.Equal(t, "👀 Watchlist is empty.", FormatWatchlist(nil))
	assert.Equal(t, "👀 <b>Watchlist</b> (2)\nAAPL, NVDA", FormatWatchlist([]string{"AAPL", "NVDA"}))
}
