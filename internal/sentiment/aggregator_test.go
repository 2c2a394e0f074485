package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockRadar/internal/collector"
	"StockRadar/internal/model"
)

// fixedScorer returns a preset polarity per title.
type fixedScorer map[string]float64

func (f fixedScorer) Polarity(text string) float64 { return f[text] }

func records(titles ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(titles))
	for i, t := range titles {
		out[i] = json.RawMessage(fmt.Sprintf(`{"title":%q,"link":"https://x/%d"}`, t, i))
	}
	return out
}

func newAggregator(scorer PolarityScorer) (*Aggregator, *collector.MockSource) {
	src := collector.NewMockSource(100)
	return NewAggregator(src, scorer, zerolog.Nop()), src
}

func TestAnalyze_AveragesOnlyNonZeroPolarities(t *testing.T) {
	a, src := newAggregator(fixedScorer{"up": 0.5, "flat": 0, "down": -0.1})
	src.Headlines["AAPL"] = records("up", "flat", "down")

	r := a.Analyze(context.Background(), "aapl")

	// (0.5 + 0 - 0.1) / 2 scored articles
	assert.Equal(t, 0.2, r.Score)
	assert.Equal(t, model.SentimentPositive, r.Level)
	assert.Equal(t, SuggestionPositive, r.Suggestion)
	require.Len(t, r.Articles, 3)
	assert.Equal(t, []string{"🟢", "⚪", "⚪"}, []string{r.Articles[0].Icon, r.Articles[1].Icon, r.Articles[2].Icon})
}

func TestAnalyze_OnlyFirstFiveRecords(t *testing.T) {
	a, src := newAggregator(fixedScorer{"a": -0.5, "f": 0.9})
	src.Headlines["X"] = records("a", "b", "c", "d", "e", "f")

	r := a.Analyze(context.Background(), "X")
	assert.Len(t, r.Articles, 5)
	assert.Equal(t, -0.5, r.Score)
	assert.Equal(t, model.SentimentNegative, r.Level)
	assert.Equal(t, "🔴", r.Articles[0].Icon)
}

func TestAnalyze_CJKTitlesAreNotScored(t *testing.T) {
	a, src := newAggregator(fixedScorer{"腾讯大涨": 0.9})
	src.Headlines["0700.HK"] = records("腾讯大涨")

	r := a.Analyze(context.Background(), "0700.hk")
	require.Len(t, r.Articles, 1)
	assert.Equal(t, "⚪", r.Articles[0].Icon)
	assert.Equal(t, 0.0, r.Score)
	assert.Equal(t, model.SentimentNeutral, r.Level)
	assert.Equal(t, SuggestionNeutral, r.Suggestion)
}

func TestAnalyze_SkipsUntitledRecords(t *testing.T) {
	a, src := newAggregator(fixedScorer{})
	src.Headlines["X"] = []json.RawMessage{
		json.RawMessage(`{"link":"https://no-title"}`),
		json.RawMessage(`{"content":{"title":"kept"}}`),
	}

	r := a.Analyze(context.Background(), "X")
	require.Len(t, r.Articles, 1)
	assert.Equal(t, "kept", r.Articles[0].Title)
	assert.Equal(t, "#", r.Articles[0].Link)
}

func TestAnalyze_Fallbacks(t *testing.T) {
	a, src := newAggregator(fixedScorer{})
	src.Errors["DOWN"] = errors.New("timeout")

	r := a.Analyze(context.Background(), "DOWN")
	assert.Equal(t, model.SentimentNeutral, r.Level)
	assert.Equal(t, 0.0, r.Score)
	assert.Equal(t, SuggestionUnavailable, r.Suggestion)
	assert.Empty(t, r.Articles)

	r = a.Analyze(context.Background(), "QUIET")
	assert.Equal(t, SuggestionNoNews, r.Suggestion)
	assert.NotNil(t, r.Articles)
	assert.Empty(t, r.Articles)
}

func TestAnalyze_ThresholdIsStrict(t *testing.T) {
	a, src := newAggregator(fixedScorer{"edge": 0.15})
	src.Headlines["E"] = records("edge")

	r := a.Analyze(context.Background(), "E")
	assert.Equal(t, model.SentimentNeutral, r.Level)
	assert.Equal(t, "🟢", r.Articles[0].Icon)
}

func TestAnalyze_DefaultScorerIsVader(t *testing.T) {
	a, src := newAggregator(nil)
	src.Headlines["TSLA"] = records("Company posts terrible results", "Apple releases quarterly report on Tuesday")

	r := a.Analyze(context.Background(), "TSLA")
	require.Len(t, r.Articles, 2)
	// only the first headline carries polarity
	assert.InDelta(t, -0.48, r.Score, 0.01)
	assert.Equal(t, model.SentimentNegative, r.Level)
	assert.Equal(t, []string{"🔴", "⚪"}, []string{r.Articles[0].Icon, r.Articles[1].Icon})
}
