// Package sentiment summarizes the tone of recent headlines for a ticker.
package sentiment

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"StockRadar/internal/collector"
	"StockRadar/internal/model"
)

const (
	maxArticles    = 5
	iconThreshold  = 0.1
	levelThreshold = 0.15

	iconPositive = "🟢"
	iconNegative = "🔴"
	iconNeutral  = "⚪"

	SuggestionPositive    = "optimistic news flow (bullish catalysts)"
	SuggestionNegative    = "pessimistic news flow (bearish overhang)"
	SuggestionNeutral     = "news flow steady"
	SuggestionNoNews      = "no news available"
	SuggestionUnavailable = "analysis service unavailable"
)

// Aggregator scores the first few headlines for a ticker.
type Aggregator struct {
	news   collector.NewsSource
	scorer PolarityScorer
	log    zerolog.Logger
}

// NewAggregator creates an Aggregator. A nil scorer uses VADER.
func NewAggregator(news collector.NewsSource, scorer PolarityScorer, log zerolog.Logger) *Aggregator {
	if scorer == nil {
		scorer = NewVaderScorer()
	}
	return &Aggregator{
		news:   news,
		scorer: scorer,
		log:    log.With().Str("component", "sentiment").Logger(),
	}
}

// Analyze fetches headlines for symbol and aggregates their polarity. It
// never fails; fetch problems yield a neutral report with no articles.
func (a *Aggregator) Analyze(ctx context.Context, symbol string) model.SentimentReport {
	symbol = model.NormalizeTicker(symbol)

	records, err := a.news.News(ctx, symbol)
	if err != nil {
		a.log.Warn().Err(err).Str("ticker", symbol).Msg("news fetch failed")
		return model.NeutralSentiment(symbol, SuggestionUnavailable)
	}
	if len(records) == 0 {
		return model.NeutralSentiment(symbol, SuggestionNoNews)
	}
	if len(records) > maxArticles {
		records = records[:maxArticles]
	}

	var total float64
	var scored int
	articles := make([]model.Article, 0, len(records))
	for _, raw := range records {
		h, ok := ParseArticle(raw)
		if !ok {
			continue
		}

		polarity := 0.0
		if !containsCJK(h.Title) {
			polarity = a.scorer.Polarity(h.Title)
		}
		if polarity != 0 {
			scored++
		}
		total += polarity

		articles = append(articles, model.Article{
			Title:    h.Title,
			Link:     h.Link,
			Icon:     icon(polarity),
			PubDate:  h.PubDate,
			Polarity: polarity,
		})
	}

	avg := 0.0
	if scored > 0 {
		avg = total / float64(scored)
	}

	report := model.SentimentReport{
		Symbol:     symbol,
		Score:      math.Round(avg*100) / 100,
		Level:      model.SentimentNeutral,
		Suggestion: SuggestionNeutral,
		Articles:   articles,
	}
	switch {
	case avg > levelThreshold:
		report.Level = model.SentimentPositive
		report.Suggestion = SuggestionPositive
	case avg < -levelThreshold:
		report.Level = model.SentimentNegative
		report.Suggestion = SuggestionNegative
	}
	return report
}

func icon(polarity float64) string {
	switch {
	case polarity > iconThreshold:
		return iconPositive
	case polarity < -iconThreshold:
		return iconNegative
	default:
		return iconNeutral
	}
}
