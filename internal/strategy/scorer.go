package strategy

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"StockRadar/internal/calculator"
	"StockRadar/internal/collector"
	"StockRadar/internal/model"
	"StockRadar/internal/radar"
)

const rsiPeriod = 14

// Scorer builds composite score reports. It never fails: each input degrades
// independently.
type Scorer struct {
	fundamentals collector.FundamentalsSource
	prices       collector.PriceSource
	radar        radar.Analyzer
	log          zerolog.Logger
}

// NewScorer creates a Scorer.
func NewScorer(fundamentals collector.FundamentalsSource, prices collector.PriceSource, analyzer radar.Analyzer, log zerolog.Logger) *Scorer {
	return &Scorer{
		fundamentals: fundamentals,
		prices:       prices,
		radar:        analyzer,
		log:          log.With().Str("component", "scorer").Logger(),
	}
}

// Score computes the composite report for symbol.
func (s *Scorer) Score(ctx context.Context, symbol string) model.ScoreReport {
	symbol = model.NormalizeTicker(symbol)

	f, err := s.fundamentals.Fundamentals(ctx, symbol)
	if err != nil || f == nil {
		s.log.Warn().Err(err).Str("ticker", symbol).Msg("fundamentals unavailable, scoring without them")
		f = model.EmptyFundamentals(symbol)
	}

	anomaly := s.radar.Analyze(ctx, symbol)
	rsi := s.rsi(ctx, symbol)

	res := Evaluate(Inputs{Fundamentals: f, Anomaly: anomaly, RSI: rsi})

	metrics := model.ScoreMetrics{PEG: f.PEG, RSI: round1(rsi)}
	if f.ProfitMargin != nil {
		metrics.ProfitMarginPct = model.Float(round1(*f.ProfitMargin * 100))
	}

	return model.ScoreReport{
		Symbol:       symbol,
		Fundamentals: f,
		Anomaly:      anomaly,
		Score:        res.Score,
		Rating:       res.Rating,
		Factors:      res.Factors,
		Details:      res.Details(),
		Metrics:      metrics,
	}
}

func (s *Scorer) rsi(ctx context.Context, symbol string) float64 {
	bars, err := s.prices.DailyBars(ctx, symbol, collector.SessionsTwoMonths)
	if err != nil {
		s.log.Warn().Err(err).Str("ticker", symbol).Msg("RSI history unavailable, defaulting to 50")
		return calculator.DefaultRSI
	}
	rsi, err := calculator.CalculateRSI(bars, rsiPeriod)
	if err != nil || math.IsNaN(rsi) {
		s.log.Warn().Err(err).Str("ticker", symbol).Msg("RSI calculation failed, defaulting to 50")
		return calculator.DefaultRSI
	}
	return rsi
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
