// Package radar flags abnormal daily moves relative to recent volatility.
package radar

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"StockRadar/internal/calculator"
	"StockRadar/internal/collector"
	"StockRadar/internal/model"
)

const (
	minBars        = 21
	volWindow      = 20
	volumeWindow   = 20
	redSigma       = 3.0
	yellowSigma    = 2.0
	sharpDrop      = -0.07
	redVolume      = 3.0
	yellowVolume   = 1.8
	maBreakFactor  = 0.97
	insufficient   = "insufficient data"
	maBreakMessage = "broke below 60-day average"
)

// Analyzer produces an anomaly report for a ticker. Implementations never fail;
// problems are reported as GRAY.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) model.AnomalyReport
}

// Detector computes anomaly reports from six months of daily bars.
type Detector struct {
	prices collector.PriceSource
	log    zerolog.Logger
}

// NewDetector creates a Detector reading bars from prices.
func NewDetector(prices collector.PriceSource, log zerolog.Logger) *Detector {
	return &Detector{
		prices: prices,
		log:    log.With().Str("component", "radar").Logger(),
	}
}

// Analyze fetches history for symbol and classifies the latest session.
func (d *Detector) Analyze(ctx context.Context, symbol string) model.AnomalyReport {
	symbol = model.NormalizeTicker(symbol)
	bars, err := d.prices.DailyBars(ctx, symbol, collector.SessionsSixMonths)
	if err != nil {
		d.log.Debug().Err(err).Str("ticker", symbol).Msg("price history unavailable")
		return model.GrayReport(symbol, insufficient)
	}
	return d.Classify(symbol, bars)
}

// Classify computes the report for an already fetched history.
func (d *Detector) Classify(symbol string, bars []model.OHLCV) (report model.AnomalyReport) {
	if len(bars) < minBars {
		return model.GrayReport(symbol, insufficient)
	}

	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Str("ticker", symbol).Msg("radar calculation failed")
			report = model.GrayReport(symbol, fmt.Sprintf("calculation error: %v", r))
		}
	}()

	report, err := classify(symbol, bars)
	if err != nil {
		d.log.Warn().Err(err).Str("ticker", symbol).Msg("radar calculation failed")
		return model.GrayReport(symbol, "calculation error: "+err.Error())
	}
	return report
}

func classify(symbol string, bars []model.OHLCV) (model.AnomalyReport, error) {
	closes := model.Closes(bars)
	volumes := model.Volumes(bars)
	returns := calculator.DailyReturns(closes)

	current := returns[len(returns)-1]
	last := closes[len(closes)-1]
	if math.IsNaN(current) || math.IsInf(current, 0) || math.IsNaN(last) {
		return model.AnomalyReport{}, fmt.Errorf("non-finite price for %s", symbol)
	}
	volumeRatio := volumes[len(volumes)-1] / (calculator.TrailingMean(volumes, volumeWindow) + 1)

	// Baseline volatility excludes the session being judged.
	base, ok, err := calculator.RollingStdDev(returns, volWindow, len(returns)-2)
	if err != nil {
		return model.AnomalyReport{}, err
	}
	if !ok || math.IsNaN(base) {
		base = 0
	}

	sigma := 0.0
	if base > 0 {
		sigma = math.Abs(current) / base
	}

	level := model.LevelGreen
	var signals []string

	if sigma > redSigma {
		level = model.LevelRed
		signals = append(signals, fmt.Sprintf("extreme anomaly, %.1fσ", sigma))
	}
	if current < sharpDrop {
		level = model.LevelRed
		signals = append(signals, fmt.Sprintf("sharp drop %.1f%%", current*100))
	}
	if volumeRatio > redVolume {
		level = model.LevelRed
		signals = append(signals, fmt.Sprintf("abnormal volume, %.1f×", volumeRatio))
	}

	if level == model.LevelGreen {
		switch {
		case sigma > yellowSigma:
			level = model.LevelYellow
			signals = append(signals, fmt.Sprintf("significant swing, %.1fσ", sigma))
		case volumeRatio > yellowVolume:
			level = model.LevelYellow
			signals = append(signals, fmt.Sprintf("volume surge, %.1f×", volumeRatio))
		}

		if ma60, err := calculator.CalculateMA60(bars); err == nil && last < ma60*maBreakFactor {
			level = model.LevelYellow
			signals = append(signals, maBreakMessage)
		}
	}

	if len(signals) == 0 {
		signals = append(signals, fmt.Sprintf("stable, %.1fσ", sigma))
	}

	return model.AnomalyReport{
		Symbol:  symbol,
		Level:   level,
		Signals: signals,
		Data: &model.AnomalyData{
			Price:      round2(last),
			ChangePct:  round2(current * 100),
			Sigma:      round2(sigma),
			Volatility: round2(base * 100),
		},
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
