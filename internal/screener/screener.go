// Package screener filters a ticker universe on profitability and valuation.
package screener

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"StockRadar/internal/collector"
	"StockRadar/internal/model"
)

// Criteria bounds a screen. A ticker passes when ROE > MinROE and
// 0 < P/E < MaxPE.
type Criteria struct {
	MinROE float64 `json:"min_roe"`
	MaxPE  float64 `json:"max_pe"`
}

// DefaultCriteria are the thresholds used when none are given.
var DefaultCriteria = Criteria{MinROE: 0.15, MaxPE: 40}

// Screener runs fundamentals screens with a bounded number of concurrent fetches.
type Screener struct {
	source  collector.FundamentalsSource
	workers int
	log     zerolog.Logger
}

// New creates a Screener. workers below one means sequential fetching.
func New(source collector.FundamentalsSource, workers int, log zerolog.Logger) *Screener {
	if workers < 1 {
		workers = 1
	}
	return &Screener{
		source:  source,
		workers: workers,
		log:     log.With().Str("component", "screener").Logger(),
	}
}

// Run screens universe and returns the passing rows in input order. Tickers
// whose fetch fails are skipped.
func (s *Screener) Run(ctx context.Context, universe []string, c Criteria) []model.ScreenResult {
	rows := make([]*model.ScreenResult, len(universe))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, raw := range universe {
		g.Go(func() error {
			symbol := model.NormalizeTicker(raw)
			if symbol == "" || ctx.Err() != nil {
				return nil
			}
			f, err := s.source.Fundamentals(ctx, symbol)
			if err != nil || f == nil {
				s.log.Debug().Err(err).Str("ticker", symbol).Msg("skipping ticker")
				return nil
			}
			rows[i] = Evaluate(f, c)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]model.ScreenResult, 0, len(universe))
	for _, r := range rows {
		if r != nil {
			out = append(out, *r)
		}
	}
	s.log.Info().Int("universe", len(universe)).Int("passed", len(out)).Msg("screen complete")
	return out
}

// Evaluate applies the criteria to one snapshot, returning nil when it fails
// or lacks ROE or P/E.
func Evaluate(f *model.Fundamentals, c Criteria) *model.ScreenResult {
	if f.ROE == nil || f.PE == nil {
		return nil
	}
	roe, pe := *f.ROE, *f.PE
	if roe <= c.MinROE || pe <= 0 || pe >= c.MaxPE {
		return nil
	}
	return &model.ScreenResult{
		Fundamentals: *f,
		ROEPct:       round2(roe * 100),
		PERounded:    round2(pe),
		MarketCapB:   round2(f.MarketCap / 1e9),
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
