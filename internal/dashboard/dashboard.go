// Package dashboard wires the data sources into the screening, radar,
// scoring and sentiment components and is the single entry point used by
// the CLI, the HTTP API and the Telegram bot.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"StockRadar/internal/calculator"
	"StockRadar/internal/chart"
	"StockRadar/internal/collector"
	"StockRadar/internal/model"
	"StockRadar/internal/radar"
	"StockRadar/internal/recorder"
	"StockRadar/internal/research"
	"StockRadar/internal/screener"
	"StockRadar/internal/sentiment"
	"StockRadar/internal/strategy"
	"StockRadar/internal/universe"
	"StockRadar/internal/watchlist"
)

var (
	ErrUnknownMarket    = errors.New("unknown market")
	ErrResearchDisabled = errors.New("research reports are not configured")
)

// Options configures a Dashboard. Source and Watchlist are required.
type Options struct {
	Source    collector.Source
	Watchlist *watchlist.Store

	// Radar overrides the analyzer, typically with a radar.CachedDetector.
	Radar    radar.Analyzer
	Recorder recorder.Recorder
	Research *research.Generator
	Workers  int
	Log      zerolog.Logger
}

// Dashboard is the facade over every component.
type Dashboard struct {
	source    collector.Source
	watchlist *watchlist.Store
	radar     radar.Analyzer
	scorer    *strategy.Scorer
	news      *sentiment.Aggregator
	screener  *screener.Screener
	recorder  recorder.Recorder
	research  *research.Generator
	workers   int
	log       zerolog.Logger
}

// New builds a Dashboard.
func New(opts Options) *Dashboard {
	log := opts.Log.With().Str("component", "dashboard").Logger()
	analyzer := opts.Radar
	if analyzer == nil {
		analyzer = radar.NewDetector(opts.Source, opts.Log)
	}
	rec := opts.Recorder
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Dashboard{
		source:    opts.Source,
		watchlist: opts.Watchlist,
		radar:     analyzer,
		scorer:    strategy.NewScorer(opts.Source, opts.Source, analyzer, opts.Log),
		news:      sentiment.NewAggregator(opts.Source, nil, opts.Log),
		screener:  screener.New(opts.Source, workers, opts.Log),
		recorder:  rec,
		research:  opts.Research,
		workers:   workers,
		log:       log,
	}
}

// SourceName reports which data provider is in use.
func (d *Dashboard) SourceName() string { return d.source.Name() }

// Watchlist returns the tracked tickers, sorted.
func (d *Dashboard) Watchlist() []string {
	return d.watchlist.Load().Sorted()
}

// AddTicker adds a ticker to the watchlist. It reports false when the ticker
// was already present or the write failed.
func (d *Dashboard) AddTicker(ticker string) (bool, error) {
	t, err := model.ParseTicker(ticker)
	if err != nil {
		return false, err
	}
	return d.watchlist.Add(t), nil
}

// RemoveTicker removes a ticker from the watchlist.
func (d *Dashboard) RemoveTicker(ticker string) (bool, error) {
	t, err := model.ParseTicker(ticker)
	if err != nil {
		return false, err
	}
	return d.watchlist.Remove(t), nil
}

// Markets lists the screening universes.
func (d *Dashboard) Markets() []universe.Market {
	return universe.Markets()
}

// Screen runs the fundamentals screen over a market's pool.
func (d *Dashboard) Screen(ctx context.Context, market string, c screener.Criteria) ([]model.ScreenResult, error) {
	if market == "" {
		market = universe.Default
	}
	m, ok := universe.Lookup(market)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMarket, market)
	}
	return d.screener.Run(ctx, m.Tickers, c), nil
}

// Radar analyzes one ticker and journals the result.
func (d *Dashboard) Radar(ctx context.Context, ticker string) (model.AnomalyReport, error) {
	t, err := model.ParseTicker(ticker)
	if err != nil {
		return model.AnomalyReport{}, err
	}
	rep := d.radar.Analyze(ctx, t)
	d.recordRadar(rep)
	return rep, nil
}

// RadarSweep analyzes the given tickers, or the whole watchlist when none are
// given. Results keep the input order.
func (d *Dashboard) RadarSweep(ctx context.Context, tickers ...string) []model.AnomalyReport {
	if len(tickers) == 0 {
		tickers = d.Watchlist()
	}
	out := make([]model.AnomalyReport, len(tickers))

	g := new(errgroup.Group)
	g.SetLimit(d.workers)
	for i, t := range tickers {
		g.Go(func() error {
			sym := model.NormalizeTicker(t)
			if sym == "" {
				out[i] = model.GrayReport(t, "invalid ticker")
				return nil
			}
			out[i] = d.radar.Analyze(ctx, sym)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range out {
		d.recordRadar(r)
	}
	return out
}

// Score builds the deep report for one ticker and journals it.
func (d *Dashboard) Score(ctx context.Context, ticker string) (model.ScoreReport, error) {
	t, err := model.ParseTicker(ticker)
	if err != nil {
		return model.ScoreReport{}, err
	}
	rep := d.scorer.Score(ctx, t)
	if err := d.recorder.RecordScore(rep); err != nil {
		d.log.Error().Err(err).Str("ticker", t).Msg("record score")
	}
	return rep, nil
}

// ScoreWatchlist scores every watchlist ticker, sequentially.
func (d *Dashboard) ScoreWatchlist(ctx context.Context) []model.ScoreReport {
	tickers := d.Watchlist()
	out := make([]model.ScoreReport, 0, len(tickers))
	for _, t := range tickers {
		if ctx.Err() != nil {
			break
		}
		rep, err := d.Score(ctx, t)
		if err != nil {
			continue
		}
		out = append(out, rep)
	}
	return out
}

// News aggregates headline sentiment for one ticker.
func (d *Dashboard) News(ctx context.Context, ticker string) (model.SentimentReport, error) {
	t, err := model.ParseTicker(ticker)
	if err != nil {
		return model.SentimentReport{}, err
	}
	return d.news.Analyze(ctx, t), nil
}

// PriceRange returns the six-month high/low band and the last close's
// position inside it.
func (d *Dashboard) PriceRange(ctx context.Context, ticker string) (*model.PriceRange, error) {
	bars, err := d.bars(ctx, ticker)
	if err != nil {
		return nil, err
	}
	high, low, err := calculator.CalculateRange(bars, 0)
	if err != nil {
		return nil, err
	}
	last := bars[len(bars)-1].Close
	pos, err := calculator.RangePosition(last, high, low)
	if err != nil {
		return nil, err
	}
	return &model.PriceRange{High: high, Low: low, Last: last, Position: pos}, nil
}

// Chart renders the six-month price chart as PNG.
func (d *Dashboard) Chart(ctx context.Context, ticker string) ([]byte, error) {
	bars, err := d.bars(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return chart.RenderPrice(model.NormalizeTicker(ticker), bars)
}

func (d *Dashboard) bars(ctx context.Context, ticker string) ([]model.OHLCV, error) {
	t, err := model.ParseTicker(ticker)
	if err != nil {
		return nil, err
	}
	bars, err := d.source.DailyBars(ctx, t, collector.SessionsSixMonths)
	if err != nil {
		return nil, fmt.Errorf("price history for %s: %w", t, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("price history for %s: %w", t, collector.ErrNoData)
	}
	return bars, nil
}

// RadarHistory returns journaled radar snapshots for a ticker.
func (d *Dashboard) RadarHistory(ticker string, limit int) ([]recorder.RadarRow, error) {
	t, err := model.ParseTicker(ticker)
	if err != nil {
		return nil, err
	}
	return d.recorder.RadarHistory(t, limit)
}

// Research generates a report from an uploaded PDF.
func (d *Dashboard) Research(ctx context.Context, r io.ReaderAt, size int64, lang research.Lang) (*research.Report, error) {
	if d.research == nil {
		return nil, ErrResearchDisabled
	}
	return d.research.GenerateFromPDF(ctx, r, size, lang)
}

func (d *Dashboard) recordRadar(rep model.AnomalyReport) {
	if err := d.recorder.RecordRadar(rep); err != nil {
		d.log.Error().Err(err).Str("ticker", rep.Symbol).Msg("record radar")
	}
}
