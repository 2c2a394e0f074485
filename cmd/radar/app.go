package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"StockRadar/internal/collector"
	"StockRadar/internal/config"
	"StockRadar/internal/dashboard"
	"StockRadar/internal/logger"
	"StockRadar/internal/radar"
	"StockRadar/internal/recorder"
	"StockRadar/internal/research"
	"StockRadar/internal/watchlist"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	offline    bool
	logLevel   string
}

// App holds the wired components for one CLI invocation.
type App struct {
	cfg      *config.Config
	log      zerolog.Logger
	dash     *dashboard.Dashboard
	memCache *radar.MemoryCache
	closers  []func() error
}

func newApp(ctx context.Context, flags globalFlags) (*App, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	app := &App{cfg: cfg, log: log}

	src := app.newSource(flags.offline)
	log.Info().Str("source", src.Name()).Msg("data source ready")

	rec := app.newRecorder()
	analyzer := app.newAnalyzer(src)

	var gen *research.Generator
	if cfg.LLM.APIKey != "" {
		llm, err := research.NewLLM(ctx, research.LLMConfig{
			Provider: cfg.LLM.Provider,
			APIKey:   cfg.LLM.APIKey,
			Model:    cfg.LLM.Model,
			BaseURL:  cfg.LLM.BaseURL,
		})
		if err != nil {
			log.Warn().Err(err).Msg("research reports disabled")
		} else {
			gen = research.NewGenerator(llm, log)
		}
	}

	app.dash = dashboard.New(dashboard.Options{
		Source:    src,
		Watchlist: watchlist.NewStore(cfg.Watchlist.Path, cfg.Watchlist.Defaults, log),
		Radar:     analyzer,
		Recorder:  rec,
		Research:  gen,
		Workers:   cfg.Screener.Workers,
		Log:       log,
	})
	return app, nil
}

func (a *App) newSource(offline bool) collector.Source {
	if offline {
		return collector.NewMockSource(100)
	}
	opts := collector.YahooOptions{
		Proxy:     a.cfg.Proxy,
		Timeout:   a.cfg.DataSource.Timeout,
		RateLimit: a.cfg.DataSource.RateLimit,
	}
	if a.cfg.DataSource.Provider == "rest" {
		return collector.NewRESTSource(a.cfg.DataSource.BaseURL, a.cfg.DataSource.APIKey, opts)
	}
	return collector.NewYahooSource(opts)
}

func (a *App) newRecorder() recorder.Recorder {
	if a.cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(a.cfg.Database.SQLitePath, a.log)
	if err != nil {
		a.log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	a.closers = append(a.closers, sr.Close)
	return sr
}

func (a *App) newAnalyzer(src collector.PriceSource) radar.Analyzer {
	detector := radar.NewDetector(src, a.log)
	ttl := a.cfg.Radar.CacheTTL

	switch a.cfg.Radar.CacheBackend {
	case "none":
		return detector
	case "redis":
		rc, err := radar.NewRedisCache(a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB)
		if err == nil {
			a.closers = append(a.closers, rc.Close)
			return radar.NewCachedDetector(detector, rc, ttl, a.log)
		}
		a.log.Warn().Err(err).Msg("redis cache unavailable, using memory cache")
	}
	a.memCache = radar.NewMemoryCache()
	return radar.NewCachedDetector(detector, a.memCache, ttl, a.log)
}

// purgeCache drops expired in-memory radar entries until ctx is done.
func (a *App) purgeCache(ctx context.Context) {
	ttl := a.cfg.Radar.CacheTTL
	if a.memCache == nil || ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := a.memCache.Purge(now.Add(-ttl)); n > 0 {
				a.log.Debug().Int("entries", n).Msg("purged radar cache")
			}
		}
	}
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Error().Err(err).Msg("close resource")
		}
	}
}
