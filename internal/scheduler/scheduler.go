package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"StockRadar/internal/dashboard"
	"StockRadar/internal/notifier"
)

const sendRetries = 3

// Sender delivers formatted messages.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the periodic watchlist sweeps and answers chat commands.
type Scheduler struct {
	cron   *cron.Cron
	dash   *dashboard.Dashboard
	sender Sender
	ctx    context.Context
	log    zerolog.Logger
	now    func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, dash *dashboard.Dashboard, sender Sender, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		dash:   dash,
		sender: sender,
		ctx:    ctx,
		log:    log.With().Str("component", "scheduler").Logger(),
		now:    time.Now,
	}
}

// RegisterAll registers the radar sweep and the score digest.
func (s *Scheduler) RegisterAll(radarCron, digestCron string) error {
	if _, err := s.cron.AddFunc(radarCron, s.radarTask); err != nil {
		return fmt.Errorf("register radar task: %w", err)
	}
	if _, err := s.cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("jobs", len(s.cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunRadarNow executes the radar sweep immediately.
func (s *Scheduler) RunRadarNow() {
	s.radarTask()
}

// RunDigestNow executes the score digest immediately.
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

func (s *Scheduler) radarTask() {
	s.log.Info().Msg("running radar sweep")
	reports := s.dash.RadarSweep(s.ctx)
	if !notifier.NeedsAttention(reports) {
		s.log.Info().Int("tickers", len(reports)).Msg("radar sweep quiet, no alert sent")
		return
	}
	s.trySend(notifier.FormatRadarDigest(reports, s.now()))
}

func (s *Scheduler) digestTask() {
	s.log.Info().Msg("running score digest")
	reports := s.dash.ScoreWatchlist(s.ctx)
	s.trySend(notifier.FormatScoreDigest(reports, s.now()))
}

// HandleCommand processes a chat command and returns the reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	name := strings.ToLower(fields[0])
	if at := strings.IndexByte(name, '@'); at > 0 {
		name = name[:at]
	}
	args := fields[1:]

	switch name {
	case "/list":
		return notifier.FormatWatchlist(s.dash.Watchlist())
	case "/radar":
		return notifier.FormatRadarDigest(s.dash.RadarSweep(ctx, args...), s.now())
	case "/score":
		if len(args) == 0 {
			return "Usage: /score TICKER"
		}
		rep, err := s.dash.Score(ctx, args[0])
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		rng, err := s.dash.PriceRange(ctx, rep.Symbol)
		if err != nil {
			s.log.Debug().Err(err).Str("ticker", rep.Symbol).Msg("price range unavailable")
			rng = nil
		}
		return notifier.FormatScoreCard(rep, rng)
	case "/news":
		if len(args) == 0 {
			return "Usage: /news TICKER"
		}
		rep, err := s.dash.News(ctx, args[0])
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return notifier.FormatSentiment(rep)
	case "/add":
		return s.editWatchlist(args, s.dash.AddTicker, "added to", "already in")
	case "/remove":
		return s.editWatchlist(args, s.dash.RemoveTicker, "removed from", "not in")
	default:
		return helpText
	}
}

func (s *Scheduler) editWatchlist(args []string, op func(string) (bool, error), done, noop string) string {
	if len(args) == 0 {
		return "Usage: /add TICKER or /remove TICKER"
	}
	var lines []string
	for _, a := range args {
		ok, err := op(a)
		switch {
		case err != nil:
			lines = append(lines, fmt.Sprintf("❌ %s: %v", a, err))
		case ok:
			lines = append(lines, fmt.Sprintf("✅ %s %s watchlist", strings.ToUpper(a), done))
		default:
			lines = append(lines, fmt.Sprintf("ℹ️ %s %s watchlist", strings.ToUpper(a), noop))
		}
	}
	return strings.Join(lines, "\n")
}

const helpText = `Commands:
/list - show the watchlist
/radar [TICKER...] - risk radar for the watchlist or given tickers
/score TICKER - composite score card
/news TICKER - headline sentiment
/add TICKER - track a ticker
/remove TICKER - stop tracking a ticker`

func (s *Scheduler) trySend(text string) {
	if err := s.sender.SendWithRetry(s.ctx, text, sendRetries); err != nil {
		s.log.Error().Err(err).Msg("send notification")
	}
}
