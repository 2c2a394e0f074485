package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"StockRadar/internal/dashboard"
	"StockRadar/internal/model"
	"StockRadar/internal/notifier"
	"StockRadar/internal/research"
	"StockRadar/internal/scheduler"
	"StockRadar/internal/screener"
	"StockRadar/internal/server"
)

type appFn func() *App

func newWatchlistCmd(app appFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Show or edit the watchlist",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List tracked tickers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printJSON(cmd.OutOrStdout(), app().dash.Watchlist())
			},
		},
		&cobra.Command{
			Use:     "add <ticker>...",
			Short:   "Track one or more tickers",
			Example: "  radar watchlist add AAPL 0700.HK",
			Args:    cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editWatchlist(cmd, args, app().dash.AddTicker, "added")
			},
		},
		&cobra.Command{
			Use:   "remove <ticker>...",
			Short: "Stop tracking one or more tickers",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editWatchlist(cmd, args, app().dash.RemoveTicker, "removed")
			},
		},
	)
	return cmd
}

func editWatchlist(cmd *cobra.Command, args []string, op func(string) (bool, error), key string) error {
	out := make(map[string]bool, len(args))
	for _, a := range args {
		ok, err := op(a)
		if err != nil {
			return fmt.Errorf("%q: %w", a, err)
		}
		out[model.NormalizeTicker(a)] = ok
	}
	return printJSON(cmd.OutOrStdout(), map[string]map[string]bool{key: out})
}

func newMarketsCmd(app appFn) *cobra.Command {
	return &cobra.Command{
		Use:   "markets",
		Short: "List screening universes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), app().dash.Markets())
		},
	}
}

func newScreenCmd(app appFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "screen",
		Short:   "Screen a market on ROE and P/E",
		Example: `  radar screen
  radar screen --market hk --min-roe 0.2 --max-pe 25
  radar screen --add`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			market, _ := cmd.Flags().GetString("market")
			minROE, _ := cmd.Flags().GetFloat64("min-roe")
			maxPE, _ := cmd.Flags().GetFloat64("max-pe")
			add, _ := cmd.Flags().GetBool("add")

			if market == "" {
				market = a.cfg.Screener.Market
			}
			c := screener.Criteria{MinROE: a.cfg.Screener.MinROE, MaxPE: a.cfg.Screener.MaxPE}
			if cmd.Flags().Changed("min-roe") {
				c.MinROE = minROE
			}
			if cmd.Flags().Changed("max-pe") {
				c.MaxPE = maxPE
			}

			session := dashboard.NewSession()
			session.Market = market
			if err := a.dash.ScreenInto(cmd.Context(), session, c); err != nil {
				return err
			}
			if add {
				added := a.dash.AddScanToWatchlist(session)
				a.log.Info().Strs("tickers", added).Msg("screen results added to watchlist")
			}
			return printJSON(cmd.OutOrStdout(), session)
		},
	}
	cmd.Flags().StringP("market", "m", "", "market id (see 'radar markets')")
	cmd.Flags().Float64("min-roe", screener.DefaultCriteria.MinROE, "minimum return on equity, as a fraction")
	cmd.Flags().Float64("max-pe", screener.DefaultCriteria.MaxPE, "maximum trailing P/E")
	cmd.Flags().Bool("add", false, "add every passing ticker to the watchlist")
	return cmd
}

func newRadarCmd(app appFn) *cobra.Command {
	return &cobra.Command{
		Use:   "radar [ticker...]",
		Short: "Run the risk radar over the watchlist or the given tickers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), app().dash.RadarSweep(cmd.Context(), args...))
		},
	}
}

func newScoreCmd(app appFn) *cobra.Command {
	return &cobra.Command{
		Use:   "score <ticker>",
		Short: "Composite 0-100 score for a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := app().dash.Score(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rep)
		},
	}
}

func newNewsCmd(app appFn) *cobra.Command {
	return &cobra.Command{
		Use:   "news <ticker>",
		Short: "Headline sentiment for a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := app().dash.News(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rep)
		},
	}
}

func newChartCmd(app appFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart <ticker>",
		Short: "Render the six-month price chart to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("output")
			if out == "" {
				out = model.NormalizeTicker(args[0]) + ".png"
			}
			img, err := app().dash.Chart(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, img, 0o644); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "output file (default <TICKER>.png)")
	return cmd
}

func newResearchCmd(app appFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "research <report.pdf>",
		Short: "Generate a research note from a financial report PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			langFlag, _ := cmd.Flags().GetString("lang")
			lang, err := research.ParseLang(langFlag)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open report: %w", err)
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("stat report: %w", err)
			}

			rep, err := app().dash.Research(cmd.Context(), f, info.Size(), lang)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rep.Markdown)
			return nil
		},
	}
	cmd.Flags().String("lang", "en", "report language (en, zh)")
	return cmd
}

func newServeCmd(app appFn) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			ctx := cmd.Context()
			go a.purgeCache(ctx)

			srv := server.New(server.Config{Addr: a.cfg.Server.Addr, Dashboard: a.dash, Log: a.log})
			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.log.Info().Msg("shutdown signal received, stopping...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func newWatchCmd(app appFn) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run scheduled sweeps and answer Telegram commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.cfg.ValidateTelegram(); err != nil {
				return err
			}
			ctx := cmd.Context()
			go a.purgeCache(ctx)

			tn := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy, a.log)
			sched := scheduler.NewScheduler(ctx, a.dash, tn, a.log)
			if err := sched.RegisterAll(a.cfg.Schedule.RadarCron, a.cfg.Schedule.DigestCron); err != nil {
				return fmt.Errorf("register cron tasks: %w", err)
			}
			sched.Start()
			defer sched.Stop()

			go tn.StartPolling(ctx, sched.HandleCommand)

			if os.Getenv("RUN_ON_START") == "true" {
				a.log.Info().Msg("RUN_ON_START enabled, running radar sweep now")
				go sched.RunRadarNow()
			}

			a.log.Info().Msg("StockRadar is watching. Press Ctrl+C to stop.")
			<-ctx.Done()
			a.log.Info().Msg("shutdown signal received, stopping...")
			return nil
		},
	}
}
