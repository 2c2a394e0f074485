package notifier

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"StockRadar/internal/model"
)

// maxArticles bounds the headlines shown in a sentiment message.
const maxArticles = 5

// LevelIcon maps a risk level to its traffic-light emoji.
func LevelIcon(level model.RiskLevel) string {
	switch level {
	case model.LevelRed:
		return "🔴"
	case model.LevelYellow:
		return "🟡"
	case model.LevelGreen:
		return "🟢"
	default:
		return "⚪"
	}
}

// FormatRadarDigest renders a sweep, most severe first.
func FormatRadarDigest(reports []model.AnomalyReport, now time.Time) string {
	sorted := make([]model.AnomalyReport, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Level.Rank() > sorted[j].Level.Rank()
	})

	var b strings.Builder
	fmt.Fprintf(&b, "📡 <b>StockRadar sweep</b> | %s\n\n", now.Format("2006-01-02 15:04"))
	if len(sorted) == 0 {
		b.WriteString("Watchlist is empty.")
		return b.String()
	}
	for _, r := range sorted {
		b.WriteString(formatRadarLine(r))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatRadarLine(r model.AnomalyReport) string {
	signals := html.EscapeString(strings.Join(r.Signals, "; "))
	if r.Data == nil {
		return fmt.Sprintf("%s <b>%s</b> %s", LevelIcon(r.Level), r.Symbol, signals)
	}
	return fmt.Sprintf("%s <b>%s</b> %.2f (%+.2f%%) · %s",
		LevelIcon(r.Level), r.Symbol, r.Data.Price, r.Data.ChangePct, signals)
}

// NeedsAttention reports whether any report is YELLOW or RED.
func NeedsAttention(reports []model.AnomalyReport) bool {
	for _, r := range reports {
		if r.Level.Rank() >= model.LevelYellow.Rank() {
			return true
		}
	}
	return false
}

// FormatScoreCard renders one deep-analysis report. rng may be nil.
func FormatScoreCard(r model.ScoreReport, rng *model.PriceRange) string {
	var b strings.Builder
	name := r.Symbol
	if r.Fundamentals != nil && r.Fundamentals.Name != "" && r.Fundamentals.Name != r.Symbol {
		name = fmt.Sprintf("%s (%s)", r.Symbol, html.EscapeString(r.Fundamentals.Name))
	}
	fmt.Fprintf(&b, "🧮 <b>%s</b>\n", name)
	fmt.Fprintf(&b, "Score: <b>%d</b>/100 · %s\n", r.Score, r.Rating)
	fmt.Fprintf(&b, "Radar: %s %s\n", LevelIcon(r.Anomaly.Level), html.EscapeString(strings.Join(r.Anomaly.Signals, "; ")))

	fmt.Fprintf(&b, "RSI: %.1f", r.Metrics.RSI)
	if r.Metrics.PEG != nil {
		fmt.Fprintf(&b, " | PEG: %.2f", *r.Metrics.PEG)
	}
	if r.Metrics.ProfitMarginPct != nil {
		fmt.Fprintf(&b, " | Margin: %.1f%%", *r.Metrics.ProfitMarginPct)
	}
	b.WriteByte('\n')

	if rng != nil {
		fmt.Fprintf(&b, "6M range: %.2f – %.2f (at %.0f%%)\n", rng.Low, rng.High, rng.Position*100)
	}

	if len(r.Details) > 0 {
		b.WriteString("\n")
		for _, d := range r.Details {
			fmt.Fprintf(&b, "• %s\n", html.EscapeString(d))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatScoreDigest renders a ranked one-line-per-ticker score table.
func FormatScoreDigest(reports []model.ScoreReport, now time.Time) string {
	ranked := make([]model.ScoreReport, len(reports))
	copy(ranked, reports)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	var b strings.Builder
	fmt.Fprintf(&b, "🏁 <b>Weekly score digest</b> | %s\n\n", now.Format("2006-01-02"))
	if len(ranked) == 0 {
		b.WriteString("Watchlist is empty.")
		return b.String()
	}
	for i, r := range ranked {
		fmt.Fprintf(&b, "%d. <b>%s</b> %d · %s %s\n", i+1, r.Symbol, r.Score, r.Rating, LevelIcon(r.Anomaly.Level))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSentiment renders a sentiment report with its newest headlines.
func FormatSentiment(r model.SentimentReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📰 <b>%s</b> news: %s (%+.2f)\n", r.Symbol, r.Level, r.Score)
	fmt.Fprintf(&b, "%s\n", html.EscapeString(r.Suggestion))
	for i, a := range r.Articles {
		if i == maxArticles {
			break
		}
		title := html.EscapeString(a.Title)
		if a.Link != "" && a.Link != "#" {
			title = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(a.Link), title)
		}
		fmt.Fprintf(&b, "%s %s\n", a.Icon, title)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatWatchlist renders the tracked tickers.
func FormatWatchlist(tickers []string) string {
	if len(tickers) == 0 {
		return "👀 Watchlist is empty."
	}
	return fmt.Sprintf("👀 <b>Watchlist</b> (%d)\n%s", len(tickers), strings.Join(tickers, ", "))
}
