package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"StockRadar/internal/model"
)

const (
	yahooChartBase  = "https://query1.finance.yahoo.com"
	yahooSearchBase = "https://query2.finance.yahoo.com"
	yahooNewsCount  = 10
)

// YahooSource serves bars and news from the public Yahoo Finance endpoints
// and fundamentals through go-yfinance.
type YahooSource struct {
	Client     *http.Client
	ChartBase  string
	SearchBase string
	SymbolMap  map[string]string // maps index aliases to Yahoo tickers

	limiter *rate.Limiter
	info    func(ctx context.Context, symbol string) (*model.Fundamentals, error)
}

// YahooOptions configures a YahooSource.
type YahooOptions struct {
	Proxy     string
	Timeout   time.Duration
	RateLimit float64 // requests per second shared by all endpoints
}

// NewYahooSource creates a Yahoo Finance source.
func NewYahooSource(opts YahooOptions) *YahooSource {
	return &YahooSource{
		Client:     newHTTPClient(opts.Proxy, opts.Timeout),
		ChartBase:  yahooChartBase,
		SearchBase: yahooSearchBase,
		SymbolMap: map[string]string{
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
			"NASDAQ": "^IXIC",
			"HSI":    "^HSI",
		},
		limiter: newLimiter(opts.RateLimit),
		info:    yfinanceFundamentals,
	}
}

func (y *YahooSource) Name() string { return "yahoo" }

func (y *YahooSource) yahooSymbol(symbol string) string {
	if mapped, ok := y.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

func (y *YahooSource) header() http.Header {
	h := http.Header{}
	h.Set("User-Agent", "Mozilla/5.0")
	return h
}

// yahooChart is the response structure from the chart endpoint.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func valueAt(s []*float64, i int) float64 {
	if i >= len(s) || s[i] == nil {
		return 0
	}
	return *s[i]
}

// chartRange picks the smallest Yahoo range covering the requested sessions.
func chartRange(sessions int) string {
	switch {
	case sessions <= 21:
		return "1mo"
	case sessions <= 63:
		return "3mo"
	case sessions <= 126:
		return "6mo"
	case sessions <= 252:
		return "1y"
	default:
		return "2y"
	}
}

// DailyBars fetches daily bars from the chart endpoint. Null bars (holidays,
// halted sessions) are skipped.
func (y *YahooSource) DailyBars(ctx context.Context, symbol string, sessions int) ([]model.OHLCV, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		y.ChartBase, url.PathEscape(y.yahooSymbol(symbol)), chartRange(sessions))

	body, err := getBody(ctx, y.Client, y.limiter, endpoint, y.header())
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo chart decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, ErrNoData)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c := valueAt(quote.Close, i)
		if c == 0 {
			continue
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   valueAt(quote.Open, i),
			High:   valueAt(quote.High, i),
			Low:    valueAt(quote.Low, i),
			Close:  c,
			Volume: valueAt(quote.Volume, i),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return trimBars(bars, sessions), nil
}

// News returns the raw news records from the search endpoint.
func (y *YahooSource) News(ctx context.Context, symbol string) ([]json.RawMessage, error) {
	q := url.Values{}
	q.Set("q", y.yahooSymbol(symbol))
	q.Set("quotesCount", "0")
	q.Set("newsCount", fmt.Sprint(yahooNewsCount))
	endpoint := y.SearchBase + "/v1/finance/search?" + q.Encode()

	body, err := getBody(ctx, y.Client, y.limiter, endpoint, y.header())
	if err != nil {
		return nil, fmt.Errorf("yahoo news %s: %w", symbol, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("yahoo news %s: invalid json", symbol)
	}

	items := gjson.GetBytes(body, "news").Array()
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		out = append(out, json.RawMessage(item.Raw))
	}
	return out, nil
}

// Fundamentals returns the quote summary snapshot for symbol.
func (y *YahooSource) Fundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error) {
	if y.limiter != nil {
		if err := y.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}
	info := y.info
	if info == nil {
		info = yfinanceFundamentals
	}
	f, err := info(ctx, y.yahooSymbol(symbol))
	if err != nil {
		return nil, err
	}
	f.Symbol = symbol
	return f, nil
}
