package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"StockRadar/internal/model"
)

// RESTSource serves data from a self-hosted REST provider authenticated
// with a bearer key.
type RESTSource struct {
	BaseURL string
	APIKey  string
	Client  *http.Client

	limiter *rate.Limiter
}

// NewRESTSource creates a REST provider source with optional proxy support.
func NewRESTSource(baseURL, apiKey string, opts YahooOptions) *RESTSource {
	return &RESTSource{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(opts.Proxy, opts.Timeout),
		limiter: newLimiter(opts.RateLimit),
	}
}

func (r *RESTSource) Name() string { return "rest" }

// restBar is the expected JSON shape of a bar.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// restFundamentals is the expected JSON shape of a fundamentals snapshot.
// Absent or null ratios stay nil.
type restFundamentals struct {
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	PE           *float64 `json:"pe"`
	ROE          *float64 `json:"roe"`
	MarketCap    float64  `json:"market_cap"`
	DebtToEquity *float64 `json:"debt_to_equity"`
	PEG          *float64 `json:"peg"`
	ProfitMargin *float64 `json:"profit_margin"`
}

func (r *RESTSource) get(ctx context.Context, path string, q url.Values, out any) error {
	h := http.Header{}
	if r.APIKey != "" {
		h.Set("Authorization", "Bearer "+r.APIKey)
	}
	body, err := getBody(ctx, r.Client, r.limiter, r.BaseURL+path+"?"+q.Encode(), h)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (r *RESTSource) DailyBars(ctx context.Context, symbol string, sessions int) ([]model.OHLCV, error) {
	var raw []restBar
	q := url.Values{"symbol": {symbol}, "limit": {fmt.Sprint(sessions)}}
	if err := r.get(ctx, "/api/v1/bars/daily", q, &raw); err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("fetch bars %s: %w", symbol, ErrNoData)
	}

	bars := make([]model.OHLCV, len(raw))
	for i, b := range raw {
		bars[i] = model.OHLCV{
			Time:   time.Unix(b.Timestamp, 0).UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return trimBars(bars, sessions), nil
}

func (r *RESTSource) Fundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error) {
	var raw restFundamentals
	if err := r.get(ctx, "/api/v1/fundamentals", url.Values{"symbol": {symbol}}, &raw); err != nil {
		return nil, fmt.Errorf("fetch fundamentals: %w", err)
	}
	name := raw.Name
	if name == "" {
		name = symbol
	}
	return &model.Fundamentals{
		Symbol:       symbol,
		Name:         name,
		Price:        raw.Price,
		PE:           raw.PE,
		ROE:          raw.ROE,
		MarketCap:    raw.MarketCap,
		DebtToEquity: raw.DebtToEquity,
		PEG:          raw.PEG,
		ProfitMargin: raw.ProfitMargin,
	}, nil
}

func (r *RESTSource) News(ctx context.Context, symbol string) ([]json.RawMessage, error) {
	var raw []json.RawMessage
	if err := r.get(ctx, "/api/v1/news", url.Values{"symbol": {symbol}}, &raw); err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	return raw, nil
}
