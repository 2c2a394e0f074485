package collector

import (
	"context"
	"encoding/json"
	"errors"

	"StockRadar/internal/model"
)

// ErrNoData is returned when a provider answers but has nothing for the symbol.
var ErrNoData = errors.New("no data returned")

// Trading-session lookbacks used by the analyzers.
const (
	SessionsTwoMonths = 42
	SessionsSixMonths = 126
)

// FundamentalsSource fetches valuation and quality metrics.
type FundamentalsSource interface {
	Fundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error)
}

// PriceSource fetches daily bars, oldest first, trimmed to at most sessions.
type PriceSource interface {
	DailyBars(ctx context.Context, symbol string, sessions int) ([]model.OHLCV, error)
}

// NewsSource fetches raw headline records as the provider emits them.
type NewsSource interface {
	News(ctx context.Context, symbol string) ([]json.RawMessage, error)
}

// Source is a provider that serves all three kinds of data.
type Source interface {
	FundamentalsSource
	PriceSource
	NewsSource
	Name() string
}

func trimBars(bars []model.OHLCV, sessions int) []model.OHLCV {
	if sessions > 0 && len(bars) > sessions {
		return bars[len(bars)-sessions:]
	}
	return bars
}
