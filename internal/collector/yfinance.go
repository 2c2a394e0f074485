package collector

import (
	"context"
	"fmt"

	"github.com/wnjoon/go-yfinance/pkg/ticker"

	"StockRadar/internal/model"
)

// yfinanceFundamentals maps go-yfinance quote info onto a snapshot. Ratios the
// library reports as zero are treated as undisclosed.
func yfinanceFundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := ticker.New(symbol)
	if err != nil {
		return nil, fmt.Errorf("yfinance ticker %s: %w", symbol, err)
	}
	defer t.Close()

	info, err := t.Info()
	if err != nil {
		return nil, fmt.Errorf("yfinance info %s: %w", symbol, err)
	}

	f := &model.Fundamentals{
		Symbol:    symbol,
		Name:      symbol,
		Price:     info.CurrentPrice,
		MarketCap: float64(info.MarketCap),
	}
	if info.ShortName != "" {
		f.Name = info.ShortName
	} else if info.LongName != "" {
		f.Name = info.LongName
	}
	if info.TrailingPE != 0 {
		f.PE = model.Float(info.TrailingPE)
	}
	if info.ReturnOnEquity != 0 {
		f.ROE = model.Float(info.ReturnOnEquity)
	}
	if info.DebtToEquity != 0 {
		f.DebtToEquity = model.Float(info.DebtToEquity)
	}
	if info.PegRatio != 0 {
		f.PEG = model.Float(info.PegRatio)
	}
	if info.ProfitMargins != 0 {
		f.ProfitMargin = model.Float(info.ProfitMargins)
	}
	return f, nil
}
