package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"StockRadar/internal/model"
)

// MockSource returns controllable fixed data for offline use and tests.
// Symbols without explicit data get a gently trending generated series.
type MockSource struct {
	Price       float64
	Bars        map[string][]model.OHLCV
	Fundamental map[string]*model.Fundamentals
	Headlines   map[string][]json.RawMessage
	Errors      map[string]error // forces every fetch for the symbol to fail
}

// NewMockSource creates a MockSource generating bars around price.
func NewMockSource(price float64) *MockSource {
	return &MockSource{
		Price:       price,
		Bars:        map[string][]model.OHLCV{},
		Fundamental: map[string]*model.Fundamentals{},
		Headlines:   map[string][]json.RawMessage{},
		Errors:      map[string]error{},
	}
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) DailyBars(_ context.Context, symbol string, sessions int) ([]model.OHLCV, error) {
	if err := m.Errors[symbol]; err != nil {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return trimBars(bars, sessions), nil
	}
	return generateMockBars(symbol, m.Price, sessions), nil
}

func (m *MockSource) Fundamentals(_ context.Context, symbol string) (*model.Fundamentals, error) {
	if err := m.Errors[symbol]; err != nil {
		return nil, err
	}
	if f, ok := m.Fundamental[symbol]; ok {
		c := *f
		return &c, nil
	}
	return nil, fmt.Errorf("mock fundamentals %s: %w", symbol, ErrNoData)
}

func (m *MockSource) News(_ context.Context, symbol string) ([]json.RawMessage, error) {
	if err := m.Errors[symbol]; err != nil {
		return nil, err
	}
	return m.Headlines[symbol], nil
}

// generateMockBars returns a slowly rising series with a small wave whose
// phase depends on the symbol, so different tickers look different.
func generateMockBars(symbol string, basePrice float64, count int) []model.OHLCV {
	if basePrice <= 0 {
		basePrice = 100
	}
	h := fnv.New32a()
	h.Write([]byte(symbol))
	phase := float64(h.Sum32()%628) / 100

	end := time.Now().UTC().Truncate(24 * time.Hour)
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.0005 + 0.01*math.Sin(float64(i)*0.9+phase))
		bars[i] = model.OHLCV{
			Time:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
