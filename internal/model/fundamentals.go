package model

// Fundamentals is a point-in-time snapshot of valuation and quality metrics.
// Nil pointers mean the provider did not disclose the value.
type Fundamentals struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	PE           *float64 `json:"pe,omitempty"`
	ROE          *float64 `json:"roe,omitempty"`
	MarketCap    float64  `json:"market_cap"`
	DebtToEquity *float64 `json:"debt_to_equity,omitempty"`
	PEG          *float64 `json:"peg,omitempty"`
	ProfitMargin *float64 `json:"profit_margin,omitempty"`
}

// EmptyFundamentals is the snapshot used when nothing could be fetched.
func EmptyFundamentals(symbol string) *Fundamentals {
	return &Fundamentals{Symbol: symbol, Name: symbol}
}

// Float returns a pointer to a copy of v.
func Float(v float64) *float64 {
	return &v
}

// ScreenResult is a fundamentals row that passed a screen, with display fields.
type ScreenResult struct {
	Fundamentals
	ROEPct     float64 `json:"roe_pct"`
	PERounded  float64 `json:"pe_rounded"`
	MarketCapB float64 `json:"market_cap_b"`
}
