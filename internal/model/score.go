package model

// Rating is the coarse label attached to a composite score.
type Rating string

const (
	RatingStrongBuy  Rating = "strong-buy"
	RatingAccumulate Rating = "accumulate"
	RatingNeutral    Rating = "neutral"
	RatingReduce     Rating = "reduce/sell"
)

// FactorScore is one fired scoring rule.
type FactorScore struct {
	Name       string `json:"name"`
	Delta      int    `json:"delta"`
	Commentary string `json:"commentary"`
}

// ScoreMetrics carries the headline numbers shown beside the score.
type ScoreMetrics struct {
	PEG             *float64 `json:"peg,omitempty"`
	RSI             float64  `json:"rsi"`
	ProfitMarginPct *float64 `json:"profit_margin_pct,omitempty"`
}

// ScoreReport is the deep analyzer output for one ticker.
type ScoreReport struct {
	Symbol       string        `json:"symbol"`
	Fundamentals *Fundamentals `json:"fundamentals"`
	Anomaly      AnomalyReport `json:"anomaly"`
	Score        int           `json:"score"`
	Rating       Rating        `json:"rating"`
	Factors      []FactorScore `json:"-"`
	Details      []string      `json:"details"`
	Metrics      ScoreMetrics  `json:"metrics"`
}
