package model

// SentimentLevel is the aggregate mood of recent headlines.
type SentimentLevel string

const (
	SentimentPositive SentimentLevel = "POSITIVE"
	SentimentNeutral  SentimentLevel = "NEUTRAL"
	SentimentNegative SentimentLevel = "NEGATIVE"
)

// Article is a normalized news headline.
type Article struct {
	Title    string  `json:"title"`
	Link     string  `json:"link"`
	Icon     string  `json:"icon"`
	PubDate  string  `json:"pub_date"`
	Polarity float64 `json:"polarity"`
}

// SentimentReport aggregates headline polarity for one ticker.
type SentimentReport struct {
	Symbol     string         `json:"symbol"`
	Score      float64        `json:"score"`
	Level      SentimentLevel `json:"level"`
	Suggestion string         `json:"suggestion"`
	Articles   []Article      `json:"articles"`
}

// NeutralSentiment is the fallback report with no articles.
func NeutralSentiment(symbol, suggestion string) SentimentReport {
	return SentimentReport{
		Symbol:     symbol,
		Level:      SentimentNeutral,
		Suggestion: suggestion,
		Articles:   []Article{},
	}
}
