package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// PolarityScorer maps text to a polarity in [-1, 1].
type PolarityScorer interface {
	Polarity(text string) float64
}

// VaderScorer returns the VADER compound score of a headline.
type VaderScorer struct {
	sia *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer loads the VADER lexicon. The analyzer is read-only after
// construction and safe for concurrent use.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{sia: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderScorer) Polarity(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return v.sia.PolarityScores(text).Compound
}
