package strategy

import (
	"fmt"

	"StockRadar/internal/model"
)

// Ratings maps a clamped score to a label, highest threshold first.
var Ratings = []struct {
	MinScore int
	Rating   model.Rating
}{
	{80, model.RatingStrongBuy},
	{60, model.RatingAccumulate},
	{40, model.RatingNeutral},
}

// DefaultRating is used below the lowest threshold.
const DefaultRating = model.RatingReduce

func mapRating(score int) model.Rating {
	for _, r := range Ratings {
		if score >= r.MinScore {
			return r.Rating
		}
	}
	return DefaultRating
}

// Inputs are the already-fetched values the scoring rules read.
type Inputs struct {
	Fundamentals *model.Fundamentals
	Anomaly      model.AnomalyReport
	RSI          float64
}

// Result is the outcome of the rule table.
type Result struct {
	Score   int
	Rating  model.Rating
	Factors []model.FactorScore
}

// Details renders each fired rule with its signed contribution.
func (r Result) Details() []string {
	out := make([]string, len(r.Factors))
	for i, f := range r.Factors {
		out[i] = fmt.Sprintf("%s [%+d]", f.Commentary, f.Delta)
	}
	return out
}

// Evaluate applies the additive rule table and clamps the sum to 0..100.
func Evaluate(in Inputs) Result {
	f := in.Fundamentals
	if f == nil {
		f = &model.Fundamentals{}
	}

	var factors []model.FactorScore
	add := func(fs model.FactorScore, ok bool) {
		if ok {
			factors = append(factors, fs)
		}
	}
	add(scoreProfitability(f.ROE))
	add(scoreMargin(f.ProfitMargin))
	add(scoreValuation(f.PEG, f.PE))
	add(scoreVolatility(in.Anomaly))
	add(scoreMomentum(in.RSI))
	add(scoreTrend(in.Anomaly.Level))

	total := 0
	for _, fs := range factors {
		total += fs.Delta
	}
	total = clamp(total, 0, 100)

	return Result{Score: total, Rating: mapRating(total), Factors: factors}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
