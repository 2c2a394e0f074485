package strategy

import (
	"fmt"

	"StockRadar/internal/model"
)

func fired(name string, delta int, format string, args ...any) model.FactorScore {
	return model.FactorScore{Name: name, Delta: delta, Commentary: fmt.Sprintf(format, args...)}
}

// scoreProfitability rewards high return on equity.
func scoreProfitability(roe *float64) (model.FactorScore, bool) {
	if roe == nil {
		return model.FactorScore{}, false
	}
	switch {
	case *roe > 0.20:
		return fired("profitability", 15, "strong profitability, ROE %.1f%%", *roe*100), true
	case *roe > 0.10:
		return fired("profitability", 10, "solid profitability, ROE %.1f%%", *roe*100), true
	}
	return model.FactorScore{}, false
}

// scoreMargin rewards a wide net profit margin.
func scoreMargin(margin *float64) (model.FactorScore, bool) {
	if margin == nil {
		return model.FactorScore{}, false
	}
	switch {
	case *margin > 0.15:
		return fired("margin", 15, "high margin, %.1f%%", *margin*100), true
	case *margin > 0.05:
		return fired("margin", 5, "positive margin, %.1f%%", *margin*100), true
	}
	return model.FactorScore{}, false
}

// scoreValuation prefers PEG when disclosed and falls back to trailing P/E
// only when PEG is absent. A disclosed PEG of 1.5 or more scores nothing.
func scoreValuation(peg, pe *float64) (model.FactorScore, bool) {
	if peg != nil {
		switch {
		case *peg > 0 && *peg < 1.0:
			return fired("valuation", 30, "undervalued growth, PEG %.2f", *peg), true
		case *peg < 1.5:
			return fired("valuation", 20, "fair growth valuation, PEG %.2f", *peg), true
		}
		return model.FactorScore{}, false
	}
	if pe != nil {
		switch {
		case *pe > 0 && *pe < 20:
			return fired("valuation", 20, "low valuation, P/E %.1f", *pe), true
		case *pe >= 20 && *pe < 40:
			return fired("valuation", 10, "reasonable valuation, P/E %.1f", *pe), true
		}
	}
	return model.FactorScore{}, false
}

// scoreVolatility uses the radar sigma; GRAY reports carry none.
func scoreVolatility(anomaly model.AnomalyReport) (model.FactorScore, bool) {
	sigma, ok := anomaly.Sigma()
	if !ok {
		return model.FactorScore{}, false
	}
	switch {
	case sigma < 1.5:
		return fired("volatility", 10, "low volatility, %.1fσ", sigma), true
	case sigma > 3.0:
		return fired("volatility", -20, "extreme volatility, %.1fσ", sigma), true
	}
	return model.FactorScore{}, false
}

// scoreMomentum scores RSI(14). Values in (70, 80] are neutral.
func scoreMomentum(rsi float64) (model.FactorScore, bool) {
	switch {
	case rsi < 30:
		return fired("momentum", 20, "oversold, RSI %.1f", rsi), true
	case rsi <= 70:
		return fired("momentum", 10, "healthy momentum, RSI %.1f", rsi), true
	case rsi > 80:
		return fired("momentum", -10, "overbought, RSI %.1f", rsi), true
	}
	return model.FactorScore{}, false
}

// scoreTrend follows the radar level.
func scoreTrend(level model.RiskLevel) (model.FactorScore, bool) {
	switch level {
	case model.LevelGreen:
		return fired("trend", 10, "trend stable"), true
	case model.LevelRed:
		return fired("trend", -10, "risk alert"), true
	}
	return model.FactorScore{}, false
}
