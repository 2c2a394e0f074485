package model

// RiskLevel classifies the current session's price action.
type RiskLevel string

const (
	LevelGray   RiskLevel = "GRAY"
	LevelGreen  RiskLevel = "GREEN"
	LevelYellow RiskLevel = "YELLOW"
	LevelRed    RiskLevel = "RED"
)

// Rank orders levels by severity, GRAY lowest.
func (l RiskLevel) Rank() int {
	switch l {
	case LevelGreen:
		return 1
	case LevelYellow:
		return 2
	case LevelRed:
		return 3
	default:
		return 0
	}
}

// AnomalyData is the numeric payload of a non-GRAY report.
type AnomalyData struct {
	Price      float64 `json:"price"`
	ChangePct  float64 `json:"change_pct"`
	Sigma      float64 `json:"sigma"`
	Volatility float64 `json:"volatility"`
}

// AnomalyReport is the risk radar verdict for one ticker.
type AnomalyReport struct {
	Symbol  string       `json:"symbol"`
	Level   RiskLevel    `json:"level"`
	Signals []string     `json:"signals"`
	Data    *AnomalyData `json:"data,omitempty"`
}

// GrayReport builds the report used when no verdict can be computed.
func GrayReport(symbol, reason string) AnomalyReport {
	return AnomalyReport{Symbol: symbol, Level: LevelGray, Signals: []string{reason}}
}

// Sigma returns the payload sigma and whether it is available.
func (r AnomalyReport) Sigma() (float64, bool) {
	if r.Level == LevelGray || r.Data == nil {
		return 0, false
	}
	return r.Data.Sigma, true
}
