package model

// PriceRange is the high/low band of a lookback window and where the last
// close sits inside it (0 at the low, 1 at the high).
type PriceRange struct {
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Last     float64 `json:"last"`
	Position float64 `json:"position"`
}
