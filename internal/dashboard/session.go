package dashboard

import (
	"context"

	"StockRadar/internal/model"
	"StockRadar/internal/screener"
	"StockRadar/internal/universe"
)

// Session is the per-user view state: the market being screened, the last
// screen result and the ticker selected for deep analysis.
type Session struct {
	Market   string               `json:"market"`
	Selected string               `json:"selected"`
	LastScan []model.ScreenResult `json:"last_scan"`
}

// NewSession starts a session on the default market.
func NewSession() *Session {
	return &Session{Market: universe.Default}
}

// ScreenInto runs a screen for the session's market and stores the result.
func (d *Dashboard) ScreenInto(ctx context.Context, s *Session, c screener.Criteria) error {
	rows, err := d.Screen(ctx, s.Market, c)
	if err != nil {
		return err
	}
	s.LastScan = rows
	if len(rows) > 0 && s.Selected == "" {
		s.Selected = rows[0].Symbol
	}
	return nil
}

// AddScanToWatchlist adds every ticker from the session's last screen and
// returns the ones that were new.
func (d *Dashboard) AddScanToWatchlist(s *Session) []string {
	var added []string
	for _, r := range s.LastScan {
		if ok, err := d.AddTicker(r.Symbol); err == nil && ok {
			added = append(added, r.Symbol)
		}
	}
	return added
}
