// Package universe lists the curated ticker pools available for screening.
package universe

// Default is the market used when none is chosen.
const Default = "us"

// Market is a named pool of tickers.
type Market struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Tickers []string `json:"tickers"`
}

var markets = []Market{
	{
		ID:    "us",
		Label: "US market (S&P 100 core)",
		Tickers: []string{
			"AAPL", "MSFT", "NVDA", "GOOG", "AMZN", "META", "TSLA", "BRK-B", "LLY", "AVGO",
			"JPM", "V", "TSM", "WMT", "XOM", "MA", "UNH", "PG", "COST", "JNJ", "MRK", "HD",
			"ABBV", "BAC", "KO", "PEP", "NFLX", "AMD", "CRM", "ADBE", "DIS", "MCD", "CSCO",
		},
	},
	{
		ID:    "hk",
		Label: "Hong Kong (Hang Seng Tech + blue chips)",
		Tickers: []string{
			"0700.HK", "9988.HK", "3690.HK", "1810.HK", "9618.HK", "1024.HK", "2015.HK",
			"0941.HK", "0005.HK", "1299.HK", "0388.HK", "2318.HK", "1211.HK", "0981.HK",
			"1750.HK", "9866.HK", "9888.HK", "0883.HK",
		},
	},
	{
		ID:    "au",
		Label: "Australia (ASX 20 core)",
		Tickers: []string{
			"BHP.AX", "CBA.AX", "CSL.AX", "NAB.AX", "WBC.AX", "ANZ.AX", "WDS.AX", "MQG.AX",
			"WES.AX", "TLS.AX", "WOW.AX", "RIO.AX", "FMG.AX", "GMG.AX", "STO.AX", "COL.AX",
		},
	},
	{
		ID:    "cn",
		Label: "China A-shares (core)",
		Tickers: []string{
			"600519.SS", "300750.SZ", "601318.SS", "600036.SS", "002594.SZ", "601012.SS",
			"000858.SZ", "600276.SS", "000333.SZ", "603288.SS",
		},
	},
}

// Markets returns every pool in display order. Callers get copies.
func Markets() []Market {
	out := make([]Market, len(markets))
	for i, m := range markets {
		out[i] = Market{ID: m.ID, Label: m.Label, Tickers: append([]string(nil), m.Tickers...)}
	}
	return out
}

// Lookup returns the pool with the given id.
func Lookup(id string) (Market, bool) {
	for _, m := range markets {
		if m.ID == id {
			return Market{ID: m.ID, Label: m.Label, Tickers: append([]string(nil), m.Tickers...)}, true
		}
	}
	return Market{}, false
}

// Tickers returns the symbols of a pool, or nil for an unknown id.
func Tickers(id string) []string {
	m, ok := Lookup(id)
	if !ok {
		return nil
	}
	return m.Tickers
}
