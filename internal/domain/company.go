package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearlySnapshot is one fiscal year of reported figures, in the
// company's financial-statement currency.
type YearlySnapshot struct {
	Date              time.Time `json:"date"`
	Revenue           float64   `json:"revenue"`
	FreeCashFlow      float64   `json:"freeCashFlow"`
	SharesOutstanding float64   `json:"sharesOutstanding"`
}

// CompanyFinancials holds everything the valuation engine needs about a
// company. History is ordered oldest first. Constructed fresh per request,
// never cached or persisted.
type CompanyFinancials struct {
	Ticker            string
	Name              string
	Currency          string
	CurrentPrice      decimal.Decimal
	SharesOutstanding float64
	MarketCap         float64
	// 3-month average daily volume; 0 when the quote omits it
	AverageVolume int64
	History       []YearlySnapshot
}

// LatestRevenue returns the most recent fiscal year's revenue, or 0 when
// no history is available.
func (c CompanyFinancials) LatestRevenue() float64 {
	if len(c.History) == 0 {
		return 0
	}
	return c.History[len(c.History)-1].Revenue
}

// WindowAverages are trailing averages over a single lookback window,
// expressed as percentages rounded to 2 decimal places.
type WindowAverages struct {
	RevenueGrowth float64
	Dilution      float64
	FCFMargin     float64
}

// HistoricalAverages are derived values, recomputed on demand from
// CompanyFinancials.History.
type HistoricalAverages struct {
	OneYear   WindowAverages
	TwoYear   WindowAverages
	ThreeYear WindowAverages
}
