package calculator

import (
	"fairval/internal/domain"
	"fmt"
	"math"
)

// ValuationInput holds everything needed for one forward DCF run. Rates are
// decimals (0.10 for 10%), not percentages.
type ValuationInput struct {
	BaseRevenue        float64
	RevenueGrowthRate  float64
	FCFMargin          float64
	Years              int
	DiscountRate       float64
	TerminalGrowthRate float64
	SharesOutstanding  float64
}

// ProjectCashFlows projects free cash flow for each of the next `years`
// years: revenue compounds at growthRate from baseRevenue, and FCF is a
// constant fraction of revenue. Growth and margin are held flat across the
// horizon - a single-stage model with no S-curve or margin expansion, which
// is a deliberate simplification.
func ProjectCashFlows(baseRevenue, growthRate, fcfMargin float64, years int) (fcfs []float64, finalRevenue float64) {
	fcfs = make([]float64, 0, years)
	revenue := baseRevenue
	for t := 0; t < years; t++ {
		revenue *= 1 + growthRate
		fcfs = append(fcfs, revenue*fcfMargin)
	}
	return fcfs, revenue
}

// FairValuePerShare discounts the projected cash flows and a Gordon-growth
// terminal value to present, and divides by shares outstanding. FCF is
// treated as equity-level cash flow; there is no separate debt/cash
// adjustment.
func FairValuePerShare(in ValuationInput) (float64, error) {
	if in.Years < 1 {
		return 0, fmt.Errorf("%w: projection horizon must be at least 1 year", domain.ErrInvalidParameter)
	}
	if in.SharesOutstanding <= 0 {
		return 0, fmt.Errorf("%w: shares outstanding must be positive", domain.ErrDegenerateInput)
	}
	if in.TerminalGrowthRate >= in.DiscountRate {
		return 0, fmt.Errorf(
			"%w: terminal growth %.2f%% >= discount rate %.2f%%",
			domain.ErrInvalidTerminalGrowth, in.TerminalGrowthRate*100, in.DiscountRate*100,
		)
	}

	fcfs, _ := ProjectCashFlows(in.BaseRevenue, in.RevenueGrowthRate, in.FCFMargin, in.Years)

	presentValue := 0.0
	for t, fcf := range fcfs {
		presentValue += fcf / math.Pow(1+in.DiscountRate, float64(t+1))
	}

	terminalValue := fcfs[len(fcfs)-1] * (1 + in.TerminalGrowthRate) / (in.DiscountRate - in.TerminalGrowthRate)
	presentValue += terminalValue / math.Pow(1+in.DiscountRate, float64(in.Years))

	return presentValue / in.SharesOutstanding, nil
}

// UpsideDownside returns the percentage gap between fair value and the
// current price, positive when the stock trades below fair value.
func UpsideDownside(fairValue, currentPrice float64) float64 {
	return (fairValue - currentPrice) / currentPrice * 100
}
