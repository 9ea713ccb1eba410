package calculator

import (
	"fairval/internal/domain"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// MinHistoryYears is the number of yearly snapshots needed to compute the
// 3-year trailing window. Shorter histories reject the whole request rather
// than returning partial windows.
const MinHistoryYears = 4

// DeriveHistoricalAverages computes trailing revenue growth, dilution and
// FCF margin over 1, 2 and 3 year windows. Growth figures are compound
// annual rates; margins are simple averages of FCF/revenue since a margin
// is a ratio, not a growth quantity. All values are percentages rounded to
// 2 decimal places.
func DeriveHistoricalAverages(fin domain.CompanyFinancials) (*domain.HistoricalAverages, error) {
	if len(fin.History) < MinHistoryYears {
		return nil, fmt.Errorf(
			"%w: need at least %d yearly snapshots, got %d",
			domain.ErrInsufficientHistory, MinHistoryYears, len(fin.History),
		)
	}

	out := &domain.HistoricalAverages{}
	windows := map[int]*domain.WindowAverages{
		1: &out.OneYear,
		2: &out.TwoYear,
		3: &out.ThreeYear,
	}

	for w, avgs := range windows {
		growth, err := trailingCAGR(revenues(fin.History), w)
		if err != nil {
			return nil, err
		}
		dilution, err := trailingCAGR(shares(fin.History), w)
		if err != nil {
			return nil, err
		}
		margin, err := trailingMarginAverage(fin.History, w)
		if err != nil {
			return nil, err
		}

		avgs.RevenueGrowth = roundPercent(growth)
		avgs.Dilution = roundPercent(dilution)
		avgs.FCFMargin = roundPercent(margin)
	}

	return out, nil
}

// trailingCAGR returns the compound annual rate that takes values[-1-w]
// to values[-1].
func trailingCAGR(values []float64, w int) (float64, error) {
	latest := values[len(values)-1]
	base := values[len(values)-1-w]
	if base <= 0 || latest <= 0 {
		return 0, fmt.Errorf(
			"%w: non-positive value in %d-year window",
			domain.ErrInsufficientHistory, w,
		)
	}
	return math.Pow(latest/base, 1/float64(w)) - 1, nil
}

// trailingMarginAverage is the simple mean of FCF/revenue over the trailing
// w years.
func trailingMarginAverage(history []domain.YearlySnapshot, w int) (float64, error) {
	ratios := make([]float64, 0, w)
	for _, snap := range history[len(history)-w:] {
		if snap.Revenue <= 0 {
			return 0, fmt.Errorf(
				"%w: non-positive revenue in %d-year margin window",
				domain.ErrInsufficientHistory, w,
			)
		}
		ratios = append(ratios, snap.FreeCashFlow/snap.Revenue)
	}
	mean, err := stats.Mean(ratios)
	if err != nil {
		return 0, fmt.Errorf("failed to average margins: %w", err)
	}
	return mean, nil
}

func revenues(history []domain.YearlySnapshot) []float64 {
	out := make([]float64, len(history))
	for i, snap := range history {
		out[i] = snap.Revenue
	}
	return out
}

func shares(history []domain.YearlySnapshot) []float64 {
	out := make([]float64, len(history))
	for i, snap := range history {
		out[i] = snap.SharesOutstanding
	}
	return out
}

// roundPercent converts a decimal rate like 0.1234 to a percentage rounded
// to 2 decimal places (12.34).
func roundPercent(rate float64) float64 {
	return math.Round(rate*10000) / 100
}
