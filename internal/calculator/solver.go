package calculator

import (
	"fairval/internal/domain"
	"fmt"
	"math"
)

// Solver brackets. The forward valuation is monotonic in each of these
// inputs individually, so bisection over the bracket is guaranteed to
// converge when the target is attainable.
const (
	GrowthLowerBound = -0.50
	GrowthUpperBound = 1.00
	MarginLowerBound = 0.0
	MarginUpperBound = 1.00
	ReturnUpperBound = 1.00

	solverTolerance     = 0.01
	solverMaxIterations = 100
)

// RequiredRevenueGrowth solves for the revenue growth rate that makes fair
// value equal targetPrice, holding every other input fixed.
func RequiredRevenueGrowth(in ValuationInput, targetPrice float64) (float64, error) {
	return bisect(func(g float64) (float64, error) {
		in := in
		in.RevenueGrowthRate = g
		return FairValuePerShare(in)
	}, targetPrice, GrowthLowerBound, GrowthUpperBound)
}

// RequiredFCFMargin solves for the FCF margin that makes fair value equal
// targetPrice.
func RequiredFCFMargin(in ValuationInput, targetPrice float64) (float64, error) {
	return bisect(func(m float64) (float64, error) {
		in := in
		in.FCFMargin = m
		return FairValuePerShare(in)
	}, targetPrice, MarginLowerBound, MarginUpperBound)
}

// ImpliedReturnRate solves for the discount rate at which fair value equals
// targetPrice - the compounded annual return an investor buying at that
// price should expect under the modeled cash flows. The lower bound sits
// just above the terminal growth rate to keep the perpetuity well-defined.
func ImpliedReturnRate(in ValuationInput, targetPrice float64) (float64, error) {
	lower := in.TerminalGrowthRate + 1e-4
	if lower >= ReturnUpperBound {
		return 0, fmt.Errorf("%w: terminal growth rate leaves no discount-rate bracket", domain.ErrNoSolutionInRange)
	}
	return bisect(func(r float64) (float64, error) {
		in := in
		in.DiscountRate = r
		return FairValuePerShare(in)
	}, targetPrice, lower, ReturnUpperBound)
}

// bisect finds x in [lo, hi] with f(x) ~= target. f must be monotonic over
// the bracket; either direction works. Converges when |f(x)-target| drops
// below the tolerance or the iteration cap is hit.
func bisect(f func(float64) (float64, error), target, lo, hi float64) (float64, error) {
	fLo, err := f(lo)
	if err != nil {
		return 0, err
	}
	fHi, err := f(hi)
	if err != nil {
		return 0, err
	}

	// an endpoint may already sit on the target, in which case the sign
	// test below cannot narrow the bracket
	if math.Abs(fLo-target) < solverTolerance {
		return lo, nil
	}
	if math.Abs(fHi-target) < solverTolerance {
		return hi, nil
	}

	if (fLo-target)*(fHi-target) > 0 {
		return 0, fmt.Errorf(
			"%w: target %.2f outside attainable range [%.2f, %.2f]",
			domain.ErrNoSolutionInRange, target, math.Min(fLo, fHi), math.Max(fLo, fHi),
		)
	}

	mid := (lo + hi) / 2
	for i := 0; i < solverMaxIterations; i++ {
		mid = (lo + hi) / 2
		fMid, err := f(mid)
		if err != nil {
			return 0, err
		}
		if math.Abs(fMid-target) < solverTolerance {
			return mid, nil
		}
		if (fLo-target)*(fMid-target) < 0 {
			hi = mid
		} else {
			lo = mid
			fLo = fMid
		}
	}

	return mid, nil
}
