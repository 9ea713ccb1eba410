package calculator

import (
	"fairval/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func solverInput() ValuationInput {
	return ValuationInput{
		BaseRevenue:        5000,
		RevenueGrowthRate:  0.12,
		FCFMargin:          0.18,
		Years:              7,
		DiscountRate:       0.10,
		TerminalGrowthRate: 0.025,
		SharesOutstanding:  250,
	}
}

func TestRequiredRevenueGrowth(t *testing.T) {
	t.Run("round trip recovers the input growth rate", func(t *testing.T) {
		in := solverInput()
		fairValue, err := FairValuePerShare(in)
		require.NoError(t, err)

		growth, err := RequiredRevenueGrowth(in, fairValue)
		require.NoError(t, err)
		require.InDelta(t, in.RevenueGrowthRate, growth, 1e-3)

		// feeding the solved rate back reproduces the target price
		in.RevenueGrowthRate = growth
		value, err := FairValuePerShare(in)
		require.NoError(t, err)
		require.InDelta(t, fairValue, value, solverTolerance)
	})

	t.Run("unattainable price reports no solution", func(t *testing.T) {
		in := solverInput()
		in.RevenueGrowthRate = GrowthUpperBound
		ceiling, err := FairValuePerShare(in)
		require.NoError(t, err)

		_, err = RequiredRevenueGrowth(solverInput(), ceiling*2)
		require.ErrorIs(t, err, domain.ErrNoSolutionInRange)
	})
}

func TestRequiredFCFMargin(t *testing.T) {
	t.Run("round trip recovers the input margin", func(t *testing.T) {
		in := solverInput()
		fairValue, err := FairValuePerShare(in)
		require.NoError(t, err)

		margin, err := RequiredFCFMargin(in, fairValue)
		require.NoError(t, err)
		require.InDelta(t, in.FCFMargin, margin, 1e-3)
	})

	t.Run("worthless target solves to the zero margin endpoint", func(t *testing.T) {
		margin, err := RequiredFCFMargin(solverInput(), 0)
		require.NoError(t, err)
		require.InDelta(t, 0.0, margin, 1e-9)
	})

	t.Run("negative margin requirement is out of range", func(t *testing.T) {
		_, err := RequiredFCFMargin(solverInput(), -5)
		require.ErrorIs(t, err, domain.ErrNoSolutionInRange)
	})
}

func TestImpliedReturnRate(t *testing.T) {
	t.Run("buying at fair value earns the discount rate", func(t *testing.T) {
		in := solverInput()
		fairValue, err := FairValuePerShare(in)
		require.NoError(t, err)

		rate, err := ImpliedReturnRate(in, fairValue)
		require.NoError(t, err)
		require.InDelta(t, in.DiscountRate, rate, 1e-3)
	})

	t.Run("paying more implies a lower return", func(t *testing.T) {
		in := solverInput()
		fairValue, err := FairValuePerShare(in)
		require.NoError(t, err)

		rate, err := ImpliedReturnRate(in, fairValue*1.5)
		require.NoError(t, err)
		require.Less(t, rate, in.DiscountRate)
	})
}
