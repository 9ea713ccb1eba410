package service

import (
	"context"
	"fairval/internal/calculator"
	"fairval/internal/domain"
	"fairval/internal/logger"
	"fairval/internal/repository"
	"fmt"
	"math"
	"strings"
)

const (
	minProjectionYears = 1
	maxProjectionYears = 20

	// Indian-listed equities on the supported exchange
	defaultExchangeSuffix = ".NS"
)

type ValuationService interface {
	GetCompanyOverview(ctx context.Context, ticker string) (*domain.CompanyFinancials, *domain.HistoricalAverages, error)
	CalculateDCF(ctx context.Context, ticker string, params domain.DCFParameters) (*domain.DCFResult, error)
}

func NewValuationService(
	marketDataRepository repository.MarketDataRepository,
	conversionMultiples map[string]float64,
) ValuationService {
	return valuationServiceHandler{
		MarketDataRepository: marketDataRepository,
		ConversionMultiples:  conversionMultiples,
	}
}

type valuationServiceHandler struct {
	MarketDataRepository repository.MarketDataRepository
	// statement-currency -> divisor applied to reported figures. Unset or
	// unity means no conversion.
	ConversionMultiples map[string]float64
}

// NormalizeTicker uppercases the symbol and qualifies it with the default
// exchange suffix when the caller supplied a bare one.
func NormalizeTicker(raw string) string {
	ticker := strings.ToUpper(strings.TrimSpace(raw))
	if ticker != "" && !strings.Contains(ticker, ".") {
		ticker += defaultExchangeSuffix
	}
	return ticker
}

func (h valuationServiceHandler) GetCompanyOverview(ctx context.Context, ticker string) (*domain.CompanyFinancials, *domain.HistoricalAverages, error) {
	fin, err := h.fetchConverted(ctx, ticker)
	if err != nil {
		return nil, nil, err
	}

	averages, err := calculator.DeriveHistoricalAverages(*fin)
	if err != nil {
		return nil, nil, err
	}

	return fin, averages, nil
}

func (h valuationServiceHandler) CalculateDCF(ctx context.Context, ticker string, params domain.DCFParameters) (*domain.DCFResult, error) {
	if err := validateParameters(params); err != nil {
		return nil, err
	}
	profile := domain.GetPerformanceProfile(ctx)

	fin, err := h.fetchConverted(ctx, ticker)
	if err != nil {
		return nil, err
	}
	profile.Add("fetched market data")

	baseRevenue := fin.LatestRevenue()
	if baseRevenue <= 0 {
		return nil, fmt.Errorf("%w: no reported revenue for %s", domain.ErrInsufficientHistory, fin.Ticker)
	}
	currentPrice := fin.CurrentPrice.InexactFloat64()
	if currentPrice <= 0 {
		return nil, fmt.Errorf("%w: non-positive market price for %s", domain.ErrDegenerateInput, fin.Ticker)
	}

	in := calculator.ValuationInput{
		BaseRevenue:        baseRevenue,
		RevenueGrowthRate:  params.RevenueGrowthRate / 100,
		FCFMargin:          params.FCFMargin / 100,
		Years:              params.Years,
		DiscountRate:       params.DiscountRate / 100,
		TerminalGrowthRate: params.TerminalGrowthRate / 100,
		SharesOutstanding:  fin.SharesOutstanding,
	}

	fairValue, err := calculator.FairValuePerShare(in)
	if err != nil {
		return nil, err
	}

	requiredGrowth, err := calculator.RequiredRevenueGrowth(in, currentPrice)
	if err != nil {
		return nil, err
	}
	requiredMargin, err := calculator.RequiredFCFMargin(in, currentPrice)
	if err != nil {
		return nil, err
	}
	impliedReturn, err := calculator.ImpliedReturnRate(in, currentPrice)
	if err != nil {
		return nil, err
	}
	profile.Add("solved inverse rates")

	_, finalRevenue := calculator.ProjectCashFlows(baseRevenue, in.RevenueGrowthRate, in.FCFMargin, in.Years)

	return &domain.DCFResult{
		FairValue:             round2(fairValue),
		CurrentPrice:          round2(currentPrice),
		UpsideDownside:        round2(calculator.UpsideDownside(fairValue, currentPrice)),
		FinalYearRevenue:      finalRevenue,
		RequiredRevenueGrowth: round2(requiredGrowth * 100),
		RequiredFCFMargin:     round2(requiredMargin * 100),
		ImpliedReturnRate:     round2(impliedReturn * 100),
	}, nil
}

func (h valuationServiceHandler) fetchConverted(ctx context.Context, ticker string) (*domain.CompanyFinancials, error) {
	symbol := NormalizeTicker(ticker)
	if symbol == "" {
		return nil, fmt.Errorf("%w: ticker is required", domain.ErrInvalidParameter)
	}

	fin, err := h.MarketDataRepository.GetCompanyFinancials(ctx, symbol)
	if err != nil {
		return nil, err
	}

	h.convertStatementFigures(ctx, fin)

	return fin, nil
}

// convertStatementFigures divides reported figures by the configured
// multiple for the statement currency. With no configuration this is a
// no-op, matching the upstream's behavior of quoting statements in the
// listing currency.
func (h valuationServiceHandler) convertStatementFigures(ctx context.Context, fin *domain.CompanyFinancials) {
	multiple, ok := h.ConversionMultiples[fin.Currency]
	if !ok || multiple == 0 || multiple == 1 {
		return
	}

	logger.FromContext(ctx).Infof(
		"converting %s statement figures by multiple %.4f", fin.Currency, multiple,
	)
	for i := range fin.History {
		fin.History[i].Revenue /= multiple
		fin.History[i].FreeCashFlow /= multiple
	}
	fin.MarketCap /= multiple
}

func validateParameters(params domain.DCFParameters) error {
	if params.Years < minProjectionYears || params.Years > maxProjectionYears {
		return fmt.Errorf(
			"%w: projection horizon must be between %d and %d years",
			domain.ErrInvalidParameter, minProjectionYears, maxProjectionYears,
		)
	}
	if params.DiscountRate <= 0 || params.DiscountRate > 100 {
		return fmt.Errorf("%w: discount rate must be in (0, 100]", domain.ErrInvalidParameter)
	}
	if params.TerminalGrowthRate <= -100 {
		return fmt.Errorf("%w: terminal growth rate must be above -100%%", domain.ErrInvalidParameter)
	}
	if params.TerminalGrowthRate >= params.DiscountRate {
		return fmt.Errorf(
			"%w: got terminal growth %.2f%% and discount rate %.2f%%",
			domain.ErrInvalidTerminalGrowth, params.TerminalGrowthRate, params.DiscountRate,
		)
	}
	if params.RevenueGrowthRate < calculator.GrowthLowerBound*100 || params.RevenueGrowthRate > calculator.GrowthUpperBound*100 {
		return fmt.Errorf(
			"%w: revenue growth rate must be between %.0f%% and %.0f%%",
			domain.ErrInvalidParameter, calculator.GrowthLowerBound*100, calculator.GrowthUpperBound*100,
		)
	}
	if params.FCFMargin < calculator.MarginLowerBound*100 || params.FCFMargin > calculator.MarginUpperBound*100 {
		return fmt.Errorf(
			"%w: FCF margin must be between %.0f%% and %.0f%%",
			domain.ErrInvalidParameter, calculator.MarginLowerBound*100, calculator.MarginUpperBound*100,
		)
	}
	return nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
