package repository

import (
	"context"
	"fairval/internal/domain"
	"fairval/internal/logger"
	"fairval/pkg/fundamentals"
	"fmt"
	"sort"
	"time"

	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"
)

// MarketDataRepository fetches raw company fundamentals from the upstream
// provider. Failures surface as domain.ErrUnknownTicker or
// domain.ErrUpstreamFetch; retry policy, if any, belongs here and not in
// the valuation engine.
type MarketDataRepository interface {
	GetCompanyFinancials(ctx context.Context, symbol string) (*domain.CompanyFinancials, error)
}

func NewYahooRepository(fundamentalsClient fundamentals.Client) MarketDataRepository {
	return &yahooRepositoryHandler{
		FundamentalsClient: fundamentalsClient,
	}
}

type yahooRepositoryHandler struct {
	FundamentalsClient fundamentals.Client
}

func (h yahooRepositoryHandler) GetCompanyFinancials(ctx context.Context, symbol string) (*domain.CompanyFinancials, error) {
	log := logger.FromContext(ctx)

	q, err := equity.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: quote lookup for %s: %s", domain.ErrUpstreamFetch, symbol, err.Error())
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTicker, symbol)
	}
	if q.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("%w: got 0 price for %s", domain.ErrUpstreamFetch, symbol)
	}

	series, err := h.FundamentalsClient.GetAnnualSeries(ctx, symbol)
	if err != nil {
		return nil, err
	}

	name := q.ShortName
	if name == "" {
		name = q.LongName
	}
	if name == "" {
		name = symbol
	}

	sharesOutstanding := float64(q.SharesOutstanding)
	if sharesOutstanding == 0 && q.RegularMarketPrice > 0 {
		// some listings omit the share count on the quote
		sharesOutstanding = float64(q.MarketCap) / q.RegularMarketPrice
		log.Warnf("quote for %s missing share count, derived %.0f from market cap", symbol, sharesOutstanding)
	}

	history, err := buildHistory(series, sharesOutstanding)
	if err != nil {
		return nil, err
	}

	return &domain.CompanyFinancials{
		Ticker:            symbol,
		Name:              name,
		Currency:          q.CurrencyID,
		CurrentPrice:      decimal.NewFromFloat(q.RegularMarketPrice),
		SharesOutstanding: sharesOutstanding,
		MarketCap:         float64(q.MarketCap),
		AverageVolume:     int64(q.AverageDailyVolume3Month),
		History:           history,
	}, nil
}

// buildHistory zips the yearly series into ordered snapshots, oldest first.
// Only years with reported revenue are kept; a missing share count falls
// back to the current quote's count.
func buildHistory(series *fundamentals.AnnualSeries, fallbackShares float64) ([]domain.YearlySnapshot, error) {
	dates := make([]string, 0, len(series.Revenue))
	for date := range series.Revenue {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	history := make([]domain.YearlySnapshot, 0, len(dates))
	for _, date := range dates {
		parsed, err := time.Parse(time.DateOnly, date)
		if err != nil {
			return nil, fmt.Errorf("%w: bad fiscal year date %q", domain.ErrUpstreamFetch, date)
		}
		snapshotShares := series.DilutedShares[date]
		if snapshotShares == 0 {
			snapshotShares = fallbackShares
		}
		history = append(history, domain.YearlySnapshot{
			Date:              parsed,
			Revenue:           series.Revenue[date],
			FreeCashFlow:      series.FreeCashFlow[date],
			SharesOutstanding: snapshotShares,
		})
	}

	return history, nil
}
