package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fairval/internal/domain"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubValuationService struct {
	fin      *domain.CompanyFinancials
	averages *domain.HistoricalAverages
	result   *domain.DCFResult
	err      error

	gotParams *domain.DCFParameters
}

func (s stubValuationService) GetCompanyOverview(ctx context.Context, ticker string) (*domain.CompanyFinancials, *domain.HistoricalAverages, error) {
	return s.fin, s.averages, s.err
}

func (s stubValuationService) CalculateDCF(ctx context.Context, ticker string, params domain.DCFParameters) (*domain.DCFResult, error) {
	if s.gotParams != nil {
		*s.gotParams = params
	}
	return s.result, s.err
}

func performRequest(t *testing.T, handler ApiHandler, route string, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bodyBytes, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, route, bytes.NewReader(bodyBytes))
	handler.InitializeRouterEngine().ServeHTTP(w, req)
	return w
}

func Test_getCompanyInfo(t *testing.T) {
	t.Run("flattens averages into the wire shape", func(t *testing.T) {
		handler := ApiHandler{
			ValuationService: stubValuationService{
				fin: &domain.CompanyFinancials{
					Ticker:            "INFY.NS",
					Name:              "Infosys Limited",
					Currency:          "INR",
					CurrentPrice:      decimal.NewFromFloat(1450.50),
					SharesOutstanding: 4150000000,
					MarketCap:         6.02e12,
					AverageVolume:     5400000,
					History: []domain.YearlySnapshot{
						{Revenue: 1.54e12},
					},
				},
				averages: &domain.HistoricalAverages{
					OneYear:   domain.WindowAverages{RevenueGrowth: 4.7, Dilution: -0.43, FCFMargin: 15.1},
					TwoYear:   domain.WindowAverages{RevenueGrowth: 9.2, Dilution: -0.4, FCFMargin: 14.8},
					ThreeYear: domain.WindowAverages{RevenueGrowth: 13.3, Dilution: -0.38, FCFMargin: 14.2},
				},
			},
		}

		w := performRequest(t, handler, "/api/get_company_info", map[string]string{"ticker": "infy"})
		require.Equal(t, 200, w.Code)

		var response companyInfoResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Equal(t, "Infosys Limited", response.Name)
		require.InDelta(t, 1450.50, response.CurrentPrice, 0.001)
		require.InDelta(t, 13.3, response.HistoricalData.RevenueGrowth3Y, 0.001)
		require.InDelta(t, 15.1, response.HistoricalData.FcfMargin1Y, 0.001)
		require.NotNil(t, response.AverageVolume)
		require.Equal(t, int64(5400000), *response.AverageVolume)
	})

	t.Run("unknown ticker returns 404 with error detail", func(t *testing.T) {
		handler := ApiHandler{
			ValuationService: stubValuationService{err: domain.ErrUnknownTicker},
		}

		w := performRequest(t, handler, "/api/get_company_info", map[string]string{"ticker": "nope"})
		require.Equal(t, 404, w.Code)
		require.Contains(t, w.Body.String(), "unknown ticker")
	})
}

func Test_calculateDcf(t *testing.T) {
	t.Run("maps the result fields", func(t *testing.T) {
		handler := ApiHandler{
			ValuationService: stubValuationService{
				result: &domain.DCFResult{
					FairValue:             1620.55,
					CurrentPrice:          1450.50,
					UpsideDownside:        11.72,
					FinalYearRevenue:      2.99e12,
					RequiredRevenueGrowth: 7.45,
					RequiredFCFMargin:     12.9,
					ImpliedReturnRate:     11.2,
				},
			},
		}

		w := performRequest(t, handler, "/api/calculate_dcf", calculateDcfRequest{
			Ticker:             "INFY",
			RevenueGrowthRate:  10,
			FcfMargin:          15,
			NumberOfYears:      7,
			DiscountRate:       10,
			TerminalGrowthRate: 2.5,
		})
		require.Equal(t, 200, w.Code)

		var response calculateDcfResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.InDelta(t, 1620.55, response.FairValue, 0.001)
		require.InDelta(t, 11.72, response.UpsideDownside, 0.001)
		require.InDelta(t, 11.2, response.CompoundedReturnRate, 0.001)
	})

	t.Run("omitted model fields fall back to defaults", func(t *testing.T) {
		var gotParams domain.DCFParameters
		handler := ApiHandler{
			ValuationService: stubValuationService{
				result:    &domain.DCFResult{},
				gotParams: &gotParams,
			},
		}

		w := performRequest(t, handler, "/api/calculate_dcf", map[string]any{
			"ticker":            "INFY",
			"revenueGrowthRate": 10,
			"fcfMargin":         15,
		})
		require.Equal(t, 200, w.Code)

		require.Equal(t, 7, gotParams.Years)
		require.InDelta(t, 10.0, gotParams.DiscountRate, 0.001)
		require.InDelta(t, 2.5, gotParams.TerminalGrowthRate, 0.001)
		require.InDelta(t, 10.0, gotParams.RevenueGrowthRate, 0.001)
	})

	t.Run("solver bracket miss returns 422", func(t *testing.T) {
		handler := ApiHandler{
			ValuationService: stubValuationService{err: domain.ErrNoSolutionInRange},
		}

		w := performRequest(t, handler, "/api/calculate_dcf", calculateDcfRequest{Ticker: "INFY"})
		require.Equal(t, 422, w.Code)
	})
}
