package api

import (
	"fairval/internal/domain"

	"github.com/gin-gonic/gin"
)

type companyInfoRequest struct {
	Ticker string `json:"ticker"`
}

type historicalDataResponse struct {
	RevenueGrowth3Y float64 `json:"revenueGrowth3Y"`
	RevenueGrowth2Y float64 `json:"revenueGrowth2Y"`
	RevenueGrowth1Y float64 `json:"revenueGrowth1Y"`
	Dilution3Y      float64 `json:"dilution3Y"`
	Dilution2Y      float64 `json:"dilution2Y"`
	Dilution1Y      float64 `json:"dilution1Y"`
	FcfMargin3Y     float64 `json:"fcfMargin3Y"`
	FcfMargin2Y     float64 `json:"fcfMargin2Y"`
	FcfMargin1Y     float64 `json:"fcfMargin1Y"`
}

type companyInfoResponse struct {
	Ticker            string                 `json:"ticker"`
	Name              string                 `json:"name"`
	Currency          string                 `json:"currency"`
	CurrentPrice      float64                `json:"currentPrice"`
	LastYearlyRevenue float64                `json:"lastYearlyRevenue"`
	TotalSharesOut    float64                `json:"totalSharesOut"`
	MarketCap         float64                `json:"marketCap"`
	AverageVolume     *int64                 `json:"averageVolume"`
	HistoricalData    historicalDataResponse `json:"historicalData"`
}

func (m ApiHandler) getCompanyInfo(c *gin.Context) {
	var requestBody companyInfoRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	fin, averages, err := m.ValuationService.GetCompanyOverview(c.Request.Context(), requestBody.Ticker)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	var averageVolume *int64
	if fin.AverageVolume > 0 {
		averageVolume = int64Ptr(fin.AverageVolume)
	}

	c.JSON(200, companyInfoResponse{
		Ticker:            fin.Ticker,
		Name:              fin.Name,
		Currency:          fin.Currency,
		CurrentPrice:      fin.CurrentPrice.InexactFloat64(),
		LastYearlyRevenue: fin.LatestRevenue(),
		TotalSharesOut:    fin.SharesOutstanding,
		MarketCap:         fin.MarketCap,
		AverageVolume:     averageVolume,
		HistoricalData:    flattenAverages(*averages),
	})
}

func flattenAverages(averages domain.HistoricalAverages) historicalDataResponse {
	return historicalDataResponse{
		RevenueGrowth3Y: averages.ThreeYear.RevenueGrowth,
		RevenueGrowth2Y: averages.TwoYear.RevenueGrowth,
		RevenueGrowth1Y: averages.OneYear.RevenueGrowth,
		Dilution3Y:      averages.ThreeYear.Dilution,
		Dilution2Y:      averages.TwoYear.Dilution,
		Dilution1Y:      averages.OneYear.Dilution,
		FcfMargin3Y:     averages.ThreeYear.FCFMargin,
		FcfMargin2Y:     averages.TwoYear.FCFMargin,
		FcfMargin1Y:     averages.OneYear.FCFMargin,
	}
}
