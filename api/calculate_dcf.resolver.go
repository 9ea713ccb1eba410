package api

import (
	"context"
	"fairval/internal/domain"
	"fairval/internal/logger"

	"github.com/gin-gonic/gin"
)

type calculateDcfRequest struct {
	Ticker             string  `json:"ticker"`
	RevenueGrowthRate  float64 `json:"revenueGrowthRate"`
	FcfMargin          float64 `json:"fcfMargin"`
	NumberOfYears      int     `json:"numberOfYears"`
	DiscountRate       float64 `json:"discountRate"`
	TerminalGrowthRate float64 `json:"terminalGrowthRate"`
}

type calculateDcfResponse struct {
	FairValue                float64 `json:"fairValue"`
	CurrentPrice             float64 `json:"currentPrice"`
	UpsideDownside           float64 `json:"upsideDownside"`
	YearlyRevenueAfterNYears float64 `json:"yearlyRevenueAfterNYears"`
	RequiredRevenueGrowth    float64 `json:"requiredRevenueGrowth"`
	RequiredFCFMargin        float64 `json:"requiredFCFMargin"`
	CompoundedReturnRate     float64 `json:"compoundedReturnRate"`
}

func (m ApiHandler) calculateDcf(c *gin.Context) {
	profile := domain.NewPerformanceProfile()
	ctx := context.WithValue(c.Request.Context(), domain.ContextProfileKey, profile)
	defer func() {
		profile.End()
		if bytes, err := profile.ToJsonBytes(); err == nil {
			logger.Debug("calculate_dcf profile: %s", string(bytes))
		}
	}()

	// model fields the caller omits keep these defaults
	requestBody := calculateDcfRequest{
		NumberOfYears:      7,
		DiscountRate:       10,
		TerminalGrowthRate: 2.5,
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	profile.Add("parsed request")

	params := domain.DCFParameters{
		RevenueGrowthRate:  requestBody.RevenueGrowthRate,
		FCFMargin:          requestBody.FcfMargin,
		Years:              requestBody.NumberOfYears,
		DiscountRate:       requestBody.DiscountRate,
		TerminalGrowthRate: requestBody.TerminalGrowthRate,
	}

	result, err := m.ValuationService.CalculateDCF(ctx, requestBody.Ticker, params)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	profile.Add("finished valuation")

	c.JSON(200, calculateDcfResponse{
		FairValue:                result.FairValue,
		CurrentPrice:             result.CurrentPrice,
		UpsideDownside:           result.UpsideDownside,
		YearlyRevenueAfterNYears: result.FinalYearRevenue,
		RequiredRevenueGrowth:    result.RequiredRevenueGrowth,
		RequiredFCFMargin:        result.RequiredFCFMargin,
		CompoundedReturnRate:     result.ImpliedReturnRate,
	})
}
