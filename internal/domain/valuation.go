package domain

// DCFParameters are the caller-supplied model inputs. Rates are percentages
// as entered by the user (10 means 10%). The engine never mutates them.
type DCFParameters struct {
	RevenueGrowthRate  float64
	FCFMargin          float64
	Years              int
	DiscountRate       float64
	TerminalGrowthRate float64
}

// DCFResult is the output of a single valuation run. Percentages use the
// same plain-number convention as DCFParameters.
type DCFResult struct {
	FairValue             float64
	CurrentPrice          float64
	UpsideDownside        float64
	FinalYearRevenue      float64
	RequiredRevenueGrowth float64
	RequiredFCFMargin     float64
	ImpliedReturnRate     float64
}
