package main

import (
	"context"
	"fairval/cmd"
	"fairval/internal"
	"fairval/internal/domain"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	growthRate         float64
	fcfMargin          float64
	projectionYears    int
	discountRate       float64
	terminalGrowthRate float64
	jsonOutput         bool
)

var rootCmd = &cobra.Command{
	Use:   "fairval",
	Short: "Estimate the fair value of listed equities",
}

var valueCmd = &cobra.Command{
	Use:   "value [ticker]",
	Short: "Run a discounted cash flow valuation for a ticker",
	Args:  cobra.ExactArgs(1),
	Run:   runValue,
}

func init() {
	valueCmd.Flags().Float64VarP(&growthRate, "growth", "g", 10, "projected revenue growth rate, in percent")
	valueCmd.Flags().Float64VarP(&fcfMargin, "margin", "m", 15, "projected free cash flow margin, in percent")
	valueCmd.Flags().IntVarP(&projectionYears, "years", "n", 5, "number of years to project")
	valueCmd.Flags().Float64VarP(&discountRate, "discount", "d", 12, "annual discount rate, in percent")
	valueCmd.Flags().Float64VarP(&terminalGrowthRate, "terminal", "t", 4, "terminal growth rate, in percent")
	valueCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the raw result as JSON")
	rootCmd.AddCommand(valueCmd)
}

func runValue(c *cobra.Command, args []string) {
	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(apiHandler)

	ctx := context.Background()
	ticker := args[0]

	financials, averages, err := apiHandler.ValuationService.GetCompanyOverview(ctx, ticker)
	if err != nil {
		log.Fatal(err)
	}

	result, err := apiHandler.ValuationService.CalculateDCF(ctx, ticker, domain.DCFParameters{
		RevenueGrowthRate:  growthRate,
		FCFMargin:          fcfMargin,
		Years:              projectionYears,
		DiscountRate:       discountRate,
		TerminalGrowthRate: terminalGrowthRate,
	})
	if err != nil {
		log.Fatal(err)
	}

	if jsonOutput {
		internal.Pprint(map[string]any{
			"financials": financials,
			"averages":   averages,
			"valuation":  result,
		})
		return
	}

	fmt.Printf("%s (%s)\n\n", financials.Name, financials.Ticker)
	fmt.Printf("current price:            %s %s\n", financials.Currency, financials.CurrentPrice.StringFixed(2))
	fmt.Printf("fair value:               %s %.2f\n", financials.Currency, result.FairValue)
	fmt.Printf("upside/downside:          %.2f%%\n\n", result.UpsideDownside)
	fmt.Printf("revenue growth (3y avg):  %.2f%%\n", averages.ThreeYear.RevenueGrowth)
	fmt.Printf("fcf margin (3y avg):      %.2f%%\n\n", averages.ThreeYear.FCFMargin)
	fmt.Printf("revenue after %d years:   %.0f\n", projectionYears, result.FinalYearRevenue)
	fmt.Printf("required revenue growth:  %.2f%%\n", result.RequiredRevenueGrowth)
	fmt.Printf("required fcf margin:      %.2f%%\n", result.RequiredFCFMargin)
	fmt.Printf("implied annual return:    %.2f%%\n", result.ImpliedReturnRate)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
