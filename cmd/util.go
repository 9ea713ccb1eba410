package cmd

import (
	"database/sql"
	"fairval/api"
	"fairval/internal"
	"fairval/internal/repository"
	"fairval/internal/service"
	"fairval/pkg/fundamentals"
	"fmt"

	_ "github.com/lib/pq"
)

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	var dbConn *sql.DB
	var apiRequestRepository repository.ApiRequestRepository
	if secrets.Db.Host != "" {
		dbConn, err = sql.Open("postgres", secrets.Db.ToConnectionStr())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		apiRequestRepository = repository.ApiRequestRepositoryHandler{}
	}

	fundamentalsClient := fundamentals.NewClient(secrets.FundamentalsBaseUrl)
	marketDataRepository := repository.NewYahooRepository(fundamentalsClient)
	valuationService := service.NewValuationService(marketDataRepository, secrets.CurrencyConversion)

	return &api.ApiHandler{
		Db:                   dbConn,
		ValuationService:     valuationService,
		ApiRequestRepository: apiRequestRepository,
	}, nil
}

func CloseDependencies(handler *api.ApiHandler) {
	if handler.Db == nil {
		return
	}
	if err := handler.Db.Close(); err != nil {
		fmt.Printf("failed to close db: %v\n", err)
	}
}
