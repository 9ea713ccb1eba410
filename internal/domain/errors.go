package domain

import "errors"

// Error kinds surfaced to API callers. Wrap these with fmt.Errorf("%w: ...")
// to add context; the API layer maps them to status codes with errors.Is.
var (
	ErrUnknownTicker         = errors.New("unknown ticker")
	ErrUpstreamFetch         = errors.New("failed to fetch market data")
	ErrInsufficientHistory   = errors.New("insufficient financial history")
	ErrInvalidParameter      = errors.New("invalid parameter")
	ErrInvalidTerminalGrowth = errors.New("terminal growth rate must be below discount rate")
	ErrDegenerateInput       = errors.New("degenerate valuation input")
	ErrNoSolutionInRange     = errors.New("no solution within modeled range")
)
