package fundamentals

import (
	"context"
	"encoding/json"
	"fairval/internal/domain"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseUrl = "https://query1.finance.yahoo.com"
	lookbackYears  = 5

	// Yahoo rejects requests without a browser-ish user agent
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"
)

var seriesTypes = []string{
	"annualTotalRevenue",
	"annualFreeCashFlow",
	"annualDilutedAverageShares",
}

type Client struct {
	HttpClient *http.Client
	BaseUrl    string
}

func NewClient(baseUrl string) Client {
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}
	return Client{
		HttpClient: &http.Client{
			Timeout: 8 * time.Second,
		},
		BaseUrl: baseUrl,
	}
}

// AnnualSeries holds yearly reported figures keyed by fiscal year end date
// (2006-01-02 format), exactly as the upstream reports them.
type AnnualSeries struct {
	Revenue       map[string]float64
	FreeCashFlow  map[string]float64
	DilutedShares map[string]float64
}

type annualValue struct {
	AsOfDate      string `json:"asOfDate"`
	ReportedValue struct {
		Raw float64 `json:"raw"`
		Fmt string  `json:"fmt"`
	} `json:"reportedValue"`
}

type timeseriesResult struct {
	Meta struct {
		Symbol []string `json:"symbol"`
		Type   []string `json:"type"`
	} `json:"meta"`
	AnnualTotalRevenue         []*annualValue `json:"annualTotalRevenue"`
	AnnualFreeCashFlow         []*annualValue `json:"annualFreeCashFlow"`
	AnnualDilutedAverageShares []*annualValue `json:"annualDilutedAverageShares"`
}

type timeseriesResponse struct {
	Timeseries struct {
		Result []timeseriesResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"timeseries"`
}

// GetAnnualSeries fetches the trailing yearly revenue, free cash flow and
// diluted share count series for the given exchange-qualified symbol.
func (c Client) GetAnnualSeries(ctx context.Context, symbol string) (*AnnualSeries, error) {
	now := time.Now()
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("type", strings.Join(seriesTypes, ","))
	params.Set("period1", fmt.Sprintf("%d", now.AddDate(-lookbackYears, 0, 0).Unix()))
	params.Set("period2", fmt.Sprintf("%d", now.Unix()))
	params.Set("merge", "false")

	requestUrl := fmt.Sprintf(
		"%s/ws/fundamentals-timeseries/v1/finance/timeseries/%s?%s",
		c.BaseUrl, url.PathEscape(symbol), params.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestUrl, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstreamFetch, err.Error())
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTicker, symbol)
	} else if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fundamentals request failed with status code %d", domain.ErrUpstreamFetch, response.StatusCode)
	}

	var responseJson timeseriesResponse
	if err := json.Unmarshal(responseBytes, &responseJson); err != nil {
		return nil, fmt.Errorf("%w: failed to decode fundamentals response: %s", domain.ErrUpstreamFetch, err.Error())
	}
	if upstreamErr := responseJson.Timeseries.Error; upstreamErr != nil {
		return nil, fmt.Errorf("%w: %s - %s", domain.ErrUpstreamFetch, upstreamErr.Code, upstreamErr.Description)
	}

	out := &AnnualSeries{
		Revenue:       map[string]float64{},
		FreeCashFlow:  map[string]float64{},
		DilutedShares: map[string]float64{},
	}
	for _, result := range responseJson.Timeseries.Result {
		collect(out.Revenue, result.AnnualTotalRevenue)
		collect(out.FreeCashFlow, result.AnnualFreeCashFlow)
		collect(out.DilutedShares, result.AnnualDilutedAverageShares)
	}

	if len(out.Revenue) == 0 {
		return nil, fmt.Errorf("%w: no annual revenue reported for %s", domain.ErrUnknownTicker, symbol)
	}

	return out, nil
}

func collect(into map[string]float64, values []*annualValue) {
	for _, v := range values {
		if v == nil || v.AsOfDate == "" {
			continue
		}
		into[v.AsOfDate] = v.ReportedValue.Raw
	}
}
