// Package yahoo provides a client for the Yahoo Finance API
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"golang.org/x/time/rate"

	"github.com/kabulab/rankscreen/internal/common"
	"github.com/kabulab/rankscreen/internal/interfaces"
	"github.com/kabulab/rankscreen/internal/models"
)

const (
	DefaultBaseURL   = "https://query2.finance.yahoo.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the MarketDataClient interface. Quotes and price
// history go through finance-go; the sector comes from the quoteSummary
// assetProfile endpoint, which finance-go does not expose.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL for quoteSummary requests
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Yahoo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request against the quoteSummary API
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Yahoo API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// GetReference retrieves the name/sector/market-cap snapshot for a ticker.
// Fields the provider does not supply are left empty; only a failed quote
// lookup is an error.
func (c *Client) GetReference(ctx context.Context, ticker string) (*models.ReferenceRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	q, err := equity.Get(ticker)
	if err != nil {
		return nil, &models.LookupError{Ticker: ticker, Err: err}
	}
	if q == nil {
		return nil, &models.LookupError{Ticker: ticker, Err: fmt.Errorf("no quote returned")}
	}

	rec := &models.ReferenceRecord{
		Ticker: ticker,
		Name:   q.ShortName,
	}
	if q.MarketCap > 0 {
		mcap := float64(q.MarketCap)
		rec.MarketCap = &mcap
	}

	// Sector is best-effort: a partial record is still returned and the
	// reconciler decides whether it survives.
	sector, err := c.getSector(ctx, ticker)
	if err != nil {
		c.logger.Debug().Str("ticker", ticker).Err(err).Msg("Sector lookup failed")
	} else {
		rec.Sector = sector
	}

	return rec, nil
}

// quoteSummaryResponse represents the quoteSummary API response structure
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"assetProfile"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// getSector fetches the assetProfile sector for a ticker
func (c *Client) getSector(ctx context.Context, ticker string) (string, error) {
	path := fmt.Sprintf("/v10/finance/quoteSummary/%s", url.PathEscape(ticker))

	params := url.Values{}
	params.Set("modules", "assetProfile")

	var resp quoteSummaryResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return "", err
	}

	if resp.QuoteSummary.Error != nil {
		return "", fmt.Errorf("quoteSummary: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return "", fmt.Errorf("quoteSummary: empty result for %s", ticker)
	}

	return resp.QuoteSummary.Result[0].AssetProfile.Sector, nil
}

// GetHistory retrieves daily closing prices for a ticker over the given
// date range. An empty series with no bars is a valid result.
func (c *Client) GetHistory(ctx context.Context, ticker string, from, to time.Time) (*models.PriceSeries, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := &chart.Params{
		Params:   finance.Params{Context: &ctx},
		Symbol:   ticker,
		Start:    datetime.New(&from),
		End:      datetime.New(&to),
		Interval: datetime.OneDay,
	}

	series := &models.PriceSeries{
		Ticker: ticker,
		Points: []models.PricePoint{},
	}

	iter := chart.Get(params)
	for iter.Next() {
		bar := iter.Bar()
		series.Points = append(series.Points, models.PricePoint{
			Date:  time.Unix(int64(bar.Timestamp), 0).UTC(),
			Close: bar.Close,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, &models.LookupError{Ticker: ticker, Err: err}
	}

	c.logger.Debug().Str("ticker", ticker).Int("bars", len(series.Points)).Msg("Fetched price history")

	return series, nil
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
