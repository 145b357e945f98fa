// Package marketdata provides a client for the external market-data provider
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/nyontakai/Asset-Cockpit/internal/common"
	"github.com/nyontakai/Asset-Cockpit/internal/interfaces"
	"github.com/nyontakai/Asset-Cockpit/internal/models"
)

const (
	DefaultBaseURL   = "https://marketdata.app/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// flexFloat64 handles JSON values that may be either a number or a string.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

// Client implements the MarketDataClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
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

// NewClient creates a new market-data client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
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
	return fmt.Sprintf("market-data API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Market-data API request")

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

// barResponse represents the API response for a daily bar.
// Close is a pointer: the provider sends null for halted/unpriced days.
type barResponse struct {
	Date     string       `json:"date"`
	Open     flexFloat64  `json:"open"`
	High     flexFloat64  `json:"high"`
	Low      flexFloat64  `json:"low"`
	Close    *flexFloat64 `json:"close"`
	Volume   int64        `json:"volume"`
	Dividend flexFloat64  `json:"dividend"`
}

func (b barResponse) toModel() models.Bar {
	date, _ := time.Parse("2006-01-02", b.Date)
	bar := models.Bar{
		Date:     date,
		Open:     float64(b.Open),
		High:     float64(b.High),
		Low:      float64(b.Low),
		Volume:   b.Volume,
		Dividend: float64(b.Dividend),
	}
	if b.Close != nil {
		v := float64(*b.Close)
		bar.Close = &v
	}
	return bar
}

// GetDailyBars retrieves recent daily bars for multiple tickers in one call.
// Bars come back most recent first.
func (c *Client) GetDailyBars(ctx context.Context, tickers []string, from, to time.Time) (map[string][]models.Bar, error) {
	params := url.Values{}
	params.Set("symbols", strings.Join(tickers, ","))
	params.Set("period", "d")
	params.Set("order", "d")
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))

	var resp map[string][]barResponse
	if err := c.get(ctx, "/bars", params, &resp); err != nil {
		return nil, err
	}

	result := make(map[string][]models.Bar, len(resp))
	for ticker, bars := range resp {
		converted := make([]models.Bar, len(bars))
		for i, bar := range bars {
			converted[i] = bar.toModel()
		}
		result[ticker] = converted
	}

	return result, nil
}

// GetInfo retrieves the attribute bag for a single ticker. The recognized
// fields are lifted by Metadata's unmarshaller; the rest ride along in Extra.
func (c *Client) GetInfo(ctx context.Context, ticker string) (*models.Metadata, error) {
	path := fmt.Sprintf("/info/%s", ticker)

	var meta models.Metadata
	if err := c.get(ctx, path, nil, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// dividendResponse represents the API response for a dividend event
type dividendResponse struct {
	Date   string      `json:"date"`
	Amount flexFloat64 `json:"amount"`
}

// GetDividends retrieves the ex-dividend event series for a single ticker.
func (c *Client) GetDividends(ctx context.Context, ticker string, from, to time.Time) ([]models.DividendEvent, error) {
	path := fmt.Sprintf("/dividends/%s", ticker)

	params := url.Values{}
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))

	var resp []dividendResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	events := make([]models.DividendEvent, len(resp))
	for i, d := range resp {
		date, _ := time.Parse("2006-01-02", d.Date)
		events[i] = models.DividendEvent{
			Date:   date,
			Amount: float64(d.Amount),
		}
	}

	return events, nil
}

// GetHistory retrieves daily bars with dividend amounts for a single ticker.
func (c *Client) GetHistory(ctx context.Context, ticker string, from, to time.Time) ([]models.Bar, error) {
	path := fmt.Sprintf("/history/%s", ticker)

	params := url.Values{}
	params.Set("period", "d")
	params.Set("events", "dividends")
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))

	var resp []barResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	bars := make([]models.Bar, len(resp))
	for i, bar := range resp {
		bars[i] = bar.toModel()
	}

	return bars, nil
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
