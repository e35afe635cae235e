// Package goldapi provides a client for the metal price provider API
package goldapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/intellinez-com/GoldTrack-sub000/internal/common"
	"github.com/intellinez-com/GoldTrack-sub000/internal/interfaces"
	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

// flexFloat64 handles JSON values that may be either a number or a string.
// Some provider plans quote prices as strings.
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

const (
	DefaultBaseURL   = "https://api.metalpriceapi.com/v1"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	dateLayout = "2006-01-02"
)

// Client implements the PriceClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
	validate   *validator.Validate
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

// NewClient creates a new metal price client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter:  rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:   common.NewSilentLogger(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a provider API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("metal price API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Metal price API request")

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

// historyRateResponse is one provider bar. Validation rejects partial rows
// instead of letting zero values slip into the cache.
type historyRateResponse struct {
	Date     string      `json:"date" validate:"required,datetime=2006-01-02"`
	PriceUSD flexFloat64 `json:"price_usd" validate:"required,gt=0"`
	FXRate   flexFloat64 `json:"fx_rate" validate:"gte=0"`
}

type historyResponse struct {
	Metal    string                `json:"metal" validate:"required"`
	Currency string                `json:"currency" validate:"required"`
	Rates    []historyRateResponse `json:"rates" validate:"required,dive"`
}

// GetHistory retrieves daily per-troy-ounce USD closes and FX rates for the
// inclusive [start, end] window. Rows are returned in ascending date order.
func (c *Client) GetHistory(ctx context.Context, metal, currency string, start, end time.Time) ([]models.ProviderRecord, error) {
	params := url.Values{}
	params.Set("currency", currency)
	params.Set("start_date", start.Format(dateLayout))
	params.Set("end_date", end.Format(dateLayout))

	path := fmt.Sprintf("/history/%s", metal)

	var resp historyResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(&resp); err != nil {
		return nil, fmt.Errorf("malformed history response for %s: %w", metal, err)
	}

	records := make([]models.ProviderRecord, 0, len(resp.Rates))
	for _, row := range resp.Rates {
		date, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			return nil, fmt.Errorf("malformed history date %q for %s: %w", row.Date, metal, err)
		}
		records = append(records, models.ProviderRecord{
			Date:     date.UTC(),
			PriceUSD: float64(row.PriceUSD),
			FXRate:   float64(row.FXRate),
		})
	}

	c.logger.Debug().
		Str("metal", metal).
		Str("currency", currency).
		Int("records", len(records)).
		Msg("Fetched price history chunk")

	return records, nil
}

type latestResponse struct {
	Metal    string      `json:"metal" validate:"required"`
	Currency string      `json:"currency" validate:"required"`
	Date     string      `json:"date" validate:"required,datetime=2006-01-02"`
	PriceUSD flexFloat64 `json:"price_usd" validate:"required,gt=0"`
	FXRate   flexFloat64 `json:"fx_rate" validate:"gte=0"`
}

// GetLatest retrieves the current spot quote, converted to per-gram units in
// the requested currency.
func (c *Client) GetLatest(ctx context.Context, metal, currency string) (*models.LatestQuote, error) {
	params := url.Values{}
	params.Set("currency", currency)

	path := fmt.Sprintf("/latest/%s", metal)

	var resp latestResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(&resp); err != nil {
		return nil, fmt.Errorf("malformed latest response for %s: %w", metal, err)
	}

	date, err := time.Parse(dateLayout, resp.Date)
	if err != nil {
		return nil, fmt.Errorf("malformed latest date %q for %s: %w", resp.Date, metal, err)
	}

	record := models.ProviderRecord{
		Date:     date.UTC(),
		PriceUSD: float64(resp.PriceUSD),
		FXRate:   float64(resp.FXRate),
	}

	return &models.LatestQuote{
		Metal:        metal,
		Currency:     currency,
		PricePerGram: record.PricePerGram(),
		Date:         record.Date,
	}, nil
}

// Ensure Client implements PriceClient
var _ interfaces.PriceClient = (*Client)(nil)
