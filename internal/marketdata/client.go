// Package marketdata fetches daily adjusted closes from the Twelve Data
// REST API. It is the price-fetching collaborator of the engine: it only
// produces a types.PriceTable, the engine never does I/O itself.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"rotation/types"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.twelvedata.com"

// Client is the Twelve Data API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxElapsed time.Duration
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new client.
type ClientOptions struct {
	APIKey          string
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new Twelve Data client with rate limiting and
// exponential-backoff retries.
func NewClient(options ClientOptions) *Client {
	if options.RequestTimeout == 0 {
		options.RequestTimeout = 30 * time.Second
	}
	if options.RequestsPerSec == 0 {
		options.RequestsPerSec = 5
	}
	if options.MaxRetryTimeout == 0 {
		options.MaxRetryTimeout = 30 * time.Second
	}
	if options.BaseURL == "" {
		options.BaseURL = defaultBaseURL
	}

	return &Client{
		apiKey:     options.APIKey,
		baseURL:    options.BaseURL,
		httpClient: &http.Client{Timeout: options.RequestTimeout},
		limiter:    rate.NewLimiter(rate.Every(time.Second), options.RequestsPerSec),
		maxElapsed: options.MaxRetryTimeout,
		logger:     log.With().Str("component", "twelvedata_client").Logger(),
	}
}

type timeSeriesResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Values  []struct {
		Datetime string `json:"datetime"`
		Close    string `json:"close"`
	} `json:"values"`
}

// GetDailyCloses fetches the daily close series for every symbol and merges
// them into one price table over the union of trading days.
func (c *Client) GetDailyCloses(ctx context.Context, symbols []string, start, end time.Time) (*types.PriceTable, error) {
	merged := make(map[time.Time]map[string]decimal.Decimal)

	for _, symbol := range symbols {
		series, err := c.fetchSeries(ctx, symbol, start, end)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", symbol, err)
		}
		for day, close := range series {
			if merged[day] == nil {
				merged[day] = make(map[string]decimal.Decimal)
			}
			merged[day][symbol] = close
		}
	}

	days := make([]time.Time, 0, len(merged))
	for day := range merged {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	table := types.NewPriceTable(symbols)
	for _, day := range days {
		if err := table.AddRow(day, merged[day]); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func (c *Client) fetchSeries(ctx context.Context, symbol string, start, end time.Time) (map[time.Time]decimal.Decimal, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", "1day")
	q.Set("start_date", start.Format(time.DateOnly))
	q.Set("end_date", end.Format(time.DateOnly))
	q.Set("apikey", c.apiKey)
	requestURL := fmt.Sprintf("%s/time_series?%s", c.baseURL, q.Encode())

	c.logger.Debug().Str("symbol", symbol).Msg("Fetching daily closes")

	body, err := c.doRequest(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var data timeSeriesResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Str("response", string(body)).Msg("Error parsing JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if data.Status == "error" {
		c.logger.Error().Str("message", data.Message).Msg("Twelve Data API error")
		return nil, fmt.Errorf("twelve data API error: %s", data.Message)
	}
	if len(data.Values) == 0 {
		c.logger.Warn().Str("symbol", symbol).Msg("No closes in response")
		return nil, fmt.Errorf("empty data returned")
	}

	series := make(map[time.Time]decimal.Decimal, len(data.Values))
	for _, v := range data.Values {
		day, err := time.Parse(time.DateOnly, v.Datetime)
		if err != nil {
			return nil, fmt.Errorf("parsing datetime %q: %w", v.Datetime, err)
		}
		close, err := decimal.NewFromString(v.Close)
		if err != nil {
			return nil, fmt.Errorf("parsing close %q: %w", v.Close, err)
		}
		series[day] = close
	}

	c.logger.Debug().Int("count", len(series)).Str("symbol", symbol).Msg("Fetched closes")
	return series, nil
}

// doRequest performs a GET with rate limiting and exponential-backoff
// retries on transport errors and non-200 statuses.
func (c *Client) doRequest(ctx context.Context, requestURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return &HTTPStatusError{StatusCode: resp.StatusCode}
		}
		body, err = io.ReadAll(resp.Body)
		return err
	}

	strategy := backoff.NewExponentialBackOff()
	strategy.MaxElapsedTime = c.maxElapsed

	if err := backoff.Retry(operation, backoff.WithContext(strategy, ctx)); err != nil {
		return nil, err
	}
	return body, nil
}

// HTTPStatusError represents an error due to a non-200 HTTP status code.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return "non-200 status code: " + http.StatusText(e.StatusCode)
}
