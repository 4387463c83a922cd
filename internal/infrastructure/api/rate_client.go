// Package api internal/infrastructure/api/rate_client.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/domain/entity"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/logger"
)

// ErrRateSource marks failures of the external rate endpoint: unreachable
// host, non-success status, or a body that is not the expected format.
var ErrRateSource = errors.New("rate source failure")

// RateClient fetches daily quotes from a PrivatBank-style public endpoint
type RateClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
	maxRetries int
	backoff    func(attempt int) time.Duration
}

// NewRateClient creates a rate client for the given base URL
func NewRateClient(baseURL string, httpClient *http.Client, log logger.Logger) *RateClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &RateClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     log,
		maxRetries: 3,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt*attempt) * time.Second
		},
	}
}

// quoteRecord mirrors one element of the endpoint's JSON array. Prices come
// over the wire as strings.
type quoteRecord struct {
	Currency     string `json:"ccy"`
	BaseCurrency string `json:"base_ccy"`
	Buy          string `json:"buy"`
	Sale         string `json:"sale"`
}

// FetchQuotes retrieves every quote published for a calendar date
func (c *RateClient) FetchQuotes(ctx context.Context, date time.Time) ([]entity.RateQuote, error) {
	reqURL := fmt.Sprintf("%s?json&exchange&coursid=5&date=%s", c.baseURL, date.Format(entity.QuoteDateFormat))

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var records []quoteRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrRateSource, err)
	}

	quotes := make([]entity.RateQuote, 0, len(records))
	for _, rec := range records {
		sale, err := strconv.ParseFloat(rec.Sale, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse sale price %q: %v", ErrRateSource, rec.Sale, err)
		}
		buy, err := strconv.ParseFloat(rec.Buy, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse buy price %q: %v", ErrRateSource, rec.Buy, err)
		}
		if sale <= 0 || buy <= 0 {
			return nil, fmt.Errorf("%w: non-positive price for %s", ErrRateSource, rec.Currency)
		}

		quotes = append(quotes, entity.RateQuote{
			Currency: rec.Currency,
			Date:     date,
			Sale:     sale,
			Buy:      buy,
		})
	}

	return quotes, nil
}

// get executes the request with bounded retry on transport errors
func (c *RateClient) get(ctx context.Context, reqURL string) ([]byte, error) {
	var resp *http.Response
	var err error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		var req *http.Request
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Add("Accept", "application/json")

		resp, err = c.httpClient.Do(req)
		if err == nil {
			break
		}

		if attempt < c.maxRetries {
			wait := c.backoff(attempt)
			c.logger.Warn("Rate source request failed, retrying", map[string]interface{}{
				"attempt":     attempt,
				"max_retries": c.maxRetries,
				"backoff":     wait.String(),
				"error":       err.Error(),
			})
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrRateSource, ctx.Err())
			}
		}
	}

	if err != nil {
		return nil, fmt.Errorf("%w: request failed after %d attempts: %v", ErrRateSource, c.maxRetries, err)
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Error closing response body", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrRateSource, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrRateSource, resp.StatusCode)
	}

	return body, nil
}
