// Package exchange fetches currency conversion rates from an external
// HTTP API. A failed lookup degrades the report (no converted total)
// rather than failing the run; callers decide how to log that.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"salescli/internal/config"
	apperrors "salescli/internal/errors"
)

// Client looks up exchange rates for a fixed base currency.
type Client struct {
	url            string
	targetCurrency string
	httpClient     *http.Client
}

// NewClient creates an exchange-rate client from configuration.
func NewClient(cfg config.ExchangeConfig) *Client {
	return &Client{
		url:            cfg.URL,
		targetCurrency: cfg.TargetCurrency,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
	}
}

// rateResponse mirrors the relevant subset of the API payload,
// e.g. {"base":"USD","rates":{"EUR":0.92,...}}.
type rateResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Rate is one resolved conversion rate.
type Rate struct {
	Currency string
	Value    float64
}

// FetchRate retrieves the rate for the configured target currency.
func (c *Client) FetchRate(ctx context.Context) (*Rate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to build exchange rate request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError("exchange rate request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewNetworkError(
			fmt.Sprintf("exchange rate API returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to read exchange rate response", err)
	}

	var payload rateResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.NewParsingError("failed to decode exchange rate response", err)
	}

	value, ok := payload.Rates[c.targetCurrency]
	if !ok {
		return nil, apperrors.NewNotFoundError(
			fmt.Sprintf("rate for currency %s", c.targetCurrency))
	}
	if value <= 0 {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("exchange rate for %s is not positive", c.targetCurrency), nil)
	}

	return &Rate{Currency: c.targetCurrency, Value: value}, nil
}
