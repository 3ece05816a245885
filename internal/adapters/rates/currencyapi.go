// Package rates provides RateSource and RateServiceClient implementations:
// an in-memory offline table and the remote currency-api CDN client used as
// the conversion fallback.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrencyAPIBaseURL is the jsDelivr mirror of the fawazahmed0
// currency-api dataset.
const DefaultCurrencyAPIBaseURL = "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1/currencies"

// CurrencyAPIClient fetches the latest rates for a base currency from the
// currency-api CDN. The endpoint shape is /{base}.json returning
// {"date": ..., "<base>": {"usd": 1.23, ...}}.
type CurrencyAPIClient struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// NewCurrencyAPIClient creates a client. authToken is optional and sent as a
// bearer token when present. A nil httpClient gets a default with a 30s
// timeout.
func NewCurrencyAPIClient(baseURL, authToken string, httpClient *http.Client) *CurrencyAPIClient {
	if baseURL == "" {
		baseURL = DefaultCurrencyAPIBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &CurrencyAPIClient{baseURL: baseURL, authToken: authToken, httpClient: httpClient}
}

// LatestRates returns the destination->rate map for baseCode. Rates are
// decoded straight into decimals so no binary floating-point error is added
// beyond what the service itself supplies.
func (c *CurrencyAPIClient) LatestRates(ctx context.Context, baseCode string) (map[string]decimal.Decimal, error) {
	baseCode = strings.ToLower(baseCode)
	url := fmt.Sprintf("%s/%s.json", c.baseURL, baseCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates for %s: %w", baseCode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate request for %s returned status %d", baseCode, resp.StatusCode)
	}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode rate response for %s: %w", baseCode, err)
	}

	nested, ok := payload[baseCode]
	if !ok {
		return nil, fmt.Errorf("rate response missing %q entry", baseCode)
	}
	var out map[string]decimal.Decimal
	if err := json.Unmarshal(nested, &out); err != nil {
		return nil, fmt.Errorf("failed to decode nested rates for %s: %w", baseCode, err)
	}
	return out, nil
}
