// Package restcountries provides CountryDatasetProvider implementations: a
// client for the restcountries.com API and an offline fallback backed by the
// embedded ISO dataset.
package restcountries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/musicmuni/pppfy/internal/core/domain"
)

// DefaultBaseURL is the public restcountries API.
const DefaultBaseURL = "https://restcountries.com"

// Client fetches the world-country dataset over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for baseURL. A nil httpClient gets a default
// with a 30s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// Countries fetches all country records with the fields the resolver's name
// index is built from.
func (c *Client) Countries(ctx context.Context) ([]domain.Country, error) {
	url := c.baseURL + "/v3.1/all?fields=cca2,name,altSpellings,translations"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build country dataset request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch country dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("country dataset request returned status %d", resp.StatusCode)
	}

	var countries []domain.Country
	if err := json.NewDecoder(resp.Body).Decode(&countries); err != nil {
		return nil, fmt.Errorf("failed to decode country dataset: %w", err)
	}
	return countries, nil
}
