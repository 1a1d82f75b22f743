package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"whalewatch/internal/model"
)

// MarketProvider looks up market metrics for a token mint.
type MarketProvider interface {
	GetMarketData(ctx context.Context, tokenMint string) (*model.MarketData, error)
}

// HTTPMarketProvider fetches market data from a token data API.
type HTTPMarketProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPMarketProvider builds a provider with a short request timeout.
func NewHTTPMarketProvider(baseURL string, timeout time.Duration) *HTTPMarketProvider {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPMarketProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetMarketData fetches market metrics for the mint.
func (p *HTTPMarketProvider) GetMarketData(ctx context.Context, tokenMint string) (*model.MarketData, error) {
	endpoint := fmt.Sprintf("%s/v1/tokens/%s/market", p.baseURL, url.PathEscape(tokenMint))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var data model.MarketData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &data, nil
}
