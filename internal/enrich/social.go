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

// SocialProvider looks up social metrics for a token mint.
type SocialProvider interface {
	GetSocialData(ctx context.Context, tokenMint string) (*model.SocialData, error)
}

// HTTPSocialProvider fetches social data from a social analytics API.
type HTTPSocialProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSocialProvider builds a provider with a short request timeout.
func NewHTTPSocialProvider(baseURL string, timeout time.Duration) *HTTPSocialProvider {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPSocialProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetSocialData fetches social metrics for the mint.
func (p *HTTPSocialProvider) GetSocialData(ctx context.Context, tokenMint string) (*model.SocialData, error) {
	endpoint := fmt.Sprintf("%s/v1/tokens/%s/social", p.baseURL, url.PathEscape(tokenMint))

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

	var data model.SocialData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &data, nil
}
