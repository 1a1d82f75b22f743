package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// HTTPPriceQuoter fetches the SOL/USD quote from a price API, remembering the
// last good quote so a failed refresh degrades to slightly stale data instead
// of stalling a cycle.
type HTTPPriceQuoter struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger

	mu       sync.Mutex
	lastGood float64
}

// NewHTTPPriceQuoter builds a quoter for the given endpoint.
func NewHTTPPriceQuoter(endpoint string, timeout time.Duration, logger *zap.Logger) *HTTPPriceQuoter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPPriceQuoter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// QuoteUSD returns the current quote, or the last good one if the refresh
// fails. An error is returned only when no quote has ever been fetched.
func (q *HTTPPriceQuoter) QuoteUSD(ctx context.Context) (float64, error) {
	price, err := q.fetch(ctx)
	if err == nil && price > 0 {
		q.mu.Lock()
		q.lastGood = price
		q.mu.Unlock()
		return price, nil
	}

	q.mu.Lock()
	last := q.lastGood
	q.mu.Unlock()

	if last > 0 {
		q.logger.Warn("price refresh failed, using last good quote", zap.Error(err), zap.Float64("quote", last))
		return last, nil
	}
	if err == nil {
		err = fmt.Errorf("price api returned non-positive quote")
	}
	return 0, err
}

func (q *HTTPPriceQuoter) fetch(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := q.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var decoded struct {
		PriceUSD float64 `json:"price_usd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	return decoded.PriceUSD, nil
}
