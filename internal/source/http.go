package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"whalewatch/internal/model"
)

// activityPurchase is one purchase record on the wire.
type activityPurchase struct {
	Wallet    string  `json:"wallet"`
	TokenMint string  `json:"token_mint"`
	AmountSol float64 `json:"amount_sol"`
	AmountUSD float64 `json:"amount_usd"`
	Signature string  `json:"signature"`
	Timestamp int64   `json:"timestamp"`
}

type activityResponse struct {
	Purchases []activityPurchase `json:"purchases"`
}

// HTTPSource fetches wallet purchase activity from a REST API.
type HTTPSource struct {
	baseURL    string
	client     *http.Client
	logger     *zap.Logger
	maxRetries int
	backoff    time.Duration
}

// HTTPSourceConfig holds settings for HTTPSource.
type HTTPSourceConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
}

// NewHTTPSource builds an HTTPSource. Timeout defaults to 5s.
func NewHTTPSource(cfg HTTPSourceConfig, logger *zap.Logger) *HTTPSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 250 * time.Millisecond
	}
	return &HTTPSource{
		baseURL:    cfg.BaseURL,
		client:     &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.Backoff,
	}
}

// FetchNewPurchases returns purchases by the wallet strictly after since.
func (s *HTTPSource) FetchNewPurchases(ctx context.Context, walletAddress string, since time.Time) ([]model.PurchaseEvent, error) {
	endpoint := fmt.Sprintf("%s/v1/wallets/%s/purchases?since=%s",
		s.baseURL, url.PathEscape(walletAddress), strconv.FormatInt(since.Unix(), 10))

	var decoded activityResponse
	err := withRetry(ctx, s.maxRetries, s.backoff, func(ctx context.Context) error {
		err := s.getJSON(ctx, endpoint, &decoded)
		if err != nil {
			s.logger.Warn("fetch purchases failed", zap.Error(err), zap.String("wallet", walletAddress))
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	events := make([]model.PurchaseEvent, 0, len(decoded.Purchases))
	for _, purchase := range decoded.Purchases {
		event := model.PurchaseEvent{
			WalletAddress: purchase.Wallet,
			TokenMint:     purchase.TokenMint,
			AmountSol:     purchase.AmountSol,
			AmountUSD:     purchase.AmountUSD,
			Signature:     purchase.Signature,
			Timestamp:     time.Unix(purchase.Timestamp, 0).UTC(),
		}
		if event.WalletAddress == "" {
			event.WalletAddress = walletAddress
		}
		if !event.Valid() {
			s.logger.Debug("skip malformed purchase record",
				zap.String("wallet", walletAddress),
				zap.String("signature", purchase.Signature),
			)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
