// Package enrich provides best-effort market and social lookups behind
// bounded TTL caches. Enrichment never blocks detection: lookups run with a
// short deadline and any failure degrades to nil.
package enrich

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"whalewatch/internal/model"
)

const (
	marketTTL = 15 * time.Minute
	socialTTL = 30 * time.Minute
)

// Enricher joins market and social lookups for alert construction.
type Enricher struct {
	market  MarketProvider
	social  SocialProvider
	logger  *zap.Logger
	timeout time.Duration

	marketCache *ttlCache
	socialCache *ttlCache
}

// NewEnricher builds an Enricher. Either provider may be nil; missing
// providers always enrich to nil.
func NewEnricher(market MarketProvider, social SocialProvider, timeout time.Duration, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Enricher{
		market:      market,
		social:      social,
		logger:      logger,
		timeout:     timeout,
		marketCache: newTTLCache(marketTTL, 2048),
		socialCache: newTTLCache(socialTTL, 2048),
	}
}

// Enrich fetches market and social data for the mint concurrently, waiting at
// most the configured timeout. Cache hits skip the network entirely.
func (e *Enricher) Enrich(ctx context.Context, tokenMint string) (*model.MarketData, *model.SocialData) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var (
		wg     sync.WaitGroup
		market *model.MarketData
		social *model.SocialData
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		market = e.marketData(ctx, tokenMint)
	}()
	go func() {
		defer wg.Done()
		social = e.socialData(ctx, tokenMint)
	}()
	wg.Wait()

	return market, social
}

func (e *Enricher) marketData(ctx context.Context, tokenMint string) *model.MarketData {
	if e.market == nil {
		return nil
	}
	if cached, ok := e.marketCache.get(tokenMint); ok {
		return cached.(*model.MarketData)
	}

	data, err := e.market.GetMarketData(ctx, tokenMint)
	if err != nil {
		e.logger.Warn("market lookup failed", zap.Error(err), zap.String("mint", tokenMint))
		return nil
	}
	if data != nil {
		e.marketCache.put(tokenMint, data)
	}
	return data
}

func (e *Enricher) socialData(ctx context.Context, tokenMint string) *model.SocialData {
	if e.social == nil {
		return nil
	}
	if cached, ok := e.socialCache.get(tokenMint); ok {
		return cached.(*model.SocialData)
	}

	data, err := e.social.GetSocialData(ctx, tokenMint)
	if err != nil {
		e.logger.Warn("social lookup failed", zap.Error(err), zap.String("mint", tokenMint))
		return nil
	}
	if data != nil {
		e.socialCache.put(tokenMint, data)
	}
	return data
}
