// Package monitor drives the detection loop: one cycle per tick, fetching
// wallet activity, feeding the detector, and emitting alerts. All mutations
// of detector state happen on the loop goroutine; only fetches and
// enrichment fan out.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"whalewatch/internal/alert"
	"whalewatch/internal/consensus"
	"whalewatch/internal/enrich"
	"whalewatch/internal/model"
	"whalewatch/internal/source"
)

// CursorStore persists per-wallet last-checked timestamps across restarts.
type CursorStore interface {
	LoadCursor(ctx context.Context, walletAddress string) (time.Time, bool, error)
	SaveCursor(ctx context.Context, walletAddress string, ts time.Time) error
}

// Config holds runtime settings for the monitor.
type Config struct {
	CheckInterval  time.Duration
	FetchBatchSize int
	Lookback       time.Duration
}

// Deps are the monitor's collaborators. Enricher, PurchaseSink, and Cursors
// are optional.
type Deps struct {
	Detector     *consensus.Detector
	Source       source.PurchaseSource
	Quoter       source.PriceQuoter
	Enricher     *enrich.Enricher
	Sink         alert.Sink
	PurchaseSink alert.PurchaseSink
	Cursors      CursorStore
	Wallets      []model.TrackedWallet
	Logger       *zap.Logger
}

// Monitor runs detection cycles on a fixed interval.
type Monitor struct {
	cfg         Config
	deps        Deps
	logger      *zap.Logger
	lastChecked map[string]time.Time
}

// NewMonitor builds a Monitor with its dependencies.
func NewMonitor(cfg Config, deps Deps) *Monitor {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.FetchBatchSize <= 0 {
		cfg.FetchBatchSize = 5
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = 15 * time.Minute
	}
	return &Monitor{
		cfg:         cfg,
		deps:        deps,
		logger:      deps.Logger,
		lastChecked: make(map[string]time.Time),
	}
}

// Run executes cycles until the context is cancelled. Cycles run one at a
// time on this goroutine; ticks that land while a cycle is still in flight
// are dropped by the ticker, never queued.
func (m *Monitor) Run(ctx context.Context) error {
	if m.deps.Detector == nil {
		return fmt.Errorf("detector is nil")
	}
	if m.deps.Source == nil {
		return fmt.Errorf("purchase source is nil")
	}
	if m.deps.Sink == nil {
		return fmt.Errorf("alert sink is nil")
	}
	if len(m.enabledWallets()) == 0 {
		return fmt.Errorf("at least one enabled wallet is required")
	}
	if m.cfg.CheckInterval <= 0 {
		return fmt.Errorf("check interval must be greater than zero")
	}

	m.logger.Info("monitor start",
		zap.Duration("interval", m.cfg.CheckInterval),
		zap.Int("wallets", len(m.enabledWallets())),
		zap.Int("fetch_batch", m.cfg.FetchBatchSize),
	)

	m.RunCycle(ctx, time.Now().UTC())

	ticker := time.NewTicker(m.cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopped")
			return ctx.Err()
		case <-ticker.C:
			m.RunCycle(ctx, time.Now().UTC())
		}
	}
}

// RunCycle executes one full cycle at the given instant: fetch, ingest,
// evaluate, alert. Failures in any one wallet or enrichment lookup never
// abort the rest of the cycle.
func (m *Monitor) RunCycle(ctx context.Context, now time.Time) {
	quote := m.refreshQuote(ctx)
	events := m.fetchAll(ctx, now)

	accepted := m.deps.Detector.Ingest(events, quote)
	m.notifyPurchases(ctx, accepted)

	candidates := m.deps.Detector.Evaluate(now)
	for _, candidate := range candidates {
		var market *model.MarketData
		var social *model.SocialData
		if m.deps.Enricher != nil {
			market, social = m.deps.Enricher.Enrich(ctx, candidate.TokenMint)
		}

		consensusAlert := consensus.BuildAlert(candidate, market, social, now)
		m.deps.Detector.MarkFired(candidate.Signal)

		if err := m.deps.Sink.SendConsensusAlert(ctx, consensusAlert); err != nil {
			m.logger.Warn("alert delivery failed",
				zap.Error(err),
				zap.String("mint", candidate.TokenMint),
				zap.Int("whales", candidate.Signal.WhaleCount),
			)
		}

		m.logger.Info("consensus fired",
			zap.String("mint", candidate.TokenMint),
			zap.Int("whales", candidate.Signal.WhaleCount),
			zap.Float64("strength", candidate.Strength),
		)
	}

	m.logger.Debug("cycle complete",
		zap.Int("events", len(events)),
		zap.Int("accepted", len(accepted)),
		zap.Int("alerts", len(candidates)),
		zap.Int("open_windows", m.deps.Detector.WindowCount()),
	)
}

func (m *Monitor) refreshQuote(ctx context.Context) float64 {
	if m.deps.Quoter == nil {
		return 0
	}
	quote, err := m.deps.Quoter.QuoteUSD(ctx)
	if err != nil {
		m.logger.Warn("quote refresh failed", zap.Error(err))
		return 0
	}
	return quote
}

type fetchResult struct {
	wallet model.TrackedWallet
	events []model.PurchaseEvent
	err    error
}

// fetchAll polls every enabled wallet in bounded batches. A failed wallet is
// skipped for this cycle and its cursor left untouched so the next cycle
// retries the same range.
func (m *Monitor) fetchAll(ctx context.Context, now time.Time) []model.PurchaseEvent {
	wallets := m.enabledWallets()
	var all []model.PurchaseEvent

	for start := 0; start < len(wallets); start += m.cfg.FetchBatchSize {
		end := start + m.cfg.FetchBatchSize
		if end > len(wallets) {
			end = len(wallets)
		}
		batch := wallets[start:end]

		// Cursors are resolved on the loop goroutine; only the fetches fan out.
		sinces := make([]time.Time, len(batch))
		for i, wallet := range batch {
			sinces[i] = m.sinceFor(ctx, wallet.Address, now)
		}

		results := make([]fetchResult, len(batch))
		var wg sync.WaitGroup
		for i, wallet := range batch {
			wg.Add(1)
			go func(i int, wallet model.TrackedWallet, since time.Time) {
				defer wg.Done()
				events, err := m.deps.Source.FetchNewPurchases(ctx, wallet.Address, since)
				results[i] = fetchResult{wallet: wallet, events: events, err: err}
			}(i, wallet, sinces[i])
		}
		wg.Wait()

		for _, result := range results {
			if result.err != nil {
				m.logger.Warn("wallet fetch failed",
					zap.Error(result.err),
					zap.String("wallet", result.wallet.Address),
				)
				continue
			}
			for _, event := range result.events {
				if event.WalletName == "" {
					event.WalletName = result.wallet.DisplayName
				}
				all = append(all, event)
			}
			m.advanceCursor(ctx, result.wallet.Address, now)
		}
	}

	return all
}

func (m *Monitor) sinceFor(ctx context.Context, walletAddress string, now time.Time) time.Time {
	if since, ok := m.lastChecked[walletAddress]; ok {
		return since
	}
	if m.deps.Cursors != nil {
		since, ok, err := m.deps.Cursors.LoadCursor(ctx, walletAddress)
		if err != nil {
			m.logger.Warn("cursor load failed", zap.Error(err), zap.String("wallet", walletAddress))
		} else if ok {
			m.lastChecked[walletAddress] = since
			return since
		}
	}
	return now.Add(-m.cfg.Lookback)
}

func (m *Monitor) advanceCursor(ctx context.Context, walletAddress string, now time.Time) {
	m.lastChecked[walletAddress] = now
	if m.deps.Cursors == nil {
		return
	}
	if err := m.deps.Cursors.SaveCursor(ctx, walletAddress, now); err != nil {
		m.logger.Warn("cursor save failed", zap.Error(err), zap.String("wallet", walletAddress))
	}
}

func (m *Monitor) notifyPurchases(ctx context.Context, events []model.PurchaseEvent) {
	if m.deps.PurchaseSink == nil {
		return
	}
	for _, event := range events {
		if err := m.deps.PurchaseSink.SendPurchase(ctx, event); err != nil {
			m.logger.Warn("purchase notification failed",
				zap.Error(err),
				zap.String("wallet", event.WalletAddress),
				zap.String("signature", event.Signature),
			)
		}
	}
}

func (m *Monitor) enabledWallets() []model.TrackedWallet {
	enabled := make([]model.TrackedWallet, 0, len(m.deps.Wallets))
	for _, wallet := range m.deps.Wallets {
		if wallet.Enabled {
			enabled = append(enabled, wallet)
		}
	}
	return enabled
}
