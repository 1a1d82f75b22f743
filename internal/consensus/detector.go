package consensus

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"whalewatch/internal/model"
)

// Signal identifies one alertable milestone: a token reaching a given unique
// whale count. Each signal fires at most once per detector lifetime, even if
// the window empties and refills to the same count later.
type Signal struct {
	TokenMint  string
	WhaleCount int
}

// Config holds the detection parameters.
type Config struct {
	MinWhales      int
	WindowDuration time.Duration
	MinPurchaseUSD float64
}

// Candidate is a qualifying window awaiting alert construction. Candidates
// are returned strongest first.
type Candidate struct {
	TokenMint string
	Signal    Signal
	Whales    []model.PurchaseEvent
	Strength  float64
}

// Detector owns all mutable detection state: the per-token windows and the
// set of already-fired signals. It is single-writer; the monitor guarantees
// cycles never overlap.
type Detector struct {
	cfg     Config
	logger  *zap.Logger
	windows map[string]*Window
	fired   map[Signal]struct{}
}

// NewDetector builds a Detector. MinWhales below 1 is clamped to 1.
func NewDetector(cfg Config, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MinWhales < 1 {
		cfg.MinWhales = 1
	}
	return &Detector{
		cfg:     cfg,
		logger:  logger,
		windows: make(map[string]*Window),
		fired:   make(map[Signal]struct{}),
	}
}

// Ingest reprices and filters incoming events and appends them to their token
// windows. solPriceUSD is the quote current at ingest time; when it is
// positive, AmountUSD is recomputed from it and any earlier value discarded.
// Malformed events and events below the USD floor are dropped. Returns the
// accepted events.
func (d *Detector) Ingest(events []model.PurchaseEvent, solPriceUSD float64) []model.PurchaseEvent {
	accepted := make([]model.PurchaseEvent, 0, len(events))
	for _, event := range events {
		if !event.Valid() {
			d.logger.Debug("drop malformed event",
				zap.String("wallet", event.WalletAddress),
				zap.String("mint", event.TokenMint),
				zap.String("signature", event.Signature),
			)
			continue
		}
		if solPriceUSD > 0 {
			event.AmountUSD = event.AmountSol * solPriceUSD
		}
		if event.AmountUSD < d.cfg.MinPurchaseUSD {
			continue
		}

		window := d.windows[event.TokenMint]
		if window == nil {
			window = NewWindow(event.TokenMint, d.cfg.WindowDuration)
			d.windows[event.TokenMint] = window
		}
		window.Add(event)
		accepted = append(accepted, event)
	}
	return accepted
}

// Evaluate purges every window and returns the qualifying unfired signals,
// strongest first. Windows left empty by the purge are discarded; that never
// affects alerting because fired signals are remembered for the process
// lifetime.
func (d *Detector) Evaluate(now time.Time) []Candidate {
	candidates := make([]Candidate, 0)
	for mint, window := range d.windows {
		window.PurgeExpired(now)
		if window.Len() == 0 {
			delete(d.windows, mint)
			continue
		}

		whales := window.UniqueWhales()
		if len(whales) < d.cfg.MinWhales {
			continue
		}

		signal := Signal{TokenMint: mint, WhaleCount: len(whales)}
		if _, ok := d.fired[signal]; ok {
			continue
		}

		var totalUSD float64
		for _, event := range whales {
			totalUSD += event.AmountUSD
		}

		candidates = append(candidates, Candidate{
			TokenMint: mint,
			Signal:    signal,
			Whales:    whales,
			Strength:  Strength(len(whales), totalUSD),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Strength > candidates[j].Strength
	})

	return candidates
}

// MarkFired records that a signal has been emitted. Fired signals are never
// cleared.
func (d *Detector) MarkFired(signal Signal) {
	d.fired[signal] = struct{}{}
}

// HasFired reports whether a signal has already been emitted.
func (d *Detector) HasFired(signal Signal) bool {
	_, ok := d.fired[signal]
	return ok
}

// WindowCount returns the number of tokens with at least one retained event.
func (d *Detector) WindowCount() int {
	return len(d.windows)
}

// FiredSignals returns a copy of every signal emitted so far.
func (d *Detector) FiredSignals() []Signal {
	signals := make([]Signal, 0, len(d.fired))
	for signal := range d.fired {
		signals = append(signals, signal)
	}
	return signals
}
