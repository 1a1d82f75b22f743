package consensus

import (
	"time"

	"whalewatch/internal/model"
)

// Window holds the purchase events for one token mint that are still inside
// the consensus time window. Events are kept in arrival order; arrival order
// and timestamp order may differ because wallets are polled in parallel.
type Window struct {
	TokenMint string

	duration time.Duration
	events   []model.PurchaseEvent
}

// NewWindow creates an empty window for a token mint.
func NewWindow(tokenMint string, duration time.Duration) *Window {
	return &Window{TokenMint: tokenMint, duration: duration}
}

// Add appends an event. Expiry is decided by the event timestamp on the next
// PurgeExpired, never by arrival order.
func (w *Window) Add(event model.PurchaseEvent) {
	w.events = append(w.events, event)
}

// PurgeExpired drops every event strictly older than the window duration.
// An event exactly duration old is kept.
func (w *Window) PurgeExpired(now time.Time) {
	kept := w.events[:0]
	for _, event := range w.events {
		if now.Sub(event.Timestamp) > w.duration {
			continue
		}
		kept = append(kept, event)
	}
	w.events = kept
}

// Len returns the number of events currently held, including duplicates by
// wallet.
func (w *Window) Len() int {
	return len(w.events)
}

// UniqueWhales returns one event per wallet address in order of first
// occurrence. First-wins is a deliberate policy: a wallet's later purchases
// of the same token inside the window do not change its representative event
// or raise the aggregate total.
func (w *Window) UniqueWhales() []model.PurchaseEvent {
	seen := make(map[string]struct{}, len(w.events))
	unique := make([]model.PurchaseEvent, 0, len(w.events))
	for _, event := range w.events {
		if _, ok := seen[event.WalletAddress]; ok {
			continue
		}
		seen[event.WalletAddress] = struct{}{}
		unique = append(unique, event)
	}
	return unique
}
