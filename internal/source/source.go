// Package source supplies purchase events and price quotes from upstream
// HTTP APIs. It is the only boundary to on-chain data; the detector never
// talks to the network itself.
package source

import (
	"context"
	"time"

	"whalewatch/internal/model"
)

// PurchaseSource fetches purchases made by one wallet since a cursor.
// Implementations may return an error or an empty slice on upstream failure;
// the caller treats both as "no new events this cycle".
type PurchaseSource interface {
	FetchNewPurchases(ctx context.Context, walletAddress string, since time.Time) ([]model.PurchaseEvent, error)
}

// PriceQuoter returns the current USD quote for the base currency.
type PriceQuoter interface {
	QuoteUSD(ctx context.Context) (float64, error)
}
