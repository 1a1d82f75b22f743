package model

import "time"

// PurchaseEvent is one observed token purchase by a tracked wallet.
// Events are immutable once built by the source; AmountUSD is derived from
// AmountSol at ingest time and may differ between observations of the same
// purchase if the quote moved in between.
type PurchaseEvent struct {
	WalletAddress string    `json:"wallet_address"`
	WalletName    string    `json:"wallet_name,omitempty"`
	TokenMint     string    `json:"token_mint"`
	AmountSol     float64   `json:"amount_sol"`
	AmountUSD     float64   `json:"amount_usd"`
	Signature     string    `json:"signature"`
	Timestamp     time.Time `json:"timestamp"`
}

// Valid reports whether the event carries enough data to count toward a window.
func (e PurchaseEvent) Valid() bool {
	return e.WalletAddress != "" && e.TokenMint != "" && e.AmountSol > 0
}

// DisplayName returns the wallet label, falling back to the address.
func (e PurchaseEvent) DisplayName() string {
	if e.WalletName != "" {
		return e.WalletName
	}
	return e.WalletAddress
}
