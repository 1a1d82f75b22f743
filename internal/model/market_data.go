package model

// MarketData holds best-effort market metrics for a token mint.
// Every numeric field is optional; a nil pointer means the upstream source
// did not report it.
type MarketData struct {
	Symbol         string   `json:"symbol,omitempty"`
	Name           string   `json:"name,omitempty"`
	MarketCap      *float64 `json:"market_cap,omitempty"`
	PriceUSD       *float64 `json:"price_usd,omitempty"`
	Volume24h      *float64 `json:"volume_24h,omitempty"`
	PriceChange24h *float64 `json:"price_change_24h,omitempty"`
	Liquidity      *float64 `json:"liquidity,omitempty"`
}
