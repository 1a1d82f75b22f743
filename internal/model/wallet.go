package model

// TrackedWallet is one entry of the externally curated whale list.
type TrackedWallet struct {
	Address     string `json:"address"`
	DisplayName string `json:"display_name,omitempty"`
	Enabled     bool   `json:"enabled"`
}
