package config

import (
	"encoding/json"
	"fmt"
	"os"

	"whalewatch/internal/model"
)

// LoadWallets reads the tracked-wallet list from a JSON file. The list is an
// external input; this loader and the Postgres store are the two supported
// suppliers.
func LoadWallets(path string) ([]model.TrackedWallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wallets file: %w", err)
	}

	var wallets []model.TrackedWallet
	if err := json.Unmarshal(data, &wallets); err != nil {
		return nil, fmt.Errorf("parse wallets file: %w", err)
	}

	for i, wallet := range wallets {
		if wallet.Address == "" {
			return nil, fmt.Errorf("wallet %d: address is required", i)
		}
	}

	return wallets, nil
}
