package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClampDetectionParameters(t *testing.T) {
	cfg := Config{
		MinWhales:      0,
		CheckInterval:  time.Second,
		Window:         0,
		FetchTimeout:   time.Minute,
		FetchBatch:     -1,
		MinPurchaseUSD: -5,
	}.clamp()

	if cfg.MinWhales != 1 {
		t.Fatalf("min whales should clamp to 1, got %d", cfg.MinWhales)
	}
	if cfg.CheckInterval != 10*time.Second {
		t.Fatalf("check interval should clamp to 10s, got %v", cfg.CheckInterval)
	}
	if cfg.Window != 15*time.Minute {
		t.Fatalf("window should default to 15m, got %v", cfg.Window)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Fatalf("fetch timeout should clamp to 10s, got %v", cfg.FetchTimeout)
	}
	if cfg.FetchBatch != 5 {
		t.Fatalf("fetch batch should default to 5, got %d", cfg.FetchBatch)
	}
	if cfg.MinPurchaseUSD != 0 {
		t.Fatalf("negative floor should clamp to 0, got %v", cfg.MinPurchaseUSD)
	}
}

func TestClampKeepsValidValues(t *testing.T) {
	cfg := Config{
		MinWhales:      3,
		CheckInterval:  time.Minute,
		Window:         30 * time.Minute,
		FetchTimeout:   3 * time.Second,
		FetchBatch:     10,
		MinPurchaseUSD: 100,
	}.clamp()

	if cfg.MinWhales != 3 || cfg.CheckInterval != time.Minute || cfg.Window != 30*time.Minute {
		t.Fatalf("valid values must pass through unchanged: %+v", cfg)
	}
}

func TestValidateRequiresActivityURL(t *testing.T) {
	cfg := Config{WalletsFile: "wallets.json"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing activity url")
	}

	cfg.ActivityURL = "https://api.example.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequiresWalletSource(t *testing.T) {
	cfg := Config{ActivityURL: "https://api.example.com"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error when neither wallets file nor pg dsn is set")
	}
}

func TestLoadWallets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	content := `[
		{"address": "W1", "display_name": "Alpha", "enabled": true},
		{"address": "W2", "enabled": false}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write wallets: %v", err)
	}

	wallets, err := LoadWallets(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(wallets) != 2 {
		t.Fatalf("expected 2 wallets, got %d", len(wallets))
	}
	if wallets[0].DisplayName != "Alpha" || !wallets[0].Enabled {
		t.Fatalf("unexpected first wallet %+v", wallets[0])
	}
	if wallets[1].Enabled {
		t.Fatalf("second wallet should be disabled")
	}
}

func TestLoadWalletsRejectsMissingAddress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	if err := os.WriteFile(path, []byte(`[{"enabled": true}]`), 0o644); err != nil {
		t.Fatalf("write wallets: %v", err)
	}
	if _, err := LoadWallets(path); err == nil {
		t.Fatalf("expected error for wallet without address")
	}
}
