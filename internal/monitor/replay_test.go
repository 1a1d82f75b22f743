package monitor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"whalewatch/internal/consensus"
	"whalewatch/internal/model"
)

func TestReplayerEmitsConsensus(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	events := []model.PurchaseEvent{
		purchase("W1", "T", 100, base),
		purchase("W2", "T", 200, base.Add(5*time.Minute)),
		purchase("W3", "U", 80, base.Add(6*time.Minute)),
	}

	path := filepath.Join(t.TempDir(), "events.jsonl")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create input: %v", err)
	}
	encoder := json.NewEncoder(file)
	for _, event := range events {
		if err := encoder.Encode(event); err != nil {
			t.Fatalf("encode event: %v", err)
		}
	}
	file.Close()

	detector := consensus.NewDetector(consensus.Config{
		MinWhales:      2,
		WindowDuration: 15 * time.Minute,
		MinPurchaseUSD: 50,
	}, nil)
	sink := &captureSink{}

	replayer := NewReplayer(detector, sink, nil)
	count, err := replayer.Run(context.Background(), path)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 alert, got %d", count)
	}
	if sink.alerts[0].TokenMint != "T" {
		t.Fatalf("expected mint T, got %s", sink.alerts[0].TokenMint)
	}
	if sink.alerts[0].TotalAmountUSD != 300 {
		t.Fatalf("expected total 300, got %v", sink.alerts[0].TotalAmountUSD)
	}
}

func TestReplayerSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	content := "{not json}\n" +
		`{"wallet_address":"W1","token_mint":"T","amount_sol":1,"amount_usd":100,"signature":"s1","timestamp":"2025-06-01T12:00:00Z"}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	detector := consensus.NewDetector(consensus.Config{
		MinWhales:      1,
		WindowDuration: 15 * time.Minute,
	}, nil)
	sink := &captureSink{}

	count, err := NewReplayer(detector, sink, nil).Run(context.Background(), path)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("good line should still alert, got %d alerts", count)
	}
}
