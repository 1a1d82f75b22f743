package alert

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"whalewatch/internal/model"
)

func TestJSONLSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "alerts.jsonl")
	sink := NewJSONLSink(path)

	first := sampleAlert()
	second := sampleAlert()
	second.TotalWhales = 3

	if err := sink.SendConsensusAlert(context.Background(), first); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if err := sink.SendConsensusAlert(context.Background(), second); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	var decoded []model.ConsensusAlert
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var a model.ConsensusAlert
		if err := json.Unmarshal(scanner.Bytes(), &a); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		decoded = append(decoded, a)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan output: %v", err)
	}

	if len(decoded) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(decoded))
	}
	if decoded[0].TotalWhales != 2 || decoded[1].TotalWhales != 3 {
		t.Fatalf("lines out of order: %d, %d", decoded[0].TotalWhales, decoded[1].TotalWhales)
	}
	if decoded[0].TokenMint != first.TokenMint {
		t.Fatalf("mint mismatch: %s", decoded[0].TokenMint)
	}
}
