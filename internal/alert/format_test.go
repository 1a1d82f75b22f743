package alert

import (
	"strings"
	"testing"
	"time"

	"whalewatch/internal/model"
)

func sampleAlert() *model.ConsensusAlert {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mcap := 2500000.0
	return &model.ConsensusAlert{
		TokenMint:   "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU",
		TokenSymbol: "TKN",
		TokenName:   "Token",
		Whales: []model.PurchaseEvent{
			{WalletAddress: "WalletAddressOne1111111111111111", WalletName: "Alpha", TokenMint: "m", AmountSol: 1, AmountUSD: 100, Timestamp: base},
			{WalletAddress: "WalletAddressTwo2222222222222222", TokenMint: "m", AmountSol: 2, AmountUSD: 200, Timestamp: base.Add(5 * time.Minute)},
		},
		TotalWhales:       2,
		TotalAmountUSD:    300,
		TotalAmountSol:    3,
		FirstPurchaseTime: base,
		LastPurchaseTime:  base.Add(5 * time.Minute),
		ConsensusStrength: 500,
		MarketData:        &model.MarketData{Symbol: "TKN", MarketCap: &mcap},
		RiskAssessment:    model.RiskAssessment{Level: model.RiskHigh, Score: 65},
		TradingSignal:     model.TradingSignal{Type: model.SignalBuy, Confidence: 75},
		DetectedAt:        base.Add(6 * time.Minute),
	}
}

func TestFormatConsensusAlert(t *testing.T) {
	text := FormatConsensusAlert(sampleAlert())

	for _, want := range []string{
		"WHALE CONSENSUS: TKN",
		"Whales: <b>2</b>",
		"$300.00",
		"BUY",
		"HIGH",
		"Alpha",
		"solscan.io/token/7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("formatted alert missing %q:\n%s", want, text)
		}
	}

	// Unnamed wallets render as shortened addresses.
	if !strings.Contains(text, "Wallet…2222") {
		t.Fatalf("expected shortened address in:\n%s", text)
	}
}

func TestFormatPurchase(t *testing.T) {
	event := model.PurchaseEvent{
		WalletAddress: "WalletAddressOne1111111111111111",
		WalletName:    "Alpha",
		TokenMint:     "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU",
		AmountSol:     2,
		AmountUSD:     300,
		Signature:     "5igNature",
		Timestamp:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	text := FormatPurchase(event)
	for _, want := range []string{"Alpha", "$300.00", "solscan.io/tx/5igNature"} {
		if !strings.Contains(text, want) {
			t.Fatalf("formatted purchase missing %q:\n%s", want, text)
		}
	}
}
