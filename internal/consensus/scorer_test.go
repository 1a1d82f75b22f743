package consensus

import (
	"testing"
	"time"

	"whalewatch/internal/model"
)

func aggregateOf(whales int, totalUSD float64, spread time.Duration) Aggregate {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	agg := Aggregate{
		TotalWhales:       whales,
		TotalAmountUSD:    totalUSD,
		FirstPurchaseTime: base,
		LastPurchaseTime:  base.Add(spread),
	}
	if whales > 0 {
		agg.AvgPerWhale = totalUSD / float64(whales)
	}
	return agg
}

func TestScoreRiskTopTier(t *testing.T) {
	// 5 whales (+30), $25k (+30), 3m spread (+30), $5k avg (+10) = 100.
	got := ScoreRisk(aggregateOf(5, 25000, 3*time.Minute))
	if got.Score != 100 {
		t.Fatalf("expected score 100, got %d", got.Score)
	}
	if got.Level != model.RiskVeryHigh {
		t.Fatalf("expected VERY_HIGH, got %s", got.Level)
	}
}

func TestScoreRiskBottomTier(t *testing.T) {
	// 2 whales (+10), $100 (+10), 20m spread (+10), $50 avg (+0) = 30.
	got := ScoreRisk(aggregateOf(2, 100, 20*time.Minute))
	if got.Score != 30 {
		t.Fatalf("expected score 30, got %d", got.Score)
	}
	if got.Level != model.RiskLow {
		t.Fatalf("expected LOW, got %s", got.Level)
	}
}

func TestScoreRiskLevelBoundaries(t *testing.T) {
	cases := []struct {
		name  string
		agg   Aggregate
		score int
		level model.RiskLevel
	}{
		// 3 whales (+20), $6k (+20), 10m (+20), $2k avg (+5) = 65.
		{"high", aggregateOf(3, 6000, 10*time.Minute), 65, model.RiskHigh},
		// 2 whales (+10), $6k (+20), 10m (+20), $3k avg (+5) = 55.
		{"medium", aggregateOf(2, 6000, 10*time.Minute), 55, model.RiskMedium},
		// 5 whales (+30), $30k (+30), 10m (+20), $6k avg (+10) = 90.
		{"very_high", aggregateOf(5, 30000, 10*time.Minute), 90, model.RiskVeryHigh},
	}

	for _, tc := range cases {
		got := ScoreRisk(tc.agg)
		if got.Score != tc.score {
			t.Fatalf("%s: expected score %d, got %d", tc.name, tc.score, got.Score)
		}
		if got.Level != tc.level {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.level, got.Level)
		}
	}
}

func TestScoreSignalConfidenceCap(t *testing.T) {
	// 50 + 6*10 + 15 + 15 = 140, capped at 95.
	got := ScoreSignal(aggregateOf(6, 60000, 2*time.Minute))
	if got.Confidence != 95 {
		t.Fatalf("expected capped confidence 95, got %d", got.Confidence)
	}
	if got.Type != model.SignalStrongBuy {
		t.Fatalf("expected STRONG_BUY, got %s", got.Type)
	}
}

func TestScoreSignalTypes(t *testing.T) {
	cases := []struct {
		name       string
		agg        Aggregate
		confidence int
		signalType model.SignalType
	}{
		// 50 + 2*10 + 0 (avg $150) + 0 (40m spread) = 70.
		{"buy", aggregateOf(2, 300, 40*time.Minute), 70, model.SignalBuy},
		// 50 + 1*10 + 0 + 0 = 60.
		{"weak_buy", aggregateOf(1, 500, 40*time.Minute), 60, model.SignalWeakBuy},
		// 50 + 2*10 + 10 ($2.5k avg) + 15 (3m) = 95.
		{"strong_buy", aggregateOf(2, 5000, 3*time.Minute), 95, model.SignalStrongBuy},
	}

	for _, tc := range cases {
		got := ScoreSignal(tc.agg)
		if got.Confidence != tc.confidence {
			t.Fatalf("%s: expected confidence %d, got %d", tc.name, tc.confidence, got.Confidence)
		}
		if got.Type != tc.signalType {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.signalType, got.Type)
		}
	}
}

func TestBuildAggregate(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	whales := []model.PurchaseEvent{
		makeEvent("W1", "X", 100, base.Add(5*time.Minute)),
		makeEvent("W2", "X", 200, base),
		makeEvent("W3", "X", 300, base.Add(2*time.Minute)),
	}

	agg := BuildAggregate(whales)
	if agg.TotalWhales != 3 {
		t.Fatalf("expected 3 whales, got %d", agg.TotalWhales)
	}
	if agg.TotalAmountUSD != 600 {
		t.Fatalf("expected total 600, got %v", agg.TotalAmountUSD)
	}
	if !agg.FirstPurchaseTime.Equal(base) {
		t.Fatalf("first purchase should be the min timestamp, got %v", agg.FirstPurchaseTime)
	}
	if !agg.LastPurchaseTime.Equal(base.Add(5 * time.Minute)) {
		t.Fatalf("last purchase should be the max timestamp, got %v", agg.LastPurchaseTime)
	}
	if agg.AvgPerWhale != 200 {
		t.Fatalf("expected avg 200, got %v", agg.AvgPerWhale)
	}
}

func TestStrength(t *testing.T) {
	if got := Strength(3, 450); got != 750 {
		t.Fatalf("expected 750, got %v", got)
	}
}
