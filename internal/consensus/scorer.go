package consensus

import (
	"time"

	"whalewatch/internal/model"
)

// Aggregate carries the metrics computed over the unique whales of one
// window, plus optional enrichment data. Scoring functions are pure over it.
type Aggregate struct {
	TotalWhales       int
	TotalAmountUSD    float64
	TotalAmountSol    float64
	FirstPurchaseTime time.Time
	LastPurchaseTime  time.Time
	AvgPerWhale       float64
	MarketData        *model.MarketData
	SocialData        *model.SocialData
}

// BuildAggregate sums unique-whale events into an Aggregate.
func BuildAggregate(whales []model.PurchaseEvent) Aggregate {
	agg := Aggregate{TotalWhales: len(whales)}
	for i, event := range whales {
		agg.TotalAmountUSD += event.AmountUSD
		agg.TotalAmountSol += event.AmountSol
		if i == 0 || event.Timestamp.Before(agg.FirstPurchaseTime) {
			agg.FirstPurchaseTime = event.Timestamp
		}
		if i == 0 || event.Timestamp.After(agg.LastPurchaseTime) {
			agg.LastPurchaseTime = event.Timestamp
		}
	}
	if agg.TotalWhales > 0 {
		agg.AvgPerWhale = agg.TotalAmountUSD / float64(agg.TotalWhales)
	}
	return agg
}

// Spread returns the time between the first and last unique purchase.
func (a Aggregate) Spread() time.Duration {
	return a.LastPurchaseTime.Sub(a.FirstPurchaseTime)
}

// ScoreRisk grades how strong the consensus is on a 0-100 additive scale.
// The score measures signal strength: a high score is a positive indicator,
// inversely the risk of missing a real move.
func ScoreRisk(agg Aggregate) model.RiskAssessment {
	score := 0

	switch {
	case agg.TotalWhales >= 5:
		score += 30
	case agg.TotalWhales >= 3:
		score += 20
	default:
		score += 10
	}

	switch {
	case agg.TotalAmountUSD >= 10000:
		score += 30
	case agg.TotalAmountUSD >= 5000:
		score += 20
	default:
		score += 10
	}

	switch spread := agg.Spread(); {
	case spread <= 5*time.Minute:
		score += 30
	case spread <= 15*time.Minute:
		score += 20
	default:
		score += 10
	}

	switch {
	case agg.AvgPerWhale >= 5000:
		score += 10
	case agg.AvgPerWhale >= 2000:
		score += 5
	}

	level := model.RiskLow
	switch {
	case score >= 80:
		level = model.RiskVeryHigh
	case score >= 60:
		level = model.RiskHigh
	case score >= 40:
		level = model.RiskMedium
	}

	return model.RiskAssessment{Level: level, Score: score}
}

// ScoreSignal derives a buy recommendation with 0-95 confidence.
func ScoreSignal(agg Aggregate) model.TradingSignal {
	confidence := 50 + agg.TotalWhales*10

	switch {
	case agg.AvgPerWhale >= 5000:
		confidence += 15
	case agg.AvgPerWhale >= 2000:
		confidence += 10
	case agg.AvgPerWhale >= 1000:
		confidence += 5
	}

	switch spread := agg.Spread(); {
	case spread <= 5*time.Minute:
		confidence += 15
	case spread <= 15*time.Minute:
		confidence += 10
	case spread <= 30*time.Minute:
		confidence += 5
	}

	if confidence > 95 {
		confidence = 95
	}

	signalType := model.SignalHold
	switch {
	case confidence >= 80:
		signalType = model.SignalStrongBuy
	case confidence >= 70:
		signalType = model.SignalBuy
	case confidence >= 60:
		signalType = model.SignalWeakBuy
	}

	return model.TradingSignal{Type: signalType, Confidence: confidence}
}

// Strength is the provisional ordering score used to emit stronger signals
// first within a cycle. Ordering only; it has no effect on which windows fire.
func Strength(whaleCount int, totalAmountUSD float64) float64 {
	return float64(whaleCount)*100 + totalAmountUSD
}
