package consensus

import (
	"time"

	"whalewatch/internal/model"
)

// BuildAlert turns a candidate into the immutable alert value, scoring the
// aggregate and attaching whatever enrichment is available. Nil enrichment is
// fine; the alert is emitted either way.
func BuildAlert(candidate Candidate, market *model.MarketData, social *model.SocialData, now time.Time) *model.ConsensusAlert {
	agg := BuildAggregate(candidate.Whales)
	agg.MarketData = market
	agg.SocialData = social

	alert := &model.ConsensusAlert{
		TokenMint:         candidate.TokenMint,
		Whales:            candidate.Whales,
		TotalWhales:       agg.TotalWhales,
		TotalAmountUSD:    agg.TotalAmountUSD,
		TotalAmountSol:    agg.TotalAmountSol,
		FirstPurchaseTime: agg.FirstPurchaseTime,
		LastPurchaseTime:  agg.LastPurchaseTime,
		ConsensusStrength: Strength(agg.TotalWhales, agg.TotalAmountUSD),
		MarketData:        market,
		SocialData:        social,
		RiskAssessment:    ScoreRisk(agg),
		TradingSignal:     ScoreSignal(agg),
		DetectedAt:        now,
	}
	if market != nil {
		alert.TokenSymbol = market.Symbol
		alert.TokenName = market.Name
	}
	return alert
}
