package model

import "time"

// RiskLevel grades consensus signal quality. A high level means strong
// consensus, not financial danger.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskVeryHigh RiskLevel = "VERY_HIGH"
)

// SignalType classifies the trading signal derived from a consensus.
type SignalType string

const (
	SignalStrongBuy SignalType = "STRONG_BUY"
	SignalBuy       SignalType = "BUY"
	SignalWeakBuy   SignalType = "WEAK_BUY"
	SignalHold      SignalType = "HOLD"
)

// RiskAssessment is the scored signal-quality grade for a consensus.
type RiskAssessment struct {
	Level RiskLevel `json:"level"`
	Score int       `json:"score"`
}

// TradingSignal is the scored buy recommendation for a consensus.
type TradingSignal struct {
	Type       SignalType `json:"type"`
	Confidence int        `json:"confidence"`
}

// ConsensusAlert is emitted once per (token, whale count) signal when enough
// distinct whales bought the same token inside the window.
type ConsensusAlert struct {
	TokenMint         string          `json:"token_mint"`
	TokenSymbol       string          `json:"token_symbol,omitempty"`
	TokenName         string          `json:"token_name,omitempty"`
	Whales            []PurchaseEvent `json:"whales"`
	TotalWhales       int             `json:"total_whales"`
	TotalAmountUSD    float64         `json:"total_amount_usd"`
	TotalAmountSol    float64         `json:"total_amount_sol"`
	FirstPurchaseTime time.Time       `json:"first_purchase_time"`
	LastPurchaseTime  time.Time       `json:"last_purchase_time"`
	ConsensusStrength float64         `json:"consensus_strength"`
	MarketData        *MarketData     `json:"market_data,omitempty"`
	SocialData        *SocialData     `json:"social_data,omitempty"`
	RiskAssessment    RiskAssessment  `json:"risk_assessment"`
	TradingSignal     TradingSignal   `json:"trading_signal"`
	DetectedAt        time.Time       `json:"detected_at"`
}
