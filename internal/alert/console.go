package alert

import (
	"context"

	"go.uber.org/zap"

	"whalewatch/internal/model"
)

// ConsoleSink writes alerts to the structured log.
type ConsoleSink struct {
	logger *zap.Logger
}

// NewConsoleSink builds a ConsoleSink.
func NewConsoleSink(logger *zap.Logger) *ConsoleSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleSink{logger: logger}
}

// SendConsensusAlert logs the alert.
func (s *ConsoleSink) SendConsensusAlert(_ context.Context, alert *model.ConsensusAlert) error {
	s.logger.Info("consensus alert",
		zap.String("mint", alert.TokenMint),
		zap.String("symbol", alert.TokenSymbol),
		zap.Int("whales", alert.TotalWhales),
		zap.Float64("total_usd", alert.TotalAmountUSD),
		zap.Float64("total_sol", alert.TotalAmountSol),
		zap.Float64("strength", alert.ConsensusStrength),
		zap.String("risk", string(alert.RiskAssessment.Level)),
		zap.Int("risk_score", alert.RiskAssessment.Score),
		zap.String("signal", string(alert.TradingSignal.Type)),
		zap.Int("confidence", alert.TradingSignal.Confidence),
		zap.Time("first_purchase", alert.FirstPurchaseTime),
		zap.Time("last_purchase", alert.LastPurchaseTime),
	)
	return nil
}

// SendPurchase logs a qualifying individual purchase.
func (s *ConsoleSink) SendPurchase(_ context.Context, event model.PurchaseEvent) error {
	s.logger.Info("whale purchase",
		zap.String("wallet", event.DisplayName()),
		zap.String("mint", event.TokenMint),
		zap.Float64("amount_sol", event.AmountSol),
		zap.Float64("amount_usd", event.AmountUSD),
		zap.String("signature", event.Signature),
	)
	return nil
}
