// Package alert delivers consensus alerts to their destinations. Sinks are
// one-way: nothing they do feeds back into detection state.
package alert

import (
	"context"

	"go.uber.org/zap"

	"whalewatch/internal/model"
)

// Sink consumes consensus alerts.
type Sink interface {
	SendConsensusAlert(ctx context.Context, alert *model.ConsensusAlert) error
}

// PurchaseSink consumes qualifying single-wallet purchases, independent of
// consensus status.
type PurchaseSink interface {
	SendPurchase(ctx context.Context, event model.PurchaseEvent) error
}

// MultiSink fans an alert out to several sinks. One sink failing is logged
// and never blocks the others.
type MultiSink struct {
	sinks  []Sink
	logger *zap.Logger
}

// NewMultiSink builds a fan-out sink.
func NewMultiSink(logger *zap.Logger, sinks ...Sink) *MultiSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MultiSink{sinks: sinks, logger: logger}
}

// SendConsensusAlert delivers the alert to every sink.
func (m *MultiSink) SendConsensusAlert(ctx context.Context, alert *model.ConsensusAlert) error {
	for _, sink := range m.sinks {
		if err := sink.SendConsensusAlert(ctx, alert); err != nil {
			m.logger.Warn("alert delivery failed", zap.Error(err), zap.String("mint", alert.TokenMint))
		}
	}
	return nil
}
