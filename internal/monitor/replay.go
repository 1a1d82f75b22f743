package monitor

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"whalewatch/internal/alert"
	"whalewatch/internal/consensus"
	"whalewatch/internal/model"
)

// Replayer drives the detector over a recorded purchase-event JSONL file,
// evaluating after every event at that event's timestamp. Recorded AmountUSD
// values are kept as-is; there is no live quote during replay.
type Replayer struct {
	detector *consensus.Detector
	sink     alert.Sink
	logger   *zap.Logger
}

// NewReplayer builds a Replayer.
func NewReplayer(detector *consensus.Detector, sink alert.Sink, logger *zap.Logger) *Replayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Replayer{detector: detector, sink: sink, logger: logger}
}

// Run replays the file and returns the number of alerts emitted.
func (r *Replayer) Run(ctx context.Context, inputPath string) (int, error) {
	if r.detector == nil {
		return 0, fmt.Errorf("detector is nil")
	}
	if r.sink == nil {
		return 0, fmt.Errorf("alert sink is nil")
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var total, accepted, failed, alerts int
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return alerts, ctx.Err()
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		total++

		var event model.PurchaseEvent
		if err := json.Unmarshal(line, &event); err != nil {
			failed++
			r.logger.Warn("decode purchase event", zap.Error(err))
			continue
		}

		accepted += len(r.detector.Ingest([]model.PurchaseEvent{event}, 0))

		for _, candidate := range r.detector.Evaluate(event.Timestamp) {
			consensusAlert := consensus.BuildAlert(candidate, nil, nil, event.Timestamp)
			r.detector.MarkFired(candidate.Signal)
			if err := r.sink.SendConsensusAlert(ctx, consensusAlert); err != nil {
				r.logger.Warn("alert delivery failed", zap.Error(err), zap.String("mint", candidate.TokenMint))
			}
			alerts++
		}
	}

	if err := scanner.Err(); err != nil {
		return alerts, fmt.Errorf("scan input: %w", err)
	}

	r.logger.Info("replay complete",
		zap.Int("total", total),
		zap.Int("accepted", accepted),
		zap.Int("failed", failed),
		zap.Int("alerts", alerts),
	)

	return alerts, nil
}
