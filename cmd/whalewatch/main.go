package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "whalewatch",
		Short:        "Whale wallet consensus monitor",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the consensus monitor",
		RunE:  runWatch,
	}

	runCmd.Flags().String("activity-url", "", "wallet activity API base URL")
	runCmd.Flags().String("price-url", "", "SOL price API endpoint")
	runCmd.Flags().String("market-url", "", "token market data API base URL")
	runCmd.Flags().String("social-url", "", "token social data API base URL")
	runCmd.Flags().String("telegram-token", "", "Telegram bot token")
	runCmd.Flags().Int64("telegram-chat-id", 0, "Telegram chat ID")
	runCmd.Flags().String("pg-dsn", "", "Postgres DSN for alert persistence")
	runCmd.Flags().String("wallets", "", "tracked wallets JSON file")
	runCmd.Flags().String("alerts-out", "./data/alerts.jsonl", "alerts JSONL path")
	runCmd.Flags().Float64("min-purchase-usd", 50, "per-event USD inclusion floor")
	runCmd.Flags().Int("min-whales", 2, "unique whales required for consensus")
	runCmd.Flags().Duration("check-interval", 30*time.Second, "polling interval (min 10s)")
	runCmd.Flags().Duration("window", 15*time.Minute, "consensus time window")
	runCmd.Flags().Duration("fetch-timeout", 5*time.Second, "per-request timeout")
	runCmd.Flags().Int("fetch-batch", 5, "concurrent wallet fetches per batch")
	runCmd.Flags().Int("max-retries", 2, "maximum retry attempts per fetch")
	runCmd.Flags().Duration("retry-backoff", 250*time.Millisecond, "initial retry backoff")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	replayCmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay recorded purchase events through the detector",
		RunE:  runReplay,
	}

	replayCmd.Flags().String("in", "", "input purchase events JSONL")
	replayCmd.Flags().String("alerts-out", "./data/replay_alerts.jsonl", "alerts JSONL path")
	replayCmd.Flags().Float64("min-purchase-usd", 50, "per-event USD inclusion floor")
	replayCmd.Flags().Int("min-whales", 2, "unique whales required for consensus")
	replayCmd.Flags().Duration("window", 15*time.Minute, "consensus time window")
	replayCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(replayCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
