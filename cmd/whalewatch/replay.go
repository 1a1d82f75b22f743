package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"whalewatch/internal/alert"
	"whalewatch/internal/config"
	"whalewatch/internal/consensus"
	"whalewatch/internal/monitor"
)

func runReplay(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("in")
	if input == "" {
		return fmt.Errorf("input path is required")
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	detector := consensus.NewDetector(consensus.Config{
		MinWhales:      cfg.MinWhales,
		WindowDuration: cfg.Window,
		MinPurchaseUSD: cfg.MinPurchaseUSD,
	}, logger)

	sink := alert.NewMultiSink(logger,
		alert.NewConsoleSink(logger),
		alert.NewJSONLSink(cfg.AlertsOut),
	)

	replayer := monitor.NewReplayer(detector, sink, logger)
	_, err = replayer.Run(ctx, input)
	return err
}
