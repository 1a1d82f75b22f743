package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whalewatch/internal/alert"
	"whalewatch/internal/config"
	"whalewatch/internal/consensus"
	"whalewatch/internal/enrich"
	"whalewatch/internal/model"
	"whalewatch/internal/monitor"
	"whalewatch/internal/source"
	"whalewatch/internal/storage/postgres"
)

func runWatch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *postgres.Store
	if cfg.PGDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
	}

	wallets, err := loadWallets(ctx, cfg, store)
	if err != nil {
		return err
	}

	detector := consensus.NewDetector(consensus.Config{
		MinWhales:      cfg.MinWhales,
		WindowDuration: cfg.Window,
		MinPurchaseUSD: cfg.MinPurchaseUSD,
	}, logger)

	activitySource := source.NewHTTPSource(source.HTTPSourceConfig{
		BaseURL:    cfg.ActivityURL,
		Timeout:    cfg.FetchTimeout,
		MaxRetries: cfg.MaxRetries,
		Backoff:    cfg.RetryBackoff,
	}, logger)

	var quoter source.PriceQuoter
	if cfg.PriceURL != "" {
		quoter = source.NewHTTPPriceQuoter(cfg.PriceURL, cfg.FetchTimeout, logger)
	}

	var enricher *enrich.Enricher
	if cfg.MarketURL != "" || cfg.SocialURL != "" {
		var market enrich.MarketProvider
		var social enrich.SocialProvider
		if cfg.MarketURL != "" {
			market = enrich.NewHTTPMarketProvider(cfg.MarketURL, cfg.FetchTimeout)
		}
		if cfg.SocialURL != "" {
			social = enrich.NewHTTPSocialProvider(cfg.SocialURL, cfg.FetchTimeout)
		}
		enricher = enrich.NewEnricher(market, social, cfg.FetchTimeout, logger)
	}

	consoleSink := alert.NewConsoleSink(logger)
	sinks := []alert.Sink{consoleSink}
	var purchaseSink alert.PurchaseSink = consoleSink

	if cfg.AlertsOut != "" {
		sinks = append(sinks, alert.NewJSONLSink(cfg.AlertsOut))
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		telegram, err := alert.NewTelegramSink(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return err
		}
		sinks = append(sinks, telegram)
		purchaseSink = telegram
	}
	if store != nil {
		sinks = append(sinks, store)
	}

	deps := monitor.Deps{
		Detector:     detector,
		Source:       activitySource,
		Quoter:       quoter,
		Enricher:     enricher,
		Sink:         alert.NewMultiSink(logger, sinks...),
		PurchaseSink: purchaseSink,
		Wallets:      wallets,
		Logger:       logger,
	}
	if store != nil {
		deps.Cursors = store
	}

	mon := monitor.NewMonitor(monitor.Config{
		CheckInterval:  cfg.CheckInterval,
		FetchBatchSize: cfg.FetchBatch,
		Lookback:       cfg.Window,
	}, deps)

	logger.Info("whalewatch start",
		zap.String("activity_url", cfg.ActivityURL),
		zap.Int("wallets", len(wallets)),
		zap.Int("min_whales", cfg.MinWhales),
		zap.Duration("window", cfg.Window),
		zap.Duration("check_interval", cfg.CheckInterval),
		zap.Float64("min_purchase_usd", cfg.MinPurchaseUSD),
	)

	if err := mon.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func loadWallets(ctx context.Context, cfg config.Config, store *postgres.Store) ([]model.TrackedWallet, error) {
	if cfg.WalletsFile != "" {
		return config.LoadWallets(cfg.WalletsFile)
	}
	if store != nil {
		return store.LoadTrackedWallets(ctx)
	}
	return nil, fmt.Errorf("no wallet source configured")
}
