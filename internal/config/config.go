package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	minCheckInterval = 10 * time.Second
	maxFetchTimeout  = 10 * time.Second
)

// Config holds configuration values loaded from flags, env, or config file.
// Detection parameters are validated and clamped here, at startup, never
// mid-cycle.
type Config struct {
	ActivityURL    string
	PriceURL       string
	MarketURL      string
	SocialURL      string
	TelegramToken  string
	TelegramChatID int64
	PGDSN          string
	WalletsFile    string
	AlertsOut      string
	MinPurchaseUSD float64
	MinWhales      int
	CheckInterval  time.Duration
	Window         time.Duration
	FetchTimeout   time.Duration
	FetchBatch     int
	MaxRetries     int
	RetryBackoff   time.Duration
	LogLevel       string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WHALEWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("min-purchase-usd", 50.0)
	v.SetDefault("min-whales", 2)
	v.SetDefault("check-interval", 30*time.Second)
	v.SetDefault("window", 15*time.Minute)
	v.SetDefault("fetch-timeout", 5*time.Second)
	v.SetDefault("fetch-batch", 5)
	v.SetDefault("max-retries", 2)
	v.SetDefault("retry-backoff", 250*time.Millisecond)
	v.SetDefault("alerts-out", "./data/alerts.jsonl")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		ActivityURL:    v.GetString("activity-url"),
		PriceURL:       v.GetString("price-url"),
		MarketURL:      v.GetString("market-url"),
		SocialURL:      v.GetString("social-url"),
		TelegramToken:  v.GetString("telegram-token"),
		TelegramChatID: v.GetInt64("telegram-chat-id"),
		PGDSN:          v.GetString("pg-dsn"),
		WalletsFile:    v.GetString("wallets"),
		AlertsOut:      v.GetString("alerts-out"),
		MinPurchaseUSD: v.GetFloat64("min-purchase-usd"),
		MinWhales:      v.GetInt("min-whales"),
		CheckInterval:  v.GetDuration("check-interval"),
		Window:         v.GetDuration("window"),
		FetchTimeout:   v.GetDuration("fetch-timeout"),
		FetchBatch:     v.GetInt("fetch-batch"),
		MaxRetries:     v.GetInt("max-retries"),
		RetryBackoff:   v.GetDuration("retry-backoff"),
		LogLevel:       v.GetString("log-level"),
	}

	return cfg.clamp(), nil
}

func (c Config) clamp() Config {
	if c.MinWhales < 1 {
		c.MinWhales = 1
	}
	if c.CheckInterval < minCheckInterval {
		c.CheckInterval = minCheckInterval
	}
	if c.Window <= 0 {
		c.Window = 15 * time.Minute
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 5 * time.Second
	}
	if c.FetchTimeout > maxFetchTimeout {
		c.FetchTimeout = maxFetchTimeout
	}
	if c.FetchBatch <= 0 {
		c.FetchBatch = 5
	}
	if c.MinPurchaseUSD < 0 {
		c.MinPurchaseUSD = 0
	}
	return c
}

// Validate checks the values that cannot be fixed by clamping.
func (c Config) Validate() error {
	if c.ActivityURL == "" {
		return fmt.Errorf("activity url is required")
	}
	if c.WalletsFile == "" && c.PGDSN == "" {
		return fmt.Errorf("either a wallets file or a pg dsn is required")
	}
	return nil
}
