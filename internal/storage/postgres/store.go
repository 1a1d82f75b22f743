// Package postgres persists emitted alerts and per-wallet fetch cursors.
// It sits on the output side of the detector; nothing here feeds back into
// detection state.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"whalewatch/internal/model"
)

// Store provides Postgres persistence for alerts, wallets, and cursors.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InsertAlerts stores a batch of emitted alerts. The (token_mint, whale_count)
// conflict target mirrors the detector's signal identity, so a replayed alert
// is a no-op.
func (s *Store) InsertAlerts(ctx context.Context, alerts []model.ConsensusAlert) error {
	if len(alerts) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, a := range alerts {
		whales, err := json.Marshal(a.Whales)
		if err != nil {
			return fmt.Errorf("marshal whales: %w", err)
		}
		batch.Queue(`
			INSERT INTO consensus_alerts (
				token_mint, whale_count, token_symbol, token_name, whales,
				total_amount_usd, total_amount_sol, first_purchase_ts, last_purchase_ts,
				strength, risk_level, risk_score, signal_type, signal_confidence,
				detected_at, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,now())
			ON CONFLICT (token_mint, whale_count) DO NOTHING
		`,
			a.TokenMint,
			a.TotalWhales,
			a.TokenSymbol,
			a.TokenName,
			whales,
			a.TotalAmountUSD,
			a.TotalAmountSol,
			a.FirstPurchaseTime,
			a.LastPurchaseTime,
			a.ConsensusStrength,
			string(a.RiskAssessment.Level),
			a.RiskAssessment.Score,
			string(a.TradingSignal.Type),
			a.TradingSignal.Confidence,
			a.DetectedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range alerts {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// SendConsensusAlert stores a single alert, satisfying the alert sink
// contract.
func (s *Store) SendConsensusAlert(ctx context.Context, alert *model.ConsensusAlert) error {
	return s.InsertAlerts(ctx, []model.ConsensusAlert{*alert})
}

// LoadTrackedWallets returns the curated whale list, enabled and disabled.
func (s *Store) LoadTrackedWallets(ctx context.Context) ([]model.TrackedWallet, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT address, COALESCE(display_name, ''), enabled
		FROM tracked_wallets
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []model.TrackedWallet
	for rows.Next() {
		var w model.TrackedWallet
		if err := rows.Scan(&w.Address, &w.DisplayName, &w.Enabled); err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

// LoadCursor returns the last-checked timestamp for a wallet.
func (s *Store) LoadCursor(ctx context.Context, walletAddress string) (time.Time, bool, error) {
	var ts time.Time
	err := s.pool.QueryRow(ctx, `
		SELECT last_checked_ts FROM wallet_cursors WHERE wallet_address = $1
	`, walletAddress).Scan(&ts)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return ts, true, nil
}

// SaveCursor stores the last-checked timestamp for a wallet.
func (s *Store) SaveCursor(ctx context.Context, walletAddress string, ts time.Time) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO wallet_cursors (wallet_address, last_checked_ts, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (wallet_address)
		DO UPDATE SET last_checked_ts = EXCLUDED.last_checked_ts, updated_at = now()
	`, walletAddress, ts)
	return err
}
