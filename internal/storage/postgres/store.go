// Package postgres persists analysis artifacts so later runs can diff an
// address against its history.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"walletScope/internal/model"
)

// Store provides Postgres persistence for analysis results.
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

// PutAnalysis stores the swap events, behavior snapshot, and lending stats
// of one analysis run in a single batch.
func (s *Store) PutAnalysis(ctx context.Context, analysis model.AddressAnalysis) error {
	if err := s.UpsertSwapEvents(ctx, analysis.Address, analysis.Swaps); err != nil {
		return err
	}
	return s.InsertBehaviorSnapshot(ctx, analysis)
}

// UpsertSwapEvents inserts or updates classified swaps for an address. The
// tx hash is the natural key: reclassification replaces the prior record.
func (s *Store) UpsertSwapEvents(ctx context.Context, address string, swaps []model.SwapEvent) error {
	if len(swaps) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, sw := range swaps {
		batch.Queue(`
			INSERT INTO swap_events (
				address, tx_hash, swap_type, token_in, token_out,
				amount_in, amount_out, router, pool, occurred_at, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now(),now())
			ON CONFLICT (address, tx_hash)
			DO UPDATE SET
				swap_type = EXCLUDED.swap_type,
				token_in = EXCLUDED.token_in,
				token_out = EXCLUDED.token_out,
				amount_in = EXCLUDED.amount_in,
				amount_out = EXCLUDED.amount_out,
				router = EXCLUDED.router,
				pool = EXCLUDED.pool,
				occurred_at = EXCLUDED.occurred_at,
				updated_at = now()
		`,
			address,
			sw.TxHash,
			string(sw.SwapType),
			sw.TokenIn,
			sw.TokenOut,
			sw.AmountIn,
			sw.AmountOut,
			sw.Router,
			sw.Pool,
			sw.Timestamp,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range swaps {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// UpsertBalanceCandles inserts or updates a balance candle series for an
// address and resolution.
func (s *Store) UpsertBalanceCandles(ctx context.Context, address, resolution string, candles []model.BalanceCandle) error {
	if len(candles) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, c := range candles {
		batch.Queue(`
			INSERT INTO balance_candles (
				address, resolution, bucket_ts, open, high, low, close,
				volume, tx_count, net_change, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now(),now())
			ON CONFLICT (address, resolution, bucket_ts)
			DO UPDATE SET
				open = EXCLUDED.open,
				high = EXCLUDED.high,
				low = EXCLUDED.low,
				close = EXCLUDED.close,
				volume = EXCLUDED.volume,
				tx_count = EXCLUDED.tx_count,
				net_change = EXCLUDED.net_change,
				updated_at = now()
		`,
			address,
			resolution,
			c.Time,
			c.Open,
			c.High,
			c.Low,
			c.Close,
			c.Volume,
			int64(c.TxCount),
			c.NetChange,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range candles {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// InsertBehaviorSnapshot appends the scores, tags, and headline numbers of
// one analysis run. Snapshots are append-only.
func (s *Store) InsertBehaviorSnapshot(ctx context.Context, analysis model.AddressAnalysis) error {
	tags, err := json.Marshal(analysis.Behavior.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO behavior_snapshots (
			address, generated_at, current_balance, trader_score, holder_score,
			defi_score, whale_score, activity_score, diversity_score, tags,
			total_swaps, lend_tx_count, borrow_tx_count, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,now())
	`,
		analysis.Address,
		analysis.GeneratedAt,
		analysis.CurrentBalance,
		analysis.Behavior.Scores.Trader,
		analysis.Behavior.Scores.Holder,
		analysis.Behavior.Scores.DeFi,
		analysis.Behavior.Scores.Whale,
		analysis.Behavior.Scores.Activity,
		analysis.Behavior.Scores.Diversity,
		tags,
		analysis.SwapStats.TotalSwaps,
		analysis.Lending.LendCount,
		analysis.Lending.BorrowCount,
	)
	return err
}

// LoadState returns the last analysis timestamp for an address.
func (s *Store) LoadState(ctx context.Context, address string) (time.Time, bool, error) {
	if address == "" {
		return time.Time{}, false, fmt.Errorf("address required")
	}
	var ts time.Time
	row := s.pool.QueryRow(ctx, `SELECT last_analyzed_at FROM analyzer_state WHERE address=$1`, address)
	if err := row.Scan(&ts); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return ts, true, nil
}

// SaveState upserts the last analysis timestamp for an address.
func (s *Store) SaveState(ctx context.Context, address string, ts time.Time) error {
	if address == "" {
		return fmt.Errorf("address required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO analyzer_state (address, last_analyzed_at, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (address)
		DO UPDATE SET last_analyzed_at = EXCLUDED.last_analyzed_at, updated_at = now()
	`, address, ts)
	return err
}
