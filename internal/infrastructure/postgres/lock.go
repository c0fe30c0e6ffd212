package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/league-hub/league-hub/internal/locking"
)

// LockManager implements locking.Manager on Postgres advisory locks.
// Each call opens a transaction, takes pg_advisory_xact_lock for every
// requested resource in the fixed total order, and runs the closure
// with the transaction carried in ctx. Commit or rollback releases the
// locks; they are never released explicitly.
type LockManager struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewLockManager(pool *pgxpool.Pool, logger zerolog.Logger) *LockManager {
	return &LockManager{
		pool:   pool,
		logger: logger.With().Str("service", "lock-manager").Logger(),
	}
}

func (m *LockManager) RunWithLock(ctx context.Context, lock locking.Lock, fn func(ctx context.Context) error) error {
	return m.RunWithLocks(ctx, []locking.Lock{lock}, fn)
}

func (m *LockManager) RunWithLocks(ctx context.Context, locks []locking.Lock, fn func(ctx context.Context) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin lock transaction: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback(ctx)
	}()

	for _, l := range locking.Sorted(locks) {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, l.Key()); err != nil {
			return fmt.Errorf("acquire %s lock %d: %w", l.Domain, l.ID, err)
		}
	}

	if err := fn(withTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit lock transaction: %w", err)
	}
	return nil
}
