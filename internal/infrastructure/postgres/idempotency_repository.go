package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/league-hub/league-hub/internal/domain/idempotency"
)

// IdempotencyRepository implements idempotency.Repository.
type IdempotencyRepository struct {
	pool *pgxpool.Pool
}

func NewIdempotencyRepository(pool *pgxpool.Pool) *IdempotencyRepository {
	return &IdempotencyRepository{pool: pool}
}

func (r *IdempotencyRepository) Claim(ctx context.Context, rec *idempotency.Record) (bool, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO idempotency_requests
		(id, idem_key, endpoint, method, user_id, fingerprint, state, created_at, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (idem_key, endpoint, method, user_id) DO NOTHING
	`, rec.ID, rec.Key, rec.Endpoint, rec.Method, rec.UserID, rec.Fingerprint, idempotency.StatePending, rec.CreatedAt, rec.ExpiresAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key, endpoint, method string, userID int64) (*idempotency.Record, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, idem_key, endpoint, method, user_id, fingerprint, state, response_status, response_body, created_at, expires_at
		FROM idempotency_requests
		WHERE idem_key=$1 AND endpoint=$2 AND method=$3 AND user_id=$4
	`, key, endpoint, method, userID)
	var rec idempotency.Record
	var status *int
	if err := row.Scan(&rec.ID, &rec.Key, &rec.Endpoint, &rec.Method, &rec.UserID, &rec.Fingerprint, &rec.State, &status, &rec.ResponseBody, &rec.CreatedAt, &rec.ExpiresAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if status != nil {
		rec.ResponseStatus = *status
	}
	return &rec, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, id uuid.UUID, status int, body []byte) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE idempotency_requests SET state=$1, response_status=$2, response_body=$3 WHERE id=$4
	`, idempotency.StateCompleted, status, body, id)
	return err
}

func (r *IdempotencyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM idempotency_requests WHERE id=$1`, id)
	return err
}
