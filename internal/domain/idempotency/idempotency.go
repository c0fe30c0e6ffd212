package idempotency

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// State tracks a claim's progress.
type State string

const (
	StatePending   State = "PENDING"
	StateCompleted State = "COMPLETED"
)

// Record is one idempotency claim. The de-dup identity is
// (key, endpoint, method, user); the fingerprint detects a key reused
// with a different request body.
type Record struct {
	ID             uuid.UUID `json:"id"`
	Key            string    `json:"key"`
	Endpoint       string    `json:"endpoint"`
	Method         string    `json:"method"`
	UserID         int64     `json:"userId"`
	Fingerprint    string    `json:"fingerprint"`
	State          State     `json:"state"`
	ResponseStatus int       `json:"responseStatus"`
	ResponseBody   []byte    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// Expired reports whether a pending claim has been abandoned.
func (r *Record) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Repository defines the interface for idempotency claim persistence.
type Repository interface {
	// Claim inserts the record with ON CONFLICT DO NOTHING on the
	// de-dup identity. True means this request owns execution.
	Claim(ctx context.Context, r *Record) (bool, error)

	// Get returns the existing record for the identity, or nil.
	Get(ctx context.Context, key, endpoint, method string, userID int64) (*Record, error)

	// Complete stores the captured response on the claim.
	Complete(ctx context.Context, id uuid.UUID, status int, body []byte) error

	// Delete removes a claim so a retry can re-claim it.
	Delete(ctx context.Context, id uuid.UUID) error
}
