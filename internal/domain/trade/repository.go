package trade

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"
	"time"
)

// ReviewWindow carries the computed review period written alongside a
// PENDING -> IN_REVIEW transition.
type ReviewWindow struct {
	StartsAt time.Time
	EndsAt   time.Time
}

// Repository defines the interface for trade persistence. Methods that
// mutate state must honor a transaction carried in ctx by the lock
// manager; reads may run against the pool directly.
type Repository interface {
	// Create inserts the trade and its items. The trade's ID is
	// populated on return.
	Create(ctx context.Context, t *Trade, items []Item) error

	// GetByID returns nil when no trade exists.
	GetByID(ctx context.Context, id int64) (*Trade, error)

	// GetByIdempotencyKey returns the trade previously created under
	// key within the league, or nil.
	GetByIdempotencyKey(ctx context.Context, leagueID int64, key string) (*Trade, error)

	ListByLeague(ctx context.Context, leagueID int64, status *Status, limit, offset int) ([]*Trade, error)
	ListItems(ctx context.Context, tradeID int64) ([]Item, error)

	// CASStatus performs UPDATE ... WHERE id=$1 AND status=$2 and
	// reports whether a row changed. A false return means another
	// request won the race; the caller must re-read and branch.
	CASStatus(ctx context.Context, id int64, from, to Status) (bool, error)
	CASStatusCompleted(ctx context.Context, id int64, from Status, completedAt time.Time) (bool, error)
	CASStatusInReview(ctx context.Context, id int64, window ReviewWindow) (bool, error)
	CASStatusFailed(ctx context.Context, id int64, from, to Status, reason string) (bool, error)

	// ItemsPledgedElsewhere reports whether any of the given assets
	// already appears on another PENDING or IN_REVIEW trade in the
	// league.
	ItemsPledgedElsewhere(ctx context.Context, leagueID int64, playerIDs, pickIDs []int64, excludeTradeID int64) (bool, error)

	// ListExpired returns PENDING trades past their expiry.
	ListExpired(ctx context.Context, now time.Time, limit int) ([]*Trade, error)
	// ListReviewComplete returns IN_REVIEW trades past their review
	// window.
	ListReviewComplete(ctx context.Context, now time.Time, limit int) ([]*Trade, error)

	CreateVote(ctx context.Context, v *Vote) error
	HasVote(ctx context.Context, tradeID, rosterID int64) (bool, error)
	// CountVotes returns (approvals, vetoes).
	CountVotes(ctx context.Context, tradeID int64) (int, int, error)
	ListVotes(ctx context.Context, tradeID int64) ([]*Vote, error)
}
