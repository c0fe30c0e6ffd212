package pick

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"
	"time"
)

// Asset is a tradeable draft-round entitlement tracked by current
// owner.
type Asset struct {
	ID               int64      `json:"id"`
	LeagueID         int64      `json:"leagueId"`
	OwnerRosterID    int64      `json:"ownerRosterId"`
	OriginalRosterID int64      `json:"originalRosterId"`
	Season           int        `json:"season"`
	Round            int        `json:"round"`
	Used             bool       `json:"used"`
	UsedAt           *time.Time `json:"usedAt,omitempty"`
}

// Repository defines the interface for pick-asset persistence. The
// draft engine itself is an external collaborator; only its
// ownership/usage/round checks are consulted here.
type Repository interface {
	// GetByIDs loads the given assets. Missing ids are absent from
	// the result.
	GetByIDs(ctx context.Context, ids []int64) ([]Asset, error)

	// TransferOwnership moves a pick to a new roster, conditional on
	// the expected current owner. A false return means ownership
	// changed concurrently.
	TransferOwnership(ctx context.Context, pickID, fromRosterID, toRosterID int64) (bool, error)

	// RoundPassed reports whether the draft in the given league season
	// has already progressed past round.
	RoundPassed(ctx context.Context, leagueID int64, season, round int) (bool, error)
}
