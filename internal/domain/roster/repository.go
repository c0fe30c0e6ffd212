package roster

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"
)

// Repository defines the interface for roster membership persistence.
type Repository interface {
	// GetByID returns nil when no roster exists.
	GetByID(ctx context.Context, id int64) (*Roster, error)

	// GetByLeagueAndUser resolves the roster a user owns within a
	// league, or nil.
	GetByLeagueAndUser(ctx context.Context, leagueID, userID int64) (*Roster, error)

	// PlayerOwnership maps each player id to the roster currently
	// holding it. Players not on any roster are absent from the map.
	PlayerOwnership(ctx context.Context, leagueID int64, playerIDs []int64) (map[int64]int64, error)

	// GetPlayers loads display fields for the given players.
	GetPlayers(ctx context.Context, playerIDs []int64) ([]Player, error)

	CountPlayers(ctx context.Context, rosterID int64) (int, error)

	// MovePlayers applies every move in a single atomic statement
	// restricted to the expected (player, source roster) pairs, and
	// returns the number of rows changed. A count below len(moves)
	// means a concurrent mutation moved a player mid-flight and the
	// caller must abort.
	MovePlayers(ctx context.Context, moves []Move) (int64, error)

	// RecordMovements appends rows to the roster transaction log.
	RecordMovements(ctx context.Context, movements []Movement) error
}
