package roster

import (
	"time"
)

// Roster is a team within a league.
type Roster struct {
	ID          int64     `json:"id"`
	LeagueID    int64     `json:"leagueId"`
	Name        string    `json:"name"`
	OwnerUserID int64     `json:"ownerUserId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Player carries the display fields snapshotted onto trade items.
type Player struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

// Move describes one player changing rosters.
type Move struct {
	PlayerID     int64
	FromRosterID int64
	ToRosterID   int64
}

// AssetType classifies a movement-log entry.
type AssetType string

const (
	AssetPlayer AssetType = "PLAYER"
	AssetPick   AssetType = "DRAFT_PICK"
)

// Movement is one row of the roster transaction log, written for every
// asset a completed trade moves.
type Movement struct {
	ID           int64     `json:"id"`
	LeagueID     int64     `json:"leagueId"`
	TradeID      int64     `json:"tradeId"`
	AssetType    AssetType `json:"assetType"`
	AssetID      int64     `json:"assetId"`
	FromRosterID int64     `json:"fromRosterId"`
	ToRosterID   int64     `json:"toRosterId"`
	MovedAt      time.Time `json:"movedAt"`
}
