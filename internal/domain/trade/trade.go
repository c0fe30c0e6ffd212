package trade

import (
	"time"
)

// Status represents the lifecycle state of a trade.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusInReview  Status = "IN_REVIEW"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
	StatusCountered Status = "COUNTERED"
	StatusExpired   Status = "EXPIRED"
	StatusVetoed    Status = "VETOED"
)

// transitions is the full status graph. A status missing from the map
// is terminal.
var transitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusInReview, StatusCompleted, StatusRejected, StatusCancelled, StatusCountered, StatusExpired},
	StatusAccepted: {StatusCompleted},
	StatusInReview: {StatusCompleted, StatusVetoed, StatusExpired},
}

// CanTransition reports whether from -> to is a legal move on the
// status graph.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no operation may move the trade out of s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// VoteChoice is a league member's vote on an in-review trade.
type VoteChoice string

const (
	VoteApprove VoteChoice = "APPROVE"
	VoteVeto    VoteChoice = "VETO"
)

// ChatMode selects how the league chat announces a trade. Cosmetic,
// never part of correctness.
type ChatMode string

const (
	ChatModeFull    ChatMode = "FULL"
	ChatModeSummary ChatMode = "SUMMARY"
	ChatModeSilent  ChatMode = "SILENT"
)

// Trade is an agreement to exchange players and pick assets between
// two rosters in a league.
type Trade struct {
	ID                int64      `json:"id"`
	LeagueID          int64      `json:"leagueId"`
	ProposerRosterID  int64      `json:"proposerRosterId"`
	RecipientRosterID int64      `json:"recipientRosterId"`
	Status            Status     `json:"status"`
	ParentTradeID     *int64     `json:"parentTradeId,omitempty"`
	IdempotencyKey    *string    `json:"-"`
	ExpiresAt         time.Time  `json:"expiresAt"`
	ReviewStartsAt    *time.Time `json:"reviewStartsAt,omitempty"`
	ReviewEndsAt      *time.Time `json:"reviewEndsAt,omitempty"`
	Season            int        `json:"season"`
	Week              int        `json:"week"`
	Message           string     `json:"message,omitempty"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	NotifyLeagueChat  bool       `json:"notifyLeagueChat"`
	NotifyDM          bool       `json:"notifyDm"`
	LeagueChatMode    ChatMode   `json:"leagueChatMode"`
	FailureReason     *string    `json:"failureReason,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`

	Items []Item `json:"items,omitempty"`
}

// ItemAsset is the asset moving in one direction within a trade:
// either a player or a draft-pick entitlement, never both.
type ItemAsset interface {
	isAsset()
	// AssetID is the id of the underlying player or pick row.
	AssetID() int64
}

// PlayerAsset identifies a player plus display fields captured at
// proposal time so the audit record stays stable.
type PlayerAsset struct {
	PlayerID int64  `json:"playerId"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

func (PlayerAsset) isAsset()         {}
func (a PlayerAsset) AssetID() int64 { return a.PlayerID }

// PickAsset identifies a draft-pick entitlement plus its captured
// season/round.
type PickAsset struct {
	PickAssetID int64 `json:"draftPickAssetId"`
	Season      int   `json:"season"`
	Round       int   `json:"round"`
}

func (PickAsset) isAsset()         {}
func (a PickAsset) AssetID() int64 { return a.PickAssetID }

// Item is one asset moving in one direction within a trade. Items are
// immutable once created; a change to a trade's item set is modeled as
// cancel + counter.
type Item struct {
	ID           int64     `json:"id"`
	TradeID      int64     `json:"tradeId"`
	Asset        ItemAsset `json:"asset"`
	FromRosterID int64     `json:"fromRosterId"`
	ToRosterID   int64     `json:"toRosterId"`
}

// IsPlayer reports whether the item moves a player.
func (i Item) IsPlayer() bool {
	_, ok := i.Asset.(PlayerAsset)
	return ok
}

// Vote is a non-participant roster's vote on an in-review trade.
// At most one vote per (trade, roster).
type Vote struct {
	ID       int64      `json:"id"`
	TradeID  int64      `json:"tradeId"`
	RosterID int64      `json:"rosterId"`
	Choice   VoteChoice `json:"vote"`
	CastAt   time.Time  `json:"castAt"`
}
