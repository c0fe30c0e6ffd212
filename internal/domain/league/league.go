package league

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"
	"time"
)

// DefaultVetoThreshold is the number of veto votes that kills an
// in-review trade when the league does not override it.
const DefaultVetoThreshold = 4

// Settings holds the league configuration the trade engine consults.
type Settings struct {
	LeagueID           int64      `json:"leagueId"`
	Name               string     `json:"name"`
	CurrentSeason      int        `json:"currentSeason"`
	CurrentWeek        int        `json:"currentWeek"`
	TradeDeadline      *time.Time `json:"tradeDeadline,omitempty"`
	TradeReviewEnabled bool       `json:"tradeReviewEnabled"`
	TradeReviewHours   int        `json:"tradeReviewHours"`
	VetoThreshold      int        `json:"vetoThreshold"`
	RosterCap          int        `json:"rosterCap"`
	// TradePolicy is an optional commissioner-defined boolean
	// expression evaluated against each proposal.
	TradePolicy string `json:"tradePolicy,omitempty"`
}

// EffectiveVetoThreshold applies the default when unset.
func (s *Settings) EffectiveVetoThreshold() int {
	if s.VetoThreshold <= 0 {
		return DefaultVetoThreshold
	}
	return s.VetoThreshold
}

// DeadlinePassed reports whether trading is closed as of now. A nil
// deadline never passes.
func (s *Settings) DeadlinePassed(now time.Time) bool {
	return s.TradeDeadline != nil && now.After(*s.TradeDeadline)
}

// Repository defines the interface for league settings persistence.
type Repository interface {
	// GetSettings returns nil when the league does not exist.
	GetSettings(ctx context.Context, leagueID int64) (*Settings, error)
}
