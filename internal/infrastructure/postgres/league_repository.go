package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/league-hub/league-hub/internal/domain/league"
)

// LeagueRepository implements league.Repository.
type LeagueRepository struct {
	pool *pgxpool.Pool
}

func NewLeagueRepository(pool *pgxpool.Pool) *LeagueRepository {
	return &LeagueRepository{pool: pool}
}

func (r *LeagueRepository) GetSettings(ctx context.Context, leagueID int64) (*league.Settings, error) {
	row := querier(ctx, r.pool).QueryRow(ctx, `
		SELECT id, name, current_season, current_week, trade_deadline, trade_review_enabled, trade_review_hours, veto_threshold, roster_cap, trade_policy
		FROM leagues WHERE id=$1
	`, leagueID)
	var s league.Settings
	var policy *string
	if err := row.Scan(&s.LeagueID, &s.Name, &s.CurrentSeason, &s.CurrentWeek, &s.TradeDeadline, &s.TradeReviewEnabled, &s.TradeReviewHours, &s.VetoThreshold, &s.RosterCap, &policy); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if policy != nil {
		s.TradePolicy = *policy
	}
	return &s, nil
}
