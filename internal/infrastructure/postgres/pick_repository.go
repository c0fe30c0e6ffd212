package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/league-hub/league-hub/internal/domain/pick"
)

// PickRepository implements pick.Repository.
type PickRepository struct {
	pool *pgxpool.Pool
}

func NewPickRepository(pool *pgxpool.Pool) *PickRepository {
	return &PickRepository{pool: pool}
}

func (r *PickRepository) GetByIDs(ctx context.Context, ids []int64) ([]pick.Asset, error) {
	rows, err := querier(ctx, r.pool).Query(ctx, `
		SELECT id, league_id, owner_roster_id, original_roster_id, season, round, used, used_at
		FROM pick_assets WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var assets []pick.Asset
	for rows.Next() {
		var a pick.Asset
		if err := rows.Scan(&a.ID, &a.LeagueID, &a.OwnerRosterID, &a.OriginalRosterID, &a.Season, &a.Round, &a.Used, &a.UsedAt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// TransferOwnership is conditional on the expected current owner and
// on the pick being unused, so a concurrent transfer or draft usage
// surfaces as a zero-row update.
func (r *PickRepository) TransferOwnership(ctx context.Context, pickID, fromRosterID, toRosterID int64) (bool, error) {
	tag, err := querier(ctx, r.pool).Exec(ctx, `
		UPDATE pick_assets SET owner_roster_id=$1, updated_at=$2
		WHERE id=$3 AND owner_roster_id=$4 AND used=false
	`, toRosterID, time.Now().UTC(), pickID, fromRosterID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PickRepository) RoundPassed(ctx context.Context, leagueID int64, season, round int) (bool, error) {
	row := querier(ctx, r.pool).QueryRow(ctx, `
		SELECT current_round FROM draft_state WHERE league_id=$1 AND season=$2
	`, leagueID, season)
	var currentRound int
	if err := row.Scan(&currentRound); err != nil {
		if err == pgx.ErrNoRows {
			// No draft in progress for that season.
			return false, nil
		}
		return false, err
	}
	return currentRound > round, nil
}
