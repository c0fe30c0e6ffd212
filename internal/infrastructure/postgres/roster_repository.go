package postgres

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/league-hub/league-hub/internal/domain/roster"
)

// RosterRepository implements roster.Repository.
type RosterRepository struct {
	pool *pgxpool.Pool
}

func NewRosterRepository(pool *pgxpool.Pool) *RosterRepository {
	return &RosterRepository{pool: pool}
}

func (r *RosterRepository) GetByID(ctx context.Context, id int64) (*roster.Roster, error) {
	row := querier(ctx, r.pool).QueryRow(ctx, `
		SELECT id, league_id, name, owner_user_id, created_at FROM rosters WHERE id=$1
	`, id)
	return scanRoster(row)
}

func (r *RosterRepository) GetByLeagueAndUser(ctx context.Context, leagueID, userID int64) (*roster.Roster, error) {
	row := querier(ctx, r.pool).QueryRow(ctx, `
		SELECT id, league_id, name, owner_user_id, created_at
		FROM rosters WHERE league_id=$1 AND owner_user_id=$2
	`, leagueID, userID)
	return scanRoster(row)
}

func (r *RosterRepository) PlayerOwnership(ctx context.Context, leagueID int64, playerIDs []int64) (map[int64]int64, error) {
	rows, err := querier(ctx, r.pool).Query(ctx, `
		SELECT rp.player_id, rp.roster_id
		FROM roster_players rp
		JOIN rosters ro ON ro.id = rp.roster_id
		WHERE ro.league_id = $1 AND rp.player_id = ANY($2)
	`, leagueID, playerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	owners := make(map[int64]int64, len(playerIDs))
	for rows.Next() {
		var playerID, rosterID int64
		if err := rows.Scan(&playerID, &rosterID); err != nil {
			return nil, err
		}
		owners[playerID] = rosterID
	}
	return owners, rows.Err()
}

func (r *RosterRepository) GetPlayers(ctx context.Context, playerIDs []int64) ([]roster.Player, error) {
	rows, err := querier(ctx, r.pool).Query(ctx, `
		SELECT id, name, position FROM players WHERE id = ANY($1)
	`, playerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var players []roster.Player
	for rows.Next() {
		var p roster.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Position); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *RosterRepository) CountPlayers(ctx context.Context, rosterID int64) (int, error) {
	var count int
	err := querier(ctx, r.pool).QueryRow(ctx, `
		SELECT COUNT(*) FROM roster_players WHERE roster_id=$1
	`, rosterID).Scan(&count)
	return count, err
}

// MovePlayers reassigns every player in one UPDATE using a
// case-by-player-id mapping restricted to the expected source rosters.
// A two-step remove-then-add would open a window where a concurrent
// waiver claim sees a temporarily free roster slot; the single
// statement leaves no such window, and the row count tells the caller
// whether any player moved out from under the trade.
func (r *RosterRepository) MovePlayers(ctx context.Context, moves []roster.Move) (int64, error) {
	if len(moves) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	args := make([]interface{}, 0, len(moves)*2+1)
	sb.WriteString("UPDATE roster_players SET roster_id = CASE player_id ")
	for _, m := range moves {
		args = append(args, m.PlayerID, m.ToRosterID)
		sb.WriteString("WHEN $" + strconv.Itoa(len(args)-1) + " THEN $" + strconv.Itoa(len(args)) + "::bigint ")
	}
	sb.WriteString("END, acquired_at = $" + strconv.Itoa(len(args)+1))
	args = append(args, time.Now().UTC())
	sb.WriteString(", acquisition_type = 'TRADE' WHERE (player_id, roster_id) IN (")
	for i, m := range moves {
		if i > 0 {
			sb.WriteString(", ")
		}
		args = append(args, m.PlayerID, m.FromRosterID)
		sb.WriteString("($" + strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")")
	}
	sb.WriteString(")")

	tag, err := querier(ctx, r.pool).Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *RosterRepository) RecordMovements(ctx context.Context, movements []roster.Movement) error {
	q := querier(ctx, r.pool)
	for i := range movements {
		if movements[i].MovedAt.IsZero() {
			movements[i].MovedAt = time.Now().UTC()
		}
		err := q.QueryRow(ctx, `
			INSERT INTO roster_transactions
			(league_id, trade_id, asset_type, asset_id, from_roster_id, to_roster_id, moved_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			RETURNING id
		`, movements[i].LeagueID, movements[i].TradeID, movements[i].AssetType, movements[i].AssetID, movements[i].FromRosterID, movements[i].ToRosterID, movements[i].MovedAt).Scan(&movements[i].ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func scanRoster(row pgx.Row) (*roster.Roster, error) {
	var ro roster.Roster
	if err := row.Scan(&ro.ID, &ro.LeagueID, &ro.Name, &ro.OwnerUserID, &ro.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &ro, nil
}
