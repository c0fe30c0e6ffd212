package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/league-hub/league-hub/internal/domain/trade"
)

const tradeColumns = `id, league_id, proposer_roster_id, recipient_roster_id, status, parent_trade_id, idempotency_key, expires_at, review_starts_at, review_ends_at, season, week, message, completed_at, notify_league_chat, notify_dm, league_chat_mode, failure_reason, created_at, updated_at`

// TradeRepository implements trade.Repository.
type TradeRepository struct {
	pool *pgxpool.Pool
}

func NewTradeRepository(pool *pgxpool.Pool) *TradeRepository {
	return &TradeRepository{pool: pool}
}

func (r *TradeRepository) Create(ctx context.Context, t *trade.Trade, items []trade.Item) error {
	q := querier(ctx, r.pool)
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	err := q.QueryRow(ctx, `
		INSERT INTO trades
		(league_id, proposer_roster_id, recipient_roster_id, status, parent_trade_id, idempotency_key, expires_at, review_starts_at, review_ends_at, season, week, message, completed_at, notify_league_chat, notify_dm, league_chat_mode, failure_reason, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		RETURNING id
	`, t.LeagueID, t.ProposerRosterID, t.RecipientRosterID, t.Status, t.ParentTradeID, t.IdempotencyKey, t.ExpiresAt, t.ReviewStartsAt, t.ReviewEndsAt, t.Season, t.Week, t.Message, t.CompletedAt, t.NotifyLeagueChat, t.NotifyDM, t.LeagueChatMode, t.FailureReason, t.CreatedAt, t.UpdatedAt).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}

	for i := range items {
		items[i].TradeID = t.ID
		var playerID, pickID *int64
		var name, position *string
		var season, round *int
		switch a := items[i].Asset.(type) {
		case trade.PlayerAsset:
			playerID = &a.PlayerID
			name = &a.Name
			position = &a.Position
		case trade.PickAsset:
			pickID = &a.PickAssetID
			season = &a.Season
			round = &a.Round
		default:
			return fmt.Errorf("trade item %d has no asset", i)
		}
		err := q.QueryRow(ctx, `
			INSERT INTO trade_items
			(trade_id, player_id, draft_pick_asset_id, from_roster_id, to_roster_id, player_name, player_position, pick_season, pick_round)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			RETURNING id
		`, t.ID, playerID, pickID, items[i].FromRosterID, items[i].ToRosterID, name, position, season, round).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("insert trade item: %w", err)
		}
	}
	return nil
}

func (r *TradeRepository) GetByID(ctx context.Context, id int64) (*trade.Trade, error) {
	row := querier(ctx, r.pool).QueryRow(ctx, `
		SELECT `+tradeColumns+` FROM trades WHERE id=$1
	`, id)
	return scanTrade(row)
}

func (r *TradeRepository) GetByIdempotencyKey(ctx context.Context, leagueID int64, key string) (*trade.Trade, error) {
	row := querier(ctx, r.pool).QueryRow(ctx, `
		SELECT `+tradeColumns+` FROM trades WHERE league_id=$1 AND idempotency_key=$2
	`, leagueID, key)
	return scanTrade(row)
}

func (r *TradeRepository) ListByLeague(ctx context.Context, leagueID int64, status *trade.Status, limit, offset int) ([]*trade.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE league_id=$1`
	args := []interface{}{leagueID}
	idx := 2
	if status != nil {
		query += " AND status=$" + strconv.Itoa(idx)
		args = append(args, *status)
		idx++
	}
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(idx) + " OFFSET $" + strconv.Itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := querier(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var trades []*trade.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func (r *TradeRepository) ListItems(ctx context.Context, tradeID int64) ([]trade.Item, error) {
	rows, err := querier(ctx, r.pool).Query(ctx, `
		SELECT id, trade_id, player_id, draft_pick_asset_id, from_roster_id, to_roster_id, player_name, player_position, pick_season, pick_round
		FROM trade_items WHERE trade_id=$1 ORDER BY id ASC
	`, tradeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []trade.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *TradeRepository) CASStatus(ctx context.Context, id int64, from, to trade.Status) (bool, error) {
	tag, err := querier(ctx, r.pool).Exec(ctx, `
		UPDATE trades SET status=$1, updated_at=$2 WHERE id=$3 AND status=$4
	`, to, time.Now().UTC(), id, from)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TradeRepository) CASStatusCompleted(ctx context.Context, id int64, from trade.Status, completedAt time.Time) (bool, error) {
	tag, err := querier(ctx, r.pool).Exec(ctx, `
		UPDATE trades SET status=$1, completed_at=$2, updated_at=$3 WHERE id=$4 AND status=$5
	`, trade.StatusCompleted, completedAt, time.Now().UTC(), id, from)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TradeRepository) CASStatusInReview(ctx context.Context, id int64, window trade.ReviewWindow) (bool, error) {
	tag, err := querier(ctx, r.pool).Exec(ctx, `
		UPDATE trades SET status=$1, review_starts_at=$2, review_ends_at=$3, updated_at=$4 WHERE id=$5 AND status=$6
	`, trade.StatusInReview, window.StartsAt, window.EndsAt, time.Now().UTC(), id, trade.StatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TradeRepository) CASStatusFailed(ctx context.Context, id int64, from, to trade.Status, reason string) (bool, error) {
	tag, err := querier(ctx, r.pool).Exec(ctx, `
		UPDATE trades SET status=$1, failure_reason=$2, updated_at=$3 WHERE id=$4 AND status=$5
	`, to, reason, time.Now().UTC(), id, from)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TradeRepository) ItemsPledgedElsewhere(ctx context.Context, leagueID int64, playerIDs, pickIDs []int64, excludeTradeID int64) (bool, error) {
	row := querier(ctx, r.pool).QueryRow(ctx, `
		SELECT 1
		FROM trade_items ti
		JOIN trades t ON t.id = ti.trade_id
		WHERE t.league_id = $1
		  AND t.status IN ($2, $3)
		  AND t.id <> $4
		  AND (ti.player_id = ANY($5) OR ti.draft_pick_asset_id = ANY($6))
		LIMIT 1
	`, leagueID, trade.StatusPending, trade.StatusInReview, excludeTradeID, playerIDs, pickIDs)
	var v int
	if err := row.Scan(&v); err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *TradeRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]*trade.Trade, error) {
	return r.listByStatusDeadline(ctx, trade.StatusPending, "expires_at", now, limit)
}

func (r *TradeRepository) ListReviewComplete(ctx context.Context, now time.Time, limit int) ([]*trade.Trade, error) {
	return r.listByStatusDeadline(ctx, trade.StatusInReview, "review_ends_at", now, limit)
}

func (r *TradeRepository) listByStatusDeadline(ctx context.Context, status trade.Status, column string, now time.Time, limit int) ([]*trade.Trade, error) {
	rows, err := querier(ctx, r.pool).Query(ctx, `
		SELECT `+tradeColumns+` FROM trades
		WHERE status=$1 AND `+column+` <= $2
		ORDER BY `+column+` ASC
		LIMIT $3
	`, status, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var trades []*trade.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func (r *TradeRepository) CreateVote(ctx context.Context, v *trade.Vote) error {
	v.CastAt = time.Now().UTC()
	return querier(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO trade_votes (trade_id, roster_id, vote, cast_at)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, v.TradeID, v.RosterID, v.Choice, v.CastAt).Scan(&v.ID)
}

func (r *TradeRepository) HasVote(ctx context.Context, tradeID, rosterID int64) (bool, error) {
	row := querier(ctx, r.pool).QueryRow(ctx, `
		SELECT 1 FROM trade_votes WHERE trade_id=$1 AND roster_id=$2 LIMIT 1
	`, tradeID, rosterID)
	var v int
	if err := row.Scan(&v); err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *TradeRepository) CountVotes(ctx context.Context, tradeID int64) (int, int, error) {
	row := querier(ctx, r.pool).QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE vote=$2) AS approvals,
			COUNT(*) FILTER (WHERE vote=$3) AS vetoes
		FROM trade_votes WHERE trade_id=$1
	`, tradeID, trade.VoteApprove, trade.VoteVeto)
	var approvals int
	var vetoes int
	if err := row.Scan(&approvals, &vetoes); err != nil {
		return 0, 0, err
	}
	return approvals, vetoes, nil
}

func (r *TradeRepository) ListVotes(ctx context.Context, tradeID int64) ([]*trade.Vote, error) {
	rows, err := querier(ctx, r.pool).Query(ctx, `
		SELECT id, trade_id, roster_id, vote, cast_at
		FROM trade_votes WHERE trade_id=$1 ORDER BY cast_at ASC
	`, tradeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var votes []*trade.Vote
	for rows.Next() {
		var v trade.Vote
		if err := rows.Scan(&v.ID, &v.TradeID, &v.RosterID, &v.Choice, &v.CastAt); err != nil {
			return nil, err
		}
		votes = append(votes, &v)
	}
	return votes, rows.Err()
}

func scanTrade(row pgx.Row) (*trade.Trade, error) {
	var t trade.Trade
	if err := row.Scan(&t.ID, &t.LeagueID, &t.ProposerRosterID, &t.RecipientRosterID, &t.Status, &t.ParentTradeID, &t.IdempotencyKey, &t.ExpiresAt, &t.ReviewStartsAt, &t.ReviewEndsAt, &t.Season, &t.Week, &t.Message, &t.CompletedAt, &t.NotifyLeagueChat, &t.NotifyDM, &t.LeagueChatMode, &t.FailureReason, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func scanItem(row pgx.Row) (trade.Item, error) {
	var item trade.Item
	var playerID, pickID *int64
	var name, position *string
	var season, round *int
	if err := row.Scan(&item.ID, &item.TradeID, &playerID, &pickID, &item.FromRosterID, &item.ToRosterID, &name, &position, &season, &round); err != nil {
		return trade.Item{}, err
	}
	switch {
	case playerID != nil:
		a := trade.PlayerAsset{PlayerID: *playerID}
		if name != nil {
			a.Name = *name
		}
		if position != nil {
			a.Position = *position
		}
		item.Asset = a
	case pickID != nil:
		a := trade.PickAsset{PickAssetID: *pickID}
		if season != nil {
			a.Season = *season
		}
		if round != nil {
			a.Round = *round
		}
		item.Asset = a
	default:
		return trade.Item{}, fmt.Errorf("trade item %d has neither player nor pick", item.ID)
	}
	return item, nil
}
