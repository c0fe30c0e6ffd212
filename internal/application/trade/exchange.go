package trade

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/league-hub/league-hub/internal/domain/apperr"
	"github.com/league-hub/league-hub/internal/domain/event"
	"github.com/league-hub/league-hub/internal/domain/pick"
	"github.com/league-hub/league-hub/internal/domain/roster"
	"github.com/league-hub/league-hub/internal/domain/trade"
)

// Exchanger validates and performs the atomic multi-item ownership
// swap for a trade. It must only run inside the lock-protected
// transaction that will commit the swap; any violation it finds aborts
// the whole trade with Conflict and no partial movement.
type Exchanger struct {
	rosters roster.Repository
	picks   pick.Repository
	logger  zerolog.Logger
}

func NewExchanger(rosters roster.Repository, picks pick.Repository, logger zerolog.Logger) *Exchanger {
	return &Exchanger{
		rosters: rosters,
		picks:   picks,
		logger:  logger.With().Str("service", "exchanger").Logger(),
	}
}

// Validate re-checks every item's current ownership and availability.
// Items can go stale between proposal and the decision under lock, so
// this runs again immediately before any swap.
func (e *Exchanger) Validate(ctx context.Context, t *trade.Trade, items []trade.Item) error {
	playerItems, pickItems := splitItems(items)

	if len(playerItems) > 0 {
		ids := make([]int64, 0, len(playerItems))
		for _, item := range playerItems {
			ids = append(ids, item.Asset.AssetID())
		}
		owners, err := e.rosters.PlayerOwnership(ctx, t.LeagueID, ids)
		if err != nil {
			return fmt.Errorf("check player ownership: %w", err)
		}
		for _, item := range playerItems {
			owner, ok := owners[item.Asset.AssetID()]
			if !ok || owner != item.FromRosterID {
				a := item.Asset.(trade.PlayerAsset)
				return apperr.Conflict("player %s is no longer on roster %d", a.Name, item.FromRosterID)
			}
		}
	}

	if len(pickItems) > 0 {
		ids := make([]int64, 0, len(pickItems))
		byID := make(map[int64]trade.Item, len(pickItems))
		for _, item := range pickItems {
			ids = append(ids, item.Asset.AssetID())
			byID[item.Asset.AssetID()] = item
		}
		assets, err := e.picks.GetByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("load pick assets: %w", err)
		}
		found := make(map[int64]pick.Asset, len(assets))
		for _, a := range assets {
			found[a.ID] = a
		}
		// Sequential checks keep first-failure reporting stable.
		for _, item := range pickItems {
			a, ok := found[item.Asset.AssetID()]
			if !ok {
				return apperr.Conflict("pick asset %d no longer exists", item.Asset.AssetID())
			}
			if a.OwnerRosterID != item.FromRosterID {
				return apperr.Conflict("pick asset %d is no longer owned by roster %d", a.ID, item.FromRosterID)
			}
			if a.Used {
				return apperr.Conflict("pick asset %d has already been used", a.ID)
			}
			passed, err := e.picks.RoundPassed(ctx, t.LeagueID, a.Season, a.Round)
			if err != nil {
				return fmt.Errorf("check draft round: %w", err)
			}
			if passed {
				return apperr.Conflict("round %d of the %d draft has already passed", a.Round, a.Season)
			}
		}
	}

	return nil
}

// Execute re-validates and then moves every asset. Player movement is
// one atomic statement whose row count must equal the player-item
// count; pick transfers are per-row conditional updates issued
// sequentially on the lock-holding transaction. Movement events are
// appended to buf, not dispatched.
func (e *Exchanger) Execute(ctx context.Context, t *trade.Trade, items []trade.Item, buf *event.Buffer) error {
	if err := e.Validate(ctx, t, items); err != nil {
		return err
	}

	playerItems, pickItems := splitItems(items)

	if len(playerItems) > 0 {
		moves := make([]roster.Move, 0, len(playerItems))
		for _, item := range playerItems {
			moves = append(moves, roster.Move{
				PlayerID:     item.Asset.AssetID(),
				FromRosterID: item.FromRosterID,
				ToRosterID:   item.ToRosterID,
			})
		}
		affected, err := e.rosters.MovePlayers(ctx, moves)
		if err != nil {
			return fmt.Errorf("move players: %w", err)
		}
		if affected != int64(len(moves)) {
			// A concurrent mutation (waiver claim, drop) moved a
			// player mid-flight; abort rather than complete partially.
			return apperr.Conflict("expected %d player moves, applied %d", len(moves), affected)
		}
	}

	// Pick transfers run one at a time: ctx carries the single
	// transaction holding the locks, and a pgx connection allows only
	// one in-flight statement.
	for _, item := range pickItems {
		ok, err := e.picks.TransferOwnership(ctx, item.Asset.AssetID(), item.FromRosterID, item.ToRosterID)
		if err != nil {
			return fmt.Errorf("transfer pick %d: %w", item.Asset.AssetID(), err)
		}
		if !ok {
			return apperr.Conflict("pick asset %d changed hands mid-flight", item.Asset.AssetID())
		}
	}

	movements := make([]roster.Movement, 0, len(items))
	for _, item := range items {
		assetType := roster.AssetPick
		if item.IsPlayer() {
			assetType = roster.AssetPlayer
		}
		movements = append(movements, roster.Movement{
			LeagueID:     t.LeagueID,
			TradeID:      t.ID,
			AssetType:    assetType,
			AssetID:      item.Asset.AssetID(),
			FromRosterID: item.FromRosterID,
			ToRosterID:   item.ToRosterID,
		})
		buf.Append(event.New(event.TypeAssetMoved, t.LeagueID, t.ID, map[string]interface{}{
			"assetType":    assetType,
			"assetId":      item.Asset.AssetID(),
			"fromRosterId": item.FromRosterID,
			"toRosterId":   item.ToRosterID,
		}))
	}
	if err := e.rosters.RecordMovements(ctx, movements); err != nil {
		return fmt.Errorf("record movements: %w", err)
	}

	e.logger.Info().
		Int64("trade_id", t.ID).
		Int("players", len(playerItems)).
		Int("picks", len(pickItems)).
		Msg("exchange executed")
	return nil
}

func splitItems(items []trade.Item) (players, picks []trade.Item) {
	for _, item := range items {
		if item.IsPlayer() {
			players = append(players, item)
		} else {
			picks = append(picks, item)
		}
	}
	return players, picks
}
