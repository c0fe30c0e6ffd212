package trade

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/league-hub/league-hub/internal/domain/apperr"
	"github.com/league-hub/league-hub/internal/domain/event"
	"github.com/league-hub/league-hub/internal/domain/league"
	"github.com/league-hub/league-hub/internal/domain/pick"
	"github.com/league-hub/league-hub/internal/domain/roster"
	"github.com/league-hub/league-hub/internal/domain/trade"
	"github.com/league-hub/league-hub/internal/locking"
)

const (
	defaultOfferTTL    = 7 * 24 * time.Hour
	defaultReviewHours = 24
	sweepBatchSize     = 100
)

// ProposeRequest describes a new trade offer. Offered assets move
// proposer -> recipient; requested assets move recipient -> proposer.
type ProposeRequest struct {
	RecipientRosterID  int64          `json:"recipientRosterId"`
	OfferedPlayerIDs   []int64        `json:"offeredPlayerIds"`
	OfferedPickIDs     []int64        `json:"offeredPickIds"`
	RequestedPlayerIDs []int64        `json:"requestedPlayerIds"`
	RequestedPickIDs   []int64        `json:"requestedPickIds"`
	Message            string         `json:"message"`
	NotifyLeagueChat   bool           `json:"notifyLeagueChat"`
	NotifyDM           bool           `json:"notifyDm"`
	LeagueChatMode     trade.ChatMode `json:"leagueChatMode"`
}

// VoteResult carries the tally after a vote is recorded.
type VoteResult struct {
	Trade     *trade.Trade `json:"trade"`
	Approvals int          `json:"approvals"`
	Vetoes    int          `json:"vetoes"`
}

// Service is the trade state machine. Every mutation acquires ordered
// advisory locks, re-validates under them, and buffers events that the
// service flushes strictly after commit.
type Service struct {
	trades     trade.Repository
	rosters    roster.Repository
	picks      pick.Repository
	leagues    league.Repository
	locks      locking.Manager
	exchanger  *Exchanger
	dispatcher *event.Dispatcher
	offerTTL   time.Duration
	logger     zerolog.Logger
}

func NewService(
	trades trade.Repository,
	rosters roster.Repository,
	picks pick.Repository,
	leagues league.Repository,
	locks locking.Manager,
	exchanger *Exchanger,
	dispatcher *event.Dispatcher,
	offerTTL time.Duration,
	logger zerolog.Logger,
) *Service {
	if offerTTL <= 0 {
		offerTTL = defaultOfferTTL
	}
	return &Service{
		trades:     trades,
		rosters:    rosters,
		picks:      picks,
		leagues:    leagues,
		locks:      locks,
		exchanger:  exchanger,
		dispatcher: dispatcher,
		offerTTL:   offerTTL,
		logger:     logger.With().Str("service", "trade").Logger(),
	}
}

// tradeLocks is the fixed multi-lock set for operations that may move
// assets: both rosters, then the league's trade lock. Sorting inside
// the manager guarantees the deadlock-avoidance order.
func tradeLocks(t *trade.Trade) []locking.Lock {
	return []locking.Lock{
		{Domain: locking.DomainRoster, ID: t.ProposerRosterID},
		{Domain: locking.DomainRoster, ID: t.RecipientRosterID},
		{Domain: locking.DomainTrade, ID: t.LeagueID},
	}
}

// ProposeTrade verifies rosters, deadline, and item availability, then
// creates the trade and its items in one transaction.
func (s *Service) ProposeTrade(ctx context.Context, leagueID, proposerUserID int64, req ProposeRequest) (*trade.Trade, error) {
	settings, err := s.leagues.GetSettings(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperr.NotFound("league %d not found", leagueID)
	}
	proposer, err := s.rosters.GetByLeagueAndUser(ctx, leagueID, proposerUserID)
	if err != nil {
		return nil, err
	}
	if proposer == nil {
		return nil, apperr.NotFound("user %d has no roster in league %d", proposerUserID, leagueID)
	}

	t, buf := (*trade.Trade)(nil), event.NewBuffer()
	err = s.locks.RunWithLocks(ctx, []locking.Lock{
		{Domain: locking.DomainRoster, ID: proposer.ID},
		{Domain: locking.DomainRoster, ID: req.RecipientRosterID},
		{Domain: locking.DomainTrade, ID: leagueID},
	}, func(ctx context.Context) error {
		created, err := s.createProposal(ctx, settings, proposer, req, nil, nil, buf)
		if err != nil {
			return err
		}
		t = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.dispatcher.Flush(ctx, buf)
	return t, nil
}

// createProposal runs inside the lock-protected transaction. parent
// and idemKey are set for counter-proposals.
func (s *Service) createProposal(ctx context.Context, settings *league.Settings, proposer *roster.Roster, req ProposeRequest, parent *trade.Trade, idemKey *string, buf *event.Buffer) (*trade.Trade, error) {
	now := time.Now().UTC()
	if settings.DeadlinePassed(now) {
		return nil, apperr.Validation("league trade deadline has passed")
	}
	recipient, err := s.rosters.GetByID(ctx, req.RecipientRosterID)
	if err != nil {
		return nil, err
	}
	if recipient == nil || recipient.LeagueID != settings.LeagueID {
		return nil, apperr.NotFound("roster %d not found in league %d", req.RecipientRosterID, settings.LeagueID)
	}
	if recipient.ID == proposer.ID {
		return nil, apperr.Validation("cannot trade with your own roster")
	}
	if len(req.RequestedPlayerIDs)+len(req.RequestedPickIDs) == 0 {
		return nil, apperr.Validation("no items requested")
	}

	playerCount := len(req.OfferedPlayerIDs) + len(req.RequestedPlayerIDs)
	pickCount := len(req.OfferedPickIDs) + len(req.RequestedPickIDs)
	ok, err := EvaluatePolicy(settings.TradePolicy, map[string]interface{}{
		"playerItems": playerCount,
		"pickItems":   pickCount,
		"totalItems":  playerCount + pickCount,
		"week":        settings.CurrentWeek,
		"season":      settings.CurrentSeason,
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("league_id", settings.LeagueID).Msg("trade policy evaluation failed")
	} else if !ok {
		return nil, apperr.Validation("trade violates the league trade policy")
	}

	t := &trade.Trade{
		LeagueID:          settings.LeagueID,
		ProposerRosterID:  proposer.ID,
		RecipientRosterID: recipient.ID,
		Status:            trade.StatusPending,
		IdempotencyKey:    idemKey,
		ExpiresAt:         now.Add(s.offerTTL),
		Season:            settings.CurrentSeason,
		Week:              settings.CurrentWeek,
		Message:           req.Message,
		NotifyLeagueChat:  req.NotifyLeagueChat,
		NotifyDM:          req.NotifyDM,
		LeagueChatMode:    req.LeagueChatMode,
	}
	if parent != nil {
		t.ParentTradeID = &parent.ID
	}
	if t.LeagueChatMode == "" {
		t.LeagueChatMode = trade.ChatModeSummary
	}

	items, err := s.buildItems(ctx, proposer.ID, recipient.ID, req)
	if err != nil {
		return nil, err
	}
	if err := s.exchanger.Validate(ctx, t, items); err != nil {
		return nil, err
	}
	if err := s.checkRosterCaps(ctx, settings, proposer.ID, recipient.ID, req); err != nil {
		return nil, err
	}

	playerIDs := append(append([]int64{}, req.OfferedPlayerIDs...), req.RequestedPlayerIDs...)
	pickIDs := append(append([]int64{}, req.OfferedPickIDs...), req.RequestedPickIDs...)
	var exclude int64
	if parent != nil {
		exclude = parent.ID
	}
	pledged, err := s.trades.ItemsPledgedElsewhere(ctx, settings.LeagueID, playerIDs, pickIDs, exclude)
	if err != nil {
		return nil, err
	}
	if pledged {
		return nil, apperr.Conflict("an item is already committed to another open trade")
	}

	if err := s.trades.Create(ctx, t, items); err != nil {
		return nil, err
	}
	t.Items = items
	buf.Append(event.New(event.TypeTradeProposed, t.LeagueID, t.ID, tradeEventPayload(t)))
	return t, nil
}

// buildItems resolves requested asset ids into immutable trade items,
// snapshotting display fields at proposal time.
func (s *Service) buildItems(ctx context.Context, proposerID, recipientID int64, req ProposeRequest) ([]trade.Item, error) {
	var items []trade.Item

	addPlayers := func(ids []int64, from, to int64) error {
		if len(ids) == 0 {
			return nil
		}
		players, err := s.rosters.GetPlayers(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[int64]roster.Player, len(players))
		for _, p := range players {
			byID[p.ID] = p
		}
		for _, id := range ids {
			p, ok := byID[id]
			if !ok {
				return apperr.NotFound("player %d not found", id)
			}
			items = append(items, trade.Item{
				Asset:        trade.PlayerAsset{PlayerID: p.ID, Name: p.Name, Position: p.Position},
				FromRosterID: from,
				ToRosterID:   to,
			})
		}
		return nil
	}
	addPicks := func(ids []int64, from, to int64) error {
		if len(ids) == 0 {
			return nil
		}
		assets, err := s.picks.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[int64]pick.Asset, len(assets))
		for _, a := range assets {
			byID[a.ID] = a
		}
		for _, id := range ids {
			a, ok := byID[id]
			if !ok {
				return apperr.NotFound("pick asset %d not found", id)
			}
			items = append(items, trade.Item{
				Asset:        trade.PickAsset{PickAssetID: a.ID, Season: a.Season, Round: a.Round},
				FromRosterID: from,
				ToRosterID:   to,
			})
		}
		return nil
	}

	if err := addPlayers(req.OfferedPlayerIDs, proposerID, recipientID); err != nil {
		return nil, err
	}
	if err := addPlayers(req.RequestedPlayerIDs, recipientID, proposerID); err != nil {
		return nil, err
	}
	if err := addPicks(req.OfferedPickIDs, proposerID, recipientID); err != nil {
		return nil, err
	}
	if err := addPicks(req.RequestedPickIDs, recipientID, proposerID); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) checkRosterCaps(ctx context.Context, settings *league.Settings, proposerID, recipientID int64, req ProposeRequest) error {
	if settings.RosterCap <= 0 {
		return nil
	}
	proposerCount, err := s.rosters.CountPlayers(ctx, proposerID)
	if err != nil {
		return err
	}
	recipientCount, err := s.rosters.CountPlayers(ctx, recipientID)
	if err != nil {
		return err
	}
	if proposerCount+len(req.RequestedPlayerIDs)-len(req.OfferedPlayerIDs) > settings.RosterCap {
		return apperr.Validation("trade would exceed the proposer roster size limit of %d", settings.RosterCap)
	}
	if recipientCount+len(req.OfferedPlayerIDs)-len(req.RequestedPlayerIDs) > settings.RosterCap {
		return apperr.Validation("trade would exceed the recipient roster size limit of %d", settings.RosterCap)
	}
	return nil
}

// AcceptTrade completes the trade immediately or, when the league
// requires review, opens the review window. Retries of an already
// accepted trade return the current state with no re-execution and no
// re-emission.
func (s *Service) AcceptTrade(ctx context.Context, tradeID, userID int64) (*trade.Trade, error) {
	t, err := s.loadTrade(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRoster(ctx, t.RecipientRosterID, userID, "only the recipient may accept a trade"); err != nil {
		return nil, err
	}

	var result *trade.Trade
	buf := event.NewBuffer()
	err = s.locks.RunWithLocks(ctx, tradeLocks(t), func(ctx context.Context) error {
		for {
			cur, err := s.loadTrade(ctx, tradeID)
			if err != nil {
				return err
			}
			switch cur.Status {
			case trade.StatusAccepted, trade.StatusCompleted, trade.StatusInReview:
				// Idempotent retry: another request already won.
				result = cur
				return nil
			case trade.StatusPending:
			default:
				return apperr.Validation("trade is %s and can no longer be accepted", cur.Status)
			}

			settings, err := s.leagues.GetSettings(ctx, cur.LeagueID)
			if err != nil {
				return err
			}
			if settings == nil {
				return apperr.NotFound("league %d not found", cur.LeagueID)
			}
			items, err := s.trades.ListItems(ctx, cur.ID)
			if err != nil {
				return err
			}
			// Items can go stale during the recipient's decision
			// window; re-validate before any transition.
			if err := s.exchanger.Validate(ctx, cur, items); err != nil {
				return err
			}

			if settings.TradeReviewEnabled {
				hours := settings.TradeReviewHours
				if hours <= 0 {
					hours = defaultReviewHours
				}
				now := time.Now().UTC()
				window := trade.ReviewWindow{StartsAt: now, EndsAt: now.Add(time.Duration(hours) * time.Hour)}
				ok, err := s.trades.CASStatusInReview(ctx, cur.ID, window)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				cur.Status = trade.StatusInReview
				cur.ReviewStartsAt = &window.StartsAt
				cur.ReviewEndsAt = &window.EndsAt
				buf.Append(event.New(event.TypeTradeReviewStarted, cur.LeagueID, cur.ID, tradeEventPayload(cur)))
				result = cur
				return nil
			}

			if err := s.exchanger.Execute(ctx, cur, items, buf); err != nil {
				return err
			}
			now := time.Now().UTC()
			ok, err := s.trades.CASStatusCompleted(ctx, cur.ID, trade.StatusPending, now)
			if err != nil {
				return err
			}
			if !ok {
				// The swap already ran in this transaction; rolling
				// back is the only safe answer to a lost race here.
				return apperr.Conflict("trade status changed during completion")
			}
			cur.Status = trade.StatusCompleted
			cur.CompletedAt = &now
			cur.Items = items
			buf.Append(event.New(event.TypeTradeCompleted, cur.LeagueID, cur.ID, tradeEventPayload(cur)))
			result = cur
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	s.dispatcher.Flush(ctx, buf)
	return result, nil
}

// RejectTrade is recipient-only; a retry of an already rejected trade
// returns it unchanged.
func (s *Service) RejectTrade(ctx context.Context, tradeID, userID int64) (*trade.Trade, error) {
	return s.resolve(ctx, tradeID, userID, trade.StatusRejected, event.TypeTradeRejected, false,
		"only the recipient may reject a trade")
}

// CancelTrade is proposer-only; a retry of an already cancelled trade
// returns it unchanged.
func (s *Service) CancelTrade(ctx context.Context, tradeID, userID int64) (*trade.Trade, error) {
	return s.resolve(ctx, tradeID, userID, trade.StatusCancelled, event.TypeTradeCancelled, true,
		"only the proposer may cancel a trade")
}

func (s *Service) resolve(ctx context.Context, tradeID, userID int64, target trade.Status, evType event.Type, byProposer bool, denial string) (*trade.Trade, error) {
	t, err := s.loadTrade(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	actorRoster := t.RecipientRosterID
	if byProposer {
		actorRoster = t.ProposerRosterID
	}
	if err := s.authorizeRoster(ctx, actorRoster, userID, denial); err != nil {
		return nil, err
	}

	var result *trade.Trade
	buf := event.NewBuffer()
	err = s.locks.RunWithLock(ctx, locking.Lock{Domain: locking.DomainTrade, ID: t.LeagueID}, func(ctx context.Context) error {
		for {
			cur, err := s.loadTrade(ctx, tradeID)
			if err != nil {
				return err
			}
			if cur.Status == target {
				// Idempotent retry: no side effects, no events.
				result = cur
				return nil
			}
			if cur.Status != trade.StatusPending {
				return apperr.Validation("trade is %s and can no longer be %s", cur.Status, target)
			}
			ok, err := s.trades.CASStatus(ctx, cur.ID, trade.StatusPending, target)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			cur.Status = target
			buf.Append(event.New(evType, cur.LeagueID, cur.ID, tradeEventPayload(cur)))
			result = cur
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	s.dispatcher.Flush(ctx, buf)
	return result, nil
}

// CounterTrade marks the original countered and proposes a new trade
// with proposer and recipient swapped. A replay carrying the same
// idempotency key resolves to the already-created counter-trade.
func (s *Service) CounterTrade(ctx context.Context, tradeID, userID int64, req ProposeRequest, idemKey *string) (*trade.Trade, error) {
	t, err := s.loadTrade(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRoster(ctx, t.RecipientRosterID, userID, "only the recipient may counter a trade"); err != nil {
		return nil, err
	}
	settings, err := s.leagues.GetSettings(ctx, t.LeagueID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperr.NotFound("league %d not found", t.LeagueID)
	}
	counterProposer, err := s.rosters.GetByID(ctx, t.RecipientRosterID)
	if err != nil {
		return nil, err
	}
	if counterProposer == nil {
		return nil, apperr.NotFound("roster %d not found", t.RecipientRosterID)
	}
	req.RecipientRosterID = t.ProposerRosterID

	var result *trade.Trade
	buf := event.NewBuffer()
	err = s.locks.RunWithLocks(ctx, tradeLocks(t), func(ctx context.Context) error {
		if idemKey != nil {
			existing, err := s.trades.GetByIdempotencyKey(ctx, t.LeagueID, *idemKey)
			if err != nil {
				return err
			}
			if existing != nil {
				// Replay: the counter was already created under this
				// key. No insert, no events.
				result = existing
				return nil
			}
		}
		for {
			cur, err := s.loadTrade(ctx, tradeID)
			if err != nil {
				return err
			}
			if cur.Status != trade.StatusPending {
				return apperr.Validation("trade is %s and can no longer be countered", cur.Status)
			}
			ok, err := s.trades.CASStatus(ctx, cur.ID, trade.StatusPending, trade.StatusCountered)
			if err != nil {
				return err
			}
			if ok {
				break
			}
		}
		counter, err := s.createProposal(ctx, settings, counterProposer, req, t, idemKey, buf)
		if err != nil {
			return err
		}
		buf.Append(event.New(event.TypeTradeCountered, t.LeagueID, t.ID, map[string]interface{}{
			"counterTradeId": counter.ID,
		}))
		result = counter
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.dispatcher.Flush(ctx, buf)
	return result, nil
}

// VoteTrade records a league member's vote on an in-review trade and
// vetoes the trade once the league threshold is reached.
func (s *Service) VoteTrade(ctx context.Context, tradeID, userID int64, choice trade.VoteChoice) (*VoteResult, error) {
	t, err := s.loadTrade(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	voter, err := s.rosters.GetByLeagueAndUser(ctx, t.LeagueID, userID)
	if err != nil {
		return nil, err
	}
	if voter == nil {
		return nil, apperr.NotFound("user %d has no roster in league %d", userID, t.LeagueID)
	}
	if voter.ID == t.ProposerRosterID || voter.ID == t.RecipientRosterID {
		return nil, apperr.Forbidden("trade participants may not vote on their own trade")
	}
	if choice != trade.VoteApprove && choice != trade.VoteVeto {
		return nil, apperr.Validation("vote must be %s or %s", trade.VoteApprove, trade.VoteVeto)
	}

	var result *VoteResult
	buf := event.NewBuffer()
	err = s.locks.RunWithLock(ctx, locking.Lock{Domain: locking.DomainTrade, ID: t.LeagueID}, func(ctx context.Context) error {
		cur, err := s.loadTrade(ctx, tradeID)
		if err != nil {
			return err
		}
		if cur.Status != trade.StatusInReview {
			return apperr.Validation("votes are only accepted while the trade is in review")
		}
		exists, err := s.trades.HasVote(ctx, cur.ID, voter.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("roster %d has already voted on this trade", voter.ID)
		}
		if err := s.trades.CreateVote(ctx, &trade.Vote{TradeID: cur.ID, RosterID: voter.ID, Choice: choice}); err != nil {
			return err
		}
		approvals, vetoes, err := s.trades.CountVotes(ctx, cur.ID)
		if err != nil {
			return err
		}
		settings, err := s.leagues.GetSettings(ctx, cur.LeagueID)
		if err != nil {
			return err
		}
		if settings == nil {
			return apperr.NotFound("league %d not found", cur.LeagueID)
		}

		if vetoes >= settings.EffectiveVetoThreshold() {
			ok, err := s.trades.CASStatusFailed(ctx, cur.ID, trade.StatusInReview, trade.StatusVetoed, "vetoed by league vote")
			if err != nil {
				return err
			}
			if !ok {
				return apperr.Conflict("trade status changed during veto")
			}
			cur.Status = trade.StatusVetoed
			buf.Append(event.New(event.TypeTradeVetoed, cur.LeagueID, cur.ID, map[string]interface{}{
				"vetoes": vetoes,
			}))
		} else {
			buf.Append(event.New(event.TypeTradeVoteCast, cur.LeagueID, cur.ID, map[string]interface{}{
				"rosterId":  voter.ID,
				"vote":      choice,
				"approvals": approvals,
				"vetoes":    vetoes,
			}))
		}
		result = &VoteResult{Trade: cur, Approvals: approvals, Vetoes: vetoes}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.dispatcher.Flush(ctx, buf)
	return result, nil
}

// ProcessExpiredTrades moves pending trades past their expiry to
// EXPIRED. The CAS discipline means a sweep racing a live user action
// never overwrites a concurrently resolved trade.
func (s *Service) ProcessExpiredTrades(ctx context.Context) (int, error) {
	candidates, err := s.trades.ListExpired(ctx, time.Now().UTC(), sweepBatchSize)
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, t := range candidates {
		buf := event.NewBuffer()
		err := s.locks.RunWithLock(ctx, locking.Lock{Domain: locking.DomainTrade, ID: t.LeagueID}, func(ctx context.Context) error {
			ok, err := s.trades.CASStatus(ctx, t.ID, trade.StatusPending, trade.StatusExpired)
			if err != nil {
				return err
			}
			if ok {
				buf.Append(event.New(event.TypeTradeExpired, t.LeagueID, t.ID, nil))
			}
			return nil
		})
		if err != nil {
			s.logger.Error().Err(err).Int64("trade_id", t.ID).Msg("expire sweep failed")
			continue
		}
		if buf.Len() > 0 {
			expired++
			s.dispatcher.Flush(ctx, buf)
		}
	}
	return expired, nil
}

// ProcessReviewCompleteTrades finalizes in-review trades whose window
// has closed: vetoed when the threshold was reached, completed
// otherwise. A trade whose items went stale during review expires with
// the conflict recorded as its failure reason.
func (s *Service) ProcessReviewCompleteTrades(ctx context.Context) (int, error) {
	candidates, err := s.trades.ListReviewComplete(ctx, time.Now().UTC(), sweepBatchSize)
	if err != nil {
		return 0, err
	}
	processed := 0
	for _, t := range candidates {
		buf := event.NewBuffer()
		err := s.locks.RunWithLocks(ctx, tradeLocks(t), func(ctx context.Context) error {
			return s.finalizeReview(ctx, t.ID, buf)
		})
		if err != nil {
			if apperr.IsConflict(err) {
				s.failReview(ctx, t, err.Error())
				processed++
				continue
			}
			s.logger.Error().Err(err).Int64("trade_id", t.ID).Msg("review sweep failed")
			continue
		}
		if buf.Len() > 0 {
			processed++
			s.dispatcher.Flush(ctx, buf)
		}
	}
	return processed, nil
}

func (s *Service) finalizeReview(ctx context.Context, tradeID int64, buf *event.Buffer) error {
	cur, err := s.loadTrade(ctx, tradeID)
	if err != nil {
		return err
	}
	if cur.Status != trade.StatusInReview {
		return nil
	}
	if cur.ReviewEndsAt == nil || time.Now().UTC().Before(*cur.ReviewEndsAt) {
		return nil
	}
	settings, err := s.leagues.GetSettings(ctx, cur.LeagueID)
	if err != nil {
		return err
	}
	if settings == nil {
		return apperr.NotFound("league %d not found", cur.LeagueID)
	}
	_, vetoes, err := s.trades.CountVotes(ctx, cur.ID)
	if err != nil {
		return err
	}
	if vetoes >= settings.EffectiveVetoThreshold() {
		ok, err := s.trades.CASStatusFailed(ctx, cur.ID, trade.StatusInReview, trade.StatusVetoed, "vetoed by league vote")
		if err != nil {
			return err
		}
		if ok {
			buf.Append(event.New(event.TypeTradeVetoed, cur.LeagueID, cur.ID, map[string]interface{}{"vetoes": vetoes}))
		}
		return nil
	}

	items, err := s.trades.ListItems(ctx, cur.ID)
	if err != nil {
		return err
	}
	if err := s.exchanger.Execute(ctx, cur, items, buf); err != nil {
		return err
	}
	now := time.Now().UTC()
	ok, err := s.trades.CASStatusCompleted(ctx, cur.ID, trade.StatusInReview, now)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Conflict("trade status changed during review completion")
	}
	cur.Status = trade.StatusCompleted
	cur.CompletedAt = &now
	cur.Items = items
	buf.Append(event.New(event.TypeTradeCompleted, cur.LeagueID, cur.ID, tradeEventPayload(cur)))
	return nil
}

// failReview expires an in-review trade whose exchange can no longer
// execute, recording why.
func (s *Service) failReview(ctx context.Context, t *trade.Trade, reason string) {
	buf := event.NewBuffer()
	err := s.locks.RunWithLock(ctx, locking.Lock{Domain: locking.DomainTrade, ID: t.LeagueID}, func(ctx context.Context) error {
		ok, err := s.trades.CASStatusFailed(ctx, t.ID, trade.StatusInReview, trade.StatusExpired, reason)
		if err != nil {
			return err
		}
		if ok {
			buf.Append(event.New(event.TypeTradeExpired, t.LeagueID, t.ID, map[string]interface{}{
				"failureReason": reason,
			}))
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("trade_id", t.ID).Msg("failed to expire conflicted review trade")
		return
	}
	s.dispatcher.Flush(ctx, buf)
}

// GetTradesForLeague lists trades without taking locks; callers must
// tolerate slightly stale state.
func (s *Service) GetTradesForLeague(ctx context.Context, leagueID int64, status *trade.Status, limit, offset int) ([]*trade.Trade, error) {
	settings, err := s.leagues.GetSettings(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperr.NotFound("league %d not found", leagueID)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	trades, err := s.trades.ListByLeague(ctx, leagueID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	// Item loads run against the pool, not a shared transaction, so
	// they can fan out safely.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, t := range trades {
		t := t
		g.Go(func() error {
			items, err := s.trades.ListItems(gctx, t.ID)
			if err != nil {
				return err
			}
			t.Items = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trades, nil
}

// GetTradeByID fetches one trade with its items.
func (s *Service) GetTradeByID(ctx context.Context, tradeID int64) (*trade.Trade, error) {
	t, err := s.loadTrade(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	items, err := s.trades.ListItems(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return t, nil
}

// ListVotes returns the votes cast on a trade.
func (s *Service) ListVotes(ctx context.Context, tradeID int64) ([]*trade.Vote, error) {
	if _, err := s.loadTrade(ctx, tradeID); err != nil {
		return nil, err
	}
	return s.trades.ListVotes(ctx, tradeID)
}

func (s *Service) loadTrade(ctx context.Context, tradeID int64) (*trade.Trade, error) {
	t, err := s.trades.GetByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("trade %d not found", tradeID)
	}
	return t, nil
}

func (s *Service) authorizeRoster(ctx context.Context, rosterID, userID int64, denial string) error {
	ro, err := s.rosters.GetByID(ctx, rosterID)
	if err != nil {
		return err
	}
	if ro == nil {
		return apperr.NotFound("roster %d not found", rosterID)
	}
	if ro.OwnerUserID != userID {
		return apperr.Forbidden("%s", denial)
	}
	return nil
}

func tradeEventPayload(t *trade.Trade) map[string]interface{} {
	payload := map[string]interface{}{
		"leagueId":          t.LeagueID,
		"proposerRosterId":  t.ProposerRosterID,
		"recipientRosterId": t.RecipientRosterID,
		"status":            t.Status,
		"notifyLeagueChat":  t.NotifyLeagueChat,
		"notifyDm":          t.NotifyDM,
		"leagueChatMode":    t.LeagueChatMode,
	}
	if t.ReviewEndsAt != nil {
		payload["reviewEndsAt"] = t.ReviewEndsAt.Format(time.RFC3339)
	}
	if t.CompletedAt != nil {
		payload["completedAt"] = t.CompletedAt.Format(time.RFC3339)
	}
	if t.Message != "" {
		payload["message"] = t.Message
	}
	return payload
}
