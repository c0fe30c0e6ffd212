package trade

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/league-hub/league-hub/internal/domain/apperr"
	"github.com/league-hub/league-hub/internal/domain/event"
	"github.com/league-hub/league-hub/internal/domain/pick"
	pickMocks "github.com/league-hub/league-hub/internal/domain/pick/mocks"
	"github.com/league-hub/league-hub/internal/domain/roster"
	rosterMocks "github.com/league-hub/league-hub/internal/domain/roster/mocks"
	"github.com/league-hub/league-hub/internal/domain/trade"
)

func playerItem(playerID, from, to int64) trade.Item {
	return trade.Item{
		Asset:        trade.PlayerAsset{PlayerID: playerID, Name: "Player", Position: "RB"},
		FromRosterID: from,
		ToRosterID:   to,
	}
}

func pickItem(pickID, from, to int64) trade.Item {
	return trade.Item{
		Asset:        trade.PickAsset{PickAssetID: pickID, Season: 2027, Round: 2},
		FromRosterID: from,
		ToRosterID:   to,
	}
}

func TestExchanger_Validate(t *testing.T) {
	tr := &trade.Trade{ID: 1, LeagueID: 10}

	t.Run("player moved off the source roster", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rosters := rosterMocks.NewMockRepository(ctrl)
		picks := pickMocks.NewMockRepository(ctrl)
		ex := NewExchanger(rosters, picks, zerolog.Nop())

		rosters.EXPECT().
			PlayerOwnership(gomock.Any(), int64(10), []int64{100}).
			Return(map[int64]int64{100: 9}, nil)

		err := ex.Validate(context.Background(), tr, []trade.Item{playerItem(100, 1, 2)})
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("used pick", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rosters := rosterMocks.NewMockRepository(ctrl)
		picks := pickMocks.NewMockRepository(ctrl)
		ex := NewExchanger(rosters, picks, zerolog.Nop())

		picks.EXPECT().
			GetByIDs(gomock.Any(), []int64{200}).
			Return([]pick.Asset{{ID: 200, LeagueID: 10, OwnerRosterID: 1, Season: 2027, Round: 2, Used: true}}, nil)

		err := ex.Validate(context.Background(), tr, []trade.Item{pickItem(200, 1, 2)})
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("round already drafted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rosters := rosterMocks.NewMockRepository(ctrl)
		picks := pickMocks.NewMockRepository(ctrl)
		ex := NewExchanger(rosters, picks, zerolog.Nop())

		picks.EXPECT().
			GetByIDs(gomock.Any(), []int64{200}).
			Return([]pick.Asset{{ID: 200, LeagueID: 10, OwnerRosterID: 1, Season: 2027, Round: 2}}, nil)
		picks.EXPECT().
			RoundPassed(gomock.Any(), int64(10), 2027, 2).
			Return(true, nil)

		err := ex.Validate(context.Background(), tr, []trade.Item{pickItem(200, 1, 2)})
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
	})
}

func TestExchanger_Execute(t *testing.T) {
	tr := &trade.Trade{ID: 1, LeagueID: 10}

	t.Run("swap succeeds and logs every movement", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rosters := rosterMocks.NewMockRepository(ctrl)
		picks := pickMocks.NewMockRepository(ctrl)
		ex := NewExchanger(rosters, picks, zerolog.Nop())

		items := []trade.Item{playerItem(100, 1, 2), playerItem(101, 2, 1), pickItem(200, 1, 2)}

		rosters.EXPECT().
			PlayerOwnership(gomock.Any(), int64(10), []int64{100, 101}).
			Return(map[int64]int64{100: 1, 101: 2}, nil)
		picks.EXPECT().
			GetByIDs(gomock.Any(), []int64{200}).
			Return([]pick.Asset{{ID: 200, LeagueID: 10, OwnerRosterID: 1, Season: 2027, Round: 2}}, nil)
		picks.EXPECT().
			RoundPassed(gomock.Any(), int64(10), 2027, 2).
			Return(false, nil)
		rosters.EXPECT().
			MovePlayers(gomock.Any(), []roster.Move{
				{PlayerID: 100, FromRosterID: 1, ToRosterID: 2},
				{PlayerID: 101, FromRosterID: 2, ToRosterID: 1},
			}).
			Return(int64(2), nil)
		picks.EXPECT().
			TransferOwnership(gomock.Any(), int64(200), int64(1), int64(2)).
			Return(true, nil)
		rosters.EXPECT().
			RecordMovements(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, movements []roster.Movement) error {
				require.Len(t, movements, 3)
				assert.Equal(t, roster.AssetPlayer, movements[0].AssetType)
				assert.Equal(t, roster.AssetPick, movements[2].AssetType)
				for _, m := range movements {
					assert.Equal(t, int64(1), m.TradeID)
					assert.Equal(t, int64(10), m.LeagueID)
				}
				return nil
			})

		buf := event.NewBuffer()
		err := ex.Execute(context.Background(), tr, items, buf)
		require.NoError(t, err)
		assert.Equal(t, 3, buf.Len())
		for _, e := range buf.Drain() {
			assert.Equal(t, event.TypeAssetMoved, e.Type)
		}
	})

	t.Run("player row count mismatch aborts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rosters := rosterMocks.NewMockRepository(ctrl)
		picks := pickMocks.NewMockRepository(ctrl)
		ex := NewExchanger(rosters, picks, zerolog.Nop())

		items := []trade.Item{playerItem(100, 1, 2), playerItem(101, 2, 1)}

		rosters.EXPECT().
			PlayerOwnership(gomock.Any(), int64(10), []int64{100, 101}).
			Return(map[int64]int64{100: 1, 101: 2}, nil)
		rosters.EXPECT().
			MovePlayers(gomock.Any(), gomock.Any()).
			Return(int64(1), nil)

		buf := event.NewBuffer()
		err := ex.Execute(context.Background(), tr, items, buf)
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
		assert.Equal(t, 0, buf.Len())
	})

	t.Run("pick transfers are issued one statement at a time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rosters := rosterMocks.NewMockRepository(ctrl)
		picks := pickMocks.NewMockRepository(ctrl)
		ex := NewExchanger(rosters, picks, zerolog.Nop())

		items := []trade.Item{pickItem(200, 1, 2), pickItem(201, 2, 1)}

		picks.EXPECT().
			GetByIDs(gomock.Any(), []int64{200, 201}).
			Return([]pick.Asset{
				{ID: 200, LeagueID: 10, OwnerRosterID: 1, Season: 2027, Round: 2},
				{ID: 201, LeagueID: 10, OwnerRosterID: 2, Season: 2027, Round: 2},
			}, nil)
		picks.EXPECT().
			RoundPassed(gomock.Any(), int64(10), 2027, 2).
			Return(false, nil).Times(2)

		// The ctx given to Execute carries the one lock-holding
		// transaction; a second statement arriving while the first is
		// still in flight would hit pgx's one-statement-per-connection
		// limit. Hold each call open briefly so any overlap shows up.
		var inFlight, maxInFlight int32
		picks.EXPECT().
			TransferOwnership(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, int64, int64, int64) (bool, error) {
				cur := atomic.AddInt32(&inFlight, 1)
				for {
					seen := atomic.LoadInt32(&maxInFlight)
					if cur <= seen || atomic.CompareAndSwapInt32(&maxInFlight, seen, cur) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				return true, nil
			}).Times(2)
		rosters.EXPECT().RecordMovements(gomock.Any(), gomock.Any()).Return(nil)

		buf := event.NewBuffer()
		err := ex.Execute(context.Background(), tr, items, buf)
		require.NoError(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight),
			"transfers must not overlap on the transactional connection")
		assert.Equal(t, 2, buf.Len())
	})

	t.Run("pick transfer lost the race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rosters := rosterMocks.NewMockRepository(ctrl)
		picks := pickMocks.NewMockRepository(ctrl)
		ex := NewExchanger(rosters, picks, zerolog.Nop())

		items := []trade.Item{pickItem(200, 1, 2)}

		picks.EXPECT().
			GetByIDs(gomock.Any(), []int64{200}).
			Return([]pick.Asset{{ID: 200, LeagueID: 10, OwnerRosterID: 1, Season: 2027, Round: 2}}, nil)
		picks.EXPECT().
			RoundPassed(gomock.Any(), int64(10), 2027, 2).
			Return(false, nil)
		picks.EXPECT().
			TransferOwnership(gomock.Any(), int64(200), int64(1), int64(2)).
			Return(false, nil)

		buf := event.NewBuffer()
		err := ex.Execute(context.Background(), tr, items, buf)
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
	})
}
