package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("pending fans out", func(t *testing.T) {
		for _, to := range []Status{StatusAccepted, StatusInReview, StatusCompleted, StatusRejected, StatusCancelled, StatusCountered, StatusExpired} {
			assert.True(t, CanTransition(StatusPending, to), "PENDING -> %s", to)
		}
		assert.False(t, CanTransition(StatusPending, StatusVetoed))
	})

	t.Run("in review resolves three ways", func(t *testing.T) {
		assert.True(t, CanTransition(StatusInReview, StatusCompleted))
		assert.True(t, CanTransition(StatusInReview, StatusVetoed))
		assert.True(t, CanTransition(StatusInReview, StatusExpired))
		assert.False(t, CanTransition(StatusInReview, StatusRejected))
		assert.False(t, CanTransition(StatusInReview, StatusPending))
	})

	t.Run("terminal states go nowhere", func(t *testing.T) {
		for _, from := range []Status{StatusCompleted, StatusRejected, StatusCancelled, StatusCountered, StatusExpired, StatusVetoed} {
			for _, to := range []Status{StatusPending, StatusAccepted, StatusInReview, StatusCompleted, StatusRejected, StatusCancelled, StatusCountered, StatusExpired, StatusVetoed} {
				assert.False(t, CanTransition(from, to), "%s -> %s must be illegal", from, to)
			}
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := []Status{StatusCompleted, StatusRejected, StatusCancelled, StatusCountered, StatusExpired, StatusVetoed}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "%s", s)
	}
	for _, s := range []Status{StatusPending, StatusAccepted, StatusInReview} {
		assert.False(t, s.IsTerminal(), "%s", s)
	}
}

func TestItem_Asset(t *testing.T) {
	player := Item{Asset: PlayerAsset{PlayerID: 42, Name: "J. Chase", Position: "WR"}}
	assert.True(t, player.IsPlayer())
	assert.Equal(t, int64(42), player.Asset.AssetID())

	pick := Item{Asset: PickAsset{PickAssetID: 7, Season: 2027, Round: 1}}
	assert.False(t, pick.IsPlayer())
	assert.Equal(t, int64(7), pick.Asset.AssetID())
}
