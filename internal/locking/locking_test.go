package locking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSorted(t *testing.T) {
	t.Run("rosters before trades, ids ascending", func(t *testing.T) {
		locks := []Lock{
			{Domain: DomainTrade, ID: 5},
			{Domain: DomainRoster, ID: 9},
			{Domain: DomainRoster, ID: 2},
		}
		got := Sorted(locks)
		require.Len(t, got, 3)
		assert.Equal(t, Lock{Domain: DomainRoster, ID: 2}, got[0])
		assert.Equal(t, Lock{Domain: DomainRoster, ID: 9}, got[1])
		assert.Equal(t, Lock{Domain: DomainTrade, ID: 5}, got[2])
	})

	t.Run("input is not mutated", func(t *testing.T) {
		locks := []Lock{
			{Domain: DomainTrade, ID: 1},
			{Domain: DomainRoster, ID: 1},
		}
		_ = Sorted(locks)
		assert.Equal(t, DomainTrade, locks[0].Domain)
	})

	t.Run("any permutation yields the same order", func(t *testing.T) {
		a := []Lock{{DomainRoster, 3}, {DomainRoster, 7}, {DomainTrade, 1}}
		b := []Lock{{DomainTrade, 1}, {DomainRoster, 7}, {DomainRoster, 3}}
		c := []Lock{{DomainRoster, 7}, {DomainTrade, 1}, {DomainRoster, 3}}
		assert.Equal(t, Sorted(a), Sorted(b))
		assert.Equal(t, Sorted(a), Sorted(c))
	})
}

func TestLock_Key(t *testing.T) {
	t.Run("same id in different domains never collides", func(t *testing.T) {
		roster := Lock{Domain: DomainRoster, ID: 123}
		trade := Lock{Domain: DomainTrade, ID: 123}
		assert.NotEqual(t, roster.Key(), trade.Key())
	})

	t.Run("domain tag occupies the top byte", func(t *testing.T) {
		l := Lock{Domain: DomainTrade, ID: 42}
		assert.Equal(t, int64(2), l.Key()>>56)
		assert.Equal(t, int64(42), l.Key()&0x00FFFFFFFFFFFFFF)
	})

	t.Run("distinct ids produce distinct keys", func(t *testing.T) {
		seen := make(map[int64]bool)
		for id := int64(0); id < 1000; id++ {
			k := Lock{Domain: DomainRoster, ID: id}.Key()
			assert.False(t, seen[k], "key collision at id %d", id)
			seen[k] = true
		}
	})
}

func TestPriority(t *testing.T) {
	assert.Less(t, Priority(DomainRoster), Priority(DomainTrade))
	assert.Greater(t, Priority(Domain("UNKNOWN")), Priority(DomainTrade))
}
