// Package locking defines transaction-scoped mutual exclusion over
// (domain, id) resources. Lock acquisition follows a fixed total order
// (domains by priority, ids ascending within a domain), so any two
// multi-lock acquisitions that share resources request them in the
// same relative order and can never deadlock.
package locking

import (
	"context"
	"sort"
)

// Domain is a named lock region.
type Domain string

const (
	DomainRoster Domain = "ROSTER"
	DomainTrade  Domain = "TRADE"
)

// priority fixes the cross-domain acquisition order. ROSTER locks are
// always taken before TRADE locks.
var priority = map[Domain]int{
	DomainRoster: 1,
	DomainTrade:  2,
}

// Priority returns the acquisition rank of d. Unknown domains sort
// last.
func Priority(d Domain) int {
	if p, ok := priority[d]; ok {
		return p
	}
	return int(^uint(0) >> 1)
}

// Lock identifies one lockable resource.
type Lock struct {
	Domain Domain
	ID     int64
}

// Key encodes a lock into the single int64 keyspace of
// pg_advisory_xact_lock. The domain tag occupies the top byte; ids are
// assumed to fit in 56 bits.
func (l Lock) Key() int64 {
	return int64(Priority(l.Domain))<<56 | (l.ID & 0x00FFFFFFFFFFFFFF)
}

// Sorted returns a copy of locks in acquisition order.
func Sorted(locks []Lock) []Lock {
	out := make([]Lock, len(locks))
	copy(out, locks)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := Priority(out[i].Domain), Priority(out[j].Domain)
		if pi != pj {
			return pi < pj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Manager acquires ordered, transaction-scoped locks. The closure runs
// with the transaction carried in its context; repositories pick it up
// transparently. Locks are released by commit or rollback, never
// explicitly. An error from fn rolls back and propagates.
//
// No application-level timeout bounds the lock wait; the database's
// own statement timeout is the only bound.
type Manager interface {
	RunWithLock(ctx context.Context, lock Lock, fn func(ctx context.Context) error) error
	RunWithLocks(ctx context.Context, locks []Lock, fn func(ctx context.Context) error) error
}
