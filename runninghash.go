package cryptoengine

import (
	"context"
	"sync"
)

// RunningHash holds an optional current hash plus a Future that resolves
// once that hash becomes known (spec §3, §4.7). A ledger chains these as
// each new item is appended; consumers that need the hash before it has
// been computed asynchronously wait on the future instead of polling.
type RunningHash struct {
	mu     sync.Mutex
	hash   *Hash
	future *Future[Hash]
}

// NewRunningHash creates an unresolved RunningHash.
func NewRunningHash() *RunningHash {
	return &RunningHash{future: NewFuture[Hash]()}
}

// Hash returns the current hash and whether it is known yet.
func (r *RunningHash) Hash() (Hash, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hash == nil {
		return Hash{}, false
	}
	return *r.hash, true
}

// SetHash resolves the running hash to h. Only the first call has effect
// (spec §4.5 "resolves exactly once").
func (r *RunningHash) SetHash(h Hash) {
	r.mu.Lock()
	if r.hash == nil {
		r.hash = &h
	}
	r.mu.Unlock()
	r.future.Resolve(h, nil)
}

// Wait blocks until the running hash is known or ctx is cancelled.
func (r *RunningHash) Wait(ctx context.Context) (Hash, error) {
	return r.future.Wait(ctx)
}
