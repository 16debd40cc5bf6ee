package cryptoengine

import "sync"

// HashState implements the Hashable capability from spec §3: an object
// either holds an optional externally-set hash ("Managed"), or computes its
// own hash on demand and rejects external SetHash ("Self-computing") — the
// tagged variant spec §9 Design Notes describes as
// `{ Managed(Option<Hash>), Self_computing }`.
type HashState struct {
	mu          sync.Mutex
	selfHashing bool
	hash        *Hash
	compute     func() (Hash, error)
}

// NewManagedHashState creates a Hashable whose hash is set/invalidated
// externally.
func NewManagedHashState() *HashState {
	return &HashState{}
}

// NewSelfHashingState creates a Hashable that computes its own hash via
// compute, cached after the first call. SetHash on it always fails.
func NewSelfHashingState(compute func() (Hash, error)) *HashState {
	return &HashState{selfHashing: true, compute: compute}
}

// SelfHashing reports whether this state computes its own hash.
func (s *HashState) SelfHashing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selfHashing
}

// Hash returns the current hash. For a self-hashing state this always
// returns a non-null hash, computing and caching it on first access
// (spec §3 "computes and always returns a non-null hash").
func (s *HashState) Hash() (Hash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selfHashing {
		if s.hash == nil {
			h, err := s.compute()
			if err != nil {
				return Hash{}, err
			}
			s.hash = &h
		}
		return *s.hash, nil
	}
	if s.hash == nil {
		return Hash{}, nil
	}
	return *s.hash, nil
}

// SetHash sets the managed hash. It is rejected for a self-hashing state
// (spec §3 "cannot be externally set").
func (s *HashState) SetHash(h Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selfHashing {
		return newErr(KindIllegalArgument, "cannot set hash on a self-hashing value")
	}
	s.hash = &h
	return nil
}

// Invalidate clears the managed hash. For a self-hashing state this is a
// no-op — a future Hash() call will not recompute unless compute itself
// observes the mutation (spec §3 "invalidate_hash is a no-op or a
// re-compute trigger"; this implementation chooses no-op, leaving
// recomputation to the self-hashing compute function's own judgment).
func (s *HashState) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selfHashing {
		return
	}
	s.hash = nil
}
