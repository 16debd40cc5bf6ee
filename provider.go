package cryptoengine

import "sync"

// OperationProvider is the generic "given an item and algorithm type,
// produce a result" contract (spec §4.3). LoadAlgorithm may be expensive
// and is the thing callers want cached; HandleItem is the pure per-item
// work performed with an already-loaded algorithm instance.
type OperationProvider[Input any, Aux any, Output any, Algorithm any, AlgoType comparable] interface {
	LoadAlgorithm(t AlgoType) (Algorithm, error)
	HandleItem(algo Algorithm, t AlgoType, input Input, aux Aux) (Output, error)
}

// Compute is the "load then handle" convenience operation from spec §4.3,
// expressed as a free function since Go methods cannot introduce new type
// parameters beyond their receiver's.
func Compute[Input any, Aux any, Output any, Algorithm any, AlgoType comparable](
	p OperationProvider[Input, Aux, Output, Algorithm, AlgoType],
	input Input,
	aux Aux,
	t AlgoType,
) (Output, error) {
	algo, err := p.LoadAlgorithm(t)
	if err != nil {
		var zero Output
		return zero, err
	}
	return p.HandleItem(algo, t, input, aux)
}

// algoError wraps a LoadAlgorithm failure so it can ride through a
// sync.Pool (which has no error-returning Get).
type algoError struct{ err error }

// CachingProvider adds a per-algorithm-type cache of loaded algorithm
// instances in front of an OperationProvider (spec §4.3 "caching operation
// provider").
//
// The spec models this as a per-thread cache keyed by algorithm-type
// ordinal, because the underlying primitive instances (message digests,
// etc.) are not safe for concurrent use. Go has no thread-local storage, so
// this is modeled with one sync.Pool per algorithm type: Get/Put discipline
// already guarantees an instance is owned by exactly one goroutine at a
// time, which is the property the spec actually needs — "per-thread" is an
// implementation detail of the original runtime, not an externally visible
// contract. See SPEC_FULL.md §4.3 / DESIGN.md for this adaptation.
type CachingProvider[Input any, Aux any, Output any, Algorithm any, AlgoType comparable] struct {
	load   func(AlgoType) (Algorithm, error)
	handle func(Algorithm, AlgoType, Input, Aux) (Output, error)
	reset  func(Algorithm)
	pools  sync.Map // AlgoType -> *sync.Pool
}

// NewCachingProvider builds a CachingProvider from a LoadAlgorithm and
// HandleItem function pair, plus an optional reset hook invoked on every
// borrow (digest algorithms must be Reset before reuse; pass nil if the
// algorithm needs no reset).
func NewCachingProvider[Input any, Aux any, Output any, Algorithm any, AlgoType comparable](
	load func(AlgoType) (Algorithm, error),
	handle func(Algorithm, AlgoType, Input, Aux) (Output, error),
	reset func(Algorithm),
) *CachingProvider[Input, Aux, Output, Algorithm, AlgoType] {
	return &CachingProvider[Input, Aux, Output, Algorithm, AlgoType]{load: load, handle: handle, reset: reset}
}

func (p *CachingProvider[Input, Aux, Output, Algorithm, AlgoType]) LoadAlgorithm(t AlgoType) (Algorithm, error) {
	return p.load(t)
}

func (p *CachingProvider[Input, Aux, Output, Algorithm, AlgoType]) HandleItem(algo Algorithm, t AlgoType, input Input, aux Aux) (Output, error) {
	return p.handle(algo, t, input, aux)
}

func (p *CachingProvider[Input, Aux, Output, Algorithm, AlgoType]) poolFor(t AlgoType) *sync.Pool {
	if v, ok := p.pools.Load(t); ok {
		return v.(*sync.Pool)
	}
	newPool := &sync.Pool{
		New: func() any {
			algo, err := p.load(t)
			if err != nil {
				return algoError{err: err}
			}
			return algo
		},
	}
	actual, _ := p.pools.LoadOrStore(t, newPool)
	return actual.(*sync.Pool)
}

// Compute loads (from cache, when available) the algorithm for t and runs
// HandleItem against it, returning the borrowed instance to the cache
// afterward (spec §4.3). A LoadAlgorithm failure surfaces as
// KindNoSuchAlgorithm.
func (p *CachingProvider[Input, Aux, Output, Algorithm, AlgoType]) Compute(input Input, aux Aux, t AlgoType) (Output, error) {
	var zero Output
	pool := p.poolFor(t)
	v := pool.Get()
	if failed, ok := v.(algoError); ok {
		return zero, wrapErr(KindNoSuchAlgorithm, "load algorithm", failed.err)
	}
	algo := v.(Algorithm)
	defer pool.Put(algo)
	if p.reset != nil {
		p.reset(algo)
	}
	return p.handle(algo, t, input, aux)
}

// EvictAll drops every cached algorithm instance for t, forcing the next
// Compute to reload it (spec §4.3 "entries live... until explicitly
// evicted").
func (p *CachingProvider[Input, Aux, Output, Algorithm, AlgoType]) EvictAll(t AlgoType) {
	p.pools.Delete(t)
}
