package cryptoengine

// nullHashCache precomputes one all-zero Hash per registered DigestType at
// engine construction (spec §4.8 "null hash"), using the unexported
// bypass constructor since NewHash itself rejects all-zero content.
type nullHashCache map[int32]Hash

func newNullHashCache() nullHashCache {
	cache := make(nullHashCache, len(digestByID))
	for id, d := range digestByID {
		cache[id] = newHashBypassEmpty(d, make([]byte, d.OutputLength()))
	}
	return cache
}

// NullHash returns the cached null hash for digestType, or false if none
// is registered (spec §6 "null_hash(type)").
func (e *Engine) NullHash(digestType DigestType) (Hash, bool) {
	h, ok := e.nullHashes[digestType.ID()]
	return h, ok
}
