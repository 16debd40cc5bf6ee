package cryptoengine

import "hash"

// runningHashClassID and runningHashClassVersion are the fixed class
// identity fed into the running-hash preimage ahead of each hash value
// (spec §4.4 "feed its class id, version, and bytes") — a RunningHash has
// one conventional identity regardless of which concrete hash it is
// chaining, the same way the teacher's wire envelopes carry a single fixed
// magic regardless of payload (consensus/merkle.go tag bytes).
const (
	runningHashClassID      int64 = 0x52554e4e494e4748 // "RUNNINGH" in ASCII, used as a stable class identity
	runningHashClassVersion int32 = 1
)

// runningHashInput is (previous hash, new hash); Prev is optional (nil for
// the first link in a chain), New is required (spec §4.4).
type runningHashInput struct {
	Prev *Hash
	New  *Hash
}

// newRunningHashProvider builds the C4/C7 "running hash" primitive
// provider: H(classId, version, prev?, classId, version, new) (spec §4.4,
// §4.7).
func newRunningHashProvider() *CachingProvider[runningHashInput, struct{}, Hash, hash.Hash, DigestType] {
	return NewCachingProvider(
		newAlgorithmForDigestType,
		func(algo hash.Hash, t DigestType, in runningHashInput, _ struct{}) (Hash, error) {
			if in.New == nil {
				return Hash{}, newErr(KindIllegalArgument, "running hash: new_hash must not be null")
			}
			stream := NewHashingStream(algo, nil)
			feed := func(h *Hash) error {
				if err := stream.WriteInt64BE(runningHashClassID); err != nil {
					return err
				}
				if err := stream.WriteInt32BE(runningHashClassVersion); err != nil {
					return err
				}
				_, err := stream.Write(h.Bytes())
				return err
			}
			if in.Prev != nil {
				if err := feed(in.Prev); err != nil {
					return Hash{}, wrapErr(KindBadIO, "running hash: prev", err)
				}
			}
			if err := feed(in.New); err != nil {
				return Hash{}, wrapErr(KindBadIO, "running hash: new", err)
			}
			return NewHash(t, algo.Sum(nil))
		},
		func(algo hash.Hash) { algo.Reset() },
	)
}

// RunningHashSync computes the next running hash in a chain from an
// optional previous hash and a required new hash (spec §6
// "running_hash(prev, new, type)").
func (e *Engine) RunningHashSync(prev *Hash, newHash Hash, digestType DigestType) (Hash, error) {
	return e.runningHashProvider.Compute(runningHashInput{Prev: prev, New: &newHash}, struct{}{}, digestType)
}
