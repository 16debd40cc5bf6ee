package cryptoengine

import (
	"hash"
	"io"
)

// SelfSerializable is an item capable of writing its own canonical byte
// form — including its class identifier and version — through a
// HashingStream (spec §4.4 "self-serializable digest").
type SelfSerializable interface {
	WriteSelfTo(w *HashingStream) error
}

// HashingStream forwards every byte written through it to an underlying
// digest, and optionally tees the same bytes to a downstream io.Writer
// (spec §4.4: "a hashing stream that both forwards bytes to the underlying
// digest and may forward them to a downstream stream").
type HashingStream struct {
	digest     hash.Hash
	downstream io.Writer
}

// NewHashingStream wraps digest, optionally teeing to downstream (pass nil
// for no downstream forwarding).
func NewHashingStream(digest hash.Hash, downstream io.Writer) *HashingStream {
	return &HashingStream{digest: digest, downstream: downstream}
}

// WriteByte writes a single byte to the digest (and downstream, if set).
func (s *HashingStream) WriteByte(b byte) error {
	_, err := s.Write([]byte{b})
	return err
}

// Write writes p to the digest (and downstream, if set). A zero-length
// write is a no-op (spec §4.4).
func (s *HashingStream) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := s.digest.Write(p)
	if err != nil {
		return n, err
	}
	if s.downstream != nil {
		if _, err := s.downstream.Write(p); err != nil {
			return n, err
		}
	}
	return n, nil
}

// WriteInt64BE writes v as a fixed-width 8-byte big-endian field — the
// conventional width for a Hedera-platform-style class identifier.
func (s *HashingStream) WriteInt64BE(v int64) error {
	var buf [8]byte
	u := uint64(v)
	for i := 7; i >= 0; i-- {
		buf[i] = byte(u)
		u >>= 8
	}
	_, err := s.Write(buf[:])
	return err
}

// WriteInt32BE writes v as a fixed-width 4-byte big-endian field — the
// conventional width for a class version.
func (s *HashingStream) WriteInt32BE(v int32) error {
	var buf [4]byte
	u := uint32(v)
	for i := 3; i >= 0; i-- {
		buf[i] = byte(u)
		u >>= 8
	}
	_, err := s.Write(buf[:])
	return err
}

// WriteVarBytes writes a varint length prefix followed by p, for
// variable-length fields inside a canonical byte form (grounded on the
// teacher's CompactSize varint in consensus/compactsize*.go).
func (s *HashingStream) WriteVarBytes(p []byte) error {
	prefixed := appendVarint(nil, uint64(len(p)))
	if _, err := s.Write(prefixed); err != nil {
		return err
	}
	_, err := s.Write(p)
	return err
}

// newSelfHashProvider builds the C4 "self-serializable digest" primitive
// provider: resets the cached algorithm, asks item to write its canonical
// form through a HashingStream, returns the resulting Hash (spec §4.4).
func newSelfHashProvider() *CachingProvider[SelfSerializable, struct{}, Hash, hash.Hash, DigestType] {
	return NewCachingProvider(
		newAlgorithmForDigestType,
		func(algo hash.Hash, t DigestType, item SelfSerializable, _ struct{}) (Hash, error) {
			stream := NewHashingStream(algo, nil)
			if err := item.WriteSelfTo(stream); err != nil {
				return Hash{}, wrapErr(KindBadIO, "self-serializable digest: write canonical form", err)
			}
			return NewHash(t, algo.Sum(nil))
		},
		func(algo hash.Hash) { algo.Reset() },
	)
}

// DigestSelfSerializable computes the digest of item's canonical byte form
// under digestType (spec §6 "digest(serializable, type)").
func (e *Engine) DigestSelfSerializable(item SelfSerializable, digestType DigestType) (Hash, error) {
	return e.selfHashProvider.Compute(item, struct{}{}, digestType)
}
