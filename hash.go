package cryptoengine

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// Hash is an immutable digest value paired with its DigestType. The backing
// array is sized to the largest registered digest so construction never
// allocates on the hashing hot path (grounded on the teacher's fixed-width
// [32]byte txid/merkle-node idiom in consensus/merkle.go).
type Hash struct {
	digestType DigestType
	length     int
	data       [MaxDigestLen]byte
}

// NewHash constructs a Hash of the given digest type from b. It rejects a
// length mismatch and an all-zero buffer (spec §3, §4.2); the latter is the
// invariant the null-hash cache deliberately bypasses via newHashBypassEmpty.
func NewHash(digestType DigestType, b []byte) (Hash, error) {
	if len(b) != digestType.OutputLength() {
		return Hash{}, newErr(KindBadIO, fmt.Sprintf("hash length %d does not match %s output length %d", len(b), digestType.Name(), digestType.OutputLength()))
	}
	if allZero(b) {
		return Hash{}, newErr(KindEmptyHashValue, "hash bytes are all zero")
	}
	return newHashBypassEmpty(digestType, b), nil
}

// newHashBypassEmpty constructs a Hash without the all-zero rejection. It
// exists solely for the null-hash cache (spec §4.8) and must not be exported.
func newHashBypassEmpty(digestType DigestType, b []byte) Hash {
	var h Hash
	h.digestType = digestType
	h.length = len(b)
	copy(h.data[:], b)
	return h
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// DigestType returns the digest type this hash was produced by.
func (h Hash) DigestType() DigestType { return h.digestType }

// Bytes returns a defensive copy of the digest bytes (spec §3 "immutable
// hash... accessor returns a defensive copy").
func (h Hash) Bytes() []byte {
	out := make([]byte, h.length)
	copy(out, h.data[:h.length])
	return out
}

// Equal reports whether two hashes have the same digest type and bytes
// (spec §3, §8).
func (h Hash) Equal(other Hash) bool {
	if h.digestType.id != other.digestType.id || h.length != other.length {
		return false
	}
	return bytes.Equal(h.data[:h.length], other.data[:other.length])
}

// Compare defines the hash total order: first by digest-type identifier,
// then lexicographically on bytes (spec §3, §8).
func (h Hash) Compare(other Hash) int {
	if h.digestType.id != other.digestType.id {
		if h.digestType.id < other.digestType.id {
			return -1
		}
		return 1
	}
	return bytes.Compare(h.data[:h.length], other.data[:other.length])
}

// Less reports whether h sorts strictly before other under Compare.
func (h Hash) Less(other Hash) bool { return h.Compare(other) < 0 }

// String renders the hash as uppercase hex (spec §4.2).
func (h Hash) String() string {
	return fmt.Sprintf("%X", h.data[:h.length])
}

// IsZero reports whether h is the unset zero value (no digest type).
func (h Hash) IsZero() bool { return h.length == 0 && h.digestType.length == 0 }

func hexString(b []byte) string { return hex.EncodeToString(b) }
