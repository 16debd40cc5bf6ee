package cryptoengine

import (
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/sha3"
)

// digestInput is the payload slice a message-digest provider hashes,
// described by an (offset, length) pair rather than a reslice so callers
// can hand over a borrowed buffer without copying (spec §3 "Message").
//
// SHA-384/512 are stdlib primitives (crypto/sha512) rather than a pack
// dependency — see DESIGN.md for the required justification.
type digestInput struct {
	Payload []byte
	Offset  int
	Length  int
}

func newAlgorithmForDigestType(t DigestType) (hash.Hash, error) {
	switch t.id {
	case DigestSHA384.id:
		return sha512.New384(), nil
	case DigestSHA512.id:
		return sha512.New(), nil
	case DigestSHA3_256.id:
		return sha3.New256(), nil
	default:
		return nil, newErr(KindNoSuchAlgorithm, fmt.Sprintf("no message digest algorithm for %s", t.Name()))
	}
}

// newMessageDigestProvider builds the C4 "message digest" primitive
// provider: given (payload, offset, length, digest_type), resets the
// cached algorithm, feeds the slice, and returns a Hash (spec §4.4).
func newMessageDigestProvider() *CachingProvider[digestInput, struct{}, Hash, hash.Hash, DigestType] {
	return NewCachingProvider(
		newAlgorithmForDigestType,
		func(algo hash.Hash, t DigestType, in digestInput, _ struct{}) (Hash, error) {
			if in.Length < 0 || in.Offset < 0 || in.Offset+in.Length > len(in.Payload) {
				return Hash{}, newErr(KindIllegalArgument, "digest: offset/length out of range")
			}
			if in.Length > 0 {
				algo.Write(in.Payload[in.Offset : in.Offset+in.Length])
			}
			return NewHash(t, algo.Sum(nil))
		},
		func(algo hash.Hash) { algo.Reset() },
	)
}

// DigestSync computes the digest of payload[offset:offset+length] under
// digestType, running synchronously on the caller's goroutine (spec §6
// "digest(bytes, type)").
func (e *Engine) DigestSync(payload []byte, offset, length int, digestType DigestType) (Hash, error) {
	return e.digestProvider.Compute(digestInput{Payload: payload, Offset: offset, Length: length}, struct{}{}, digestType)
}
