package cryptoengine

import (
	"fmt"
	"hash"
)

// merkleInternalInput is the (node, resolved child hashes) pair the
// Merkle-internal digest provider consumes. A nil entry in ChildHashes
// means "no substitution requested" and raises IllegalChildHash; to
// substitute the null hash for an absent child, the caller must put an
// explicit null-hash value in the slot (spec §9 resolved Open Question).
type merkleInternalInput struct {
	Node        MerkleNodeView
	ChildHashes []*Hash
}

// newMerkleInternalProvider builds the C4 "Merkle-internal digest"
// primitive provider (spec §4.4): feeds class id, version, then each child
// hash in order, failing with IllegalChildHash on an unset child.
func newMerkleInternalProvider() *CachingProvider[merkleInternalInput, struct{}, Hash, hash.Hash, DigestType] {
	return NewCachingProvider(
		newAlgorithmForDigestType,
		func(algo hash.Hash, t DigestType, in merkleInternalInput, _ struct{}) (Hash, error) {
			stream := NewHashingStream(algo, nil)
			if err := stream.WriteInt64BE(in.Node.ClassID()); err != nil {
				return Hash{}, wrapErr(KindBadIO, "merkle internal digest: class id", err)
			}
			if err := stream.WriteInt32BE(in.Node.Version()); err != nil {
				return Hash{}, wrapErr(KindBadIO, "merkle internal digest: version", err)
			}
			for i, childHash := range in.ChildHashes {
				if childHash == nil {
					return Hash{}, newErr(KindIllegalChildHash, fmt.Sprintf(
						"merkle internal digest: node classId=%d has unset hash for child %d",
						in.Node.ClassID(), i,
					))
				}
				if _, err := stream.Write(childHash.Bytes()); err != nil {
					return Hash{}, wrapErr(KindBadIO, "merkle internal digest: child hash", err)
				}
			}
			return NewHash(t, algo.Sum(nil))
		},
		func(algo hash.Hash) { algo.Reset() },
	)
}

// DigestInternalNode hashes an internal Merkle node from its already-known
// child hashes under digestType (spec §6
// "digest_internal(node, child_hashes, set_hash?)"). A nil entry in
// childHashes raises IllegalChildHash. When setHash is true, the resulting
// Hash is also stored on node via SetHash.
func (e *Engine) DigestInternalNode(node MerkleNodeView, childHashes []*Hash, digestType DigestType, setHash bool) (Hash, error) {
	h, err := e.merkleInternalProvider.Compute(merkleInternalInput{Node: node, ChildHashes: childHashes}, struct{}{}, digestType)
	if err != nil {
		return Hash{}, err
	}
	if setHash {
		node.SetHash(h)
	}
	return h, nil
}
