package cryptoengine

// MerkleNodeView is the minimal capability the engine consumes from a
// caller-owned Merkle tree (spec §3, §1 — tree structure, routes, and
// payload serialization are an external collaborator's concern; the engine
// only ever reads through this view).
type MerkleNodeView interface {
	IsLeaf() bool
	ClassID() int64
	Version() int32
	ChildCount() int
	// Child returns the i'th child, or nil if absent.
	Child(i int) MerkleNodeView
	// Hash returns the node's current hash and whether one is set.
	Hash() (Hash, bool)
	SetHash(h Hash)
	// SerializeLeaf returns the canonical byte form of a leaf node. Called
	// only when IsLeaf() is true.
	SerializeLeaf() ([]byte, error)
}
