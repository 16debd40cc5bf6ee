package cryptoengine

import (
	"context"
	"testing"
	"time"
)

type testMerkleNode struct {
	leaf     bool
	classID  int64
	version  int32
	children []*testMerkleNode
	bytes    []byte
	hash     *Hash
}

func (n *testMerkleNode) IsLeaf() bool    { return n.leaf }
func (n *testMerkleNode) ClassID() int64  { return n.classID }
func (n *testMerkleNode) Version() int32  { return n.version }
func (n *testMerkleNode) ChildCount() int { return len(n.children) }

func (n *testMerkleNode) Child(i int) MerkleNodeView {
	if n.children[i] == nil {
		return nil
	}
	return n.children[i]
}

func (n *testMerkleNode) Hash() (Hash, bool) {
	if n.hash == nil {
		return Hash{}, false
	}
	return *n.hash, true
}

func (n *testMerkleNode) SetHash(h Hash) { n.hash = &h }

func (n *testMerkleNode) SerializeLeaf() ([]byte, error) { return n.bytes, nil }

// newScenarioTree builds the tree from spec §8 scenario 7:
// I[classId=1,ver=1] (L[classId=9,ver=1,bytes=0x00010203]) (L[classId=9,ver=1,bytes=0x04050607]).
func newScenarioTree() *testMerkleNode {
	return &testMerkleNode{
		classID: 1,
		version: 1,
		children: []*testMerkleNode{
			{leaf: true, classID: 9, version: 1, bytes: []byte{0x00, 0x01, 0x02, 0x03}},
			{leaf: true, classID: 9, version: 1, bytes: []byte{0x04, 0x05, 0x06, 0x07}},
		},
	}
}

func TestMerkleTreeDeterminismSyncVsAsync(t *testing.T) {
	e, err := New(DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	syncHash, err := e.DigestTreeSync(newScenarioTree(), DigestSHA384, false)
	if err != nil {
		t.Fatalf("sync digest: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	future := e.DigestTreeAsync(ctx, newScenarioTree(), DigestSHA384, false)
	asyncHash, err := future.Wait(ctx)
	if err != nil {
		t.Fatalf("async digest: %v", err)
	}

	if !syncHash.Equal(asyncHash) {
		t.Fatalf("sync hash %s != async hash %s", syncHash, asyncHash)
	}
}

// newChainTree builds a single-child chain deeper than
// DefaultSettings().CPUDigestThreadCount, so a semaphore implementation
// that holds a permit across a node's wait on its children would deadlock
// rather than complete.
func newChainTree(depth int) *testMerkleNode {
	leaf := &testMerkleNode{leaf: true, classID: 9, version: 1, bytes: []byte{0x01}}
	node := leaf
	for i := 0; i < depth; i++ {
		node = &testMerkleNode{classID: 1, version: 1, children: []*testMerkleNode{node}}
	}
	return node
}

func TestMerkleTreeAsyncDoesNotDeadlockOnDeepChain(t *testing.T) {
	settings := DefaultSettings()
	settings.CPUDigestThreadCount = 4
	e, err := New(settings, nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	const depth = 32 // far deeper than CPUDigestThreadCount
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	future := e.DigestTreeAsync(ctx, newChainTree(depth), DigestSHA384, false)
	asyncHash, err := future.Wait(ctx)
	if err != nil {
		t.Fatalf("async digest on deep chain: %v", err)
	}

	syncHash, err := e.DigestTreeSync(newChainTree(depth), DigestSHA384, false)
	if err != nil {
		t.Fatalf("sync digest: %v", err)
	}
	if !syncHash.Equal(asyncHash) {
		t.Fatalf("sync hash %s != async hash %s", syncHash, asyncHash)
	}
}

func TestMerkleInternalRejectsUnsetChild(t *testing.T) {
	e, err := New(DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	parent := &testMerkleNode{classID: 1, version: 1}
	_, err = e.DigestInternalNode(parent, []*Hash{nil}, DigestSHA384, false)
	if err == nil {
		t.Fatal("expected IllegalChildHash for an unset child")
	}
	var ce *CryptoError
	if !errorsAs(err, &ce) || ce.Kind != KindIllegalChildHash {
		t.Fatalf("expected KindIllegalChildHash, got %v", err)
	}
}

func TestMerkleInternalAcceptsExplicitNullHashSubstitution(t *testing.T) {
	e, err := New(DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	nullHash, ok := e.NullHash(DigestSHA384)
	if !ok {
		t.Fatal("expected a registered null hash")
	}
	parent := &testMerkleNode{classID: 1, version: 1}
	_, err = e.DigestInternalNode(parent, []*Hash{&nullHash}, DigestSHA384, false)
	if err != nil {
		t.Fatalf("expected explicit null-hash substitution to succeed, got %v", err)
	}
}
