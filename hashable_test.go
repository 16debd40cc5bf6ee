package cryptoengine

import "testing"

func TestManagedHashStateSetAndInvalidate(t *testing.T) {
	s := NewManagedHashState()
	if s.SelfHashing() {
		t.Fatal("expected a managed state")
	}
	h, err := s.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if !h.IsZero() {
		t.Fatal("expected no hash set yet")
	}
	want, err := NewHash(DigestSHA384, fill(DigestSHA384.OutputLength(), 0x09))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetHash(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Fatal("hash does not match what was set")
	}
	s.Invalidate()
	got, err = s.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsZero() {
		t.Fatal("expected invalidate to clear the managed hash")
	}
}

func TestSelfHashingStateRejectsExternalSetHash(t *testing.T) {
	calls := 0
	want, err := NewHash(DigestSHA384, fill(DigestSHA384.OutputLength(), 0x07))
	if err != nil {
		t.Fatal(err)
	}
	s := NewSelfHashingState(func() (Hash, error) {
		calls++
		return want, nil
	})
	if !s.SelfHashing() {
		t.Fatal("expected a self-hashing state")
	}
	got, err := s.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Fatal("hash does not match compute function's result")
	}
	// second call should use the cached value, not recompute
	if _, err := s.Hash(); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("expected compute to run once, ran %d times", calls)
	}
	if err := s.SetHash(want); err == nil {
		t.Fatal("expected SetHash to be rejected on a self-hashing state")
	}
}
