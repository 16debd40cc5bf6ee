package cryptoengine

import (
	"context"
	"testing"
	"time"
)

func TestRunningHashSensitivity(t *testing.T) {
	e, err := New(DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	prev, err := NewHash(DigestSHA384, fill(DigestSHA384.OutputLength(), 0x11))
	if err != nil {
		t.Fatal(err)
	}
	new1, err := NewHash(DigestSHA384, fill(DigestSHA384.OutputLength(), 0x22))
	if err != nil {
		t.Fatal(err)
	}
	new2, err := NewHash(DigestSHA384, fill(DigestSHA384.OutputLength(), 0x33))
	if err != nil {
		t.Fatal(err)
	}

	r1, err := e.RunningHashSync(&prev, new1, DigestSHA384)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := e.RunningHashSync(&prev, new2, DigestSHA384)
	if err != nil {
		t.Fatal(err)
	}
	if r1.Equal(r2) {
		t.Fatal("distinct new_hash values must not collide")
	}

	rAgain, err := e.RunningHashSync(&prev, new1, DigestSHA384)
	if err != nil {
		t.Fatal(err)
	}
	if !r1.Equal(rAgain) {
		t.Fatal("running hash must be deterministic for identical inputs")
	}
}

func TestRunningHashRejectsNilNewHash(t *testing.T) {
	e, err := New(DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	_, err = e.runningHashProvider.Compute(runningHashInput{Prev: nil, New: nil}, struct{}{}, DigestSHA384)
	if err == nil {
		t.Fatal("expected IllegalArgument for a nil new_hash")
	}
	var ce *CryptoError
	if !errorsAs(err, &ce) || ce.Kind != KindIllegalArgument {
		t.Fatalf("expected KindIllegalArgument, got %v", err)
	}
}

func TestRunningHashValueResolvesOnSetHash(t *testing.T) {
	rh := NewRunningHash()
	if _, ok := rh.Hash(); ok {
		t.Fatal("expected no hash before SetHash")
	}
	h, err := NewHash(DigestSHA384, fill(DigestSHA384.OutputLength(), 0x44))
	if err != nil {
		t.Fatal(err)
	}
	go func() {
		rh.SetHash(h)
	}()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got, err := rh.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if !got.Equal(h) {
		t.Fatal("resolved hash does not match what was set")
	}
}
