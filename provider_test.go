package cryptoengine

import (
	"crypto/sha512"
	"hash"
	"testing"
)

func TestCachingProviderEvictAllForcesReload(t *testing.T) {
	loads := 0
	p := NewCachingProvider[struct{}, struct{}, int, hash.Hash, DigestType](
		func(DigestType) (hash.Hash, error) {
			loads++
			return sha512.New384(), nil
		},
		func(_ hash.Hash, _ DigestType, _ struct{}, _ struct{}) (int, error) {
			return loads, nil
		},
		nil,
	)

	first, err := p.Compute(struct{}{}, struct{}{}, DigestSHA384)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Compute(struct{}{}, struct{}{}, DigestSHA384)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("expected the same cached load count across calls, got %d then %d", first, second)
	}

	p.EvictAll(DigestSHA384)
	third, err := p.Compute(struct{}{}, struct{}{}, DigestSHA384)
	if err != nil {
		t.Fatal(err)
	}
	if third <= second {
		t.Fatalf("expected EvictAll to force a reload, load count stayed at %d", third)
	}
}

func TestCachingProviderSurfacesLoadFailureAsNoSuchAlgorithm(t *testing.T) {
	p := NewCachingProvider[struct{}, struct{}, int, hash.Hash, DigestType](
		func(DigestType) (hash.Hash, error) {
			return nil, newErr(KindNoSuchAlgorithm, "boom")
		},
		func(_ hash.Hash, _ DigestType, _ struct{}, _ struct{}) (int, error) {
			return 0, nil
		},
		nil,
	)
	_, err := p.Compute(struct{}{}, struct{}{}, DigestSHA384)
	if err == nil {
		t.Fatal("expected an error")
	}
	var ce *CryptoError
	if !errorsAs(err, &ce) || ce.Kind != KindNoSuchAlgorithm {
		t.Fatalf("expected KindNoSuchAlgorithm, got %v", err)
	}
}
