package cryptoengine

import (
	"encoding/hex"
	"testing"
)

func TestVerifySecp256k1RejectsBadSignatureLength(t *testing.T) {
	e, err := New(DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	// Calling the provider directly (rather than through NewSignature,
	// which enforces the same length check earlier) exercises the
	// provider-level guard in isolation.
	ok, err := e.verifier.secp256k1.Compute(secp256k1VerifyInput{
		Message:   []byte("msg"),
		Signature: make([]byte, 10),
		PublicKey: make([]byte, 33),
	}, struct{}{}, struct{}{})
	if err == nil {
		t.Fatal("expected IllegalArgument for a bad signature length")
	}
	if ok {
		t.Fatal("expected verification to fail")
	}
}

func TestVerifySecp256k1RejectsMalformedPublicKey(t *testing.T) {
	e, err := New(DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	ok, err := e.verifier.secp256k1.Compute(secp256k1VerifyInput{
		Message:   []byte("msg"),
		Signature: make([]byte, SigECDSASecp256k1.SignatureLength()),
		PublicKey: make([]byte, 33), // all-zero is not a valid encoded point
	}, struct{}{}, struct{}{})
	if err == nil {
		t.Fatal("expected an error for a malformed public key")
	}
	if ok {
		t.Fatal("expected verification to fail")
	}
}

func TestVerifySecp256k1RejectsNonCanonicalHighS(t *testing.T) {
	e, err := New(DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	sigBytes := make([]byte, 64)
	sigBytes[0] = 0x01 // r = 2^248, nonzero, below the group order, otherwise arbitrary
	// s = group order - 1, guaranteed to be "over half order" (non-canonical)
	copy(sigBytes[32:], []byte{
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE,
		0xBA, 0xAE, 0xDC, 0xE6, 0xAF, 0x48, 0xA0, 0x3B,
		0xBF, 0xD2, 0x5E, 0x8C, 0xD0, 0x36, 0x41, 0x40,
	})
	// The compressed generator point G: a valid public key, so parsing
	// succeeds and the high-S check is what rejects the signature.
	pub, _ := hex.DecodeString("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	ok, err := e.verifier.secp256k1.Compute(secp256k1VerifyInput{
		Message:   []byte("msg"),
		Signature: sigBytes,
		PublicKey: pub,
	}, struct{}{}, struct{}{})
	if err != nil {
		t.Fatalf("expected a high-S signature to be rejected without an error, got %v", err)
	}
	if ok {
		t.Fatal("expected verification to fail")
	}
}
