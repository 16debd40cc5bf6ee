package cryptoengine

import "testing"

func TestDecodeHashRejectsTruncatedInput(t *testing.T) {
	_, err := DecodeHash([]byte{0x00, 0x00})
	if err == nil {
		t.Fatal("expected BadIO for truncated input")
	}
	var ce *CryptoError
	if !errorsAs(err, &ce) || ce.Kind != KindBadIO {
		t.Fatalf("expected KindBadIO, got %v", err)
	}
}

func TestDecodeHashRejectsLengthMismatch(t *testing.T) {
	buf := appendI32BE(nil, DigestSHA384.id)
	buf = appendI32BE(buf, 10) // wrong length for SHA-384
	buf = append(buf, make([]byte, 10)...)
	_, err := DecodeHash(buf)
	if err == nil {
		t.Fatal("expected BadIO for a length mismatch")
	}
}

func TestDecodeSignatureFallsBackToRSAOnUnknownOrdinal(t *testing.T) {
	buf := appendI32BE(nil, 999) // unregistered ordinal
	buf = appendI32BE(buf, int32(SigRSA.SignatureLength()))
	buf = append(buf, make([]byte, SigRSA.SignatureLength())...)
	sig, err := DecodeSignature(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sig.SignatureType() != SigRSA {
		t.Fatalf("expected fallback to SigRSA, got %v", sig.SignatureType())
	}
}
