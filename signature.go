package cryptoengine

import "fmt"

// Signature is a signature-type tag plus an owned byte sequence of the
// tag's fixed length (spec §3, §4.2).
type Signature struct {
	sigType SignatureType
	data    []byte
}

// NewSignature constructs a Signature, validating b's length against the
// signature type's fixed length.
func NewSignature(sigType SignatureType, b []byte) (Signature, error) {
	if len(b) != sigType.SignatureLength() {
		return Signature{}, newErr(KindBadIO, fmt.Sprintf("signature length %d does not match %s length %d", len(b), sigType.SigningAlgorithm(), sigType.SignatureLength()))
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return Signature{sigType: sigType, data: cp}, nil
}

// SignatureType returns the signature's declared type.
func (s Signature) SignatureType() SignatureType { return s.sigType }

// Bytes returns a defensive copy of the signature bytes.
func (s Signature) Bytes() []byte {
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

func (s Signature) String() string {
	return fmt.Sprintf("%s(%X)", s.sigType.SigningAlgorithm(), s.data)
}
