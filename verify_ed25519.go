package cryptoengine

import (
	"golang.org/x/crypto/ed25519"
)

// ed25519VerifyInput is (message, signature, public key) for a single
// Ed25519 verification (spec §4.4 "signature verification algorithm").
type ed25519VerifyInput struct {
	Message   []byte
	Signature []byte
	PublicKey []byte
}

// newEd25519Provider builds the Ed25519 verification primitive provider,
// staying within the teacher's declared golang.org/x/crypto dependency
// surface rather than reaching for a different Ed25519 package.
func newEd25519Provider(logger Logger) *CachingProvider[ed25519VerifyInput, struct{}, bool, struct{}, struct{}] {
	return NewCachingProvider(
		func(struct{}) (struct{}, error) { return struct{}{}, nil },
		func(_ struct{}, _ struct{}, in ed25519VerifyInput, _ struct{}) (bool, error) {
			if len(in.PublicKey) != ed25519.PublicKeySize {
				return false, newErr(KindIllegalArgument, "ed25519 verify: bad public key length")
			}
			ok := ed25519.Verify(ed25519.PublicKey(in.PublicKey), in.Message, in.Signature)
			if !ok && logger != nil {
				logger.Debug("ed25519 verification failed",
					"publicKey", hexString(in.PublicKey),
					"signature", hexString(in.Signature),
				)
			}
			return ok, nil
		},
		func(struct{}) {},
	)
}
