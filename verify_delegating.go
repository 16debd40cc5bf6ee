package cryptoengine

import "fmt"

// verifyInput is (message, signature, public key) routed by the
// signature's declared type (spec §4.4 "delegating verification
// algorithm").
type verifyInput struct {
	Message   []byte
	Signature Signature
	PublicKey []byte
}

// delegatingVerifier dispatches a verification request to the primitive
// provider registered for the signature's type (spec §4.4). Unregistered
// types — including the documented SigRSA decode default — fail with
// KindNoSuchAlgorithm rather than silently succeeding or panicking.
type delegatingVerifier struct {
	ed25519   *CachingProvider[ed25519VerifyInput, struct{}, bool, struct{}, struct{}]
	secp256k1 *CachingProvider[secp256k1VerifyInput, struct{}, bool, struct{}, struct{}]
}

func newDelegatingVerifier(logger Logger) *delegatingVerifier {
	return &delegatingVerifier{
		ed25519:   newEd25519Provider(logger),
		secp256k1: newSecp256k1Provider(logger),
	}
}

func (v *delegatingVerifier) Verify(in verifyInput) (bool, error) {
	switch in.Signature.SignatureType().Ordinal() {
	case SigEd25519.Ordinal():
		return v.ed25519.Compute(ed25519VerifyInput{
			Message:   in.Message,
			Signature: in.Signature.Bytes(),
			PublicKey: in.PublicKey,
		}, struct{}{}, struct{}{})
	case SigECDSASecp256k1.Ordinal():
		return v.secp256k1.Compute(secp256k1VerifyInput{
			Message:   in.Message,
			Signature: in.Signature.Bytes(),
			PublicKey: in.PublicKey,
		}, struct{}{}, struct{}{})
	default:
		return false, newErr(KindNoSuchAlgorithm, fmt.Sprintf(
			"no verifier registered for signature type %s", in.Signature.SignatureType()))
	}
}

// VerifySync verifies a single signature against message and publicKey
// (spec §6 "verify(message, signature, public_key)"). An empty signature or
// public key is rejected as KindIllegalArgument rather than forwarded to a
// primitive provider (spec §7). An empty message is verified like any
// other, so the empty-message Ed25519 known-answer vector verifies.
func (e *Engine) VerifySync(message []byte, signature Signature, publicKey []byte) (bool, error) {
	if len(signature.Bytes()) == 0 {
		return false, newErr(KindIllegalArgument, "verify: empty signature")
	}
	if len(publicKey) == 0 {
		return false, newErr(KindIllegalArgument, "verify: empty public key")
	}
	return e.verifier.Verify(verifyInput{Message: message, Signature: signature, PublicKey: publicKey})
}
