package cryptoengine

import (
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// sha256Sum hashes message once for ECDSA verification. secp256k1 signatures
// in this engine are always produced over a SHA-256 message digest
// (standard Bitcoin/Ethereum-style ECDSA convention), independent of the
// DigestType used elsewhere for ledger hashing.
func sha256Sum(message []byte) [32]byte { return sha256.Sum256(message) }

// secp256k1VerifyInput mirrors ed25519VerifyInput for the ECDSA/secp256k1
// verification primitive (spec §4.4). Signature is the fixed 64-byte
// compact encoding (32-byte r || 32-byte s), matching
// SigECDSASecp256k1.SignatureLength().
type secp256k1VerifyInput struct {
	Message   []byte
	Signature []byte
	PublicKey []byte
}

// newSecp256k1Provider builds the ECDSA-secp256k1 verification primitive
// provider. Only canonical, non-malleable (low-S) signatures verify —
// grounded on the teacher's consensus-level signature-malleability
// rejection in the now-removed consensus/sighash.go, re-homed here as the
// engine's own concern since there is no surrounding consensus layer in
// this spec.
func newSecp256k1Provider(logger Logger) *CachingProvider[secp256k1VerifyInput, struct{}, bool, struct{}, struct{}] {
	return NewCachingProvider(
		func(struct{}) (struct{}, error) { return struct{}{}, nil },
		func(_ struct{}, _ struct{}, in secp256k1VerifyInput, _ struct{}) (bool, error) {
			if len(in.Signature) != SigECDSASecp256k1.SignatureLength() {
				return false, newErr(KindIllegalArgument, "secp256k1 verify: bad signature length")
			}
			pub, err := secp256k1.ParsePubKey(in.PublicKey)
			if err != nil {
				return false, wrapErr(KindIllegalArgument, "secp256k1 verify: bad public key", err)
			}
			var r, s secp256k1.ModNScalar
			rOverflow := r.SetByteSlice(in.Signature[:32])
			sOverflow := s.SetByteSlice(in.Signature[32:64])
			if rOverflow || sOverflow || s.IsOverHalfOrder() {
				if logger != nil {
					logger.Debug("secp256k1 verify: non-canonical signature rejected")
				}
				return false, nil
			}
			sig := ecdsa.NewSignature(&r, &s)
			digest := sha256Sum(in.Message)
			ok := sig.Verify(digest[:], pub)
			if !ok && logger != nil {
				logger.Debug("secp256k1 verification failed",
					"publicKey", hexString(in.PublicKey),
					"signature", hexString(in.Signature),
				)
			}
			return ok, nil
		},
		func(struct{}) {},
	)
}
