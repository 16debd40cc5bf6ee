package cryptoengine

import "fmt"

// MaxDigestLen is the largest output length of any registered DigestType,
// used to size fixed backing arrays for Hash values without allocation.
const MaxDigestLen = 64

// DigestType is a closed enumeration of supported hash functions. Each
// variant carries a stable wire identifier, a canonical name, and a fixed
// output length in bytes (spec §3, §4.1).
type DigestType struct {
	id     int32
	name   string
	length int
}

// ID returns the stable wire identifier for this digest type.
func (d DigestType) ID() int32 { return d.id }

// Name returns the canonical algorithm name.
func (d DigestType) Name() string { return d.name }

// OutputLength returns the fixed output length in bytes (spec §4.1).
func (d DigestType) OutputLength() int { return d.length }

func (d DigestType) String() string { return d.name }

var (
	// DigestSHA384 is SHA-384 (48-byte digests).
	DigestSHA384 = DigestType{id: 0, name: "SHA-384", length: 48}
	// DigestSHA512 is SHA-512 (64-byte digests).
	DigestSHA512 = DigestType{id: 1, name: "SHA-512", length: 64}
	// DigestSHA3_256 is SHA3-256 (32-byte digests), grounded on the
	// teacher's golang.org/x/crypto/sha3 usage in the now-adapted
	// crypto/devstd.go.
	DigestSHA3_256 = DigestType{id: 2, name: "SHA3-256", length: 32}

	digestByID = map[int32]DigestType{}
)

func registerDigestType(d DigestType) {
	if existing, ok := digestByID[d.id]; ok {
		panic(fmt.Sprintf("cryptoengine: duplicate digest type identifier %d (%s vs %s)", d.id, existing.name, d.name))
	}
	if d.length <= 0 || d.length > MaxDigestLen {
		panic(fmt.Sprintf("cryptoengine: digest type %s has invalid length %d", d.name, d.length))
	}
	digestByID[d.id] = d
}

func init() {
	registerDigestType(DigestSHA384)
	registerDigestType(DigestSHA512)
	registerDigestType(DigestSHA3_256)
}

// DigestTypeFromID looks up a DigestType by its wire identifier in O(1),
// rejecting unknown identifiers (spec §4.1).
func DigestTypeFromID(id int32) (DigestType, error) {
	d, ok := digestByID[id]
	if !ok {
		return DigestType{}, newErr(KindInvalidDigestType, fmt.Sprintf("unknown digest type id %d", id))
	}
	return d, nil
}

// MaxDigestOutputLength returns the largest OutputLength across all
// registered digest types, used to size scratch buffers (spec §4.1).
func MaxDigestOutputLength() int {
	max := 0
	for _, d := range digestByID {
		if d.length > max {
			max = d.length
		}
	}
	return max
}

// SignatureType is a closed enumeration of supported signature schemes.
// Each variant carries an ordinal, labels, a fixed signature length, and an
// optional curve tag (spec §3, §4.1).
type SignatureType struct {
	ordinal   int32
	sigAlg    string
	keyAlg    string
	sigLength int
	curve     string
}

// Ordinal returns the stable wire ordinal for this signature type.
func (s SignatureType) Ordinal() int32 { return s.ordinal }

// SigningAlgorithm returns the signing-algorithm label.
func (s SignatureType) SigningAlgorithm() string { return s.sigAlg }

// KeyAlgorithm returns the key-algorithm label.
func (s SignatureType) KeyAlgorithm() string { return s.keyAlg }

// SignatureLength returns the fixed signature length in bytes.
func (s SignatureType) SignatureLength() int { return s.sigLength }

// Curve returns the curve tag for elliptic variants, or "" otherwise.
func (s SignatureType) Curve() string { return s.curve }

func (s SignatureType) String() string { return s.sigAlg }

var (
	// SigEd25519 is Ed25519 (64-byte signatures, curve x25519).
	SigEd25519 = SignatureType{ordinal: 0, sigAlg: "Ed25519", keyAlg: "Ed25519", sigLength: 64, curve: "x25519"}
	// SigRSA is RSA (384-byte signatures). No verifier is wired for it
	// (spec §9 Open Question); it remains the documented decode default.
	SigRSA = SignatureType{ordinal: 1, sigAlg: "RSA", keyAlg: "RSA", sigLength: 384}
	// SigECDSASecp256k1 is ECDSA over secp256k1 (64-byte signatures).
	SigECDSASecp256k1 = SignatureType{ordinal: 2, sigAlg: "ECDSA", keyAlg: "EC", sigLength: 64, curve: "secp256k1"}

	sigByOrdinal = map[int32]SignatureType{}
)

func registerSignatureType(s SignatureType) {
	if existing, ok := sigByOrdinal[s.ordinal]; ok {
		panic(fmt.Sprintf("cryptoengine: duplicate signature type ordinal %d (%s vs %s)", s.ordinal, existing.sigAlg, s.sigAlg))
	}
	sigByOrdinal[s.ordinal] = s
}

func init() {
	registerSignatureType(SigEd25519)
	registerSignatureType(SigRSA)
	registerSignatureType(SigECDSASecp256k1)
}

// SignatureTypeFromOrdinal decodes a SignatureType by ordinal, falling back
// to def when the ordinal is unknown (spec §3, §6 "documented default").
func SignatureTypeFromOrdinal(ordinal int32, def SignatureType) SignatureType {
	if s, ok := sigByOrdinal[ordinal]; ok {
		return s
	}
	return def
}
