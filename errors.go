package cryptoengine

import "fmt"

// Kind identifies the taxonomy of failures the engine can raise (spec §7).
// It is a closed set; callers match on it with errors.Is / errors.As rather
// than string-matching Error().
type Kind string

const (
	// KindNoSuchAlgorithm indicates a requested digest or signature type is
	// unknown or unavailable to the engine.
	KindNoSuchAlgorithm Kind = "NO_SUCH_ALGORITHM"
	// KindInvalidDigestType indicates a parsed algorithm name/identifier did
	// not match any registered variant.
	KindInvalidDigestType Kind = "INVALID_DIGEST_TYPE"
	// KindEmptyHashValue indicates a Hash constructor was given an all-zero
	// buffer without using the null-hash bypass.
	KindEmptyHashValue Kind = "EMPTY_HASH_VALUE"
	// KindBadIO indicates malformed serialized hash/signature bytes.
	KindBadIO Kind = "BAD_IO"
	// KindIllegalChildHash indicates a Merkle internal node was hashed with
	// an unset child hash and no explicit null-hash substitution.
	KindIllegalChildHash Kind = "ILLEGAL_CHILD_HASH"
	// KindIllegalArgument indicates a nil/empty required argument.
	KindIllegalArgument Kind = "ILLEGAL_ARGUMENT"
	// KindCancellation indicates cooperative cancellation during enqueue.
	KindCancellation Kind = "CANCELLATION"
)

// CryptoError is the engine's error type. Msg carries human context; Err, if
// set, is the underlying cause and is returned from Unwrap.
type CryptoError struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *CryptoError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *CryptoError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is(err, &CryptoError{Kind: KindX}) match by Kind alone.
func (e *CryptoError) Is(target error) bool {
	t, ok := target.(*CryptoError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newErr(kind Kind, msg string) error {
	return &CryptoError{Kind: kind, Msg: msg}
}

func wrapErr(kind Kind, msg string, err error) error {
	return &CryptoError{Kind: kind, Msg: msg, Err: err}
}
