package cryptoengine

// DigestWorkItem is a single digest request submitted to the async
// pipeline (spec §4.5, §6 "digest_batch"). Payload/Offset/Length mirror the
// sync digest_sync parameters so the same slice can back many items
// without per-item copies.
type DigestWorkItem struct {
	Payload    []byte
	Offset     int
	Length     int
	DigestType DigestType

	Result Hash
	Err    error

	future *Future[Hash]
}

func newDigestWorkItem(payload []byte, offset, length int, digestType DigestType) *DigestWorkItem {
	return &DigestWorkItem{Payload: payload, Offset: offset, Length: length, DigestType: digestType, future: NewFuture[Hash]()}
}

// Future returns the item's completion future, resolved once the owning
// batch has been processed.
func (w *DigestWorkItem) Future() *Future[Hash] { return w.future }

// VerificationStatus is the outcome of a single signature-verification
// work item once its batch has drained (spec §4.5).
type VerificationStatus int32

const (
	// VerificationPending means the item has not been processed yet.
	VerificationPending VerificationStatus = iota
	// VerificationValid means the signature verified.
	VerificationValid
	// VerificationInvalid means the signature did not verify.
	VerificationInvalid
	// VerificationError means processing the item itself failed (bad
	// public key, unregistered signature type, panic recovered mid-batch).
	VerificationError
)

func (s VerificationStatus) String() string {
	switch s {
	case VerificationValid:
		return "VALID"
	case VerificationInvalid:
		return "INVALID"
	case VerificationError:
		return "ERROR"
	default:
		return "PENDING"
	}
}

// SignatureWorkItem is a single verification request submitted to the
// async pipeline. Data is a flat payload; Sig/PublicKey/Message offsets
// and lengths slice into it so a whole transaction's signatures can share
// one backing buffer (spec §4.5, §6 "verify_batch"), the same layout idiom
// the teacher uses for signature-script byte ranges in the now-removed
// consensus/sighash.go.
type SignatureWorkItem struct {
	Data []byte

	SigOffset, SigLength       int
	PubKeyOffset, PubKeyLength int
	MsgOffset, MsgLength       int

	SignatureType SignatureType

	// ExpandedPublicKey overrides PubKeyOffset/PubKeyLength when set,
	// for callers that have already decompressed/expanded a public key
	// (spec §4.5 "optional expanded public key override").
	ExpandedPublicKey []byte

	Status VerificationStatus
	Err    error

	future *Future[bool]
}

func newSignatureWorkItem(data []byte, sigOff, sigLen, pubOff, pubLen, msgOff, msgLen int, sigType SignatureType) *SignatureWorkItem {
	return &SignatureWorkItem{
		Data: data,
		SigOffset: sigOff, SigLength: sigLen,
		PubKeyOffset: pubOff, PubKeyLength: pubLen,
		MsgOffset: msgOff, MsgLength: msgLen,
		SignatureType: sigType,
		Status:        VerificationPending,
		future:        NewFuture[bool](),
	}
}

// Future returns the item's completion future, resolved once the owning
// batch has been processed.
func (w *SignatureWorkItem) Future() *Future[bool] { return w.future }

func (w *SignatureWorkItem) message() []byte {
	return w.Data[w.MsgOffset : w.MsgOffset+w.MsgLength]
}

func (w *SignatureWorkItem) signature() []byte {
	return w.Data[w.SigOffset : w.SigOffset+w.SigLength]
}

func (w *SignatureWorkItem) publicKey() []byte {
	if w.ExpandedPublicKey != nil {
		return w.ExpandedPublicKey
	}
	return w.Data[w.PubKeyOffset : w.PubKeyOffset+w.PubKeyLength]
}
