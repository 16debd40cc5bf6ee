package cryptoengine

import (
	"encoding/binary"
	"fmt"
)

// cursor is a bounds-checked big-endian reader, grounded on the teacher's
// consensus/wire.go cursor idiom (readExact/readU32LE) but adapted to the
// big-endian wire layout spec §6 requires for hashes and signatures.
type cursor struct {
	b   []byte
	pos int
}

func newCursor(b []byte) *cursor { return &cursor{b: b} }

func (c *cursor) remaining() int {
	if c.pos >= len(c.b) {
		return 0
	}
	return len(c.b) - c.pos
}

func (c *cursor) readExact(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, newErr(KindBadIO, "truncated input")
	}
	start := c.pos
	c.pos += n
	return c.b[start:c.pos], nil
}

func (c *cursor) readI32BE() (int32, error) {
	b, err := c.readExact(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func appendI32BE(dst []byte, v int32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	return append(dst, buf[:]...)
}

// EncodeHash serializes h as digest_type_id:i32BE ‖ length:i32BE ‖ bytes
// (spec §6 "Hash on the wire").
func EncodeHash(h Hash) []byte {
	b := h.Bytes()
	out := make([]byte, 0, 8+len(b))
	out = appendI32BE(out, h.digestType.id)
	out = appendI32BE(out, int32(len(b)))
	out = append(out, b...)
	return out
}

// DecodeHash parses a Hash from the wire layout produced by EncodeHash.
// The declared length must equal the digest type's output length; any
// mismatch is a BadIO failure (spec §6).
func DecodeHash(buf []byte) (Hash, error) {
	c := newCursor(buf)
	id, err := c.readI32BE()
	if err != nil {
		return Hash{}, wrapErr(KindBadIO, "decode hash: digest type id", err)
	}
	digestType, err := DigestTypeFromID(id)
	if err != nil {
		return Hash{}, err
	}
	length, err := c.readI32BE()
	if err != nil {
		return Hash{}, wrapErr(KindBadIO, "decode hash: length", err)
	}
	if int(length) != digestType.OutputLength() {
		return Hash{}, newErr(KindBadIO, fmt.Sprintf("decode hash: declared length %d does not match %s output length %d", length, digestType.Name(), digestType.OutputLength()))
	}
	data, err := c.readExact(int(length))
	if err != nil {
		return Hash{}, wrapErr(KindBadIO, "decode hash: bytes", err)
	}
	return NewHash(digestType, data)
}

// EncodeSignature serializes s as ordinal:i32BE ‖ length:i32BE ‖ bytes
// (spec §6 "Signature on the wire").
func EncodeSignature(s Signature) []byte {
	out := make([]byte, 0, 8+len(s.data))
	out = appendI32BE(out, s.sigType.ordinal)
	out = appendI32BE(out, int32(len(s.data)))
	out = append(out, s.data...)
	return out
}

// DecodeSignature parses a Signature from the wire layout produced by
// EncodeSignature. An unknown ordinal falls back to SigRSA, the documented
// default (spec §3, §6).
func DecodeSignature(buf []byte) (Signature, error) {
	c := newCursor(buf)
	ordinal, err := c.readI32BE()
	if err != nil {
		return Signature{}, wrapErr(KindBadIO, "decode signature: ordinal", err)
	}
	sigType := SignatureTypeFromOrdinal(ordinal, SigRSA)
	length, err := c.readI32BE()
	if err != nil {
		return Signature{}, wrapErr(KindBadIO, "decode signature: length", err)
	}
	data, err := c.readExact(int(length))
	if err != nil {
		return Signature{}, wrapErr(KindBadIO, "decode signature: bytes", err)
	}
	return NewSignature(sigType, data)
}

// --- variable-length varint, used internally by the self-serializable
// digest hashing stream for variable-length fields (grounded on the
// teacher's Bitcoin-style CompactSize in consensus/compactsize*.go). ---

// appendVarint encodes n as a CompactSize-style varint and appends to dst.
func appendVarint(dst []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(dst, byte(n))
	case n <= 0xffff:
		dst = append(dst, 0xfd)
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(n))
		return append(dst, buf[:]...)
	case n <= 0xffff_ffff:
		dst = append(dst, 0xfe)
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(n))
		return append(dst, buf[:]...)
	default:
		dst = append(dst, 0xff)
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], n)
		return append(dst, buf[:]...)
	}
}
