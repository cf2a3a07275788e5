package state

import "github.com/256dpi/quill/coding"

// PrefixLength is the size of an encoded length prefix.
const PrefixLength = coding.LengthSize

// LengthPrefix announces the size of the collection that follows it.
type LengthPrefix struct {
	Length uint32
}

// Empty returns whether no collection has been stored yet.
func (p LengthPrefix) Empty() bool {
	return p.Length == 0
}

// Encode will encode the prefix.
func (p LengthPrefix) Encode() []byte {
	buf := make([]byte, PrefixLength)
	_ = p.Put(buf)
	return buf
}

// Put will write the prefix to the first bytes of buf. Nothing is written and
// coding.ErrShortBuffer is returned if buf is shorter than PrefixLength.
func (p LengthPrefix) Put(buf []byte) error {
	_, err := coding.EncodeTo(buf, func(enc *coding.Encoder) error {
		enc.Uint32(p.Length)
		return nil
	})
	return err
}

// DecodeLengthPrefix will decode the prefix from the first bytes of buf.
func DecodeLengthPrefix(buf []byte) (LengthPrefix, error) {
	var prefix LengthPrefix
	_, err := coding.DecodePrefix(buf, func(dec *coding.Decoder) error {
		dec.Uint32(&prefix.Length)
		return nil
	})
	if err != nil {
		return LengthPrefix{}, err
	}

	return prefix, nil
}

// DecodeMessages will decode a length prefixed collection from the start of
// frame. A zero length yields an empty collection. Bytes after the announced
// length are ignored.
func DecodeMessages(frame []byte) (MessageCollection, error) {
	// read prefix
	prefix, err := DecodeLengthPrefix(frame)
	if err != nil {
		return MessageCollection{}, err
	}

	// handle empty
	if prefix.Empty() {
		return MessageCollection{}, nil
	}

	// check bounds
	if uint64(prefix.Length) > uint64(len(frame)-PrefixLength) {
		return MessageCollection{}, coding.ErrTruncated
	}

	return DecodeCollection(frame[PrefixLength : PrefixLength+int(prefix.Length)])
}
