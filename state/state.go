// Package state defines the records stored in program owned accounts and their
// binary encoding.
package state

import (
	"errors"

	"github.com/256dpi/quill/coding"
)

// ErrUnknownKind is returned when a record carries an unknown kind.
var ErrUnknownKind = errors.New("state: unknown kind")

// Kind identifies the layout variant of a record.
type Kind uint8

// The available kinds.
const (
	Plain Kind = 0
)

// Valid returns whether the kind is known.
func (k Kind) Valid() bool {
	return k == Plain
}

func encodeKind(enc *coding.Encoder, kind Kind) {
	// check kind
	if !kind.Valid() {
		enc.Fail(ErrUnknownKind)
		return
	}

	enc.Uint8(uint8(kind))
}

func decodeKind(dec *coding.Decoder, kind *Kind) {
	// read kind
	var raw uint8
	dec.Uint8(&raw)
	if dec.Error() != nil {
		return
	}

	// check kind
	if !Kind(raw).Valid() {
		dec.Fail(ErrUnknownKind)
		return
	}

	*kind = Kind(raw)
}
