// Package qis implements the instruction set understood by the quill program.
package qis

/*
Instruction Layout

Every instruction payload starts with a single tag byte that selects the
instruction. The remaining bytes are the instruction body, which is the
encoding of the record the instruction carries:

	[tag: 1][body]

	Rename (0): [kind: 1][len: 4][name]
	Append (1): [kind: 1][len: 4][sender][len: 4][body][len: 4][sent at]

All lengths are little-endian. The body must be consumed entirely.
*/

import (
	"errors"

	"github.com/256dpi/quill/coding"
)

// ErrUnknownTag is returned when a payload starts with an unknown tag.
var ErrUnknownTag = errors.New("qis: unknown tag")

// ErrEmptyPayload is returned when the payload has no tag.
var ErrEmptyPayload = errors.New("qis: empty payload")

// Tag identifies an instruction.
type Tag uint8

// The available tags.
const (
	RenameTag Tag = 0
	AppendTag Tag = 1
)

// Description describes an instruction.
type Description struct {
	// The unique name of the instruction.
	Name string

	// The tag that selects the instruction.
	Tag Tag
}

// Instruction is a single decodable program instruction.
type Instruction interface {
	// Describe should return a description of the instruction.
	Describe() *Description

	// Encode should encode the instruction body.
	Encode() ([]byte, error)

	// Decode should decode the instruction body.
	Decode([]byte) error
}

// Set lists a prototype of every instruction in the set.
var Set = []Instruction{
	&Rename{}, &Append{},
}

// Pack will encode the instruction with its leading tag.
func Pack(ins Instruction) ([]byte, error) {
	// encode body
	body, err := ins.Encode()
	if err != nil {
		return nil, err
	}

	// prepend tag
	return coding.Encode(func(enc *coding.Encoder) error {
		enc.Uint8(uint8(ins.Describe().Tag))
		enc.Raw(body)
		return nil
	})
}

// Unpack will decode the tag and the matching instruction from the payload.
func Unpack(payload []byte) (Instruction, error) {
	// check payload
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}

	// select instruction
	var ins Instruction
	switch Tag(payload[0]) {
	case RenameTag:
		ins = &Rename{}
	case AppendTag:
		ins = &Append{}
	default:
		return nil, ErrUnknownTag
	}

	// decode body
	err := ins.Decode(payload[1:])
	if err != nil {
		return nil, err
	}

	return ins, nil
}
