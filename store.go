package quill

import (
	"errors"
	"fmt"
	"math"

	"github.com/256dpi/quill/coding"
	"github.com/256dpi/quill/state"
)

// WriteName will overwrite the buffer with a name record holding the provided
// name. The bytes after the record are zeroed. The buffer is left untouched if
// an error is returned.
func WriteName(buf []byte, name string) error {
	// prepare record
	record := state.NameRecord{
		Kind: state.Plain,
		Name: name,
	}

	// measure record
	length, err := record.PackedLength()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInstruction, err)
	}

	// check capacity
	if length > len(buf) {
		return ErrCapacityExceeded
	}

	// stage full buffer
	staged := make([]byte, len(buf))
	_, err = coding.EncodeTo(staged, record.EncodeTo)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInstruction, err)
	}

	// write buffer
	copy(buf, staged)

	return nil
}

// ReadName will read the name record stored in the buffer. A zeroed buffer
// yields an empty name.
func ReadName(buf []byte) (state.NameRecord, error) {
	// decode record
	var record state.NameRecord
	n, err := coding.DecodePrefix(buf, record.DecodeFrom)
	if errors.Is(err, coding.ErrTruncated) {
		return state.NameRecord{}, ErrTruncated
	} else if err != nil {
		return state.NameRecord{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	// check padding
	for _, b := range buf[n:] {
		if b != 0 {
			return state.NameRecord{}, fmt.Errorf("%w: %w", ErrCorrupt, coding.ErrTrailingBytes)
		}
	}

	return record, nil
}

// AppendMessage will append the message to the collection stored in the
// buffer. The buffer is left untouched if an error is returned.
func AppendMessage(buf []byte, msg state.MessageRecord) error {
	// read collection
	collection, err := ReadMessages(buf)
	if err != nil {
		return err
	}

	// append message
	collection.Append(msg)

	// measure collection
	length, err := collection.PackedLength()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInstruction, err)
	}

	// check capacity
	if uint64(length) > math.MaxUint32 || state.PrefixLength+length > len(buf) {
		return ErrCapacityExceeded
	}

	// stage prefix and collection
	staged := make([]byte, state.PrefixLength+length)
	err = state.LengthPrefix{Length: uint32(length)}.Put(staged)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInstruction, err)
	}
	_, err = coding.EncodeTo(staged[state.PrefixLength:], collection.EncodeTo)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInstruction, err)
	}

	// write prefix and collection with a single copy, nothing may fail after
	// this point
	copy(buf, staged)

	return nil
}

// ReadMessages will read the collection stored in the buffer. A zero length
// prefix yields an empty collection.
func ReadMessages(buf []byte) (state.MessageCollection, error) {
	// check size
	if len(buf) < state.PrefixLength {
		return state.MessageCollection{}, ErrTruncated
	}

	// decode collection
	collection, err := state.DecodeMessages(buf)
	if errors.Is(err, coding.ErrTruncated) && !fitsPrefix(buf) {
		return state.MessageCollection{}, ErrTruncated
	} else if err != nil {
		return state.MessageCollection{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	return collection, nil
}

func fitsPrefix(buf []byte) bool {
	// read prefix
	prefix, err := state.DecodeLengthPrefix(buf)
	if err != nil {
		return false
	}

	return uint64(state.PrefixLength)+uint64(prefix.Length) <= uint64(len(buf))
}
