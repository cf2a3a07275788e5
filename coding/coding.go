// Package coding implements a bounds-checked little-endian cursor used to
// encode and decode the records stored in account buffers.
//
// All variable length values are prefixed with a four byte little-endian
// length. Encoders and decoders carry a sticky error so that encode and decode
// functions can be written as a flat sequence of calls with a single error
// check at the end.
package coding

import (
	"encoding/binary"
	"errors"
	"unicode/utf8"
)

// ErrTruncated is returned when a fixed width value is read past the end of
// the buffer.
var ErrTruncated = errors.New("coding: truncated buffer")

// ErrMalformedLength is returned when a length field announces more data than
// the buffer holds.
var ErrMalformedLength = errors.New("coding: malformed length")

// ErrTrailingBytes is returned when a strict decode did not consume the whole
// buffer.
var ErrTrailingBytes = errors.New("coding: trailing bytes")

// ErrInvalidString is returned when a string is not valid UTF-8.
var ErrInvalidString = errors.New("coding: invalid string")

// ErrShortBuffer is returned when the destination of an encode is too small.
var ErrShortBuffer = errors.New("coding: short buffer")

// LengthSize is the size of a length prefix.
const LengthSize = 4

// Measure will run the provided function in counting mode and return the
// number of bytes the encoding would occupy.
func Measure(fn func(enc *Encoder) error) (int, error) {
	// prepare counting encoder
	enc := &Encoder{count: true}

	// run function
	err := fn(enc)
	if err != nil {
		return 0, err
	} else if enc.err != nil {
		return 0, enc.err
	}

	return enc.pos, nil
}

// Encode will measure and then encode the data produced by the provided
// function into a newly allocated buffer.
func Encode(fn func(enc *Encoder) error) ([]byte, error) {
	// measure
	length, err := Measure(fn)
	if err != nil {
		return nil, err
	}

	// allocate and encode
	buf := make([]byte, length)
	_, err = EncodeTo(buf, fn)
	if err != nil {
		return nil, err
	}

	return buf, nil
}

// EncodeTo will encode the data produced by the provided function into dst and
// return the number of written bytes. Nothing is written if dst is too small.
func EncodeTo(dst []byte, fn func(enc *Encoder) error) (int, error) {
	// measure
	length, err := Measure(fn)
	if err != nil {
		return 0, err
	}

	// check size
	if length > len(dst) {
		return 0, ErrShortBuffer
	}

	// encode
	enc := &Encoder{buf: dst[:length]}
	err = fn(enc)
	if err != nil {
		return 0, err
	} else if enc.err != nil {
		return 0, enc.err
	}

	return enc.pos, nil
}

// Decode will run the provided function on the buffer and require that it
// consumes all bytes.
func Decode(buf []byte, fn func(dec *Decoder) error) error {
	// decode
	n, err := DecodePrefix(buf, fn)
	if err != nil {
		return err
	}

	// check remainder
	if n != len(buf) {
		return ErrTrailingBytes
	}

	return nil
}

// DecodePrefix will run the provided function on the buffer and return the
// number of consumed bytes. Bytes after that position are left untouched.
func DecodePrefix(buf []byte, fn func(dec *Decoder) error) (int, error) {
	// decode
	dec := &Decoder{buf: buf}
	err := fn(dec)
	if dec.err != nil {
		return 0, dec.err
	} else if err != nil {
		return 0, err
	}

	return dec.pos, nil
}

// Encoder writes values to a buffer or counts their size.
type Encoder struct {
	buf   []byte
	pos   int
	count bool
	err   error
}

// Length returns the number of bytes encoded or counted so far.
func (e *Encoder) Length() int {
	return e.pos
}

// Error returns the first encountered error.
func (e *Encoder) Error() error {
	return e.err
}

// Uint8 writes a single byte.
func (e *Encoder) Uint8(num uint8) {
	// skip if errored
	if e.err != nil {
		return
	}

	// write
	if !e.count {
		e.buf[e.pos] = num
	}

	e.pos++
}

// Uint32 writes a little-endian 32 bit number.
func (e *Encoder) Uint32(num uint32) {
	// skip if errored
	if e.err != nil {
		return
	}

	// write
	if !e.count {
		binary.LittleEndian.PutUint32(e.buf[e.pos:], num)
	}

	e.pos += 4
}

// Raw writes the bytes without a length prefix.
func (e *Encoder) Raw(buf []byte) {
	// skip if errored
	if e.err != nil {
		return
	}

	// write
	if !e.count {
		copy(e.buf[e.pos:], buf)
	}

	e.pos += len(buf)
}

// Bytes writes a length prefixed byte slice.
func (e *Encoder) Bytes(buf []byte) {
	// check length
	if uint64(len(buf)) > maxLength {
		e.fail(ErrMalformedLength)
		return
	}

	e.Uint32(uint32(len(buf)))
	e.Raw(buf)
}

// String writes a length prefixed UTF-8 string.
func (e *Encoder) String(str string) {
	// check encoding
	if !utf8.ValidString(str) {
		e.fail(ErrInvalidString)
		return
	}

	// check length
	if uint64(len(str)) > maxLength {
		e.fail(ErrMalformedLength)
		return
	}

	// write length
	e.Uint32(uint32(len(str)))

	// skip if errored
	if e.err != nil {
		return
	}

	// write string
	if !e.count {
		copy(e.buf[e.pos:], str)
	}

	e.pos += len(str)
}

// Fail will set the sticky error if none is set yet.
func (e *Encoder) Fail(err error) {
	e.fail(err)
}

func (e *Encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// Decoder reads values from a buffer.
type Decoder struct {
	buf []byte
	pos int
	err error
}

// Position returns the current read offset.
func (d *Decoder) Position() int {
	return d.pos
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// Error returns the first encountered error.
func (d *Decoder) Error() error {
	return d.err
}

// Uint8 reads a single byte.
func (d *Decoder) Uint8(num *uint8) {
	// check length
	if !d.need(1, ErrTruncated) {
		return
	}

	*num = d.buf[d.pos]
	d.pos++
}

// Uint32 reads a little-endian 32 bit number.
func (d *Decoder) Uint32(num *uint32) {
	// check length
	if !d.need(4, ErrTruncated) {
		return
	}

	*num = binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
}

// Raw reads exactly len(buf) bytes into buf.
func (d *Decoder) Raw(buf []byte) {
	// check length
	if !d.need(len(buf), ErrTruncated) {
		return
	}

	copy(buf, d.buf[d.pos:])
	d.pos += len(buf)
}

// Bytes reads a length prefixed byte slice. The returned slice is a copy.
func (d *Decoder) Bytes(buf *[]byte) {
	// read length
	var length uint32
	d.Uint32(&length)

	// check length
	if !d.need(int(length), ErrMalformedLength) {
		return
	}

	*buf = append([]byte(nil), d.buf[d.pos:d.pos+int(length)]...)
	d.pos += int(length)
}

// String reads a length prefixed UTF-8 string.
func (d *Decoder) String(str *string) {
	// read length
	var length uint32
	d.Uint32(&length)

	// check length
	if !d.need(int(length), ErrMalformedLength) {
		return
	}

	// check encoding
	raw := d.buf[d.pos : d.pos+int(length)]
	if !utf8.Valid(raw) {
		d.fail(ErrInvalidString)
		return
	}

	*str = string(raw)
	d.pos += int(length)
}

// Fail will set the sticky error if none is set yet.
func (d *Decoder) Fail(err error) {
	d.fail(err)
}

func (d *Decoder) need(n int, err error) bool {
	// check error
	if d.err != nil {
		return false
	}

	// check bounds
	if n < 0 || n > len(d.buf)-d.pos {
		d.fail(err)
		return false
	}

	return true
}

func (d *Decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

const maxLength = 1<<32 - 1
