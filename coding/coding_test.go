package coding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func encodeSample(enc *Encoder) error {
	enc.Uint8(7)
	enc.Uint32(42)
	enc.String("foo")
	enc.Bytes([]byte{1, 2})
	enc.Raw([]byte{9})
	return nil
}

func TestEncode(t *testing.T) {
	n, err := Measure(encodeSample)
	assert.NoError(t, err)
	assert.Equal(t, 1+4+4+3+4+2+1, n)

	buf, err := Encode(encodeSample)
	assert.NoError(t, err)
	assert.Equal(t, []byte{
		7,
		42, 0, 0, 0,
		3, 0, 0, 0, 'f', 'o', 'o',
		2, 0, 0, 0, 1, 2,
		9,
	}, buf)
	assert.Len(t, buf, n)
}

func TestEncodeTo(t *testing.T) {
	dst := make([]byte, 32)
	n, err := EncodeTo(dst, encodeSample)
	assert.NoError(t, err)
	assert.Equal(t, 19, n)
	assert.Equal(t, make([]byte, 13), dst[19:])

	dst = []byte{0xAA, 0xAA, 0xAA}
	n, err = EncodeTo(dst, encodeSample)
	assert.Equal(t, ErrShortBuffer, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, []byte{0xAA, 0xAA, 0xAA}, dst)
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode(func(enc *Encoder) error {
		enc.String("ok")
		enc.String(string([]byte{0xff, 0xfe}))
		enc.Uint8(1)
		return nil
	})
	assert.Equal(t, ErrInvalidString, err)

	custom := errors.New("custom")
	_, err = Encode(func(enc *Encoder) error {
		return custom
	})
	assert.Equal(t, custom, err)
}

func TestDecode(t *testing.T) {
	buf, err := Encode(encodeSample)
	assert.NoError(t, err)

	var u8 uint8
	var u32 uint32
	var str string
	var bytes []byte
	raw := make([]byte, 1)
	err = Decode(buf, func(dec *Decoder) error {
		dec.Uint8(&u8)
		dec.Uint32(&u32)
		dec.String(&str)
		dec.Bytes(&bytes)
		dec.Raw(raw)
		assert.Equal(t, 0, dec.Remaining())
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, uint8(7), u8)
	assert.Equal(t, uint32(42), u32)
	assert.Equal(t, "foo", str)
	assert.Equal(t, []byte{1, 2}, bytes)
	assert.Equal(t, []byte{9}, raw)

	// copies must not alias the input
	buf[16] = 0xFF
	assert.Equal(t, []byte{1, 2}, bytes)
}

func TestDecodeTruncated(t *testing.T) {
	err := Decode([]byte{1, 2}, func(dec *Decoder) error {
		var num uint32
		dec.Uint32(&num)
		return nil
	})
	assert.Equal(t, ErrTruncated, err)

	err = Decode(nil, func(dec *Decoder) error {
		var num uint8
		dec.Uint8(&num)
		return nil
	})
	assert.Equal(t, ErrTruncated, err)
}

func TestDecodeMalformedLength(t *testing.T) {
	err := Decode([]byte{50, 0, 0, 0, 'a'}, func(dec *Decoder) error {
		var str string
		dec.String(&str)
		return nil
	})
	assert.Equal(t, ErrMalformedLength, err)

	err = Decode([]byte{0xff, 0xff, 0xff, 0xff}, func(dec *Decoder) error {
		var buf []byte
		dec.Bytes(&buf)
		return nil
	})
	assert.Equal(t, ErrMalformedLength, err)
}

func TestDecodeInvalidString(t *testing.T) {
	err := Decode([]byte{2, 0, 0, 0, 0xff, 0xfe}, func(dec *Decoder) error {
		var str string
		dec.String(&str)
		return nil
	})
	assert.Equal(t, ErrInvalidString, err)
}

func TestDecodeTrailing(t *testing.T) {
	err := Decode([]byte{1, 2}, func(dec *Decoder) error {
		var num uint8
		dec.Uint8(&num)
		return nil
	})
	assert.Equal(t, ErrTrailingBytes, err)

	n, err := DecodePrefix([]byte{1, 2}, func(dec *Decoder) error {
		var num uint8
		dec.Uint8(&num)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDecodeStickyError(t *testing.T) {
	var first, second uint8
	err := Decode([]byte{}, func(dec *Decoder) error {
		dec.Uint8(&first)
		dec.Fail(ErrInvalidString)
		dec.Uint8(&second)
		assert.Equal(t, ErrTruncated, dec.Error())
		return nil
	})
	assert.Equal(t, ErrTruncated, err)
}
