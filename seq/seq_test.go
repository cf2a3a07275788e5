package seq

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSequence(t *testing.T) {
	start1 := Generate(100)
	assert.True(t, start1 > 0)

	start2 := Generate(100)
	assert.Equal(t, start1+100, start2)
}

func TestSplitAndJoinSequence(t *testing.T) {
	now, err := time.Parse(time.RFC3339, "2019-05-02T12:05:42+03:00")
	assert.NoError(t, err)

	seq := Join(now, 42)
	assert.Equal(t, uint64(6686353297697144874), seq)

	ts, n := Split(seq)

	assert.Equal(t, now.UTC(), ts.UTC())
	assert.Equal(t, uint32(42), n)
}

func TestSequenceProperties(t *testing.T) {
	ts, n := Split(0)
	assert.Equal(t, time.Unix(0, 0), ts)
	assert.Equal(t, uint32(0), n)

	ts, n = Split(math.MaxUint64)
	end, _ := time.Parse(time.RFC3339, "2106-02-07T06:28:15+00:00")
	assert.True(t, end.UTC().Equal(ts.UTC()))
	assert.Equal(t, uint32(math.MaxUint32), n)
}

func TestEncodeAndDecodeSequence(t *testing.T) {
	key := Encode(0, true)
	assert.Equal(t, []byte("0"), key)

	key = Encode(0, false)
	assert.Equal(t, []byte("00000000000000000000"), key)

	n, err := Decode(key)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), n)

	key = Encode(1, true)
	assert.Equal(t, []byte("1"), key)

	key = Encode(1, false)
	assert.Equal(t, []byte("00000000000000000001"), key)

	n, err = Decode(key)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	key = Encode(math.MaxUint64, false)
	assert.Equal(t, []byte("18446744073709551615"), key)

	n, err = Decode(key)
	assert.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), n)
}

func TestObserveSequence(t *testing.T) {
	future := Join(time.Now().Add(time.Hour), 7)
	Observe(future)

	next := Generate(1)
	assert.Equal(t, future+1, next)

	next = Generate(3)
	assert.Equal(t, future+2, next)

	Observe(0)
	assert.Equal(t, future+5, Generate(1))
}

func TestEncodeSequenceOrder(t *testing.T) {
	a := Encode(9, false)
	b := Encode(10, false)
	assert.True(t, string(a) < string(b))
	assert.Len(t, a, EncodedLength)
}

func BenchmarkGenerateSequence(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		Generate(100)
	}
}

func BenchmarkEncodeSequence(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		Encode(uint64(i), false)
	}
}

func BenchmarkEncodeSequenceCompact(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		Encode(uint64(i), true)
	}
}

func BenchmarkDecodeSequence(b *testing.B) {
	m := map[int][]byte{}
	for i := 0; i < b.N; i++ {
		m[i] = Encode(uint64(i), false)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := Decode(m[i])
		if err != nil {
			panic(err)
		}
	}
}
