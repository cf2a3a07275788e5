// Package seq generates and encodes the sequences used to order journaled
// transactions.
package seq

import (
	"strconv"
	"sync"
	"time"
)

var seconds int64
var counter uint32
var last uint64
var mutex sync.Mutex

// EncodedLength defines the expected length of an encoded sequence.
const EncodedLength = 20

// Generate will generate a locally monotonic sequence that consists of
// the current time and an ordinal number. The returned sequence is the first of
// n consecutive numbers and will either overflow in 2106 or if generated more
// than ca. 4 billion times a second.
func Generate(n uint32) uint64 {
	// acquire mutex
	mutex.Lock()
	defer mutex.Unlock()

	// get current time
	now := time.Now().Unix()

	// check if reset is needed
	if seconds != now {
		seconds = now
		counter = 1
	}

	// increment counter
	counter += n

	// compute first number
	first := Join(time.Unix(seconds, 0), counter-n)

	// never go backwards if the clock does
	if first <= last {
		first = last + 1
	}

	// remember last number
	last = first + uint64(n) - 1

	return first
}

// Observe will make sure that subsequently generated sequences are greater
// than the provided sequence.
func Observe(s uint64) {
	// acquire mutex
	mutex.Lock()
	defer mutex.Unlock()

	// raise last
	if s > last {
		last = s
	}
}

// Join constructs a sequence from a 32 bit timestamp and 32 bit ordinal
// number.
func Join(ts time.Time, n uint32) uint64 {
	return uint64(ts.Unix())<<32 | uint64(n)
}

// Split explodes the sequence in its timestamp and ordinal number.
func Split(s uint64) (time.Time, uint32) {
	ts := time.Unix(int64(s>>32), 0)
	return ts, uint32(s & 0xFFFFFFFF)
}

// Encode will encode a sequence. Non compact sequences are zero padded so that
// they sort lexicographically.
func Encode(s uint64, compact bool) []byte {
	// prepare buffer
	buf := make([]byte, EncodedLength*2)

	// encode number
	res := strconv.AppendUint(buf[EncodedLength:EncodedLength], s, 10)

	// return directly if compact or full
	if compact || len(res) >= EncodedLength {
		return res
	}

	// determine start
	start := len(res)

	// writes zeroes
	for i := start; i < start+EncodedLength-len(res); i++ {
		buf[i] = '0'
	}

	// slice number
	res = buf[start : start+EncodedLength]

	return res
}

// Decode will decode a sequence.
func Decode(key []byte) (uint64, error) {
	return strconv.ParseUint(string(key), 10, 64)
}
