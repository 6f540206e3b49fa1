package abi

import (
	"encoding/binary"
	"math/big"
)

// WordSize is the size of an ABI word in bytes
const WordSize = 32

// Word is a single 32 byte ABI slot
type Word [WordSize]byte

var tt256 = new(big.Int).Lsh(big.NewInt(1), 256)

// paddedLength rounds n up to a multiple of WordSize
func paddedLength(n int) int {
	return (n + WordSize - 1) / WordSize * WordSize
}

// uintWord left pads v
func uintWord(v uint64) Word {
	var w Word

	binary.BigEndian.PutUint64(w[WordSize-8:], v)

	return w
}

// bigWord writes n as a 256 bit two's complement number. Callers check the
// range beforehand.
func bigWord(n *big.Int) Word {
	var w Word

	if n.Sign() < 0 {
		new(big.Int).Add(tt256, n).FillBytes(w[:])
	} else {
		n.FillBytes(w[:])
	}

	return w
}

// leftPadded copies b into the low order bytes of a word
func leftPadded(b []byte) Word {
	var w Word

	copy(w[WordSize-len(b):], b)

	return w
}

// rightPadded copies b into the high order bytes of a word
func rightPadded(b []byte) Word {
	var w Word

	copy(w[:], b)

	return w
}

// wordBuffer is an append-only byte buffer with in-place patching of
// previously reserved slots.
type wordBuffer struct {
	buf []byte
}

func newWordBuffer(capacity int) *wordBuffer {
	return &wordBuffer{buf: make([]byte, 0, capacity)}
}

func (w *wordBuffer) Len() int {
	return len(w.buf)
}

// reserve appends n zero bytes and returns their start position
func (w *wordBuffer) reserve(n int) int {
	at := len(w.buf)
	w.buf = append(w.buf, make([]byte, n)...)

	return at
}

func (w *wordBuffer) putWord(at int, word Word) {
	copy(w.buf[at:at+WordSize], word[:])
}

func (w *wordBuffer) putUint(at int, v uint64) {
	w.putWord(at, uintWord(v))
}

func (w *wordBuffer) appendWord(word Word) {
	w.buf = append(w.buf, word[:]...)
}

func (w *wordBuffer) appendUint(v uint64) {
	w.appendWord(uintWord(v))
}

// appendPadded appends b right padded with zeros to a word boundary
func (w *wordBuffer) appendPadded(b []byte) {
	w.buf = append(w.buf, b...)
	if rem := len(b) % WordSize; rem != 0 {
		w.buf = append(w.buf, make([]byte, WordSize-rem)...)
	}
}

func (w *wordBuffer) Bytes() []byte {
	return w.buf
}
