package abi

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/umbracle/ethgo"
)

// DecodeOptions tunes input validation
type DecodeOptions struct {
	// Strict rejects bytes not referenced by any value, non-zero or missing
	// padding after byte payloads, and offsets that are not word aligned or
	// point back into the head of their scope.
	Strict bool
}

// Decode reconstructs values from data. Trailing bytes are tolerated.
func Decode(data []byte, types []*Type) ([]Value, error) {
	return DecodeWithOptions(data, types, DecodeOptions{})
}

// DecodeValue decodes a single value encoded as a one element sequence
func DecodeValue(data []byte, t *Type) (Value, error) {
	values, err := Decode(data, []*Type{t})
	if err != nil {
		return Value{}, err
	}

	return values[0], nil
}

// DecodeWithOptions reconstructs values from data. Every offset, count and
// length is validated against the input before it is followed, and the total
// output is bounded by decodeBudget. data is never modified and no values are
// returned on failure.
func DecodeWithOptions(data []byte, types []*Type, opts DecodeOptions) ([]Value, error) {
	d := &decoder{data: data, strict: opts.Strict, budget: decodeBudget(data, types)}

	values, err := d.sequence(0, len(types), func(i int) *Type { return types[i] })
	if err != nil {
		return nil, err
	}

	if d.strict && d.end < len(data) {
		return nil, fmt.Errorf("%w: %d of %d bytes used", ErrTrailingBytes, d.end, len(data))
	}

	return values, nil
}

type decoder struct {
	data   []byte
	strict bool

	// end is the furthest byte referenced so far
	end int

	// budget is the number of elements and payload words left to produce
	budget int
}

// decodeBudget bounds the output of one decode. A canonical encoding never
// reuses a word within one nesting level, so it produces at most one element
// per input word and level plus one word per payload word.
func decodeBudget(data []byte, types []*Type) int {
	depth := 0
	for _, t := range types {
		if t.depth > depth {
			depth = t.depth
		}
	}

	return (len(data)/WordSize + 1) * (depth + 2)
}

// charge takes n units from the budget. Values sharing one tail are charged
// once per reference.
func (d *decoder) charge(n int, what string, at int) error {
	if n > d.budget {
		return fmt.Errorf("%w: %s at %d exceeds the output bound of a %d byte input",
			ErrElementCountUnreasonable, what, at, len(d.data))
	}

	d.budget -= n

	return nil
}

func (d *decoder) mark(end int) {
	if end > d.end {
		d.end = end
	}
}

func (d *decoder) word(at int) []byte {
	return d.data[at : at+WordSize]
}

// readSize reads a word used as an offset, count or length. ok is false if
// the value does not fit in an int.
func (d *decoder) readSize(at int) (int, bool) {
	w := d.word(at)

	for _, b := range w[:WordSize-8] {
		if b != 0 {
			return 0, false
		}
	}

	n := binary.BigEndian.Uint64(w[WordSize-8:])
	if n > maxHeadSize {
		return 0, false
	}

	return int(n), true
}

// sequence decodes n elements whose head region starts at base
func (d *decoder) sequence(base, n int, typeAt func(int) *Type) ([]Value, error) {
	head := 0
	for i := 0; i < n; i++ {
		head += typeAt(i).headSize
	}

	if head > len(d.data)-base {
		return nil, fmt.Errorf("%w: head needs %d bytes at %d, have %d",
			ErrBufferTooShort, head, base, len(d.data)-base)
	}

	d.mark(base + head)

	if err := d.charge(n, "sequence", base); err != nil {
		return nil, err
	}

	values := make([]Value, n)
	pos := base

	for i := 0; i < n; i++ {
		t := typeAt(i)

		var err error
		if t.dynamic {
			values[i], err = d.indirect(base, head, pos, t)
		} else {
			values[i], err = d.static(pos, t)
		}

		if err != nil {
			return nil, err
		}

		pos += t.headSize
	}

	return values, nil
}

// indirect follows the offset stored at pos, relative to base
func (d *decoder) indirect(base, head, pos int, t *Type) (Value, error) {
	remaining := len(d.data) - base

	offset, ok := d.readSize(pos)
	if !ok || offset > remaining {
		return Value{}, fmt.Errorf("%w: %s at %d points past %d remaining bytes",
			ErrOffsetOutOfBounds, t, pos, remaining)
	}

	if t.minSize > remaining-offset {
		return Value{}, fmt.Errorf("%w: %s at offset %d needs %d bytes, %d left",
			ErrInvalidOffset, t, offset, t.minSize, remaining-offset)
	}

	if d.strict && (offset%WordSize != 0 || offset < head) {
		return Value{}, fmt.Errorf("%w: %s at offset %d", ErrInvalidOffset, t, offset)
	}

	return d.dynamic(base+offset, t)
}

// dynamic decodes the tail of a dynamic value starting at at
func (d *decoder) dynamic(at int, t *Type) (Value, error) {
	switch t.kind {
	case BytesTy, StringTy:
		payload, err := d.payload(at, t)
		if err != nil {
			return Value{}, err
		}

		if t.kind == BytesTy {
			return Value{kind: BytesTy, data: payload}, nil
		}

		if !utf8.Valid(payload) {
			return Value{}, fmt.Errorf("%w: string at %d", ErrInvalidUTF8, at)
		}

		return Value{kind: StringTy, str: string(payload)}, nil
	case SliceTy:
		count, ok := d.readSize(at)
		remaining := len(d.data) - at - WordSize

		if !ok || count > remaining/t.elem.headSize {
			return Value{}, fmt.Errorf("%w: %s at %d claims more elements than %d bytes can hold",
				ErrElementCountUnreasonable, t, at, remaining)
		}

		d.mark(at + WordSize)

		elems, err := d.sequence(at+WordSize, count, func(int) *Type { return t.elem })
		if err != nil {
			return Value{}, err
		}

		return Value{kind: SliceTy, elems: elems}, nil
	case ArrayTy:
		elems, err := d.sequence(at, t.size, func(int) *Type { return t.elem })
		if err != nil {
			return Value{}, err
		}

		return Value{kind: ArrayTy, elems: elems}, nil
	case TupleTy:
		elems, err := d.sequence(at, len(t.fields), func(i int) *Type { return t.fields[i].Type })
		if err != nil {
			return Value{}, err
		}

		return Value{kind: TupleTy, elems: elems}, nil
	default:
		return Value{}, fmt.Errorf("%w: %s is not dynamic", ErrTypeValueMismatch, t)
	}
}

// payload reads a length prefixed byte string
func (d *decoder) payload(at int, t *Type) ([]byte, error) {
	length, ok := d.readSize(at)
	start := at + WordSize
	available := len(d.data) - start

	if !ok || length > available {
		return nil, fmt.Errorf("%w: %s at %d claims %d bytes, %d left",
			ErrBufferTooShort, t, at, length, available)
	}

	end := start + paddedLength(length)
	if end > len(d.data) {
		if d.strict {
			return nil, fmt.Errorf("%w: %s at %d is missing its padding", ErrBufferTooShort, t, at)
		}

		end = len(d.data)
	}

	if d.strict {
		for _, b := range d.data[start+length : end] {
			if b != 0 {
				return nil, fmt.Errorf("%w: %s at %d has non-zero padding", ErrInvalidPadding, t, at)
			}
		}
	}

	d.mark(end)

	if err := d.charge(paddedLength(length)/WordSize, t.String(), at); err != nil {
		return nil, err
	}

	out := make([]byte, length)
	copy(out, d.data[start:start+length])

	return out, nil
}

// static decodes a static value stored inline at at
func (d *decoder) static(at int, t *Type) (Value, error) {
	switch t.kind {
	case UintTy:
		w := d.word(at)
		if !allZero(w[:WordSize-t.size/8]) {
			return Value{}, d.padding(at, t)
		}

		return Value{kind: UintTy, num: new(big.Int).SetBytes(w)}, nil
	case IntTy:
		return d.signed(at, t)
	case BoolTy:
		w := d.word(at)
		if !allZero(w[:WordSize-1]) || w[WordSize-1] > 1 {
			return Value{}, d.padding(at, t)
		}

		return Value{kind: BoolTy, flag: w[WordSize-1] == 1}, nil
	case AddressTy:
		w := d.word(at)
		if !allZero(w[:WordSize-addressLength]) {
			return Value{}, d.padding(at, t)
		}

		var addr ethgo.Address

		copy(addr[:], w[WordSize-addressLength:])

		return Value{kind: AddressTy, addr: addr}, nil
	case FixedBytesTy, FunctionTy:
		size := t.size
		if t.kind == FunctionTy {
			size = functionLength
		}

		w := d.word(at)
		if !allZero(w[size:]) {
			return Value{}, d.padding(at, t)
		}

		return Value{kind: t.kind, data: cloneBytes(w[:size])}, nil
	case ArrayTy:
		elems := make([]Value, t.size)

		for i := range elems {
			elem, err := d.static(at+i*t.elem.headSize, t.elem)
			if err != nil {
				return Value{}, err
			}

			elems[i] = elem
		}

		return Value{kind: ArrayTy, elems: elems}, nil
	case TupleTy:
		elems := make([]Value, len(t.fields))

		for i, f := range t.fields {
			elem, err := d.static(at, f.Type)
			if err != nil {
				return Value{}, err
			}

			elems[i] = elem
			at += f.Type.headSize
		}

		return Value{kind: TupleTy, elems: elems}, nil
	default:
		return Value{}, fmt.Errorf("%w: %s is not static", ErrTypeValueMismatch, t)
	}
}

// signed decodes an int<M> word, which must be the sign extension of its low
// M bits.
func (d *decoder) signed(at int, t *Type) (Value, error) {
	w := d.word(at)
	width := t.size / 8

	var fill byte
	if w[WordSize-width]&0x80 != 0 {
		fill = 0xff
	}

	for _, b := range w[:WordSize-width] {
		if b != fill {
			return Value{}, d.padding(at, t)
		}
	}

	n := new(big.Int).SetBytes(w)
	if w[0]&0x80 != 0 {
		n.Sub(n, tt256)
	}

	return Value{kind: IntTy, num: n}, nil
}

func (d *decoder) padding(at int, t *Type) error {
	return fmt.Errorf("%w: %s at %d", ErrInvalidPadding, t, at)
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}

	return true
}
