package abi

import (
	"fmt"
	"math/big"
	"unicode/utf8"
)

// Encode lays out values against their descriptors using the head/tail
// scheme. On failure no bytes are returned.
func Encode(values []Value, types []*Type) ([]byte, error) {
	if len(values) != len(types) {
		return nil, fmt.Errorf("%w: %d values for %d types", ErrTypeValueMismatch, len(values), len(types))
	}

	buf := newWordBuffer(HeadLength(types))

	err := encodeSequence(buf, len(types), func(i int) *Type { return types[i] }, values)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// EncodeValue encodes a single value as a one element sequence
func EncodeValue(v Value, t *Type) ([]byte, error) {
	return Encode([]Value{v}, []*Type{t})
}

// EncodeCall encodes a function call: the selector of the canonical form of
// signature followed by the encoded arguments.
func EncodeCall(signature string, values []Value) ([]byte, error) {
	method, err := ParseMethod(signature)
	if err != nil {
		return nil, err
	}

	selector, err := Selector(method.Canonical())
	if err != nil {
		return nil, err
	}

	args, err := Encode(values, method.Inputs)
	if err != nil {
		return nil, err
	}

	return append(selector[:], args...), nil
}

// encodeSequence writes a head region for n elements at the end of buf and
// appends the tails of dynamic elements after it. Offsets are relative to
// the start of the head region.
func encodeSequence(buf *wordBuffer, n int, typeAt func(int) *Type, values []Value) error {
	head := 0
	for i := 0; i < n; i++ {
		head += typeAt(i).headSize
	}

	start := buf.reserve(head)
	pos := start

	for i := 0; i < n; i++ {
		t := typeAt(i)

		if t.dynamic {
			buf.putUint(pos, uint64(buf.Len()-start))

			if err := encodeTail(buf, t, values[i]); err != nil {
				return err
			}
		} else if err := encodeStatic(buf, pos, t, values[i]); err != nil {
			return err
		}

		pos += t.headSize
	}

	return nil
}

func mismatch(t *Type, v Value) error {
	return fmt.Errorf("%w: cannot use %s value as %s", ErrTypeValueMismatch, v.kind, t)
}

// encodeStatic writes a static value in place at position at
func encodeStatic(buf *wordBuffer, at int, t *Type, v Value) error {
	if v.kind != t.kind {
		return mismatch(t, v)
	}

	switch t.kind {
	case UintTy, IntTy:
		if err := checkIntRange(t, v.num); err != nil {
			return err
		}

		buf.putWord(at, bigWord(v.num))
	case BoolTy:
		if v.flag {
			buf.putUint(at, 1)
		} else {
			buf.putUint(at, 0)
		}
	case AddressTy:
		buf.putWord(at, leftPadded(v.addr[:]))
	case FixedBytesTy:
		if len(v.data) != t.size {
			return fmt.Errorf("%w: %d bytes for %s", ErrTypeValueMismatch, len(v.data), t)
		}

		buf.putWord(at, rightPadded(v.data))
	case FunctionTy:
		if len(v.data) != functionLength {
			return fmt.Errorf("%w: %d bytes for function", ErrTypeValueMismatch, len(v.data))
		}

		buf.putWord(at, rightPadded(v.data))
	case ArrayTy:
		if len(v.elems) != t.size {
			return fmt.Errorf("%w: %d elements for %s", ErrArrayLengthMismatch, len(v.elems), t)
		}

		for i, elem := range v.elems {
			if err := encodeStatic(buf, at+i*t.elem.headSize, t.elem, elem); err != nil {
				return err
			}
		}
	case TupleTy:
		if len(v.elems) != len(t.fields) {
			return fmt.Errorf("%w: %d elements for %s", ErrTypeValueMismatch, len(v.elems), t)
		}

		for i, f := range t.fields {
			if err := encodeStatic(buf, at, f.Type, v.elems[i]); err != nil {
				return err
			}

			at += f.Type.headSize
		}
	default:
		return mismatch(t, v)
	}

	return nil
}

// encodeTail appends the encoding of a dynamic value
func encodeTail(buf *wordBuffer, t *Type, v Value) error {
	if v.kind != t.kind {
		return mismatch(t, v)
	}

	switch t.kind {
	case BytesTy:
		buf.appendUint(uint64(len(v.data)))
		buf.appendPadded(v.data)
	case StringTy:
		if !utf8.ValidString(v.str) {
			return fmt.Errorf("%w: %s value is not valid utf-8", ErrTypeValueMismatch, t)
		}

		buf.appendUint(uint64(len(v.str)))
		buf.appendPadded([]byte(v.str))
	case SliceTy:
		buf.appendUint(uint64(len(v.elems)))

		return encodeSequence(buf, len(v.elems), func(int) *Type { return t.elem }, v.elems)
	case ArrayTy:
		if len(v.elems) != t.size {
			return fmt.Errorf("%w: %d elements for %s", ErrArrayLengthMismatch, len(v.elems), t)
		}

		return encodeSequence(buf, t.size, func(int) *Type { return t.elem }, v.elems)
	case TupleTy:
		if len(v.elems) != len(t.fields) {
			return fmt.Errorf("%w: %d elements for %s", ErrTypeValueMismatch, len(v.elems), t)
		}

		return encodeSequence(buf, len(t.fields), func(i int) *Type { return t.fields[i].Type }, v.elems)
	default:
		return mismatch(t, v)
	}

	return nil
}

// checkIntRange verifies n fits the bit width of an integer descriptor
func checkIntRange(t *Type, n *big.Int) error {
	if n == nil {
		return fmt.Errorf("%w: nil integer for %s", ErrTypeValueMismatch, t)
	}

	if t.kind == UintTy {
		if n.Sign() < 0 || n.BitLen() > t.size {
			return fmt.Errorf("%w: %s does not fit %s", ErrValueOutOfRange, n, t)
		}

		return nil
	}

	// -2^(M-1) <= n < 2^(M-1); for negative n, ^n = -n-1
	bits := n.BitLen()
	if n.Sign() < 0 {
		bits = new(big.Int).Not(n).BitLen()
	}

	if bits > t.size-1 {
		return fmt.Errorf("%w: %s does not fit %s", ErrValueOutOfRange, n, t)
	}

	return nil
}
