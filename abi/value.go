package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/umbracle/ethgo"
)

// Value is an immutable typed ABI value. Its shape mirrors a descriptor:
// scalars carry their payload, arrays, slices and tuples carry elements.
type Value struct {
	kind  Kind
	num   *big.Int
	flag  bool
	addr  ethgo.Address
	data  []byte
	str   string
	elems []Value
}

// NewUint returns an unsigned integer value. n is copied. A nil n yields a
// value the encoder rejects with ErrTypeValueMismatch.
func NewUint(n *big.Int) Value {
	return Value{kind: UintTy, num: copyInt(n)}
}

func NewUint64(n uint64) Value {
	return Value{kind: UintTy, num: new(big.Int).SetUint64(n)}
}

// NewInt returns a signed integer value. n is copied, nil as in NewUint.
func NewInt(n *big.Int) Value {
	return Value{kind: IntTy, num: copyInt(n)}
}

func copyInt(n *big.Int) *big.Int {
	if n == nil {
		return nil
	}

	return new(big.Int).Set(n)
}

func NewInt64(n int64) Value {
	return Value{kind: IntTy, num: big.NewInt(n)}
}

func NewBool(b bool) Value {
	return Value{kind: BoolTy, flag: b}
}

func NewAddress(addr ethgo.Address) Value {
	return Value{kind: AddressTy, addr: addr}
}

// NewFixedBytes returns a bytes<len(b)> value. b is copied.
func NewFixedBytes(b []byte) Value {
	return Value{kind: FixedBytesTy, data: cloneBytes(b)}
}

// NewFunction returns a function value: a contract address followed by a
// selector.
func NewFunction(addr ethgo.Address, selector [4]byte) Value {
	data := make([]byte, 0, functionLength)
	data = append(data, addr[:]...)
	data = append(data, selector[:]...)

	return Value{kind: FunctionTy, data: data}
}

// NewBytes returns a dynamic bytes value. b is copied.
func NewBytes(b []byte) Value {
	return Value{kind: BytesTy, data: cloneBytes(b)}
}

func NewString(s string) Value {
	return Value{kind: StringTy, str: s}
}

// NewArray returns a fixed length array value
func NewArray(elems ...Value) Value {
	return Value{kind: ArrayTy, elems: cloneValues(elems)}
}

// NewSlice returns a dynamic array value
func NewSlice(elems ...Value) Value {
	return Value{kind: SliceTy, elems: cloneValues(elems)}
}

func NewTuple(elems ...Value) Value {
	return Value{kind: TupleTy, elems: cloneValues(elems)}
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)

	return out
}

func cloneValues(v []Value) []Value {
	out := make([]Value, len(v))
	copy(out, v)

	return out
}

// Kind returns the variant of the value
func (v Value) Kind() Kind {
	return v.kind
}

// BigInt returns a copy of an integer payload, nil for other kinds
func (v Value) BigInt() *big.Int {
	if v.num == nil {
		return nil
	}

	return new(big.Int).Set(v.num)
}

func (v Value) Bool() bool {
	return v.flag
}

func (v Value) Address() ethgo.Address {
	return v.addr
}

// Bytes returns a copy of a fixed bytes, function or bytes payload
func (v Value) Bytes() []byte {
	if v.data == nil {
		return nil
	}

	return cloneBytes(v.data)
}

// Text returns the payload of a string value
func (v Value) Text() string {
	return v.str
}

// Len returns the element count of an array, slice or tuple
func (v Value) Len() int {
	return len(v.elems)
}

// Index returns the i-th element of an array, slice or tuple
func (v Value) Index(i int) Value {
	return v.elems[i]
}

// Elems returns a copy of the elements of an array, slice or tuple
func (v Value) Elems() []Value {
	return cloneValues(v.elems)
}

// Equal reports deep equality of two values
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case UintTy, IntTy:
		if v.num == nil || other.num == nil {
			return v.num == other.num
		}

		return v.num.Cmp(other.num) == 0
	case BoolTy:
		return v.flag == other.flag
	case AddressTy:
		return v.addr == other.addr
	case FixedBytesTy, FunctionTy, BytesTy:
		return bytes.Equal(v.data, other.data)
	case StringTy:
		return v.str == other.str
	case ArrayTy, SliceTy, TupleTy:
		if len(v.elems) != len(other.elems) {
			return false
		}

		for i := range v.elems {
			if !v.elems[i].Equal(other.elems[i]) {
				return false
			}
		}

		return true
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.kind {
	case UintTy, IntTy:
		if v.num == nil {
			return "<nil>"
		}

		return v.num.String()
	case BoolTy:
		if v.flag {
			return "true"
		}

		return "false"
	case AddressTy:
		return v.addr.String()
	case FixedBytesTy, FunctionTy, BytesTy:
		return hexutil.Encode(v.data)
	case StringTy:
		return fmt.Sprintf("%q", v.str)
	case ArrayTy, SliceTy, TupleTy:
		parts := make([]string, len(v.elems))
		for i, elem := range v.elems {
			parts[i] = elem.String()
		}

		if v.kind == TupleTy {
			return "(" + strings.Join(parts, ", ") + ")"
		}

		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<invalid>"
	}
}

// MarshalJSON renders integers as decimal strings and byte payloads as 0x
// prefixed hex. Composites become JSON arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case UintTy, IntTy:
		if v.num == nil {
			return []byte("null"), nil
		}

		return json.Marshal(v.num.String())
	case BoolTy:
		return json.Marshal(v.flag)
	case AddressTy:
		return json.Marshal(v.addr.String())
	case FixedBytesTy, FunctionTy, BytesTy:
		return json.Marshal(hexutil.Encode(v.data))
	case StringTy:
		return json.Marshal(v.str)
	case ArrayTy, SliceTy, TupleTy:
		if v.elems == nil {
			return []byte("[]"), nil
		}

		return json.Marshal(v.elems)
	default:
		return nil, fmt.Errorf("%w: cannot marshal value of kind %s", ErrTypeValueMismatch, v.kind)
	}
}
