package abi

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the closed set of ABI type variants
type Kind int

const (
	UintTy Kind = iota + 1
	IntTy
	BoolTy
	AddressTy
	FixedBytesTy
	FunctionTy
	BytesTy
	StringTy
	ArrayTy
	SliceTy
	TupleTy
)

func (k Kind) String() string {
	switch k {
	case UintTy:
		return "uint"
	case IntTy:
		return "int"
	case BoolTy:
		return "bool"
	case AddressTy:
		return "address"
	case FixedBytesTy:
		return "fixed bytes"
	case FunctionTy:
		return "function"
	case BytesTy:
		return "bytes"
	case StringTy:
		return "string"
	case ArrayTy:
		return "array"
	case SliceTy:
		return "slice"
	case TupleTy:
		return "tuple"
	default:
		return "invalid"
	}
}

const (
	// MaxDepth is the deepest composite nesting a descriptor may have
	MaxDepth = 64

	// maxHeadSize bounds the static footprint of a single descriptor
	maxHeadSize = 1<<31 - 1

	addressLength  = 20
	functionLength = 24
)

// Field is a single (optionally named) member of a tuple
type Field struct {
	Name string
	Type *Type
}

// Type is an immutable ABI type descriptor. Static/dynamic classification,
// head size, depth and canonical name are computed once at construction.
type Type struct {
	kind   Kind
	size   int
	elem   *Type
	fields []Field

	dynamic  bool
	headSize int
	minSize  int
	depth    int
	str      string
}

// Kind returns the variant of the descriptor
func (t *Type) Kind() Kind {
	return t.kind
}

// Size returns the bit width for integers, the byte width for fixed bytes and
// the length for fixed arrays. It is zero for every other kind.
func (t *Type) Size() int {
	return t.size
}

// Elem returns the element descriptor of an array or slice
func (t *Type) Elem() *Type {
	return t.elem
}

// Fields returns a copy of the tuple members
func (t *Type) Fields() []Field {
	if t.fields == nil {
		return nil
	}

	out := make([]Field, len(t.fields))
	copy(out, t.fields)

	return out
}

// NumFields returns the number of tuple members
func (t *Type) NumFields() int {
	return len(t.fields)
}

// Field returns the i-th tuple member
func (t *Type) Field(i int) Field {
	return t.fields[i]
}

// IsDynamic reports whether the encoding of the type is referenced by offset
func (t *Type) IsDynamic() bool {
	return t.dynamic
}

// HeadSize returns the number of bytes the type occupies in the head of its
// enclosing scope: 32 for dynamic types, the full inline size otherwise.
func (t *Type) HeadSize() int {
	return t.headSize
}

// Depth returns the composite nesting depth, zero for scalars
func (t *Type) Depth() int {
	return t.depth
}

// String returns the canonical name used in signatures
func (t *Type) String() string {
	return t.str
}

// Equal reports whether both descriptors have the same shape. Tuple member
// names are ignored.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}

	return t.str == other.str
}

func (t *Type) isScalar() bool {
	switch t.kind {
	case UintTy, IntTy, BoolTy, AddressTy, FixedBytesTy, FunctionTy:
		return true
	default:
		return false
	}
}

func newScalar(kind Kind, size int, name string) *Type {
	return &Type{
		kind:     kind,
		size:     size,
		headSize: WordSize,
		minSize:  WordSize,
		str:      name,
	}
}

func newUint(bits int) (*Type, error) {
	if !validIntWidth(bits) {
		return nil, fmt.Errorf("%w: uint%d", ErrMalformedSignature, bits)
	}

	return newScalar(UintTy, bits, "uint"+strconv.Itoa(bits)), nil
}

func newInt(bits int) (*Type, error) {
	if !validIntWidth(bits) {
		return nil, fmt.Errorf("%w: int%d", ErrMalformedSignature, bits)
	}

	return newScalar(IntTy, bits, "int"+strconv.Itoa(bits)), nil
}

func newFixedBytes(size int) (*Type, error) {
	if size < 1 || size > WordSize {
		return nil, fmt.Errorf("%w: bytes%d", ErrMalformedSignature, size)
	}

	return newScalar(FixedBytesTy, size, "bytes"+strconv.Itoa(size)), nil
}

func validIntWidth(bits int) bool {
	return bits >= 8 && bits <= 256 && bits%8 == 0
}

func newArray(elem *Type, n uint64) (*Type, error) {
	if n == 0 {
		return nil, fmt.Errorf("%w: zero length array of %s", ErrInvalidArrayLength, elem)
	}

	if n > uint64(maxHeadSize/elem.headSize) {
		return nil, fmt.Errorf("%w: %s[%d] is too large", ErrInvalidArrayLength, elem, n)
	}

	if elem.depth+1 > MaxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrSignatureTooComplex, MaxDepth)
	}

	content := int(n) * elem.headSize

	t := &Type{
		kind:    ArrayTy,
		size:    int(n),
		elem:    elem,
		dynamic: elem.dynamic,
		depth:   elem.depth + 1,
		minSize: content,
		str:     elem.str + "[" + strconv.FormatUint(n, 10) + "]",
	}

	if t.dynamic {
		t.headSize = WordSize
	} else {
		t.headSize = content
	}

	return t, nil
}

func newSlice(elem *Type) (*Type, error) {
	if elem.depth+1 > MaxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrSignatureTooComplex, MaxDepth)
	}

	return &Type{
		kind:     SliceTy,
		elem:     elem,
		dynamic:  true,
		depth:    elem.depth + 1,
		headSize: WordSize,
		minSize:  WordSize,
		str:      elem.str + "[]",
	}, nil
}

func newTuple(fields []Field) (*Type, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty tuple", ErrMalformedSignature)
	}

	t := &Type{
		kind:   TupleTy,
		fields: make([]Field, len(fields)),
	}

	names := make([]string, len(fields))
	content := 0

	for i, f := range fields {
		if f.Type == nil {
			return nil, fmt.Errorf("%w: tuple member %d has no type", ErrMalformedSignature, i)
		}

		t.fields[i] = f
		names[i] = f.Type.str

		if f.Type.dynamic {
			t.dynamic = true
		}

		if f.Type.depth+1 > t.depth {
			t.depth = f.Type.depth + 1
		}

		if content > maxHeadSize-f.Type.headSize {
			return nil, fmt.Errorf("%w: tuple head exceeds %d bytes", ErrSignatureTooComplex, maxHeadSize)
		}

		content += f.Type.headSize
	}

	if t.depth > MaxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrSignatureTooComplex, MaxDepth)
	}

	t.minSize = content
	if t.dynamic {
		t.headSize = WordSize
	} else {
		t.headSize = content
	}

	t.str = "(" + strings.Join(names, ",") + ")"

	return t, nil
}

var (
	boolType     = newScalar(BoolTy, 0, "bool")
	addressType  = newScalar(AddressTy, 0, "address")
	functionType = newScalar(FunctionTy, 0, "function")
	bytesType    = &Type{kind: BytesTy, dynamic: true, headSize: WordSize, minSize: WordSize, str: "bytes"}
	stringType   = &Type{kind: StringTy, dynamic: true, headSize: WordSize, minSize: WordSize, str: "string"}
)

func mustType(t *Type, err error) *Type {
	if err != nil {
		panic(err)
	}

	return t
}

// UintType returns uint<bits>. It panics on an invalid width.
func UintType(bits int) *Type {
	return mustType(newUint(bits))
}

// IntType returns int<bits>. It panics on an invalid width.
func IntType(bits int) *Type {
	return mustType(newInt(bits))
}

func BoolType() *Type {
	return boolType
}

func AddressType() *Type {
	return addressType
}

func FunctionType() *Type {
	return functionType
}

func BytesType() *Type {
	return bytesType
}

func StringType() *Type {
	return stringType
}

// FixedBytesType returns bytes<size>. It panics unless 1 <= size <= 32.
func FixedBytesType(size int) *Type {
	return mustType(newFixedBytes(size))
}

// ArrayType returns elem[n]. It panics on a zero or oversized length.
func ArrayType(elem *Type, n int) *Type {
	if n < 0 {
		panic(fmt.Errorf("%w: negative length %d", ErrInvalidArrayLength, n))
	}

	return mustType(newArray(elem, uint64(n)))
}

// SliceType returns elem[]
func SliceType(elem *Type) *Type {
	return mustType(newSlice(elem))
}

// TupleType returns a tuple of the given members. It panics on an empty list.
func TupleType(fields ...Field) *Type {
	return mustType(newTuple(fields))
}

// TupleOf returns an unnamed tuple of the given descriptors
func TupleOf(types ...*Type) *Type {
	fields := make([]Field, len(types))
	for i, typ := range types {
		fields[i] = Field{Type: typ}
	}

	return TupleType(fields...)
}

// HeadLength returns the size of the head region for a sequence of descriptors
func HeadLength(types []*Type) int {
	size := 0
	for _, t := range types {
		size += t.headSize
	}

	return size
}
