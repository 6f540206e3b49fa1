package abi

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/umbracle/ethgo"
)

// ToNative converts a value into plain Go data: *big.Int for integers,
// ethgo.Address, []byte for byte payloads, string, []interface{} for arrays
// and map[string]interface{} for tuples, keyed by member name or index.
func ToNative(t *Type, v Value) (interface{}, error) {
	if t.kind != v.kind {
		return nil, mismatch(t, v)
	}

	switch t.kind {
	case UintTy, IntTy:
		return v.BigInt(), nil
	case BoolTy:
		return v.flag, nil
	case AddressTy:
		return v.addr, nil
	case FixedBytesTy, FunctionTy, BytesTy:
		return v.Bytes(), nil
	case StringTy:
		return v.str, nil
	case ArrayTy, SliceTy:
		out := make([]interface{}, len(v.elems))

		for i, elem := range v.elems {
			native, err := ToNative(t.elem, elem)
			if err != nil {
				return nil, err
			}

			out[i] = native
		}

		return out, nil
	case TupleTy:
		if len(v.elems) != len(t.fields) {
			return nil, mismatch(t, v)
		}

		out := make(map[string]interface{}, len(t.fields))

		for i, f := range t.fields {
			native, err := ToNative(f.Type, v.elems[i])
			if err != nil {
				return nil, err
			}

			out[fieldKey(f.Name, i)] = native
		}

		return out, nil
	default:
		return nil, mismatch(t, v)
	}
}

func fieldKey(name string, i int) string {
	if name == "" {
		return strconv.Itoa(i)
	}

	return name
}

// FromNative converts loosely typed Go data, as produced by encoding/json
// or written by hand, into a value of type t.
//
// Integers accept Go integer kinds, *big.Int, json.Number, integral floats
// and decimal or 0x prefixed hex strings. Byte payloads accept []byte, byte
// arrays and 0x prefixed hex strings. Tuples accept positional slices, maps
// keyed by member name or index, and structs tagged with `abi`.
func FromNative(t *Type, x interface{}) (Value, error) {
	if v, ok := x.(Value); ok {
		if v.kind != t.kind {
			return Value{}, mismatch(t, v)
		}

		return v, nil
	}

	switch t.kind {
	case UintTy, IntTy:
		n, err := toBigInt(x)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", t, err)
		}

		if err := checkIntRange(t, n); err != nil {
			return Value{}, err
		}

		return Value{kind: t.kind, num: n}, nil
	case BoolTy:
		switch b := x.(type) {
		case bool:
			return NewBool(b), nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return Value{}, fmt.Errorf("%w: %q is not a bool", ErrTypeValueMismatch, b)
			}

			return NewBool(parsed), nil
		}
	case AddressTy:
		addr, err := toAddress(x)
		if err != nil {
			return Value{}, err
		}

		return NewAddress(addr), nil
	case FixedBytesTy, FunctionTy:
		b, err := toBytes(x)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", t, err)
		}

		size := t.size
		if t.kind == FunctionTy {
			size = functionLength
		}

		if len(b) != size {
			return Value{}, fmt.Errorf("%w: %d bytes for %s", ErrTypeValueMismatch, len(b), t)
		}

		return Value{kind: t.kind, data: b}, nil
	case BytesTy:
		b, err := toBytes(x)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", t, err)
		}

		return Value{kind: BytesTy, data: b}, nil
	case StringTy:
		if s, ok := x.(string); ok {
			return NewString(s), nil
		}
	case ArrayTy, SliceTy:
		return fromNativeList(t, x)
	case TupleTy:
		return fromNativeTuple(t, x)
	}

	return Value{}, fmt.Errorf("%w: cannot use %T as %s", ErrTypeValueMismatch, x, t)
}

func fromNativeList(t *Type, x interface{}) (Value, error) {
	rv := reflect.ValueOf(x)
	if x == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return Value{}, fmt.Errorf("%w: cannot use %T as %s", ErrTypeValueMismatch, x, t)
	}

	if t.kind == ArrayTy && rv.Len() != t.size {
		return Value{}, fmt.Errorf("%w: %d elements for %s", ErrArrayLengthMismatch, rv.Len(), t)
	}

	elems := make([]Value, rv.Len())

	for i := range elems {
		elem, err := FromNative(t.elem, rv.Index(i).Interface())
		if err != nil {
			return Value{}, fmt.Errorf("%s[%d]: %w", t, i, err)
		}

		elems[i] = elem
	}

	return Value{kind: t.kind, elems: elems}, nil
}

func fromNativeTuple(t *Type, x interface{}) (Value, error) {
	var members map[string]interface{}

	rv := reflect.ValueOf(x)

	switch {
	case x == nil:
		return Value{}, fmt.Errorf("%w: nil for %s", ErrTypeValueMismatch, t)
	case rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array:
		if rv.Len() != len(t.fields) {
			return Value{}, fmt.Errorf("%w: %d elements for %s", ErrTypeValueMismatch, rv.Len(), t)
		}

		members = make(map[string]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			members[strconv.Itoa(i)] = rv.Index(i).Interface()
		}
	case rv.Kind() == reflect.Map:
		members = make(map[string]interface{}, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			key, ok := iter.Key().Interface().(string)
			if !ok {
				return Value{}, fmt.Errorf("%w: map keys for %s must be strings", ErrTypeValueMismatch, t)
			}

			members[key] = iter.Value().Interface()
		}
	default:
		if err := structToMap(x, &members); err != nil {
			return Value{}, fmt.Errorf("%w: cannot use %T as %s: %v", ErrTypeValueMismatch, x, t, err)
		}
	}

	elems := make([]Value, len(t.fields))

	for i, f := range t.fields {
		raw, ok := lookupMember(members, f.Name, i)
		if !ok {
			return Value{}, fmt.Errorf("%w: missing member %s of %s", ErrTypeValueMismatch, fieldKey(f.Name, i), t)
		}

		elem, err := FromNative(f.Type, raw)
		if err != nil {
			return Value{}, fmt.Errorf("%s.%s: %w", t, fieldKey(f.Name, i), err)
		}

		elems[i] = elem
	}

	return Value{kind: TupleTy, elems: elems}, nil
}

func lookupMember(members map[string]interface{}, name string, i int) (interface{}, bool) {
	if name != "" {
		if v, ok := members[name]; ok {
			return v, true
		}
	}

	v, ok := members[strconv.Itoa(i)]

	return v, ok
}

func structToMap(x interface{}, out *map[string]interface{}) error {
	rv := reflect.Indirect(reflect.ValueOf(x))
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("unsupported kind %s", rv.Kind())
	}

	rt := rv.Type()
	*out = make(map[string]interface{}, rt.NumField()*2)

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(f.Tag.Get("abi"), ",")
		if name == "-" {
			continue
		}

		if name == "" {
			name = f.Name
		}

		(*out)[name] = rv.Field(i).Interface()
	}

	// member names in ABIs are usually lower camel case, struct fields are not
	for k, v := range *out {
		lowered := strings.ToLower(k[:1]) + k[1:]
		if _, exists := (*out)[lowered]; !exists {
			(*out)[lowered] = v
		}
	}

	return nil
}

func toBigInt(x interface{}) (*big.Int, error) {
	switch n := x.(type) {
	case *big.Int:
		if n == nil {
			return nil, fmt.Errorf("%w: nil integer", ErrTypeValueMismatch)
		}

		return new(big.Int).Set(n), nil
	case big.Int:
		return new(big.Int).Set(&n), nil
	case json.Number:
		return parseBigInt(string(n))
	case string:
		return parseBigInt(n)
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("%w: %v is not an integer", ErrTypeValueMismatch, n)
		}

		out, _ := big.NewFloat(n).Int(nil)

		return out, nil
	}

	rv := reflect.ValueOf(x)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), nil
	default:
		return nil, fmt.Errorf("%w: cannot use %T as integer", ErrTypeValueMismatch, x)
	}
}

func parseBigInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, ok := new(big.Int).SetString(s[2:], 16)
		if !ok || s[2:] == "" {
			return nil, fmt.Errorf("%w: %q is not a hex integer", ErrTypeValueMismatch, s)
		}

		return n, nil
	}

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an integer", ErrTypeValueMismatch, s)
	}

	return n, nil
}

func toAddress(x interface{}) (ethgo.Address, error) {
	switch a := x.(type) {
	case ethgo.Address:
		return a, nil
	case *ethgo.Address:
		if a != nil {
			return *a, nil
		}
	case [addressLength]byte:
		return ethgo.Address(a), nil
	case string:
		b, err := hexutil.Decode(a)
		if err != nil || len(b) != addressLength {
			return ethgo.Address{}, fmt.Errorf("%w: %q is not an address", ErrTypeValueMismatch, a)
		}

		var addr ethgo.Address

		copy(addr[:], b)

		return addr, nil
	case []byte:
		if len(a) == addressLength {
			var addr ethgo.Address

			copy(addr[:], a)

			return addr, nil
		}
	}

	return ethgo.Address{}, fmt.Errorf("%w: cannot use %T as address", ErrTypeValueMismatch, x)
}

func toBytes(x interface{}) ([]byte, error) {
	switch b := x.(type) {
	case []byte:
		return cloneBytes(b), nil
	case string:
		out, err := hexutil.Decode(b)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrTypeValueMismatch, b, err)
		}

		return out, nil
	}

	rv := reflect.ValueOf(x)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		out := make([]byte, rv.Len())
		for i := range out {
			out[i] = byte(rv.Index(i).Uint())
		}

		return out, nil
	}

	return nil, fmt.Errorf("%w: cannot use %T as bytes", ErrTypeValueMismatch, x)
}
