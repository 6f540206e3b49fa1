package abi

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Argument is a named input or output of a method, event or error
type Argument struct {
	Name         string
	Type         *Type
	Indexed      bool
	InternalType string
}

// Arguments is an ordered parameter list
type Arguments []*Argument

// NewArguments builds unnamed arguments from a comma separated type list
func NewArguments(list string) (Arguments, error) {
	types, err := ParseTypes(list)
	if err != nil {
		return nil, err
	}

	args := make(Arguments, len(types))
	for i, t := range types {
		args[i] = &Argument{Type: t}
	}

	return args, nil
}

// Types returns the descriptors of the arguments
func (a Arguments) Types() []*Type {
	types := make([]*Type, len(a))
	for i, arg := range a {
		types[i] = arg.Type
	}

	return types
}

// Names returns argument names, falling back to the position for unnamed
// arguments
func (a Arguments) Names() []string {
	names := make([]string, len(a))
	for i, arg := range a {
		names[i] = fieldKey(arg.Name, i)
	}

	return names
}

// Signature returns the canonical "(type,...)" form of the list
func (a Arguments) Signature() string {
	names := make([]string, len(a))
	for i, arg := range a {
		names[i] = arg.Type.String()
	}

	return "(" + strings.Join(names, ",") + ")"
}

// NonIndexed returns the arguments stored in the data section of a log
func (a Arguments) NonIndexed() Arguments {
	out := make(Arguments, 0, len(a))

	for _, arg := range a {
		if !arg.Indexed {
			out = append(out, arg)
		}
	}

	return out
}

// Indexed returns the arguments stored in log topics
func (a Arguments) Indexed() Arguments {
	out := make(Arguments, 0, len(a))

	for _, arg := range a {
		if arg.Indexed {
			out = append(out, arg)
		}
	}

	return out
}

func (a Arguments) tupleType() (*Type, error) {
	fields := make([]Field, len(a))
	for i, arg := range a {
		fields[i] = Field{Name: arg.Name, Type: arg.Type}
	}

	return newTuple(fields)
}

// EncodeValues encodes typed values in argument order
func (a Arguments) EncodeValues(values []Value) ([]byte, error) {
	return Encode(values, a.Types())
}

// Encode encodes native Go data: a positional slice, a map keyed by
// argument name, or a struct tagged with `abi`.
func (a Arguments) Encode(args interface{}) ([]byte, error) {
	values, err := a.FromNative(args)
	if err != nil {
		return nil, err
	}

	return a.EncodeValues(values)
}

// FromNative converts native Go data into typed values in argument order
func (a Arguments) FromNative(args interface{}) ([]Value, error) {
	if len(a) == 0 {
		if args == nil {
			return []Value{}, nil
		}

		if rv := reflect.ValueOf(args); (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map) && rv.Len() == 0 {
			return []Value{}, nil
		}

		return nil, fmt.Errorf("%w: arguments given for empty parameter list", ErrTypeValueMismatch)
	}

	tuple, err := a.tupleType()
	if err != nil {
		return nil, err
	}

	v, err := FromNative(tuple, args)
	if err != nil {
		return nil, err
	}

	return v.elems, nil
}

// DecodeValues decodes data into typed values in argument order
func (a Arguments) DecodeValues(data []byte) ([]Value, error) {
	return Decode(data, a.Types())
}

// DecodeValuesWithOptions is DecodeValues with explicit validation options
func (a Arguments) DecodeValuesWithOptions(data []byte, opts DecodeOptions) ([]Value, error) {
	return DecodeWithOptions(data, a.Types(), opts)
}

// Decode decodes data into a map keyed by argument name
func (a Arguments) Decode(data []byte) (map[string]interface{}, error) {
	values, err := a.DecodeValues(data)
	if err != nil {
		return nil, err
	}

	return a.ToMap(values)
}

// ToMap converts decoded values into native data keyed by argument name
func (a Arguments) ToMap(values []Value) (map[string]interface{}, error) {
	if len(values) != len(a) {
		return nil, fmt.Errorf("%w: %d values for %d arguments", ErrTypeValueMismatch, len(values), len(a))
	}

	out := make(map[string]interface{}, len(a))

	for i, arg := range a {
		native, err := ToNative(arg.Type, values[i])
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", fieldKey(arg.Name, i), err)
		}

		out[fieldKey(arg.Name, i)] = native
	}

	return out, nil
}

// DecodeStruct decodes data into the struct pointed to by out. Fields are
// matched by name or `abi` tag; integers convert to sized Go integer fields.
func (a Arguments) DecodeStruct(data []byte, out interface{}) error {
	decoded, err := a.Decode(data)
	if err != nil {
		return err
	}

	return decodeInto(decoded, out)
}

func decodeInto(input interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "abi",
		WeaklyTypedInput: true,
		DecodeHook:       bigIntHook,
		Result:           out,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

func bigIntHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	n, ok := data.(*big.Int)
	if !ok || n == nil {
		return data, nil
	}

	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !n.IsInt64() {
			return nil, fmt.Errorf("%w: %s overflows %s", ErrValueOutOfRange, n, to)
		}

		return n.Int64(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !n.IsUint64() {
			return nil, fmt.Errorf("%w: %s overflows %s", ErrValueOutOfRange, n, to)
		}

		return n.Uint64(), nil
	case reflect.String:
		return n.String(), nil
	default:
		return data, nil
	}
}
