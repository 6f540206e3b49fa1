package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/umbracle/ethgo"
)

// ABI is a parsed JSON contract interface
type ABI struct {
	Constructor *Method
	Fallback    *Method
	Receive     *Method

	Methods            map[string]*Method
	MethodsBySignature map[string]*Method
	Events             map[string]*Event
	Errors             map[string]*Error
}

// NewABI parses a JSON ABI definition
func NewABI(s string) (*ABI, error) {
	return NewABIFromReader(strings.NewReader(s))
}

// MustNewABI is like NewABI but panics on error
func MustNewABI(s string) *ABI {
	a, err := NewABI(s)
	if err != nil {
		panic(err)
	}

	return a
}

// NewABIFromReader parses a JSON ABI definition read from r
func NewABIFromReader(r io.Reader) (*ABI, error) {
	var a ABI

	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, err
	}

	return &a, nil
}

// GetMethod returns the method registered under name, which carries a
// numeric suffix for overloads
func (a *ABI) GetMethod(name string) *Method {
	return a.Methods[name]
}

// GetMethodBySignature returns the method with the given signature. Type
// aliases are canonicalized first.
func (a *ABI) GetMethodBySignature(signature string) *Method {
	if m, ok := a.MethodsBySignature[signature]; ok {
		return m
	}

	parsed, err := ParseMethod(signature)
	if err != nil {
		return nil
	}

	return a.MethodsBySignature[parsed.Canonical()]
}

// GetMethodByID returns the method whose selector prefixes id
func (a *ABI) GetMethodByID(id []byte) *Method {
	if len(id) < SelectorLength {
		return nil
	}

	for _, m := range a.Methods {
		if bytes.Equal(m.ID(), id[:SelectorLength]) {
			return m
		}
	}

	return nil
}

func (a *ABI) GetEvent(name string) *Event {
	return a.Events[name]
}

// GetEventByTopic returns the non-anonymous event with the given topic zero
func (a *ABI) GetEventByTopic(topic ethgo.Hash) *Event {
	for _, e := range a.Events {
		if !e.Anonymous && e.ID() == topic {
			return e
		}
	}

	return nil
}

func (a *ABI) GetError(name string) *Error {
	return a.Errors[name]
}

// GetErrorByID returns the custom error whose selector prefixes id
func (a *ABI) GetErrorByID(id []byte) *Error {
	if len(id) < SelectorLength {
		return nil
	}

	for _, e := range a.Errors {
		if bytes.Equal(e.ID(), id[:SelectorLength]) {
			return e
		}
	}

	return nil
}

type argumentJSON struct {
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	InternalType string          `json:"internalType,omitempty"`
	Indexed      bool            `json:"indexed,omitempty"`
	Components   []*argumentJSON `json:"components,omitempty"`
}

func (a *argumentJSON) toType() (*Type, error) {
	if !strings.HasPrefix(a.Type, "tuple") {
		return Parse(a.Type)
	}

	fields := make([]Field, len(a.Components))

	for i, c := range a.Components {
		t, err := c.toType()
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", fieldKey(c.Name, i), err)
		}

		fields[i] = Field{Name: c.Name, Type: t}
	}

	tuple, err := newTuple(fields)
	if err != nil {
		return nil, err
	}

	return applySuffixes(tuple, a.Type[len("tuple"):])
}

func toArguments(in []*argumentJSON) (Arguments, error) {
	args := make(Arguments, len(in))

	for i, raw := range in {
		t, err := raw.toType()
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", fieldKey(raw.Name, i), err)
		}

		args[i] = &Argument{
			Name:         raw.Name,
			Type:         t,
			Indexed:      raw.Indexed,
			InternalType: raw.InternalType,
		}
	}

	return args, nil
}

type entryJSON struct {
	Type            string          `json:"type"`
	Name            string          `json:"name"`
	Inputs          []*argumentJSON `json:"inputs"`
	Outputs         []*argumentJSON `json:"outputs"`
	StateMutability string          `json:"stateMutability"`
	Constant        bool            `json:"constant"`
	Payable         bool            `json:"payable"`
	Anonymous       bool            `json:"anonymous"`
}

func (e *entryJSON) mutability() string {
	switch {
	case e.StateMutability != "":
		return e.StateMutability
	case e.Constant:
		return "view"
	case e.Payable:
		return "payable"
	default:
		return "nonpayable"
	}
}

// UnmarshalJSON implements json.Unmarshaler
func (a *ABI) UnmarshalJSON(data []byte) error {
	var entries []*entryJSON

	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	a.Methods = map[string]*Method{}
	a.MethodsBySignature = map[string]*Method{}
	a.Events = map[string]*Event{}
	a.Errors = map[string]*Error{}

	for _, entry := range entries {
		inputs, err := toArguments(entry.Inputs)
		if err != nil {
			return fmt.Errorf("%s %s: %w", entry.Type, entry.Name, err)
		}

		outputs, err := toArguments(entry.Outputs)
		if err != nil {
			return fmt.Errorf("%s %s: %w", entry.Type, entry.Name, err)
		}

		switch entry.Type {
		case "", "function":
			name := overloadedName(entry.Name, func(s string) bool { return a.Methods[s] == nil })
			method := &Method{
				Name:            name,
				RawName:         entry.Name,
				Type:            "function",
				StateMutability: entry.mutability(),
				Inputs:          inputs,
				Outputs:         outputs,
			}

			a.Methods[name] = method
			a.MethodsBySignature[method.Sig()] = method
		case "constructor":
			a.Constructor = &Method{
				Type:            "constructor",
				StateMutability: entry.mutability(),
				Inputs:          inputs,
			}
		case "fallback":
			a.Fallback = &Method{Type: "fallback", StateMutability: entry.mutability()}
		case "receive":
			a.Receive = &Method{Type: "receive", StateMutability: "payable"}
		case "event":
			name := overloadedName(entry.Name, func(s string) bool { return a.Events[s] == nil })
			a.Events[name] = &Event{
				Name:      name,
				RawName:   entry.Name,
				Anonymous: entry.Anonymous,
				Inputs:    inputs,
			}
		case "error":
			name := overloadedName(entry.Name, func(s string) bool { return a.Errors[s] == nil })
			a.Errors[name] = &Error{
				Name:    name,
				RawName: entry.Name,
				Inputs:  inputs,
			}
		default:
			return fmt.Errorf("unknown abi entry type %q", entry.Type)
		}
	}

	return nil
}

// overloadedName returns rawName, or rawName followed by the first index
// that is still free
func overloadedName(rawName string, isAvailable func(string) bool) string {
	name := rawName
	for idx := 0; !isAvailable(name); idx++ {
		name = fmt.Sprintf("%s%d", rawName, idx)
	}

	return name
}

// Method is a callable contract function or the constructor
type Method struct {
	Name            string
	RawName         string
	Type            string
	StateMutability string
	Inputs          Arguments
	Outputs         Arguments
}

// NewMethod builds a function from a signature such as
// "balanceOf(address owner) returns (uint256)". Argument names are optional.
func NewMethod(signature string) (*Method, error) {
	inputSig, outputSig, hasOutputs := strings.Cut(signature, " returns ")

	name, inputs, err := parseHumanSignature(inputSig, false)
	if err != nil {
		return nil, err
	}

	outputs := Arguments{}
	if hasOutputs {
		if _, outputs, err = parseHumanSignature("returns"+strings.TrimSpace(outputSig), false); err != nil {
			return nil, err
		}
	}

	return &Method{
		Name:            name,
		RawName:         name,
		Type:            "function",
		StateMutability: "nonpayable",
		Inputs:          inputs,
		Outputs:         outputs,
	}, nil
}

// MustNewMethod is like NewMethod but panics on error
func MustNewMethod(signature string) *Method {
	m, err := NewMethod(signature)
	if err != nil {
		panic(err)
	}

	return m
}

// Sig returns the canonical signature
func (m *Method) Sig() string {
	return Signature(m.RawName, m.Inputs.Types())
}

// ID returns the 4 byte selector
func (m *Method) ID() []byte {
	return Keccak256([]byte(m.Sig()))[:SelectorLength]
}

// Encode encodes a call from native arguments, selector included. The
// constructor has no selector.
func (m *Method) Encode(args interface{}) ([]byte, error) {
	data, err := m.Inputs.Encode(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Sig(), err)
	}

	return m.withSelector(data), nil
}

// EncodeValues encodes a call from typed values, selector included
func (m *Method) EncodeValues(values []Value) ([]byte, error) {
	data, err := m.Inputs.EncodeValues(values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Sig(), err)
	}

	return m.withSelector(data), nil
}

func (m *Method) withSelector(data []byte) []byte {
	if m.Type == "constructor" {
		return data
	}

	return append(m.ID(), data...)
}

// DecodeInputValues checks the selector of calldata and decodes the arguments
func (m *Method) DecodeInputValues(calldata []byte, opts DecodeOptions) ([]Value, error) {
	if len(calldata) < SelectorLength {
		return nil, fmt.Errorf("%w: calldata has %d bytes", ErrBufferTooShort, len(calldata))
	}

	if !bytes.Equal(calldata[:SelectorLength], m.ID()) {
		return nil, fmt.Errorf("%w: %x is not %s", ErrSelectorMismatch, calldata[:SelectorLength], m.Sig())
	}

	return m.Inputs.DecodeValuesWithOptions(calldata[SelectorLength:], opts)
}

// DecodeInput decodes calldata into a map keyed by argument name
func (m *Method) DecodeInput(calldata []byte) (map[string]interface{}, error) {
	values, err := m.DecodeInputValues(calldata, DecodeOptions{})
	if err != nil {
		return nil, err
	}

	return m.Inputs.ToMap(values)
}

// DecodeOutput decodes return data into a map keyed by output name
func (m *Method) DecodeOutput(data []byte) (map[string]interface{}, error) {
	return m.Outputs.Decode(data)
}

// Error is a custom Solidity error
type Error struct {
	Name    string
	RawName string
	Inputs  Arguments
}

func (e *Error) Sig() string {
	return Signature(e.RawName, e.Inputs.Types())
}

func (e *Error) ID() []byte {
	return Keccak256([]byte(e.Sig()))[:SelectorLength]
}

// Decode decodes revert data raised with this error
func (e *Error) Decode(data []byte) (map[string]interface{}, error) {
	if len(data) < SelectorLength {
		return nil, fmt.Errorf("%w: revert data has %d bytes", ErrBufferTooShort, len(data))
	}

	if !bytes.Equal(data[:SelectorLength], e.ID()) {
		return nil, fmt.Errorf("%w: %x is not %s", ErrSelectorMismatch, data[:SelectorLength], e.Sig())
	}

	return e.Inputs.Decode(data[SelectorLength:])
}
