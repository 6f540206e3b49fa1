package abi

import (
	"bytes"
	"fmt"
	"math/big"
)

var (
	// revertSelector is the selector of Error(string)
	revertSelector = []byte{0x08, 0xc3, 0x79, 0xa0}
	// panicSelector is the selector of Panic(uint256)
	panicSelector = []byte{0x4e, 0x48, 0x7b, 0x71}

	revertArgs = []*Type{stringType}
	panicArgs  = []*Type{UintType(256)}
)

// panicReasons are the compiler inserted Panic(uint256) codes
var panicReasons = map[uint64]string{
	0x00: "generic panic",
	0x01: "assert(false)",
	0x11: "arithmetic underflow or overflow",
	0x12: "division or modulo by zero",
	0x21: "enum overflow",
	0x22: "invalid encoded storage byte array accessed",
	0x31: "out-of-bounds array access; popping on an empty array",
	0x32: "out-of-bounds access of an array or bytesN",
	0x41: "out of memory",
	0x51: "uninitialized function",
}

// Revert is a decoded Error(string) or Panic(uint256) payload
type Revert struct {
	Message string
	Panic   bool
	Code    *big.Int
}

func (r *Revert) String() string {
	if !r.Panic {
		return r.Message
	}

	return fmt.Sprintf("panic 0x%x: %s", r.Code, r.Message)
}

// UnpackRevert decodes the return data of a reverted call
func UnpackRevert(data []byte) (*Revert, error) {
	if len(data) < SelectorLength {
		return nil, ErrNotRevert
	}

	selector, args := data[:SelectorLength], data[SelectorLength:]

	switch {
	case bytes.Equal(selector, revertSelector):
		values, err := Decode(args, revertArgs)
		if err != nil {
			return nil, fmt.Errorf("Error(string): %w", err)
		}

		return &Revert{Message: values[0].Text()}, nil
	case bytes.Equal(selector, panicSelector):
		values, err := Decode(args, panicArgs)
		if err != nil {
			return nil, fmt.Errorf("Panic(uint256): %w", err)
		}

		code := values[0].BigInt()

		reason := "unknown panic code"
		if known, ok := panicReasons[code.Uint64()]; ok && code.IsUint64() {
			reason = known
		}

		return &Revert{Message: reason, Panic: true, Code: code}, nil
	default:
		return nil, fmt.Errorf("%w: selector %x", ErrNotRevert, selector)
	}
}

// PackRevert encodes message as Error(string) revert data
func PackRevert(message string) []byte {
	data, _ := Encode([]Value{NewString(message)}, revertArgs)

	return append(append([]byte{}, revertSelector...), data...)
}

// UnpackError decodes revert data with the custom errors of the ABI,
// falling back to Error(string) and Panic(uint256)
func (a *ABI) UnpackError(data []byte) (string, map[string]interface{}, error) {
	if e := a.GetErrorByID(data); e != nil {
		args, err := e.Decode(data)
		if err != nil {
			return "", nil, err
		}

		return e.Name, args, nil
	}

	r, err := UnpackRevert(data)
	if err != nil {
		return "", nil, err
	}

	if r.Panic {
		return "Panic", map[string]interface{}{"code": r.Code, "reason": r.Message}, nil
	}

	return "Error", map[string]interface{}{"message": r.Message}, nil
}
