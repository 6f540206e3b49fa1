package abi

import "errors"

// Signature errors
var (
	ErrMalformedSignature       = errors.New("malformed signature")
	ErrInvalidArrayLength       = errors.New("invalid array length")
	ErrSignatureTooComplex      = errors.New("signature too complex")
	ErrInvalidSignatureEncoding = errors.New("signature is not valid utf-8")
)

// Encoding errors
var (
	ErrTypeValueMismatch   = errors.New("value does not match type")
	ErrValueOutOfRange     = errors.New("value out of range")
	ErrArrayLengthMismatch = errors.New("array length mismatch")
)

// Decoding errors
var (
	ErrBufferTooShort           = errors.New("buffer too short")
	ErrInvalidOffset            = errors.New("invalid offset")
	ErrOffsetOutOfBounds        = errors.New("offset out of bounds")
	ErrElementCountUnreasonable = errors.New("element count exceeds remaining data")
	ErrInvalidUTF8              = errors.New("string is not valid utf-8")
	ErrInvalidPadding           = errors.New("non-canonical word padding")
	ErrTrailingBytes            = errors.New("unreferenced trailing bytes")
)

// Contract level errors
var (
	ErrSelectorMismatch = errors.New("selector mismatch")
	ErrUnknownSelector  = errors.New("unknown selector")
	ErrTopicMismatch    = errors.New("log topics do not match event")
	ErrNotRevert        = errors.New("data is not a known revert reason")
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrMalformedSignature, "malformed_signature"},
	{ErrInvalidArrayLength, "invalid_array_length"},
	{ErrSignatureTooComplex, "signature_too_complex"},
	{ErrInvalidSignatureEncoding, "invalid_signature_encoding"},
	{ErrTypeValueMismatch, "type_value_mismatch"},
	{ErrValueOutOfRange, "value_out_of_range"},
	{ErrArrayLengthMismatch, "array_length_mismatch"},
	{ErrBufferTooShort, "buffer_too_short"},
	{ErrInvalidOffset, "invalid_offset"},
	{ErrOffsetOutOfBounds, "offset_out_of_bounds"},
	{ErrElementCountUnreasonable, "element_count_unreasonable"},
	{ErrInvalidUTF8, "invalid_utf8"},
	{ErrInvalidPadding, "invalid_padding"},
	{ErrTrailingBytes, "trailing_bytes"},
	{ErrSelectorMismatch, "selector_mismatch"},
	{ErrUnknownSelector, "unknown_selector"},
	{ErrTopicMismatch, "topic_mismatch"},
	{ErrNotRevert, "not_revert"},
}

// ErrorKind returns a stable snake case label for the sentinel wrapped by
// err: "none" for nil and "other" for errors outside this package.
func ErrorKind(err error) string {
	if err == nil {
		return "none"
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}

	return "other"
}
