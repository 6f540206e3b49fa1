package abi

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/umbracle/ethgo"
	"golang.org/x/crypto/sha3"
)

// SelectorLength is the size of a function selector in bytes
const SelectorLength = 4

// Keccak256 hashes the concatenation of its arguments with legacy Keccak-256
func Keccak256(data ...[]byte) []byte {
	keccak := sha3.NewLegacyKeccak256()
	for _, b := range data {
		keccak.Write(b)
	}

	return keccak.Sum(nil)
}

// Selector returns the first four bytes of the Keccak-256 hash of a
// canonical signature such as "transfer(address,uint256)".
func Selector(signature string) ([SelectorLength]byte, error) {
	var selector [SelectorLength]byte

	if !utf8.ValidString(signature) {
		return selector, ErrInvalidSignatureEncoding
	}

	copy(selector[:], Keccak256([]byte(signature)))

	return selector, nil
}

// EventTopic returns the full Keccak-256 hash of a canonical event
// signature, used as topic zero of non-anonymous logs.
func EventTopic(signature string) (ethgo.Hash, error) {
	if !utf8.ValidString(signature) {
		return ethgo.Hash{}, ErrInvalidSignatureEncoding
	}

	var topic ethgo.Hash

	copy(topic[:], Keccak256([]byte(signature)))

	return topic, nil
}

// Signature joins a name and argument descriptors into canonical form
func Signature(name string, types []*Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}

	return name + "(" + strings.Join(names, ",") + ")"
}

// MethodSelector canonicalizes a "name(types)" signature and returns its
// selector. Aliases such as uint are expanded before hashing.
func MethodSelector(signature string) ([SelectorLength]byte, error) {
	method, err := ParseMethod(signature)
	if err != nil {
		return [SelectorLength]byte{}, fmt.Errorf("selector of %q: %w", signature, err)
	}

	return Selector(method.Canonical())
}
