package abi

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse builds a descriptor from a type signature such as
// "(uint256,bytes32[])[2]". Whitespace is not accepted.
func Parse(signature string) (*Type, error) {
	p := &parser{input: signature}

	t, err := p.parseType(0)
	if err != nil {
		return nil, err
	}

	if !p.done() {
		return nil, p.errorf("unexpected %q", p.input[p.pos])
	}

	return t, nil
}

// MustParse is like Parse but panics on error
func MustParse(signature string) *Type {
	t, err := Parse(signature)
	if err != nil {
		panic(err)
	}

	return t
}

// ParseTypes parses a comma separated list of type signatures. The empty
// string yields an empty list.
func ParseTypes(list string) ([]*Type, error) {
	if list == "" {
		return []*Type{}, nil
	}

	p := &parser{input: list}

	types, err := p.parseList(0, 0)
	if err != nil {
		return nil, err
	}

	if !p.done() {
		return nil, p.errorf("unexpected %q", p.input[p.pos])
	}

	return types, nil
}

// MethodSignature is a parsed "name(type,...)" function or event signature
type MethodSignature struct {
	Name   string
	Inputs []*Type
}

// Canonical returns the signature in the form hashed for selectors and topics
func (m *MethodSignature) Canonical() string {
	return Signature(m.Name, m.Inputs)
}

// ParseMethod parses a "name(type,...)" signature. The argument list may be empty.
func ParseMethod(signature string) (*MethodSignature, error) {
	open := strings.IndexByte(signature, '(')
	if open < 0 || !strings.HasSuffix(signature, ")") {
		return nil, fmt.Errorf("%w: %q is not of the form name(types)", ErrMalformedSignature, signature)
	}

	name := signature[:open]
	if !isIdentifier(name) {
		return nil, fmt.Errorf("%w: invalid function name %q", ErrMalformedSignature, name)
	}

	inputs, err := ParseTypes(signature[open+1 : len(signature)-1])
	if err != nil {
		return nil, err
	}

	return &MethodSignature{Name: name, Inputs: inputs}, nil
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}

	for i := 0; i < len(name); i++ {
		c := name[i]

		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}

	return true
}

type parser struct {
	input string
	pos   int
}

func (p *parser) done() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	if p.done() {
		return 0
	}

	return p.input[p.pos]
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s at position %d in %q",
		ErrMalformedSignature, fmt.Sprintf(format, args...), p.pos, p.input)
}

// parseType parses one type including its array suffixes. level counts the
// tuples enclosing the current position.
func (p *parser) parseType(level int) (*Type, error) {
	var (
		t   *Type
		err error
	)

	if strings.HasPrefix(p.input[p.pos:], "tuple(") {
		p.pos += len("tuple")
	}

	if p.peek() == '(' {
		if level+1 > MaxDepth {
			return nil, fmt.Errorf("%w: nesting deeper than %d", ErrSignatureTooComplex, MaxDepth)
		}

		p.pos++

		t, err = p.parseTuple(level + 1)
	} else {
		t, err = p.parseElementary()
	}

	if err != nil {
		return nil, err
	}

	return p.parseSuffixes(t)
}

func (p *parser) parseTuple(level int) (*Type, error) {
	if p.peek() == ')' {
		return nil, p.errorf("empty tuple")
	}

	types, err := p.parseList(level, ')')
	if err != nil {
		return nil, err
	}

	if p.peek() != ')' {
		return nil, p.errorf("expected ')'")
	}

	p.pos++

	fields := make([]Field, len(types))
	for i, typ := range types {
		fields[i] = Field{Type: typ}
	}

	return newTuple(fields)
}

// parseList parses comma separated types up to (not including) closing, or
// to the end of input when closing is zero.
func (p *parser) parseList(level int, closing byte) ([]*Type, error) {
	var types []*Type

	for {
		t, err := p.parseType(level)
		if err != nil {
			return nil, err
		}

		types = append(types, t)

		switch c := p.peek(); {
		case c == ',':
			p.pos++
		case c == closing:
			return types, nil
		default:
			return nil, p.errorf("expected ','")
		}
	}
}

func (p *parser) parseElementary() (*Type, error) {
	start := p.pos
	for !p.done() {
		c := p.input[p.pos]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			break
		}

		p.pos++
	}

	word := p.input[start:p.pos]
	if word == "" {
		return nil, p.errorf("expected type")
	}

	t, err := elementaryType(word)
	if err != nil {
		p.pos = start

		return nil, p.errorf("unknown type %q", word)
	}

	return t, nil
}

func elementaryType(word string) (*Type, error) {
	switch word {
	case "bool":
		return boolType, nil
	case "address":
		return addressType, nil
	case "string":
		return stringType, nil
	case "bytes":
		return bytesType, nil
	case "function":
		return functionType, nil
	case "uint":
		return newUint(256)
	case "int":
		return newInt(256)
	}

	for _, prefix := range []string{"uint", "int", "bytes"} {
		if !strings.HasPrefix(word, prefix) {
			continue
		}

		n, ok := parseDecimal(word[len(prefix):])
		if !ok || n > 256 {
			return nil, ErrMalformedSignature
		}

		switch prefix {
		case "uint":
			return newUint(int(n))
		case "int":
			return newInt(int(n))
		default:
			return newFixedBytes(int(n))
		}
	}

	return nil, ErrMalformedSignature
}

// parseDecimal accepts a non-empty run of digits without leading zeros
func parseDecimal(s string) (uint64, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		// only overflow is possible at this point
		return ^uint64(0), true
	}

	return n, true
}

func (p *parser) parseSuffixes(t *Type) (*Type, error) {
	for p.peek() == '[' {
		p.pos++

		if p.peek() == ']' {
			p.pos++

			next, err := newSlice(t)
			if err != nil {
				return nil, err
			}

			t = next

			continue
		}

		start := p.pos
		for !p.done() && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
			p.pos++
		}

		n, ok := parseDecimal(p.input[start:p.pos])
		if !ok {
			p.pos = start

			return nil, p.errorf("invalid array length")
		}

		if p.peek() != ']' {
			return nil, p.errorf("expected ']'")
		}

		p.pos++

		next, err := newArray(t, n)
		if err != nil {
			return nil, err
		}

		t = next
	}

	return t, nil
}

// applySuffixes wraps base in the array suffixes of a JSON ABI type such as
// "tuple[2][]" (suffix "[2][]").
func applySuffixes(base *Type, suffix string) (*Type, error) {
	p := &parser{input: suffix}

	t, err := p.parseSuffixes(base)
	if err != nil {
		return nil, err
	}

	if !p.done() {
		return nil, p.errorf("unexpected %q", p.input[p.pos])
	}

	return t, nil
}

// parseHumanSignature parses "name(type [indexed] [name],...)" where
// arguments may carry names and the indexed keyword, separated by spaces.
func parseHumanSignature(signature string, allowIndexed bool) (string, Arguments, error) {
	signature = strings.TrimSpace(signature)

	open := strings.IndexByte(signature, '(')
	if open < 0 || !strings.HasSuffix(signature, ")") {
		return "", nil, fmt.Errorf("%w: %q is not of the form name(args)", ErrMalformedSignature, signature)
	}

	name := strings.TrimSpace(signature[:open])
	if !isIdentifier(name) {
		return "", nil, fmt.Errorf("%w: invalid name %q", ErrMalformedSignature, name)
	}

	body := strings.TrimSpace(signature[open+1 : len(signature)-1])
	if body == "" {
		return name, Arguments{}, nil
	}

	var (
		args  Arguments
		depth int
		start int
	)

	for i := 0; i <= len(body); i++ {
		if i < len(body) {
			switch body[i] {
			case '(':
				depth++

				continue
			case ')':
				depth--

				continue
			case ',':
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		}

		arg, err := parseHumanArgument(strings.TrimSpace(body[start:i]), allowIndexed)
		if err != nil {
			return "", nil, fmt.Errorf("argument %d of %q: %w", len(args), signature, err)
		}

		args = append(args, arg)
		start = i + 1
	}

	return name, args, nil
}

func parseHumanArgument(s string, allowIndexed bool) (*Argument, error) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty argument", ErrMalformedSignature)
	}

	t, err := Parse(parts[0])
	if err != nil {
		return nil, err
	}

	arg := &Argument{Type: t}
	rest := parts[1:]

	if len(rest) > 0 && rest[0] == "indexed" {
		if !allowIndexed {
			return nil, fmt.Errorf("%w: indexed outside of an event", ErrMalformedSignature)
		}

		arg.Indexed = true
		rest = rest[1:]
	}

	switch len(rest) {
	case 0:
	case 1:
		if !isIdentifier(rest[0]) {
			return nil, fmt.Errorf("%w: invalid argument name %q", ErrMalformedSignature, rest[0])
		}

		arg.Name = rest[0]
	default:
		return nil, fmt.Errorf("%w: unexpected %q", ErrMalformedSignature, strings.Join(rest, " "))
	}

	return arg, nil
}

func parseEventSignature(signature string) (string, Arguments, error) {
	return parseHumanSignature(signature, true)
}
