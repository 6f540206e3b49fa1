package abi

import (
	"fmt"

	"github.com/umbracle/ethgo"
)

// Event is a contract event
type Event struct {
	Name      string
	RawName   string
	Anonymous bool
	Inputs    Arguments
}

// NewEvent builds an event from a signature such as
// "Transfer(address indexed from,address indexed to,uint256 value)".
// Argument names are optional; the indexed keyword marks topic arguments.
func NewEvent(signature string) (*Event, error) {
	method, args, err := parseEventSignature(signature)
	if err != nil {
		return nil, err
	}

	return &Event{Name: method, RawName: method, Inputs: args}, nil
}

// MustNewEvent is like NewEvent but panics on error
func MustNewEvent(signature string) *Event {
	e, err := NewEvent(signature)
	if err != nil {
		panic(err)
	}

	return e
}

// Sig returns the canonical signature
func (e *Event) Sig() string {
	return Signature(e.RawName, e.Inputs.Types())
}

// ID returns topic zero of the event
func (e *Event) ID() ethgo.Hash {
	var topic ethgo.Hash

	copy(topic[:], Keccak256([]byte(e.Sig())))

	return topic
}

func (e *Event) topicCount() int {
	n := len(e.Inputs.Indexed())
	if !e.Anonymous {
		n++
	}

	return n
}

// Match reports whether log was plausibly emitted by this event
func (e *Event) Match(log *ethgo.Log) bool {
	if len(log.Topics) != e.topicCount() {
		return false
	}

	return e.Anonymous || log.Topics[0] == e.ID()
}

// TopicType returns the descriptor of an indexed argument as stored in its
// topic. Dynamic and composite values are stored as their Keccak-256 hash.
func TopicType(t *Type) *Type {
	if t.isScalar() {
		return t
	}

	return FixedBytesType(WordSize)
}

// DecodeLogValues decodes a log in declaration order. Hashed indexed
// arguments are returned as bytes32 values.
func (e *Event) DecodeLogValues(log *ethgo.Log) ([]Value, error) {
	if !e.Match(log) {
		return nil, fmt.Errorf("%w: %s with %d topics", ErrTopicMismatch, e.Sig(), len(log.Topics))
	}

	data, err := e.Inputs.NonIndexed().DecodeValues(log.Data)
	if err != nil {
		return nil, fmt.Errorf("%s data: %w", e.Sig(), err)
	}

	topics := log.Topics
	if !e.Anonymous {
		topics = topics[1:]
	}

	values := make([]Value, len(e.Inputs))

	for i, arg := range e.Inputs {
		if !arg.Indexed {
			values[i], data = data[0], data[1:]

			continue
		}

		v, err := DecodeValue(topics[0][:], TopicType(arg.Type))
		if err != nil {
			return nil, fmt.Errorf("%s topic %s: %w", e.Sig(), fieldKey(arg.Name, i), err)
		}

		values[i], topics = v, topics[1:]
	}

	return values, nil
}

// DecodeLog decodes a log into a map keyed by argument name
func (e *Event) DecodeLog(log *ethgo.Log) (map[string]interface{}, error) {
	values, err := e.DecodeLogValues(log)
	if err != nil {
		return nil, err
	}

	return e.LogArguments().ToMap(values)
}

// LogArguments returns the inputs with indexed arguments retyped to their
// topic representation
func (e *Event) LogArguments() Arguments {
	out := make(Arguments, len(e.Inputs))

	for i, arg := range e.Inputs {
		cp := *arg
		if cp.Indexed {
			cp.Type = TopicType(arg.Type)
		}

		out[i] = &cp
	}

	return out
}
