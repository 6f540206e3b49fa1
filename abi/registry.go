package abi

import (
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/umbracle/ethgo"
)

const multicallName = "multicall"

// maxNestedDepth bounds the recursion into multicall arguments
const maxNestedDepth = 8

// Operation labels passed to an Observer
const (
	OpDecodeCall = "call"
	OpDecodeLog  = "log"
)

// Observer is notified of the outcome of every registry decode
type Observer interface {
	ObserveDecode(op string, err error)
}

// Param is a decoded named argument
type Param struct {
	Name  string
	Type  *Type
	Value Value
}

// Native returns the value as plain Go data
func (p Param) Native() (interface{}, error) {
	return ToNative(p.Type, p.Value)
}

// DecodedCall is a function call resolved against a registry. Calls to
// multicall carry the inner calls that could be resolved.
type DecodedCall struct {
	Name      string
	Signature string
	Params    []Param
	Nested    []*DecodedCall
}

// Param returns the first argument called name
func (c *DecodedCall) Param(name string) (Param, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p, true
		}
	}

	return Param{}, false
}

func (c *DecodedCall) IsMulticall() bool {
	return strings.EqualFold(c.Name, multicallName)
}

// DecodedLog is a log resolved against a registry
type DecodedLog struct {
	Name      string
	Signature string
	Address   ethgo.Address
	Params    []Param
}

// Param returns the first argument called name
func (l *DecodedLog) Param(name string) (Param, bool) {
	for _, p := range l.Params {
		if p.Name == name {
			return p, true
		}
	}

	return Param{}, false
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithObserver reports decode outcomes to o
func WithObserver(o Observer) RegistryOption {
	return func(r *Registry) {
		r.observer = o
	}
}

// WithDecodeOptions sets the validation used for call data and log data
func WithDecodeOptions(opts DecodeOptions) RegistryOption {
	return func(r *Registry) {
		r.opts = opts
	}
}

// Registry indexes the functions and events of many ABIs by selector and
// topic. It is safe for concurrent use.
type Registry struct {
	logger   hclog.Logger
	observer Observer
	opts     DecodeOptions

	lock    sync.RWMutex
	abis    map[string]*ABI
	methods map[[SelectorLength]byte]*Method
	events  map[ethgo.Hash][]*Event
}

// NewRegistry creates an empty registry
func NewRegistry(logger hclog.Logger, opts ...RegistryOption) *Registry {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	r := &Registry{
		logger:  logger.Named("abi-registry"),
		abis:    map[string]*ABI{},
		methods: map[[SelectorLength]byte]*Method{},
		events:  map[ethgo.Hash][]*Event{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Add indexes every function and non-anonymous event of a under label,
// usually the contract address. Later registrations win on selector clashes.
func (r *Registry) Add(label string, a *ABI) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.abis[label] = a

	for _, m := range a.Methods {
		r.addMethodLocked(m)
	}

	for _, e := range a.Events {
		r.addEventLocked(e)
	}

	r.logger.Debug("abi added", "label", label, "methods", len(a.Methods), "events", len(a.Events))
}

// AddJSON parses and indexes a JSON ABI. An empty label is replaced by the
// hex Keccak-256 hash of the definition.
func (r *Registry) AddJSON(label, definition string) error {
	a, err := NewABI(definition)
	if err != nil {
		return fmt.Errorf("failed to parse abi %s: %w", label, err)
	}

	if label == "" {
		label = hex.EncodeToString(Keccak256([]byte(definition)))
	}

	r.Add(label, a)

	return nil
}

// AddMethod indexes a single function
func (r *Registry) AddMethod(m *Method) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.addMethodLocked(m)
}

// AddEvent indexes a single event. Anonymous events have no topic to index
// and are ignored.
func (r *Registry) AddEvent(e *Event) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.addEventLocked(e)
}

func (r *Registry) addMethodLocked(m *Method) {
	var id [SelectorLength]byte

	copy(id[:], m.ID())

	if prev, ok := r.methods[id]; ok && prev.Sig() != m.Sig() {
		r.logger.Warn("selector collision", "selector", hex.EncodeToString(id[:]),
			"previous", prev.Sig(), "current", m.Sig())
	}

	r.methods[id] = m
}

// addEventLocked keeps one event per indexed layout under each topic, so
// that ERC-20 and ERC-721 Transfer logs both resolve
func (r *Registry) addEventLocked(e *Event) {
	if e.Anonymous {
		return
	}

	topic := e.ID()
	layout := eventLayout(e)

	candidates := r.events[topic]
	for i, prev := range candidates {
		if eventLayout(prev) == layout {
			candidates = append(candidates[:i], candidates[i+1:]...)

			break
		}
	}

	r.events[topic] = append(candidates, e)
}

func eventLayout(e *Event) string {
	var b strings.Builder

	for _, arg := range e.Inputs {
		if arg.Indexed {
			b.WriteByte('i')
		} else {
			b.WriteByte('d')
		}
	}

	return b.String()
}

// ABIs returns the registered ABIs by label
func (r *Registry) ABIs() map[string]*ABI {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make(map[string]*ABI, len(r.abis))
	for k, v := range r.abis {
		out[k] = v
	}

	return out
}

// Method returns the function registered for selector, or nil
func (r *Registry) Method(selector [SelectorLength]byte) *Method {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.methods[selector]
}

// Event returns the event registered last for topic, or nil
func (r *Registry) Event(topic ethgo.Hash) *Event {
	r.lock.RLock()
	defer r.lock.RUnlock()

	candidates := r.events[topic]
	if len(candidates) == 0 {
		return nil
	}

	return candidates[len(candidates)-1]
}

// Events returns every event registered for topic, oldest first
func (r *Registry) Events(topic ethgo.Hash) []*Event {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return append([]*Event{}, r.events[topic]...)
}

// DecodeCall resolves calldata by its selector and decodes the arguments.
// The bytes arguments of multicall are decoded recursively; inner calls
// that cannot be resolved are skipped.
func (r *Registry) DecodeCall(calldata []byte) (*DecodedCall, error) {
	// inner calls may decode at most maxNestedDepth times the outer bytes
	budget := len(calldata) * maxNestedDepth

	call, err := r.decodeCall(calldata, &budget, 0)
	r.observe(OpDecodeCall, err)

	if err != nil {
		return nil, err
	}

	return call, nil
}

func (r *Registry) decodeCall(calldata []byte, budget *int, depth int) (*DecodedCall, error) {
	if len(calldata) < SelectorLength {
		return nil, fmt.Errorf("%w: calldata has %d bytes", ErrBufferTooShort, len(calldata))
	}

	var selector [SelectorLength]byte

	copy(selector[:], calldata)

	m := r.Method(selector)
	if m == nil {
		return nil, fmt.Errorf("%w: %x", ErrUnknownSelector, selector)
	}

	values, err := m.DecodeInputValues(calldata, r.opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Sig(), err)
	}

	call := &DecodedCall{
		Name:      m.RawName,
		Signature: m.Sig(),
		Params:    params(m.Inputs, values),
	}

	if call.IsMulticall() {
		r.decodeNested(call, budget, depth)
	}

	return call, nil
}

func (r *Registry) decodeNested(call *DecodedCall, budget *int, depth int) {
	if depth >= maxNestedDepth {
		r.logger.Debug("nested calls too deep", "call", call.Signature, "depth", depth)

		return
	}

	var inner [][]byte

	for _, p := range call.Params {
		switch {
		case p.Type.kind == BytesTy:
			inner = append(inner, p.Value.data)
		case p.Type.kind == SliceTy && p.Type.elem.kind == BytesTy:
			for _, elem := range p.Value.elems {
				inner = append(inner, elem.data)
			}
		}
	}

	for i, data := range inner {
		if len(data) > *budget {
			r.logger.Debug("nested call budget exhausted", "call", call.Signature, "index", i)

			return
		}

		*budget -= len(data)

		nested, err := r.decodeCall(data, budget, depth+1)
		if err != nil {
			r.logger.Debug("skipping nested call", "call", call.Signature, "index", i, "err", err)

			continue
		}

		call.Nested = append(call.Nested, nested)
	}
}

// DecodeLog resolves a log by its first topic and decodes it
func (r *Registry) DecodeLog(log *ethgo.Log) (*DecodedLog, error) {
	decoded, err := r.decodeLog(log)
	r.observe(OpDecodeLog, err)

	if err != nil {
		return nil, err
	}

	return decoded, nil
}

func (r *Registry) decodeLog(log *ethgo.Log) (*DecodedLog, error) {
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("%w: log has no topics", ErrTopicMismatch)
	}

	candidates := r.Events(log.Topics[0])
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: topic %s", ErrUnknownSelector, log.Topics[0])
	}

	var lastErr error

	// newest registration first
	for i := len(candidates) - 1; i >= 0; i-- {
		e := candidates[i]

		values, err := e.DecodeLogValues(log)
		if err != nil {
			lastErr = err

			continue
		}

		return &DecodedLog{
			Name:      e.RawName,
			Signature: e.Sig(),
			Address:   log.Address,
			Params:    params(e.LogArguments(), values),
		}, nil
	}

	return nil, lastErr
}

// DecodeLogs decodes every log with a registered event, skipping the rest
func (r *Registry) DecodeLogs(logs []*ethgo.Log) []*DecodedLog {
	out := make([]*DecodedLog, 0, len(logs))

	for _, log := range logs {
		decoded, err := r.DecodeLog(log)
		if err != nil {
			r.logger.Debug("skipping log", "address", log.Address, "err", err)

			continue
		}

		out = append(out, decoded)
	}

	return out
}

func (r *Registry) observe(op string, err error) {
	if r.observer != nil {
		r.observer.ObserveDecode(op, err)
	}
}

func params(args Arguments, values []Value) []Param {
	out := make([]Param, len(args))
	for i, arg := range args {
		out[i] = Param{Name: arg.Name, Type: arg.Type, Value: values[i]}
	}

	return out
}
