package sigdb

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/umbracle/ethgo"
	"github.com/xgr-network/xgr-abi/abi"
)

// key prefixes of the two signature namespaces
const (
	methodPrefix byte = 'm'
	eventPrefix  byte = 'e'
)

const eventKeyword = "event "

// ErrNoMatch is returned by Resolve when no known signature decodes the call
var ErrNoMatch = errors.New("no known signature matches")

// Match is a signature whose arguments decoded the call data strictly
type Match struct {
	Signature string
	Types     []*abi.Type
	Values    []abi.Value
}

// Directory maps selectors and event topics to the text signatures that
// produce them. Several signatures can share a selector.
type Directory struct {
	logger hclog.Logger
	store  Store
	cache  *abi.TypeCache

	// serializes the read-modify-write cycle of imports
	lock sync.Mutex
}

// NewDirectory wraps store. cache may be nil.
func NewDirectory(store Store, cache *abi.TypeCache, logger hclog.Logger) *Directory {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Directory{
		logger: logger.Named("sigdb"),
		store:  store,
		cache:  cache,
	}
}

// Close closes the underlying store
func (d *Directory) Close() error {
	return d.store.Close()
}

// canonicalize returns the store key and canonical form of a signature such
// as "transfer(address to, uint amount)" or "event Transfer(address indexed,
// address indexed, uint256)"
func canonicalize(signature string) ([]byte, string, error) {
	signature = strings.TrimSpace(signature)

	if strings.HasPrefix(signature, eventKeyword) {
		e, err := abi.NewEvent(strings.TrimPrefix(signature, eventKeyword))
		if err != nil {
			return nil, "", err
		}

		topic := e.ID()

		return append([]byte{eventPrefix}, topic[:]...), e.Sig(), nil
	}

	m, err := abi.NewMethod(strings.TrimPrefix(signature, "function "))
	if err != nil {
		return nil, "", err
	}

	return append([]byte{methodPrefix}, m.ID()...), m.Sig(), nil
}

// Import stores signatures. Blank lines and lines starting with # are
// skipped. Invalid signatures are reported together after every valid one
// has been stored. It returns the number of new signatures.
func (d *Directory) Import(signatures []string) (int, error) {
	var result *multierror.Error

	pending := map[string][]string{}

	for _, raw := range signatures {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, canonical, err := canonicalize(line)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%q: %w", line, err))

			continue
		}

		pending[string(key)] = append(pending[string(key)], canonical)
	}

	d.lock.Lock()
	defer d.lock.Unlock()

	batch := d.store.NewBatch()
	added := 0

	for key, sigs := range pending {
		existing, err := d.get([]byte(key))
		if err != nil {
			return 0, err
		}

		merged := mergeSignatures(existing, sigs)
		if len(merged) == len(existing) {
			continue
		}

		added += len(merged) - len(existing)

		batch.Put([]byte(key), []byte(strings.Join(merged, "\n")))
	}

	if err := batch.Write(); err != nil {
		return 0, fmt.Errorf("failed to write signatures: %w", err)
	}

	d.logger.Info("signatures imported", "added", added, "rejected", len(result.WrappedErrors()))

	return added, result.ErrorOrNil()
}

// ImportReader imports one signature per line
func (d *Directory) ImportReader(r io.Reader) (int, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return 0, err
	}

	return d.Import(lines)
}

func mergeSignatures(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))

	for _, list := range [][]string{existing, incoming} {
		for _, sig := range list {
			if _, ok := seen[sig]; ok {
				continue
			}

			seen[sig] = struct{}{}
			merged = append(merged, sig)
		}
	}

	sort.Strings(merged)

	return merged
}

func (d *Directory) get(key []byte) ([]string, error) {
	v, ok, err := d.store.Get(key)
	if err != nil {
		return nil, err
	}

	if !ok || len(v) == 0 {
		return nil, nil
	}

	return strings.Split(string(v), "\n"), nil
}

// Lookup returns the function signatures known for selector
func (d *Directory) Lookup(selector [abi.SelectorLength]byte) ([]string, error) {
	return d.get(append([]byte{methodPrefix}, selector[:]...))
}

// LookupEvent returns the event signatures known for topic
func (d *Directory) LookupEvent(topic ethgo.Hash) ([]string, error) {
	return d.get(append([]byte{eventPrefix}, topic[:]...))
}

func (d *Directory) parseMethod(signature string) (*abi.MethodSignature, error) {
	if d.cache != nil {
		return d.cache.ParseMethod(signature)
	}

	return abi.ParseMethod(signature)
}

// Resolve decodes call data with every signature known for its selector and
// returns those that decode it in strict mode
func (d *Directory) Resolve(calldata []byte) ([]*Match, error) {
	if len(calldata) < abi.SelectorLength {
		return nil, fmt.Errorf("%w: calldata has %d bytes", abi.ErrBufferTooShort, len(calldata))
	}

	var selector [abi.SelectorLength]byte

	copy(selector[:], calldata)

	candidates, err := d.Lookup(selector)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", abi.ErrUnknownSelector, hex.EncodeToString(selector[:]))
	}

	var matches []*Match

	for _, sig := range candidates {
		m, err := d.parseMethod(sig)
		if err != nil {
			d.logger.Warn("stored signature does not parse", "signature", sig, "err", err)

			continue
		}

		values, err := abi.DecodeWithOptions(calldata[abi.SelectorLength:], m.Inputs, abi.DecodeOptions{Strict: true})
		if err != nil {
			d.logger.Debug("candidate rejected", "signature", sig, "err", err)

			continue
		}

		matches = append(matches, &Match{Signature: sig, Types: m.Inputs, Values: values})
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %d candidates for %s", ErrNoMatch, len(candidates), hex.EncodeToString(selector[:]))
	}

	return matches, nil
}
