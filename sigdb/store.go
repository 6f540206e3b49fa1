package sigdb

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Backend names a Store implementation
type Backend string

const (
	MemoryBackend   Backend = "memory"
	LevelDBBackend  Backend = "leveldb"
	BoltBackend     Backend = "bolt"
	PostgresBackend Backend = "postgres"
)

// ErrClosed is returned by stores used after Close
var ErrClosed = errors.New("store is closed")

// Batch buffers writes until Write is called
type Batch interface {
	Put(k []byte, v []byte)
	Delete(k []byte)
	Write() error
}

// Store is a byte oriented key value store
type Store interface {
	// Get returns the value stored under k. A missing key is not an error.
	Get(k []byte) ([]byte, bool, error)
	NewBatch() Batch
	Close() error
}

// Factory opens a store rooted at path
type Factory func(path string, logger hclog.Logger) (Store, error)

// ValidateBackend reports whether backend names a known implementation
func ValidateBackend(backend string) error {
	switch Backend(backend) {
	case "", MemoryBackend, LevelDBBackend, BoltBackend, PostgresBackend:
		return nil
	default:
		return fmt.Errorf("invalid sigdb.backend %q (allowed: %s|%s|%s|%s)",
			backend, MemoryBackend, LevelDBBackend, BoltBackend, PostgresBackend)
	}
}

type memoryStore struct {
	lock   sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemoryStore returns a Store that lives only in process memory
func NewMemoryStore() Store {
	return &memoryStore{data: map[string][]byte{}}
}

// MemoryFactory is the Factory of the memory backend. path is ignored.
func MemoryFactory(_ string, _ hclog.Logger) (Store, error) {
	return NewMemoryStore(), nil
}

func (m *memoryStore) Get(k []byte) ([]byte, bool, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if m.closed {
		return nil, false, ErrClosed
	}

	v, ok := m.data[string(k)]
	if !ok {
		return nil, false, nil
	}

	return append([]byte{}, v...), true, nil
}

func (m *memoryStore) NewBatch() Batch {
	return &memoryBatch{store: m}
}

func (m *memoryStore) Close() error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.closed = true
	m.data = nil

	return nil
}

type memoryOp struct {
	key    string
	value  []byte
	delete bool
}

type memoryBatch struct {
	store *memoryStore
	ops   []memoryOp
}

func (b *memoryBatch) Put(k []byte, v []byte) {
	b.ops = append(b.ops, memoryOp{key: string(k), value: append([]byte{}, v...)})
}

func (b *memoryBatch) Delete(k []byte) {
	b.ops = append(b.ops, memoryOp{key: string(k), delete: true})
}

func (b *memoryBatch) Write() error {
	b.store.lock.Lock()
	defer b.store.lock.Unlock()

	if b.store.closed {
		return ErrClosed
	}

	for _, op := range b.ops {
		if op.delete {
			delete(b.store.data, op.key)
		} else {
			b.store.data[op.key] = op.value
		}
	}

	b.ops = nil

	return nil
}
