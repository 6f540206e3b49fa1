package leveldb

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/xgr-network/xgr-abi/sigdb"
)

var (
	_ sigdb.Store = (*Store)(nil)
	_ sigdb.Batch = (*batch)(nil)
)

// Store is a sigdb.Store backed by LevelDB
type Store struct {
	logger hclog.Logger
	db     *leveldb.DB
}

// Factory opens the LevelDB directory at path, creating it if needed
func Factory(path string, logger hclog.Logger) (sigdb.Store, error) {
	return New(path, logger)
}

// New opens the LevelDB directory at path
func New(path string, logger hclog.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("leveldb sigdb needs a path")
	}

	db, err := leveldb.OpenFile(path, &opt.Options{
		OpenFilesCacheCapacity: 64,
		BlockCacheCapacity:     8 * opt.MiB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at %s: %w", path, err)
	}

	return newStore(db, logger, path), nil
}

// NewInMemory returns a LevelDB store on memory backed storage
func NewInMemory(logger hclog.Logger) (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}

	return newStore(db, logger, ""), nil
}

func newStore(db *leveldb.DB, logger hclog.Logger, path string) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	logger = logger.Named("leveldb")
	logger.Debug("store opened", "path", path)

	return &Store{logger: logger, db: db}
}

func (s *Store) Get(k []byte) ([]byte, bool, error) {
	v, err := s.db.Get(k, nil)

	switch {
	case err == nil:
		return v, true, nil
	case errors.Is(err, leveldb.ErrNotFound):
		return nil, false, nil
	default:
		return nil, false, translate(err)
	}
}

func (s *Store) NewBatch() sigdb.Batch {
	return &batch{db: s.db}
}

func (s *Store) Close() error {
	s.logger.Debug("store closed")

	return translate(s.db.Close())
}

func translate(err error) error {
	if errors.Is(err, leveldb.ErrClosed) {
		return sigdb.ErrClosed
	}

	return err
}

type batch struct {
	db *leveldb.DB
	b  leveldb.Batch
}

func (b *batch) Delete(k []byte) {
	b.b.Delete(k)
}

func (b *batch) Put(k []byte, v []byte) {
	b.b.Put(k, v)
}

// Write applies the buffered operations atomically and resets the batch
func (b *batch) Write() error {
	if err := b.db.Write(&b.b, nil); err != nil {
		return translate(err)
	}

	b.b.Reset()

	return nil
}
