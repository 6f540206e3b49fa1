package bolt

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/xgr-network/xgr-abi/sigdb"
	bolt "go.etcd.io/bbolt"
)

var (
	_ sigdb.Store = (*Store)(nil)
	_ sigdb.Batch = (*batch)(nil)
)

var bucketName = []byte("selectors")

// Store is a sigdb.Store backed by a single bbolt file
type Store struct {
	logger hclog.Logger
	db     *bolt.DB
}

// Factory opens the bolt file at path, creating it if needed
func Factory(path string, logger hclog.Logger) (sigdb.Store, error) {
	return New(path, logger)
}

// New opens the bolt file at path
func New(path string, logger hclog.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("bolt sigdb needs a path")
	}

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db at %s: %w", path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)

		return err
	}); err != nil {
		_ = db.Close()

		return nil, err
	}

	logger = logger.Named("bolt")
	logger.Debug("store opened", "path", path)

	return &Store{logger: logger, db: db}, nil
}

func (s *Store) Get(k []byte) ([]byte, bool, error) {
	var out []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		// values are only valid for the life of the transaction
		if v := tx.Bucket(bucketName).Get(k); v != nil {
			out = append([]byte{}, v...)
		}

		return nil
	})
	if err != nil {
		return nil, false, translate(err)
	}

	return out, out != nil, nil
}

func (s *Store) NewBatch() sigdb.Batch {
	return &batch{db: s.db}
}

func (s *Store) Close() error {
	s.logger.Debug("store closed")

	return s.db.Close()
}

func translate(err error) error {
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return sigdb.ErrClosed
	}

	return err
}

type op struct {
	key    []byte
	value  []byte
	delete bool
}

type batch struct {
	db  *bolt.DB
	ops []op
}

func (b *batch) Put(k []byte, v []byte) {
	b.ops = append(b.ops, op{key: append([]byte{}, k...), value: append([]byte{}, v...)})
}

func (b *batch) Delete(k []byte) {
	b.ops = append(b.ops, op{key: append([]byte{}, k...), delete: true})
}

// Write applies the buffered operations in one transaction
func (b *batch) Write() error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)

		for _, o := range b.ops {
			var err error
			if o.delete {
				err = bucket.Delete(o.key)
			} else {
				err = bucket.Put(o.key, o.value)
			}

			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return translate(err)
	}

	b.ops = nil

	return nil
}
