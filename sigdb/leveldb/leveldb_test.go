package leveldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xgr-network/xgr-abi/sigdb"
	"github.com/xgr-network/xgr-abi/sigdb/sigdbtest"
)

func TestStore_InMemory(t *testing.T) {
	t.Parallel()

	sigdbtest.TestStore(t, func(t *testing.T) sigdb.Store {
		t.Helper()

		s, err := NewInMemory(nil)
		require.NoError(t, err)

		return s
	})
}

func TestStore_Disk(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sigdb")

	s, err := Factory(path, nil)
	require.NoError(t, err)

	b := s.NewBatch()
	b.Put([]byte("k"), []byte("v"))
	require.NoError(t, b.Write())
	require.NoError(t, s.Close())

	// reopening sees the persisted value
	s, err = Factory(path, nil)
	require.NoError(t, err)

	defer s.Close()

	v, ok, err := s.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), v)
}

func TestNew_NoPath(t *testing.T) {
	t.Parallel()

	_, err := New("", nil)
	require.Error(t, err)
}
