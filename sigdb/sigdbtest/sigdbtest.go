// Package sigdbtest holds the behaviour every sigdb.Store must share
package sigdbtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xgr-network/xgr-abi/sigdb"
)

// TestStore runs the store suite against fresh stores made by open
func TestStore(t *testing.T, open func(t *testing.T) sigdb.Store) {
	t.Helper()

	t.Run("get missing", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		v, ok, err := s.Get([]byte("missing"))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("batch", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		b := s.NewBatch()
		b.Put([]byte("a"), []byte("1"))
		b.Put([]byte("b"), []byte("2"))
		b.Delete([]byte("a"))

		// nothing is visible before Write
		_, ok, err := s.Get([]byte("b"))
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, b.Write())

		_, ok, err = s.Get([]byte("a"))
		require.NoError(t, err)
		assert.False(t, ok)

		v, ok, err := s.Get([]byte("b"))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("2"), v)
	})

	t.Run("values are copied", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		value := []byte("value")

		b := s.NewBatch()
		b.Put([]byte("k"), value)
		require.NoError(t, b.Write())

		value[0] = 'X'

		v, _, err := s.Get([]byte("k"))
		require.NoError(t, err)
		assert.Equal(t, []byte("value"), v)

		v[0] = 'Y'

		again, _, err := s.Get([]byte("k"))
		require.NoError(t, err)
		assert.Equal(t, []byte("value"), again)
	})

	t.Run("closed", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Close())

		_, _, err := s.Get([]byte("k"))
		require.ErrorIs(t, err, sigdb.ErrClosed)
	})
}
