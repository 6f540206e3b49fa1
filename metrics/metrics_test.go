package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xgr-network/xgr-abi/abi"
)

func TestObserveDecode(t *testing.T) {
	t.Parallel()

	m := NewMetrics()

	m.ObserveDecode(abi.OpDecodeCall, nil)
	m.ObserveDecode(abi.OpDecodeCall, nil)
	m.ObserveDecode(abi.OpDecodeCall, fmt.Errorf("calldata: %w", abi.ErrUnknownSelector))
	m.ObserveDecode(abi.OpDecodeLog, abi.ErrTopicMismatch)
	m.ObserveDecode(abi.OpDecodeLog, fmt.Errorf("rpc failure"))

	cases := []struct {
		op     string
		result string
		count  float64
	}{
		{abi.OpDecodeCall, "ok", 2},
		{abi.OpDecodeCall, "unknown_selector", 1},
		{abi.OpDecodeLog, "topic_mismatch", 1},
		{abi.OpDecodeLog, "other", 1},
		{abi.OpDecodeLog, "ok", 0},
	}

	for _, c := range cases {
		assert.Equal(t, c.count, testutil.ToFloat64(m.decodes.WithLabelValues(c.op, c.result)), c.op+"/"+c.result)
	}

	// the zero count row above was created by the lookup itself
	assert.Equal(t, 5, testutil.CollectAndCount(m.decodes))
}

func TestObserveImport(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveImport(3, 1)
	m.ObserveImport(2, 0)

	assert.Equal(t, 5.0, testutil.ToFloat64(m.imports.WithLabelValues("added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.imports.WithLabelValues("rejected")))
}

func TestRegister(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()

	m := NewMetrics()
	require.NoError(t, m.Register(reg))

	// a second set collides with the first
	require.Error(t, NewMetrics().Register(reg))

	r := abi.NewRegistry(nil, abi.WithObserver(m))
	_, err := r.DecodeCall([]byte{0xde, 0xad, 0xbe, 0xef})
	require.Error(t, err)

	count, err := testutil.GatherAndCount(reg, "xgr_abi_decodes_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	path := filepath.Join(t.TempDir(), "abi.prom")
	require.NoError(t, WriteTextfile(path, reg))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(out), `xgr_abi_decodes_total{op="call",result="unknown_selector"} 1`)
}
