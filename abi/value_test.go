package abi

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umbracle/ethgo"
)

func TestValue_Copies(t *testing.T) {
	t.Parallel()

	n := big.NewInt(7)
	v := NewUint(n)
	n.SetInt64(8)
	assert.Equal(t, int64(7), v.BigInt().Int64())

	v.BigInt().SetInt64(9)
	assert.Equal(t, int64(7), v.BigInt().Int64())

	b := []byte{1, 2}
	bv := NewBytes(b)
	b[0] = 9
	assert.Equal(t, []byte{1, 2}, bv.Bytes())

	elems := []Value{NewBool(true)}
	sv := NewSlice(elems...)
	elems[0] = NewBool(false)
	assert.True(t, sv.Index(0).Bool())
}

func TestValue_Equal(t *testing.T) {
	t.Parallel()

	assert.True(t, NewUint64(1).Equal(NewUint(big.NewInt(1))))
	assert.False(t, NewUint64(1).Equal(NewInt64(1)))
	assert.False(t, NewArray(NewBool(true)).Equal(NewSlice(NewBool(true))))
	assert.True(t, NewTuple(NewString("a"), NewBytes(nil)).Equal(NewTuple(NewString("a"), NewBytes([]byte{}))))
	assert.False(t, NewTuple(NewString("a")).Equal(NewTuple(NewString("a"), NewString("b"))))
	assert.True(t, Value{}.Equal(Value{}))
}

func TestValue_String(t *testing.T) {
	t.Parallel()

	v := NewTuple(
		NewInt64(-5),
		NewSlice(NewBool(true), NewBool(false)),
		NewBytes([]byte{0xab}),
		NewString("x"),
	)

	assert.Equal(t, `(-5, [true, false], 0xab, "x")`, v.String())
	assert.Equal(t, "<invalid>", Value{}.String())
}

func TestValue_MarshalJSON(t *testing.T) {
	t.Parallel()

	v := NewTuple(
		NewUint64(10000000),
		NewAddress(ethgo.HexToAddress("0xd4cf8e47beac55b42ae58991785fa326d9384bd1")),
		NewFixedBytes([]byte{0x01, 0x02}),
		NewSlice(),
		NewBool(true),
	)

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var out []interface{}
	require.NoError(t, json.Unmarshal(raw, &out))

	require.Len(t, out, 5)
	assert.Equal(t, "10000000", out[0])
	assert.Equal(t, ethgo.HexToAddress("0xd4cf8e47beac55b42ae58991785fa326d9384bd1").String(), out[1])
	assert.Equal(t, "0x0102", out[2])
	assert.Equal(t, []interface{}{}, out[3])
	assert.Equal(t, true, out[4])

	_, err = json.Marshal(Value{})
	require.Error(t, err)
}
