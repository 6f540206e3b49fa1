package abi

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector(t *testing.T) {
	t.Parallel()

	cases := []struct {
		signature string
		selector  string
	}{
		{"transfer(address,uint256)", "a9059cbb"},
		{"swapExactTokensForETH(uint256,uint256,address[],address,uint256)", "18cbafe5"},
		{"multicall(bytes[])", "ac9650d8"},
		{"createAndInitializePoolIfNecessary(address,address,uint24,uint160)", "13ead562"},
		{"mint((address,address,uint24,int24,int24,uint256,uint256,uint256,uint256,address,uint256))", "88316456"},
		{"Error(string)", "08c379a0"},
		{"Panic(uint256)", "4e487b71"},
	}

	for _, c := range cases {
		c := c

		t.Run(c.signature, func(t *testing.T) {
			t.Parallel()

			selector, err := Selector(c.signature)
			require.NoError(t, err)
			assert.Equal(t, c.selector, hex.EncodeToString(selector[:]))

			again, err := Selector(c.signature)
			require.NoError(t, err)
			assert.Equal(t, selector, again)
		})
	}
}

func TestSelector_InvalidEncoding(t *testing.T) {
	t.Parallel()

	_, err := Selector("transfer(\xff)")
	require.ErrorIs(t, err, ErrInvalidSignatureEncoding)

	_, err = EventTopic("Transfer(\xc3\x28)")
	require.ErrorIs(t, err, ErrInvalidSignatureEncoding)
}

func TestEventTopic(t *testing.T) {
	t.Parallel()

	topic, err := EventTopic("Transfer(address,address,uint256)")
	require.NoError(t, err)
	assert.Equal(t, "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef", topic.String())

	topic, err = EventTopic("Approval(address,address,uint256)")
	require.NoError(t, err)
	assert.Equal(t, "0x8c5be1e5ebec7d5bd14f71427d1e84f3dd0314c0f7b2291e5b200ac8c7c3b925", topic.String())
}

func TestMethodSelector(t *testing.T) {
	t.Parallel()

	selector, err := MethodSelector("transfer(address,uint)")
	require.NoError(t, err)
	assert.Equal(t, "a9059cbb", hex.EncodeToString(selector[:]))

	_, err = MethodSelector("transfer(address,uint7)")
	require.ErrorIs(t, err, ErrMalformedSignature)
}

func TestSignature(t *testing.T) {
	t.Parallel()

	types, err := ParseTypes("address,uint")
	require.NoError(t, err)

	assert.Equal(t, "transfer(address,uint256)", Signature("transfer", types))
	assert.Equal(t, "totalSupply()", Signature("totalSupply", nil))
}

func TestKeccak256(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		hex.EncodeToString(Keccak256(nil)),
	)
	assert.Equal(t, Keccak256([]byte("ab")), Keccak256([]byte("a"), []byte("b")))
}
