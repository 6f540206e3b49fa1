package abi

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umbracle/ethgo"
	ethgoabi "github.com/umbracle/ethgo/abi"
)

// The encoder must agree byte for byte with the ethgo codec on the shapes
// both support.
func TestCompat_Ethgo(t *testing.T) {
	t.Parallel()

	owner := ethgo.HexToAddress("0xa6d9c5f7d4de3cef51ad3b7235d79ccc95114de5")
	spender := ethgo.HexToAddress("0xa6d9c5f7d4de3cef51ad3b7235d79ccc95114daa")

	cases := []struct {
		name  string
		sig   string
		input []interface{}
	}{
		{
			"receipt",
			"(bool,uint64,uint256,uint256)",
			[]interface{}{true, uint64(21000), big.NewInt(0), big.NewInt(1_000_000_007)},
		},
		{
			"owners",
			"(address[],uint256,uint256)",
			[]interface{}{[]ethgo.Address{owner, spender}, big.NewInt(1), big.NewInt(0)},
		},
		{
			"dynamic members",
			"(string,bytes,address)",
			[]interface{}{"hello", []byte{0xde, 0xad, 0xbe, 0xef}, owner},
		},
		{
			"negative tick",
			"(int24,int24,uint24)",
			[]interface{}{big.NewInt(-887220), big.NewInt(659880), big.NewInt(3000)},
		},
		{
			"nested strings",
			"(string[],uint8)",
			[]interface{}{[]string{"a", "", "ccc"}, uint8(9)},
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			theirs, err := ethgoabi.MustNewType("tuple" + c.sig).Encode(c.input)
			require.NoError(t, err)

			typ := MustParse(c.sig)

			v, err := FromNative(typ, c.input)
			require.NoError(t, err)

			// the arguments of a call are encoded as the members of a tuple
			ours, err := Encode(v.Elems(), fieldTypes(typ))
			require.NoError(t, err)
			assert.Equal(t, theirs, ours)

			decoded, err := DecodeWithOptions(theirs, fieldTypes(typ), DecodeOptions{Strict: true})
			require.NoError(t, err)
			assert.True(t, NewTuple(decoded...).Equal(v))

			_, err = ethgoabi.MustNewType("tuple" + c.sig).Decode(ours)
			require.NoError(t, err)
		})
	}
}

func TestCompat_EthgoSelector(t *testing.T) {
	t.Parallel()

	theirs := ethgoabi.MustNewABI(routerABI).GetMethod("swapExactTokensForETH")
	ours := MustNewABI(routerABI).GetMethod("swapExactTokensForETH")

	assert.Equal(t, theirs.ID(), ours.ID())

	decoded, err := theirs.Inputs.Decode(mustHex(t, swapCalldata)[SelectorLength:])
	require.NoError(t, err)

	args, ok := decoded.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, big.NewInt(10000000), args["amountIn"])
}

func fieldTypes(t *Type) []*Type {
	types := make([]*Type, t.NumFields())
	for i := range types {
		types[i] = t.Field(i).Type
	}

	return types
}
