package abi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Canonical(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input     string
		canonical string
	}{
		{"uint", "uint256"},
		{"int", "int256"},
		{"uint8", "uint8"},
		{"int24", "int24"},
		{"bytes1", "bytes1"},
		{"bytes", "bytes"},
		{"uint[]", "uint256[]"},
		{"address[2][]", "address[2][]"},
		{"(uint,int)", "(uint256,int256)"},
		{"tuple(uint256,bool)", "(uint256,bool)"},
		{"tuple(uint256,tuple(bool,string)[])[2]", "(uint256,(bool,string)[])[2]"},
		{"((uint256))", "((uint256))"},
		{"function[]", "function[]"},
	}

	for _, c := range cases {
		c := c

		t.Run(c.input, func(t *testing.T) {
			t.Parallel()

			typ, err := Parse(c.input)
			require.NoError(t, err)
			assert.Equal(t, c.canonical, typ.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		err   error
	}{
		{"", ErrMalformedSignature},
		{"uint7", ErrMalformedSignature},
		{"uint264", ErrMalformedSignature},
		{"uint08", ErrMalformedSignature},
		{"int0", ErrMalformedSignature},
		{"bytes0", ErrMalformedSignature},
		{"bytes33", ErrMalformedSignature},
		{"float", ErrMalformedSignature},
		{"tuple", ErrMalformedSignature},
		{"()", ErrMalformedSignature},
		{"(uint256", ErrMalformedSignature},
		{"(uint256,)", ErrMalformedSignature},
		{"uint256)", ErrMalformedSignature},
		{"uint256 ", ErrMalformedSignature},
		{"(uint256, bool)", ErrMalformedSignature},
		{"uint256[", ErrMalformedSignature},
		{"uint256[2", ErrMalformedSignature},
		{"uint256[a]", ErrMalformedSignature},
		{"uint256[-1]", ErrMalformedSignature},
		{"uint256[01]", ErrMalformedSignature},
		{"Uint256", ErrMalformedSignature},
		{"uint256[0]", ErrInvalidArrayLength},
		{"bool[][0]", ErrInvalidArrayLength},
		{"uint256[99999999999999999999]", ErrInvalidArrayLength},
		{"uint256[4294967296]", ErrInvalidArrayLength},
		{"uint256[67108864]", ErrInvalidArrayLength},
	}

	for _, c := range cases {
		c := c

		t.Run(c.input, func(t *testing.T) {
			t.Parallel()

			typ, err := Parse(c.input)
			require.ErrorIs(t, err, c.err)
			assert.Nil(t, typ)
		})
	}
}

func TestParse_Depth(t *testing.T) {
	t.Parallel()

	nested := func(n int) string {
		return strings.Repeat("(", n) + "uint256" + strings.Repeat(")", n)
	}

	t.Run("tuples at the limit", func(t *testing.T) {
		t.Parallel()

		typ, err := Parse(nested(MaxDepth))
		require.NoError(t, err)
		assert.Equal(t, MaxDepth, typ.Depth())
	})

	t.Run("tuples past the limit", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(nested(MaxDepth + 1))
		require.ErrorIs(t, err, ErrSignatureTooComplex)
	})

	t.Run("array suffix past the limit", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(nested(MaxDepth) + "[]")
		require.ErrorIs(t, err, ErrSignatureTooComplex)
	})

	t.Run("slices past the limit", func(t *testing.T) {
		t.Parallel()

		_, err := Parse("bool" + strings.Repeat("[]", MaxDepth+1))
		require.ErrorIs(t, err, ErrSignatureTooComplex)
	})

	t.Run("deep input fails fast", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(strings.Repeat("(", 100000))
		require.ErrorIs(t, err, ErrSignatureTooComplex)
	})
}

func TestParseTypes(t *testing.T) {
	t.Parallel()

	types, err := ParseTypes("")
	require.NoError(t, err)
	assert.Empty(t, types)

	types, err = ParseTypes("uint256,(bool,string),bytes32[]")
	require.NoError(t, err)
	require.Len(t, types, 3)
	assert.Equal(t, "(bool,string)", types[1].String())

	_, err = ParseTypes("uint256,")
	require.ErrorIs(t, err, ErrMalformedSignature)

	_, err = ParseTypes(",uint256")
	require.ErrorIs(t, err, ErrMalformedSignature)
}

func TestParseMethod(t *testing.T) {
	t.Parallel()

	m, err := ParseMethod("transfer(address,uint)")
	require.NoError(t, err)
	assert.Equal(t, "transfer", m.Name)
	assert.Equal(t, "transfer(address,uint256)", m.Canonical())

	m, err = ParseMethod("totalSupply()")
	require.NoError(t, err)
	assert.Empty(t, m.Inputs)
	assert.Equal(t, "totalSupply()", m.Canonical())

	for _, bad := range []string{"transfer", "(uint256)", "1abc()", "foo(uint256", "foo bar()", "foo(uint256))"} {
		_, err := ParseMethod(bad)
		assert.ErrorIs(t, err, ErrMalformedSignature, bad)
	}
}

func TestParseHumanSignature(t *testing.T) {
	t.Parallel()

	name, args, err := parseEventSignature("Transfer(address indexed src, address indexed dst, uint256 wad)")
	require.NoError(t, err)
	assert.Equal(t, "Transfer", name)
	require.Len(t, args, 3)
	assert.True(t, args[0].Indexed)
	assert.Equal(t, "dst", args[1].Name)
	assert.False(t, args[2].Indexed)
	assert.Equal(t, "(address,address,uint256)", args.Signature())

	_, args, err = parseEventSignature("Swap((uint256,bool) indexed,string)")
	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.Equal(t, "(uint256,bool)", args[0].Type.String())

	_, _, err = parseHumanSignature("transfer(address indexed to)", false)
	require.ErrorIs(t, err, ErrMalformedSignature)

	_, _, err = parseEventSignature("Transfer(address from to)")
	require.ErrorIs(t, err, ErrMalformedSignature)
}
