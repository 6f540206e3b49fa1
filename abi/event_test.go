package abi

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umbracle/ethgo"
)

func hashOf(t *testing.T, s string) ethgo.Hash {
	t.Helper()

	var h ethgo.Hash

	b := mustHex(t, s)
	require.Len(t, b, len(h))
	copy(h[:], b)

	return h
}

func TestEvent_Transfer(t *testing.T) {
	t.Parallel()

	e := MustNewEvent("Transfer(address indexed src, address indexed dst, uint256 wad)")
	assert.Equal(t, "Transfer(address,address,uint256)", e.Sig())
	assert.Equal(t, "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef", e.ID().String())

	log := &ethgo.Log{
		Address: ethgo.HexToAddress("0x4056140BC49cb36dd0b5bC4b4530ef56781Cc365"),
		Topics: []ethgo.Hash{
			hashOf(t, "ddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"),
			hashOf(t, word("66f044b68f2808753b99a7d31820fbc751342d9c")),
			hashOf(t, word("4056140bc49cb36dd0b5bc4b4530ef56781cc365")),
		},
		Data: mustHex(t, word("03aa8e4f70c34000")),
	}

	require.True(t, e.Match(log))

	decoded, err := e.DecodeLog(log)
	require.NoError(t, err)

	assert.Equal(t, ethgo.HexToAddress("0x66f044b68f2808753b99a7d31820fbc751342d9c"), decoded["src"])
	assert.Equal(t, ethgo.HexToAddress("0x4056140bc49cb36dd0b5bc4b4530ef56781cc365"), decoded["dst"])

	wad, ok := new(big.Int).SetString("264180000000000000", 10)
	require.True(t, ok)
	assert.Equal(t, wad, decoded["wad"])
}

func TestEvent_HashedIndexed(t *testing.T) {
	t.Parallel()

	e := MustNewEvent("Log(string indexed message, uint256 n)")

	digest := Keccak256([]byte("hi"))

	var topic ethgo.Hash

	copy(topic[:], digest)

	values, err := e.DecodeLogValues(&ethgo.Log{
		Topics: []ethgo.Hash{e.ID(), topic},
		Data:   mustHex(t, word("07")),
	})
	require.NoError(t, err)
	require.Len(t, values, 2)

	assert.Equal(t, FixedBytesTy, values[0].Kind())
	assert.Equal(t, digest, values[0].Bytes())
	assert.Equal(t, int64(7), values[1].BigInt().Int64())

	args := e.LogArguments()
	assert.Equal(t, "bytes32", args[0].Type.String())
	assert.Equal(t, "string", e.Inputs[0].Type.String())
}

func TestEvent_Anonymous(t *testing.T) {
	t.Parallel()

	e := MustNewEvent("Deposit(address indexed dst, uint256 wad)")
	e.Anonymous = true

	log := &ethgo.Log{
		Topics: []ethgo.Hash{hashOf(t, word("66f044b68f2808753b99a7d31820fbc751342d9c"))},
		Data:   mustHex(t, word("01")),
	}

	require.True(t, e.Match(log))

	decoded, err := e.DecodeLog(log)
	require.NoError(t, err)
	assert.Equal(t, ethgo.HexToAddress("0x66f044b68f2808753b99a7d31820fbc751342d9c"), decoded["dst"])
}

func TestEvent_Mismatch(t *testing.T) {
	t.Parallel()

	e := MustNewEvent("Transfer(address indexed src, address indexed dst, uint256 wad)")

	cases := []struct {
		name string
		log  *ethgo.Log
		err  error
	}{
		{
			"wrong topic",
			&ethgo.Log{
				Topics: []ethgo.Hash{{0x01}, {}, {}},
				Data:   mustHex(t, word("01")),
			},
			ErrTopicMismatch,
		},
		{
			"missing topic",
			&ethgo.Log{
				Topics: []ethgo.Hash{e.ID(), {}},
				Data:   mustHex(t, word("01")),
			},
			ErrTopicMismatch,
		},
		{
			"short data",
			&ethgo.Log{
				Topics: []ethgo.Hash{e.ID(), {}, {}},
				Data:   []byte{0x01},
			},
			ErrBufferTooShort,
		},
		{
			"dirty address topic",
			&ethgo.Log{
				Topics: []ethgo.Hash{e.ID(), {0x01}, {}},
				Data:   mustHex(t, word("01")),
			},
			ErrInvalidPadding,
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, err := e.DecodeLogValues(c.log)
			require.ErrorIs(t, err, c.err)
		})
	}
}

func TestNewEvent_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewEvent("Transfer(address indexed src extra)")
	require.ErrorIs(t, err, ErrMalformedSignature)

	_, err = NewEvent("Transfer(address,,uint256)")
	require.ErrorIs(t, err, ErrMalformedSignature)
}
