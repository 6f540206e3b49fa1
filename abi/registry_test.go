package abi

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"math/big"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umbracle/ethgo"
)

const routerABI = `[
	{"type":"function","name":"swapExactTokensForETH","stateMutability":"nonpayable",
		"inputs":[
			{"name":"amountIn","type":"uint256"},
			{"name":"amountOutMin","type":"uint256"},
			{"name":"path","type":"address[]"},
			{"name":"to","type":"address"},
			{"name":"deadline","type":"uint256"}
		],
		"outputs":[{"name":"amounts","type":"uint256[]"}]}
]`

const positionManagerABI = `[
	{"type":"function","name":"multicall","stateMutability":"payable",
		"inputs":[{"name":"data","type":"bytes[]"}],
		"outputs":[{"name":"results","type":"bytes[]"}]},
	{"type":"function","name":"createAndInitializePoolIfNecessary","stateMutability":"payable",
		"inputs":[
			{"name":"token0","type":"address"},
			{"name":"token1","type":"address"},
			{"name":"fee","type":"uint24"},
			{"name":"sqrtPriceX96","type":"uint160"}
		],
		"outputs":[{"name":"pool","type":"address"}]},
	{"type":"function","name":"mint","stateMutability":"payable",
		"inputs":[{"name":"params","type":"tuple","internalType":"struct INonfungiblePositionManager.MintParams","components":[
			{"name":"token0","type":"address"},
			{"name":"token1","type":"address"},
			{"name":"fee","type":"uint24"},
			{"name":"tickLower","type":"int24"},
			{"name":"tickUpper","type":"int24"},
			{"name":"amount0Desired","type":"uint256"},
			{"name":"amount1Desired","type":"uint256"},
			{"name":"amount0Min","type":"uint256"},
			{"name":"amount1Min","type":"uint256"},
			{"name":"recipient","type":"address"},
			{"name":"deadline","type":"uint256"}
		]}],
		"outputs":[
			{"name":"tokenId","type":"uint256"},
			{"name":"liquidity","type":"uint128"},
			{"name":"amount0","type":"uint256"},
			{"name":"amount1","type":"uint256"}
		]}
]`

const wethABI = `[
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[
		{"name":"src","type":"address","indexed":true},
		{"name":"dst","type":"address","indexed":true},
		{"name":"wad","type":"uint256","indexed":false}
	]},
	{"type":"event","name":"Approval","anonymous":false,"inputs":[
		{"name":"src","type":"address","indexed":true},
		{"name":"guy","type":"address","indexed":true},
		{"name":"wad","type":"uint256","indexed":false}
	]}
]`

// multicall(bytes[]) wrapping createAndInitializePoolIfNecessary and mint
const multicallCalldata = "ac9650d8" +
	"0000000000000000000000000000000000000000000000000000000000000020" +
	"0000000000000000000000000000000000000000000000000000000000000002" +
	"0000000000000000000000000000000000000000000000000000000000000040" +
	"0000000000000000000000000000000000000000000000000000000000000100" +
	"0000000000000000000000000000000000000000000000000000000000000084" +
	"13ead5620000000000000000000000005c8cd1c2f2997f7a041026cc29de8177" +
	"b4c6d8ec00000000000000000000000089e54f174ca5ff39cf53ab58004158e2" +
	"ca012eac00000000000000000000000000000000000000000000000000000000" +
	"00000bb8000000000000000000000000000000000035f2482336c0d4c2ba6e94" +
	"faa1d66f00000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000164" +
	"883164560000000000000000000000005c8cd1c2f2997f7a041026cc29de8177" +
	"b4c6d8ec00000000000000000000000089e54f174ca5ff39cf53ab58004158e2" +
	"ca012eac00000000000000000000000000000000000000000000000000000000" +
	"00000bb8ffffffffffffffffffffffffffffffffffffffffffffffffffffffff" +
	"fff2764c00000000000000000000000000000000000000000000000000000000" +
	"000a11a8000000000000000000000000000000000000000000000000000000e8" +
	"d4a510000000000000000000000000000000000000000000000a56d35c029fd1" +
	"6645e079000000000000000000000000000000000000000000000000000000e8" +
	"40308c030000000000000000000000000000000000000000000a503344abc0fb" +
	"e23670910000000000000000000000005a2b5cb4ce921abd65f0c66c2c839894" +
	"bfc2076c00000000000000000000000000000000000000000000000000000000" +
	"6244356a00000000000000000000000000000000000000000000000000000000"

type observation struct {
	op  string
	err error
}

type recordingObserver struct {
	lock sync.Mutex
	seen []observation
}

func (o *recordingObserver) ObserveDecode(op string, err error) {
	o.lock.Lock()
	defer o.lock.Unlock()

	o.seen = append(o.seen, observation{op, err})
}

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()

	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)

	return n
}

func TestRegistry_DecodeCall(t *testing.T) {
	t.Parallel()

	observer := &recordingObserver{}
	r := NewRegistry(hclog.NewNullLogger(), WithObserver(observer))
	require.NoError(t, r.AddJSON("0x7a250d5630b4cf539739df2c5dacb4c659f2488d", routerABI))

	call, err := r.DecodeCall(mustHex(t, swapCalldata))
	require.NoError(t, err)

	assert.Equal(t, "swapExactTokensForETH", call.Name)
	assert.Equal(t, "swapExactTokensForETH(uint256,uint256,address[],address,uint256)", call.Signature)
	assert.False(t, call.IsMulticall())
	assert.Empty(t, call.Nested)

	require.Len(t, call.Params, 5)

	names := make([]string, len(call.Params))
	for i, p := range call.Params {
		names[i] = p.Name
	}

	assert.Equal(t, []string{"amountIn", "amountOutMin", "path", "to", "deadline"}, names)

	amountOutMin, ok := call.Param("amountOutMin")
	require.True(t, ok)
	assert.Equal(t, "6283178947560620", amountOutMin.Value.BigInt().String())

	path, ok := call.Param("path")
	require.True(t, ok)
	assert.Equal(t, "address[]", path.Type.String())

	native, err := path.Native()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{
		ethgo.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"),
		ethgo.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"),
	}, native)

	_, ok = call.Param("missing")
	assert.False(t, ok)

	_, err = r.DecodeCall(mustHex(t, multisigCalldata))
	require.ErrorIs(t, err, ErrUnknownSelector)

	_, err = r.DecodeCall([]byte{0x18})
	require.ErrorIs(t, err, ErrBufferTooShort)

	observer.lock.Lock()
	defer observer.lock.Unlock()

	require.Len(t, observer.seen, 3)
	assert.Equal(t, OpDecodeCall, observer.seen[0].op)
	assert.NoError(t, observer.seen[0].err)
	assert.ErrorIs(t, observer.seen[1].err, ErrUnknownSelector)
}

func TestRegistry_Multicall(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	require.NoError(t, r.AddJSON("", positionManagerABI))

	call, err := r.DecodeCall(mustHex(t, multicallCalldata))
	require.NoError(t, err)

	assert.True(t, call.IsMulticall())
	require.Len(t, call.Nested, 2)

	create := call.Nested[0]
	assert.Equal(t, "createAndInitializePoolIfNecessary", create.Name)

	expectedTypes := map[string]string{
		"token0":       "address",
		"token1":       "address",
		"fee":          "uint24",
		"sqrtPriceX96": "uint160",
	}

	for name, typ := range expectedTypes {
		p, ok := create.Param(name)
		require.True(t, ok, name)
		assert.Equal(t, typ, p.Type.String(), name)
	}

	fee, _ := create.Param("fee")
	assert.Equal(t, int64(3000), fee.Value.BigInt().Int64())

	price, _ := create.Param("sqrtPriceX96")
	assert.Equal(t, bigFromString(t, "280105791952298552699389429697074799"), price.Value.BigInt())

	mint := call.Nested[1]
	assert.Equal(t, "mint", mint.Name)

	params, ok := mint.Param("params")
	require.True(t, ok)
	assert.Equal(t, TupleTy, params.Type.Kind())

	native, err := params.Native()
	require.NoError(t, err)

	members, ok := native.(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, ethgo.HexToAddress("0x5c8cd1c2f2997f7a041026cc29de8177b4c6d8ec"), members["token0"])
	assert.Equal(t, big.NewInt(-887220), members["tickLower"])
	assert.Equal(t, big.NewInt(659880), members["tickUpper"])
	assert.Equal(t, bigFromString(t, "12499280606709957106458745"), members["amount1Desired"])
	assert.Equal(t, ethgo.HexToAddress("0x5a2b5cb4ce921abd65f0c66c2c839894bfc2076c"), members["recipient"])
	assert.Equal(t, big.NewInt(1648637290), members["deadline"])

	// the label defaults to the hash of the definition
	label := hex.EncodeToString(Keccak256([]byte(positionManagerABI)))
	assert.Contains(t, r.ABIs(), label)
}

func TestRegistry_MulticallSkipsUnknown(t *testing.T) {
	t.Parallel()

	a := MustNewABI(positionManagerABI)

	r := NewRegistry(nil)
	r.AddMethod(a.GetMethod("multicall"))
	r.AddMethod(a.GetMethod("createAndInitializePoolIfNecessary"))

	call, err := r.DecodeCall(mustHex(t, multicallCalldata))
	require.NoError(t, err)

	require.Len(t, call.Nested, 1)
	assert.Equal(t, "createAndInitializePoolIfNecessary", call.Nested[0].Name)
}

func nestMulticall(t *testing.T, inner []byte, depth int) []byte {
	t.Helper()

	for i := 0; i < depth; i++ {
		var err error

		inner, err = EncodeCall("multicall(bytes[])", []Value{NewSlice(NewBytes(inner))})
		require.NoError(t, err)
	}

	return inner
}

func TestRegistry_MulticallDepth(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	r.AddMethod(MustNewABI(positionManagerABI).GetMethod("multicall"))
	r.AddMethod(MustNewMethod("transfer(address,uint256)"))

	transfer, err := EncodeCall("transfer(address,uint256)", []Value{NewAddress(ethgo.Address{1}), NewUint64(5)})
	require.NoError(t, err)

	links := func(call *DecodedCall) int {
		n := 0
		for len(call.Nested) > 0 {
			call = call.Nested[0]
			n++
		}

		return n
	}

	call, err := r.DecodeCall(nestMulticall(t, transfer, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, links(call))

	call, err = r.DecodeCall(nestMulticall(t, transfer, maxNestedDepth+2))
	require.NoError(t, err)
	assert.Equal(t, maxNestedDepth, links(call))
}

func TestRegistry_MulticallSharedPayload(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	r.AddMethod(MustNewABI(positionManagerABI).GetMethod("multicall"))

	inner := nestMulticall(t, nil, 1)

	// every element of data points at the same inner multicall
	const n = 64

	var b strings.Builder

	b.WriteString("ac9650d8")
	b.WriteString(word("20"))
	b.WriteString(word(fmt.Sprintf("%x", n)))

	for i := 0; i < n; i++ {
		b.WriteString(word(fmt.Sprintf("%x", n*WordSize)))
	}

	b.WriteString(word(fmt.Sprintf("%x", len(inner))))
	b.WriteString(hex.EncodeToString(inner))
	b.WriteString(strings.Repeat("00", paddedLength(len(inner))-len(inner)))

	_, err := r.DecodeCall(mustHex(t, b.String()))
	require.ErrorIs(t, err, ErrElementCountUnreasonable)
}

func TestRegistry_DecodeLogs(t *testing.T) {
	t.Parallel()

	observer := &recordingObserver{}
	r := NewRegistry(nil, WithObserver(observer))
	require.NoError(t, r.AddJSON("weth", wethABI))

	weth := ethgo.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")

	logs := []*ethgo.Log{
		{
			Address: weth,
			Topics: []ethgo.Hash{
				hashOf(t, "ddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"),
				hashOf(t, word("66f044b68f2808753b99a7d31820fbc751342d9c")),
				hashOf(t, word("4056140bc49cb36dd0b5bc4b4530ef56781cc365")),
			},
			Data: mustHex(t, word("03aa8e4f70c34000")),
		},
		{
			Address: weth,
			Topics:  []ethgo.Hash{hashOf(t, word("01"))},
		},
		{
			Address: weth,
			Topics: []ethgo.Hash{
				hashOf(t, "8c5be1e5ebec7d5bd14f71427d1e84f3dd0314c0f7b2291e5b200ac8c7c3b925"),
				hashOf(t, word("d4cf8e47beac55b42ae58991785fa326d9384bd1")),
				hashOf(t, word("b4e16d0168e52d35cacd2c6185b44281ec28c9dc")),
			},
			Data: mustHex(t, word("989680")),
		},
		{
			Address: weth,
		},
	}

	decoded := r.DecodeLogs(logs)
	require.Len(t, decoded, 2)

	transfer := decoded[0]
	assert.Equal(t, "Transfer", transfer.Name)
	assert.Equal(t, weth, transfer.Address)

	names := make([]string, len(transfer.Params))
	for i, p := range transfer.Params {
		names[i] = p.Name
	}

	assert.Equal(t, []string{"src", "dst", "wad"}, names)

	wad, ok := transfer.Param("wad")
	require.True(t, ok)
	assert.Equal(t, "264180000000000000", wad.Value.BigInt().String())

	approval := decoded[1]
	assert.Equal(t, "Approval(address,address,uint256)", approval.Signature)

	guy, ok := approval.Param("guy")
	require.True(t, ok)
	assert.Equal(t, ethgo.HexToAddress("0xb4e16d0168e52d35cacd2c6185b44281ec28c9dc"), guy.Value.Address())

	observer.lock.Lock()
	defer observer.lock.Unlock()

	require.Len(t, observer.seen, 4)
	assert.Equal(t, OpDecodeLog, observer.seen[1].op)
	assert.ErrorIs(t, observer.seen[1].err, ErrUnknownSelector)
	assert.ErrorIs(t, observer.seen[3].err, ErrTopicMismatch)
}

func TestRegistry_SelectorCollision(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	logger := hclog.New(&hclog.LoggerOptions{Output: &out, Level: hclog.Debug})
	r := NewRegistry(logger)

	r.AddMethod(MustNewMethod("burn(uint256)"))
	r.AddMethod(MustNewMethod("collate_propagate_storage(bytes16)"))

	m := r.Method([SelectorLength]byte{0x42, 0x96, 0x6c, 0x68})
	require.NotNil(t, m)
	assert.Equal(t, "collate_propagate_storage(bytes16)", m.Sig())
	assert.Contains(t, out.String(), "selector collision")
}

func TestRegistry_AddJSONError(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)

	err := r.AddJSON("broken", `[{"type":"function","name":"f","inputs":[{"type":"uint7"}]}]`)
	require.ErrorIs(t, err, ErrMalformedSignature)
	assert.Empty(t, r.ABIs())
}

func TestRegistry_StrictDecode(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil, WithDecodeOptions(DecodeOptions{Strict: true}))
	require.NoError(t, r.AddJSON("router", routerABI))

	_, err := r.DecodeCall(append(mustHex(t, swapCalldata), make([]byte, WordSize)...))
	require.ErrorIs(t, err, ErrTrailingBytes)

	lenient := NewRegistry(nil)
	require.NoError(t, lenient.AddJSON("router", routerABI))

	_, err = lenient.DecodeCall(append(mustHex(t, swapCalldata), make([]byte, WordSize)...))
	require.NoError(t, err)
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	calldata := mustHex(t, swapCalldata)

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()

			assert.NoError(t, r.AddJSON("router", routerABI))
		}()

		go func() {
			defer wg.Done()

			// may run before the ABI is added
			_, _ = r.DecodeCall(calldata)
		}()
	}

	wg.Wait()

	_, err := r.DecodeCall(calldata)
	require.NoError(t, err)
}
