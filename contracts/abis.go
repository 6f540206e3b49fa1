package contracts

import (
	"fmt"
	"sort"

	"github.com/xgr-network/xgr-abi/abi"
)

// Token ABIs
const ERC20ABI = `
[{"type":"function","name":"name","stateMutability":"view",
  "inputs":[],"outputs":[{"name":"","type":"string"}]},
 {"type":"function","name":"symbol","stateMutability":"view",
  "inputs":[],"outputs":[{"name":"","type":"string"}]},
 {"type":"function","name":"decimals","stateMutability":"view",
  "inputs":[],"outputs":[{"name":"","type":"uint8"}]},
 {"type":"function","name":"totalSupply","stateMutability":"view",
  "inputs":[],"outputs":[{"name":"","type":"uint256"}]},
 {"type":"function","name":"balanceOf","stateMutability":"view",
  "inputs":[{"name":"owner","type":"address"}],
  "outputs":[{"name":"balance","type":"uint256"}]},
 {"type":"function","name":"allowance","stateMutability":"view",
  "inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],
  "outputs":[{"name":"remaining","type":"uint256"}]},
 {"type":"function","name":"transfer","stateMutability":"nonpayable",
  "inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],
  "outputs":[{"name":"success","type":"bool"}]},
 {"type":"function","name":"transferFrom","stateMutability":"nonpayable",
  "inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"value","type":"uint256"}],
  "outputs":[{"name":"success","type":"bool"}]},
 {"type":"function","name":"approve","stateMutability":"nonpayable",
  "inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],
  "outputs":[{"name":"success","type":"bool"}]},
 {"type":"event","name":"Transfer","anonymous":false,"inputs":[
    {"name":"from","type":"address","indexed":true},
    {"name":"to","type":"address","indexed":true},
    {"name":"value","type":"uint256","indexed":false}]},
 {"type":"event","name":"Approval","anonymous":false,"inputs":[
    {"name":"owner","type":"address","indexed":true},
    {"name":"spender","type":"address","indexed":true},
    {"name":"value","type":"uint256","indexed":false}]}]`

// ERC721ABI covers ownership and approvals. Its Transfer event shares topic
// zero with the ERC-20 one but carries the token id as a third topic.
const ERC721ABI = `
[{"type":"function","name":"ownerOf","stateMutability":"view",
  "inputs":[{"name":"tokenId","type":"uint256"}],
  "outputs":[{"name":"owner","type":"address"}]},
 {"type":"function","name":"tokenURI","stateMutability":"view",
  "inputs":[{"name":"tokenId","type":"uint256"}],
  "outputs":[{"name":"","type":"string"}]},
 {"type":"function","name":"getApproved","stateMutability":"view",
  "inputs":[{"name":"tokenId","type":"uint256"}],
  "outputs":[{"name":"operator","type":"address"}]},
 {"type":"function","name":"isApprovedForAll","stateMutability":"view",
  "inputs":[{"name":"owner","type":"address"},{"name":"operator","type":"address"}],
  "outputs":[{"name":"","type":"bool"}]},
 {"type":"function","name":"setApprovalForAll","stateMutability":"nonpayable",
  "inputs":[{"name":"operator","type":"address"},{"name":"approved","type":"bool"}],
  "outputs":[]},
 {"type":"function","name":"safeTransferFrom","stateMutability":"nonpayable",
  "inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],
  "outputs":[]},
 {"type":"function","name":"safeTransferFrom","stateMutability":"nonpayable",
  "inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"data","type":"bytes"}],
  "outputs":[]},
 {"type":"event","name":"Transfer","anonymous":false,"inputs":[
    {"name":"from","type":"address","indexed":true},
    {"name":"to","type":"address","indexed":true},
    {"name":"tokenId","type":"uint256","indexed":true}]},
 {"type":"event","name":"ApprovalForAll","anonymous":false,"inputs":[
    {"name":"owner","type":"address","indexed":true},
    {"name":"operator","type":"address","indexed":true},
    {"name":"approved","type":"bool","indexed":false}]}]`

// MulticallABI merges the batching entry points of Multicall3 and the
// Uniswap periphery contracts
const MulticallABI = `
[{"type":"function","name":"aggregate","stateMutability":"payable",
  "inputs":[{"name":"calls","type":"tuple[]","internalType":"struct Multicall3.Call[]","components":[
    {"name":"target","type":"address"},
    {"name":"callData","type":"bytes"}]}],
  "outputs":[{"name":"blockNumber","type":"uint256"},{"name":"returnData","type":"bytes[]"}]},
 {"type":"function","name":"tryAggregate","stateMutability":"payable",
  "inputs":[{"name":"requireSuccess","type":"bool"},
    {"name":"calls","type":"tuple[]","internalType":"struct Multicall3.Call[]","components":[
      {"name":"target","type":"address"},
      {"name":"callData","type":"bytes"}]}],
  "outputs":[{"name":"returnData","type":"tuple[]","internalType":"struct Multicall3.Result[]","components":[
    {"name":"success","type":"bool"},
    {"name":"returnData","type":"bytes"}]}]},
 {"type":"function","name":"multicall","stateMutability":"payable",
  "inputs":[{"name":"data","type":"bytes[]"}],
  "outputs":[{"name":"results","type":"bytes[]"}]}]`

// Names of the builtin ABIs
const (
	ERC20     = "erc20"
	ERC721    = "erc721"
	Multicall = "multicall"
)

var builtins = map[string]string{
	ERC20:     ERC20ABI,
	ERC721:    ERC721ABI,
	Multicall: MulticallABI,
}

// Names returns the builtin ABI names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Definition returns the JSON of a builtin ABI
func Definition(name string) (string, bool) {
	def, ok := builtins[name]

	return def, ok
}

// Builtin parses the builtin ABI called name
func Builtin(name string) (*abi.ABI, error) {
	def, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown builtin abi %q (available: %v)", name, Names())
	}

	return abi.NewABI(def)
}

// Register adds the named builtin ABIs to r, labelled by name
func Register(r *abi.Registry, names ...string) error {
	for _, name := range names {
		def, ok := builtins[name]
		if !ok {
			return fmt.Errorf("unknown builtin abi %q (available: %v)", name, Names())
		}

		if err := r.AddJSON(name, def); err != nil {
			return err
		}
	}

	return nil
}
