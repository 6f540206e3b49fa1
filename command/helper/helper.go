package helper

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"
	"github.com/xgr-network/xgr-abi/abi"
	"github.com/xgr-network/xgr-abi/command"
)

// StdinArg makes commands read their input from standard input
const StdinArg = "-"

// RegisterJSONOutputFlag registers the --json output setting for all child commands
func RegisterJSONOutputFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(
		command.JSONOutputFlag,
		false,
		"get all outputs in json format (default false)",
	)
}

// RegisterConfigFlag registers the --config file setting for all child commands
func RegisterConfigFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String(
		command.ConfigFlag,
		"",
		"the path to the yaml, json or hcl configuration file",
	)
}

// RegisterLogLevelFlag registers the --log-level setting for all child commands
func RegisterLogLevelFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String(
		command.LogLevelFlag,
		command.DefaultLogLevel,
		"the log level for console output",
	)
}

// RegisterStrictFlag registers the --strict decode setting on cmd
func RegisterStrictFlag(cmd *cobra.Command) {
	cmd.Flags().Bool(
		command.StrictFlag,
		false,
		"reject non-canonical encodings and unreferenced trailing bytes",
	)
}

// RegisterRPCFlag registers the --rpc node endpoint setting on cmd
func RegisterRPCFlag(cmd *cobra.Command) {
	cmd.Flags().String(
		command.RPCFlag,
		"",
		"the JSON-RPC endpoint of the node (default from config, then http://127.0.0.1:8545)",
	)
}

// FormatList formats a list into a string
func FormatList(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"

	return columnize.Format(in, columnConf)
}

// FormatKV formats key value pairs:
//
// Key = Value
//
// Key = <none>
func FormatKV(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	columnConf.Glue = " = "

	return columnize.Format(in, columnConf)
}

// ReadInput returns arg, or standard input of cmd when arg is "-"
func ReadInput(cmd *cobra.Command, arg string) (string, error) {
	if arg != StdinArg {
		return arg, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read standard input: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// DecodeHex decodes hex with or without the 0x prefix
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}

	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}

	return b, nil
}

// ParseArgument turns a command line value into native Go data for
// abi.FromNative. JSON arrays and objects describe lists and tuples, anything
// else is passed through as a string.
func ParseArgument(arg string) (interface{}, error) {
	trimmed := strings.TrimSpace(arg)
	if !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "{") {
		return arg, nil
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()

	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("invalid json argument %q: %w", arg, err)
	}

	return out, nil
}

// Param is a decoded argument as rendered by the commands
type Param struct {
	Name  string    `json:"name,omitempty"`
	Type  string    `json:"type"`
	Value abi.Value `json:"value"`
}

// NewParams pairs decoded values with their types and optional names
func NewParams(types []*abi.Type, names []string, values []abi.Value) []Param {
	params := make([]Param, len(values))

	for i, v := range values {
		params[i] = Param{Type: types[i].String(), Value: v}
		if i < len(names) {
			params[i].Name = names[i]
		}
	}

	return params
}

// FormatParams renders params one per line, prefixed by indent
func FormatParams(params []Param, indent string) string {
	rows := make([]string, len(params))

	for i, p := range params {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("[%d]", i)
		}

		rows[i] = fmt.Sprintf("%s%s|%s|%s", indent, name, p.Type, p.Value.String())
	}

	return FormatList(rows)
}

// HexString renders b as 0x prefixed lower case hex
func HexString(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// WriteSection appends a titled block to buffer the way the command
// results lay out their text output
func WriteSection(buffer *bytes.Buffer, title string, body string) {
	buffer.WriteString("\n[" + title + "]\n")
	buffer.WriteString(body)
	buffer.WriteString("\n")
}

// Stderr is the destination of the console logger
func Stderr(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stderr
	}

	return cmd.ErrOrStderr()
}
