package command

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// CommandResult is the outcome of a command in text form. JSON output
// marshals the result itself.
type CommandResult interface {
	GetOutput() string
}

// OutputFormatter renders command results in the format picked by the user
type OutputFormatter interface {
	// SetCommandResult stores the result written by WriteOutput
	SetCommandResult(result CommandResult)
	// WriteOutput writes the stored result, if any
	WriteOutput()
	// WriteCommandResult writes result immediately
	WriteCommandResult(result CommandResult)
}

// InitializeOutputter returns the outputter selected by the --json flag
func InitializeOutputter(cmd *cobra.Command) OutputFormatter {
	if shouldOutputJSON(cmd) {
		return &jsonOutput{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
	}

	return &cliOutput{out: cmd.OutOrStdout()}
}

func shouldOutputJSON(cmd *cobra.Command) bool {
	flag := cmd.Flag(JSONOutputFlag)
	if flag == nil {
		return false
	}

	return flag.Value.String() == "true"
}

type cliOutput struct {
	out    io.Writer
	result CommandResult
}

func (cli *cliOutput) SetCommandResult(result CommandResult) {
	cli.result = result
}

func (cli *cliOutput) WriteOutput() {
	if cli.result == nil {
		return
	}

	cli.WriteCommandResult(cli.result)
}

func (cli *cliOutput) WriteCommandResult(result CommandResult) {
	_, _ = fmt.Fprintln(cli.out, result.GetOutput())
}

type jsonOutput struct {
	out    io.Writer
	errOut io.Writer
	result CommandResult
}

func (j *jsonOutput) SetCommandResult(result CommandResult) {
	j.result = result
}

func (j *jsonOutput) WriteOutput() {
	if j.result == nil {
		return
	}

	j.WriteCommandResult(j.result)
}

func (j *jsonOutput) WriteCommandResult(result CommandResult) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(j.errOut, "failed to marshal output: %v\n", err)

		return
	}

	_, _ = fmt.Fprintln(j.out, string(data))
}
