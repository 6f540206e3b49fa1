package calldata

import (
	"github.com/spf13/cobra"
	"github.com/xgr-network/xgr-abi/command"
	"github.com/xgr-network/xgr-abi/command/helper"
)

var params = &calldataParams{}

func GetCommand() *cobra.Command {
	calldataCmd := &cobra.Command{
		Use:   "calldata <hex|->",
		Short: "Identifies and decodes transaction input with the configured ABIs and selector directory",
		Long: "Resolves the selector against the builtin and configured ABIs, decoding multicall batches " +
			"recursively. Unknown selectors fall back to the selector directory, which lists every known " +
			"signature that decodes the input in strict mode.",
		Args:    cobra.ExactArgs(1),
		PreRunE: runPreRun,
		RunE:    runCommand,
	}

	helper.RegisterStrictFlag(calldataCmd)
	setFlags(calldataCmd)

	return calldataCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(
		&params.noDirectory,
		noDirectoryFlag,
		false,
		"do not consult the selector directory for unknown selectors",
	)
}

func runPreRun(cmd *cobra.Command, args []string) error {
	raw, err := helper.ReadInput(cmd, args[0])
	if err != nil {
		return err
	}

	params.rawData = raw

	return params.validateFlags()
}

func runCommand(cmd *cobra.Command, _ []string) error {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	env, err := helper.NewEnvironment(cmd)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := env.Close(); closeErr != nil {
			env.Logger.Error("failed to close environment", "err", closeErr)
		}
	}()

	result, err := params.getResult(env)
	if err != nil {
		return err
	}

	outputter.SetCommandResult(result)

	return nil
}
