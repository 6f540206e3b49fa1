package call

import (
	"github.com/spf13/cobra"
	"github.com/xgr-network/xgr-abi/command"
	"github.com/xgr-network/xgr-abi/command/helper"
)

var params = &callParams{}

func GetCommand() *cobra.Command {
	callCmd := &cobra.Command{
		Use:   "call <address> <signature> [values...]",
		Short: "Runs eth_call against a contract and decodes the returned values",
		Long: "Encodes the call like the encode command, sends it with eth_call and decodes the " +
			"outputs declared after \"returns\". Reverts are explained with the configured ABIs.",
		Example: `xgr-abi call 0x5c8cd1c2f2997f7a041026cc29de8177b4c6d8ec ` +
			`"balanceOf(address) returns (uint256)" 0xd4cf8e47beac55b42ae58991785fa326d9384bd1`,
		Args:    cobra.MinimumNArgs(2),
		PreRunE: runPreRun,
		RunE:    runCommand,
	}

	helper.RegisterRPCFlag(callCmd)
	helper.RegisterStrictFlag(callCmd)

	return callCmd
}

func runPreRun(_ *cobra.Command, args []string) error {
	params.rawTo = args[0]
	params.signature = args[1]
	params.rawValues = args[2:]

	return params.validateFlags()
}

func runCommand(cmd *cobra.Command, _ []string) error {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	env, err := helper.NewEnvironment(cmd)
	if err != nil {
		return err
	}

	result, err := params.getResult(cmd.Context(), env)
	if err != nil {
		return err
	}

	outputter.SetCommandResult(result)

	return nil
}
