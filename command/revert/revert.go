package revert

import (
	"github.com/spf13/cobra"
	"github.com/xgr-network/xgr-abi/command"
	"github.com/xgr-network/xgr-abi/command/helper"
)

var params = &revertParams{}

func GetCommand() *cobra.Command {
	revertCmd := &cobra.Command{
		Use:   "revert <hex|->",
		Short: "Decodes the return data of a reverted call",
		Long: "Decodes custom errors of the configured ABIs as well as the " +
			"Error(string) and Panic(uint256) payloads inserted by the compiler.",
		Args:    cobra.ExactArgs(1),
		PreRunE: runPreRun,
		RunE:    runCommand,
	}

	return revertCmd
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

	result, err := params.getResult(env)
	if err != nil {
		return err
	}

	outputter.SetCommandResult(result)

	return nil
}
