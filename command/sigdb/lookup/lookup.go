package lookup

import (
	"github.com/spf13/cobra"
	"github.com/xgr-network/xgr-abi/command"
	"github.com/xgr-network/xgr-abi/command/helper"
)

var params = &lookupParams{}

func GetCommand() *cobra.Command {
	lookupCmd := &cobra.Command{
		Use:     "lookup <selector|topic>",
		Short:   "Lists the signatures known for a 4 byte selector or a 32 byte event topic",
		Example: "xgr-abi sigdb lookup 0xa9059cbb",
		Args:    cobra.ExactArgs(1),
		PreRunE: runPreRun,
		RunE:    runCommand,
	}

	return lookupCmd
}

func runPreRun(_ *cobra.Command, args []string) error {
	params.rawKey = args[0]

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
