package tx

import (
	"github.com/spf13/cobra"
	"github.com/xgr-network/xgr-abi/command"
	"github.com/xgr-network/xgr-abi/command/helper"
)

var params = &txParams{}

func GetCommand() *cobra.Command {
	txCmd := &cobra.Command{
		Use:   "tx <hash>",
		Short: "Fetches a transaction and its receipt and decodes the input and the logs",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(_ *cobra.Command, args []string) error {
			params.rawHash = args[0]

			return params.validateFlags()
		},
		RunE: runCommand,
	}

	helper.RegisterRPCFlag(txCmd)
	helper.RegisterStrictFlag(txCmd)

	return txCmd
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

	result, err := params.getResult(cmd.Context(), env)
	if err != nil {
		return err
	}

	outputter.SetCommandResult(result)

	return nil
}
