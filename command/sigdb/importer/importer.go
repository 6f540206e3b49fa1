package importer

import (
	"github.com/spf13/cobra"
	"github.com/xgr-network/xgr-abi/command"
	"github.com/xgr-network/xgr-abi/command/helper"
)

var params = &importParams{}

func GetCommand() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import <file|->...",
		Short: "Imports text signatures, one per line, into the selector directory",
		Long: "Imports function signatures and event declarations prefixed with \"event \". " +
			"Blank lines and lines starting with # are skipped. Invalid lines are reported " +
			"after every valid one has been stored.",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: runPreRun,
		RunE:    runCommand,
	}

	return importCmd
}

func runPreRun(_ *cobra.Command, args []string) error {
	params.files = args

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

	result, err := params.importFiles(cmd, env)
	if result != nil {
		outputter.SetCommandResult(result)
	}

	return err
}
