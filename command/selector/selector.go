package selector

import (
	"github.com/spf13/cobra"
	"github.com/xgr-network/xgr-abi/command"
)

var params = &selectorParams{}

func GetCommand() *cobra.Command {
	selectorCmd := &cobra.Command{
		Use:     "selector <signature>",
		Short:   "Computes the 4 byte selector of a function or the topic of an event",
		Example: `xgr-abi selector "transfer(address to, uint256 amount)"`,
		Args:    cobra.ExactArgs(1),
		PreRunE: runPreRun,
		RunE:    runCommand,
	}

	setFlags(selectorCmd)

	return selectorCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(
		&params.event,
		eventFlag,
		false,
		"treat the signature as an event declaration and print its topic",
	)
}

func runPreRun(_ *cobra.Command, args []string) error {
	params.signature = args[0]

	return params.validateFlags()
}

func runCommand(cmd *cobra.Command, _ []string) error {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	result, err := params.getResult()
	if err != nil {
		return err
	}

	outputter.SetCommandResult(result)

	return nil
}
