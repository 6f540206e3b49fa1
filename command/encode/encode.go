package encode

import (
	"github.com/spf13/cobra"
	"github.com/xgr-network/xgr-abi/command"
)

var params = &encodeParams{}

func GetCommand() *cobra.Command {
	encodeCmd := &cobra.Command{
		Use:   "encode <signature> [values...]",
		Short: "Encodes a function call from its signature and argument values",
		Long: "Encodes a function call. Integers are decimal or 0x hex, byte strings are 0x hex, " +
			"arrays and tuples are JSON arrays or objects keyed by member name.",
		Example: `xgr-abi encode "transfer(address,uint256)" 0xd4cf8e47beac55b42ae58991785fa326d9384bd1 1000`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: runPreRun,
		RunE:    runCommand,
	}

	setFlags(encodeCmd)

	return encodeCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(
		&params.argsOnly,
		argsOnlyFlag,
		false,
		"omit the selector and print only the encoded arguments",
	)
}

func runPreRun(_ *cobra.Command, args []string) error {
	params.signature = args[0]
	params.rawValues = args[1:]

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
