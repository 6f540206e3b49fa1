package decode

import (
	"github.com/spf13/cobra"
	"github.com/xgr-network/xgr-abi/command"
	"github.com/xgr-network/xgr-abi/command/helper"
)

var params = &decodeParams{}

func GetCommand() *cobra.Command {
	decodeCmd := &cobra.Command{
		Use:   "decode <types> <hex|->",
		Short: "Decodes ABI encoded data with a list of types",
		Example: `xgr-abi decode "address,uint256" 0x000000000000000000000000d4cf8e47beac55b42ae58991785fa326d9384bd1` +
			`00000000000000000000000000000000000000000000000000000000000003e8`,
		Args:    cobra.ExactArgs(2),
		PreRunE: runPreRun,
		RunE:    runCommand,
	}

	helper.RegisterStrictFlag(decodeCmd)

	return decodeCmd
}

func runPreRun(cmd *cobra.Command, args []string) error {
	cfg, err := helper.LoadConfig(cmd)
	if err != nil {
		return err
	}

	params.strict = cfg.Strict
	params.typeList = args[0]

	if params.rawData, err = helper.ReadInput(cmd, args[1]); err != nil {
		return err
	}

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
