package root

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/xgr-network/xgr-abi/command/call"
	"github.com/xgr-network/xgr-abi/command/calldata"
	"github.com/xgr-network/xgr-abi/command/decode"
	"github.com/xgr-network/xgr-abi/command/encode"
	"github.com/xgr-network/xgr-abi/command/helper"
	"github.com/xgr-network/xgr-abi/command/revert"
	"github.com/xgr-network/xgr-abi/command/selector"
	"github.com/xgr-network/xgr-abi/command/sigdb"
	"github.com/xgr-network/xgr-abi/command/tx"
)

type RootCommand struct {
	baseCmd *cobra.Command
}

func NewRootCommand() *RootCommand {
	rootCommand := &RootCommand{
		baseCmd: &cobra.Command{
			Use:          "xgr-abi",
			Short:        "xgr-abi encodes and decodes Ethereum contract ABI data",
			SilenceUsage: true,
		},
	}

	helper.RegisterJSONOutputFlag(rootCommand.baseCmd)
	helper.RegisterConfigFlag(rootCommand.baseCmd)
	helper.RegisterLogLevelFlag(rootCommand.baseCmd)

	rootCommand.registerSubCommands()

	return rootCommand
}

func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		selector.GetCommand(),
		encode.GetCommand(),
		decode.GetCommand(),
		calldata.GetCommand(),
		revert.GetCommand(),
		call.GetCommand(),
		tx.GetCommand(),
		sigdb.GetCommand(),
	)
}

// Command exposes the cobra command tree
func (rc *RootCommand) Command() *cobra.Command {
	return rc.baseCmd
}

func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
