package sigdb

import (
	"github.com/spf13/cobra"
	"github.com/xgr-network/xgr-abi/command/sigdb/importer"
	"github.com/xgr-network/xgr-abi/command/sigdb/lookup"
)

func GetCommand() *cobra.Command {
	sigdbCmd := &cobra.Command{
		Use:   "sigdb",
		Short: "Top level command for the selector directory. Only accepts subcommands.",
	}

	registerSubcommands(sigdbCmd)

	return sigdbCmd
}

func registerSubcommands(baseCmd *cobra.Command) {
	baseCmd.AddCommand(
		// sigdb import
		importer.GetCommand(),
		// sigdb lookup
		lookup.GetCommand(),
	)
}
