// cmd/root.go

package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/StrataNetworks/fabricsync/cmd/read"
	"github.com/StrataNetworks/fabricsync/pkg/logger"
	"github.com/StrataNetworks/fabricsync/pkg/syncerr"
)

// RootCmd is the base command for fabricsync.
var RootCmd = &cobra.Command{
	Use:   "fabricsync",
	Short: "Inspect the network state exported to the fabric controller",
	Long: `fabricsync filters the shared virtual-network database down to the
records relevant to the external fabric controller (CVX). The read
commands show exactly what the relevance filter would export; nothing
here ever writes to the store.`,
	SilenceUsage: true,
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	RootCmd.AddCommand(read.ReadCmd)
	RootCmd.AddCommand(statusCmd)
}

// Execute runs the CLI and maps operator errors to a clean exit.
func Execute() {
	defer logger.Sync()

	RegisterCommands()

	if err := RootCmd.Execute(); err != nil {
		if syncerr.IsExpectedUserError(err) {
			logger.L().Warn("CLI completed with user error", zap.Error(err))
			os.Exit(2)
		}
		logger.L().Error("CLI execution error", zap.Error(err))
		os.Exit(1)
	}
}
