package cmd

import (
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "repopack",
	Short: "Repopack is a CLI tool for packing a project tree into text documents",
	Long: `Repopack collects every relevant text file of a project tree into one or
several flat text documents with per-file language fences, a structural index,
and an omission log, ready to hand to a text-consuming reviewer.`,
	SilenceUsage: true,
}

// Execute wires the shared logger into the subcommands and runs the root command.
func Execute(logger *zap.Logger) error {
	rootLogger = logger
	return RootCmd.Execute()
}

// rootLogger is the logger shared by all subcommands, set once by Execute.
var rootLogger *zap.Logger
