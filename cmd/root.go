// Package cmd holds the command-line entry points of the bot.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the CLI. Without a subcommand it serves.
func NewRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "audiobot",
		Short:         "Telegram bot that replies to YouTube links with their audio",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configFlag)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newServeCommand(&configFlag))
	rootCmd.AddCommand(newParseTitleCommand())
	rootCmd.AddCommand(newConfigCommand(&configFlag))

	return rootCmd
}
