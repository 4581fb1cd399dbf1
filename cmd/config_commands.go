package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshcazalas/youtube-audio-bot/config"
)

func newConfigCommand(configFlag *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the bot configuration",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(configFlag))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a commented audiobot.toml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := config.DefaultConfigFile
			if len(args) == 1 {
				target = args[0]
			}
			target, err := config.ExpandPath(target)
			if err != nil {
				return err
			}

			_, statErr := os.Stat(target)
			switch {
			case statErr == nil && !force:
				return fmt.Errorf("%s exists; pass --force to replace it", target)
			case statErr != nil && !errors.Is(statErr, fs.ErrNotExist):
				return statErr
			}

			if err := config.CreateSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\nPut the bot token in telegram.token or %s.\n", target, config.EnvTelegramToken)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace an existing file")
	return cmd
}

func newConfigValidateCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and print the settings the bot would run with",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			source := path
			if !exists {
				source = "defaults + environment (no " + path + ")"
			}
			printSettings(cmd.OutOrStdout(), source, cfg)
			return nil
		},
	}
}

func printSettings(out io.Writer, source string, cfg *config.Config) {
	scratch := cfg.Download.ScratchDir
	if scratch == "" {
		scratch = os.TempDir()
	}
	logFile := cfg.LogFile()
	if logFile == "" {
		logFile = "stdout only"
	}

	fmt.Fprintf(out, "source      %s\n", source)
	fmt.Fprintf(out, "token       %s\n", maskToken(cfg.Telegram.Token))
	fmt.Fprintf(out, "health      %s/health\n", cfg.HealthAddr())
	fmt.Fprintf(out, "language    %s\n", cfg.Bot.Language)
	fmt.Fprintf(out, "workers     %d\n", cfg.Bot.Workers)
	fmt.Fprintf(out, "scratch     %s\n", scratch)
	fmt.Fprintf(out, "max size    %s\n", humanize.IBytes(uint64(cfg.Download.MaxBytes)))
	fmt.Fprintf(out, "audio       %s @ %s\n", cfg.Download.AudioFormat, cfg.Download.AudioQuality)
	fmt.Fprintf(out, "log file    %s\n", logFile)
	fmt.Fprintf(out, "discord     %t\n", cfg.DiscordEnabled())
}

// maskToken keeps enough of the token to tell two bots apart.
func maskToken(token string) string {
	if len(token) <= 14 {
		return "(short)"
	}
	return token[:10] + "..." + token[len(token)-4:]
}
