package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/scrambler/internal/config"
)

// NewUnscrambleCommand creates a new cobra command for the unscramble subcommand.
func NewUnscrambleCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "unscramble [flags] [paths...]",
		Aliases: []string{"u", "dec"},
		Short:   "Restore files from fragment archives",
		Long: `Unscramble writes <archive name><extension> next to every archive.
Directories are searched for *.zip unless include patterns are given.`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg, config.Unscramble),
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(cfg)
		},
	}

	cmd.Flags().IntP("rounds", "r", 1, "Encryption rounds used when scrambling (1-3)")
	cmd.Flags().StringP("extension", "e", "", "Extension of the original files, for example .pdf")
	cmd.Flags().Bool("no-verify", false, "Skip the seal check of sealed archives")

	return cmd
}
