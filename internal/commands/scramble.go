package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/scrambler/internal/config"
)

// NewScrambleCommand creates a new cobra command for the scramble subcommand.
func NewScrambleCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scramble [flags] paths...",
		Aliases: []string{"s", "enc"},
		Short:   "Turn files into fragment archives",
		Long: `Scramble writes <name>.zip next to every input, holding the fragments
<name>0.txt, <name>1.txt and so on. Directories are walked recursively.`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, config.Scramble),
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(cfg)
		},
	}

	cmd.Flags().IntP("rounds", "r", 1, "Encryption rounds (1-3), needed again to unscramble")
	cmd.Flags().IntP("fragments", "n", 3, "Number of fragments (1-10)")
	cmd.Flags().Bool("seal", false, "Store a sealed digest so unscramble can detect a wrong passphrase or tampering")

	return cmd
}
