package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/scrambler/internal/config"
)

// NewRootCommand creates the root command with the flags shared by every subcommand.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "scrambler [flags] command [flags]",
		Short: "Scramble files into encrypted fragment archives",
		Long: `Scrambler base64-encodes a file, encrypts the text in one to three AES-256-CBC
rounds and splits the ciphertext into up to ten fragments bundled in a zip archive.

Nothing but the fragments is stored: the passphrase, the round count and the
original extension must be supplied again to unscramble. Without --seal, a wrong
passphrase or round count can produce garbage instead of an error.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()

	flags.StringP("passphrase", "p", "", "Passphrase to derive the key from")
	flags.StringP("passphrase-file", "P", "", "File holding the passphrase")
	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.BoolP("verbose", "v", false, "Log every step of every file")
	flags.Bool("log-json", false, "Write logs as JSON lines")
	flags.BoolP("delete", "d", false, "Delete the input after it was processed successfully")
	flags.Bool("dry", false, "Show what would be processed without writing anything")
	flags.Bool("stats", false, "Print a summary when done")
	flags.Bool("preserve-timestamps", false, "Give outputs the modification time of their inputs")
	flags.StringSliceP("include", "i", nil, "Patterns selecting files inside directories (find -path syntax)")
	flags.StringSliceP("exclude", "x", nil, "Patterns excluding files inside directories (find -path syntax)")
	flags.String("include-from", "", "JSON file with include patterns")
	flags.String("exclude-from", "", "JSON file with exclude patterns")

	root.AddCommand(
		NewScrambleCommand(cfg),
		NewUnscrambleCommand(cfg),
		NewInspectCommand(cfg),
	)

	return root
}
