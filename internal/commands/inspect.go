package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/scrambler/internal/config"
)

// NewInspectCommand creates a new cobra command for the inspect subcommand.
func NewInspectCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "inspect [flags] [paths...]",
		Aliases: []string{"ls"},
		Short:   "List the fragments of archives in recovered order",
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg, config.Inspect),
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(cfg)
		},
	}
}
