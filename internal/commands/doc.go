// Package commands provides the command-line interface for scrambler.
//
// It implements commands for:
//   - scrambling files into fragment archives
//   - unscrambling archives back into files
//   - inspecting archives without a passphrase
//
// Flags and SCRAMBLER_* environment variables are merged with viper into a
// config.Config, which is validated before any file is touched.
package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/scrambler/internal/config"
	"github.com/idelchi/scrambler/internal/logger"
	"github.com/idelchi/scrambler/internal/logic"
)

// envPrefix is the prefix of every environment variable scrambler reads.
const envPrefix = "SCRAMBLER"

// preRun returns a PreRunE handler that merges flags and environment into cfg,
// resolves positional args into cfg.Files and validates the result.
func preRun(cfg *config.Config, mode config.Mode) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		v := viper.New()

		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		v.AllowEmptyEnv(true)
		v.AutomaticEnv()

		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("binding flags: %w", err)
		}

		if err := v.Unmarshal(cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}

		cfg.Mode = mode
		cfg.PassphraseSet = v.IsSet("passphrase")

		if len(args) == 0 && mode != config.Scramble {
			cfg.Files = []string{"."}
		} else {
			cfg.Files = args
		}

		return cfg.Validate() //nolint:wrapcheck
	}
}

// run resolves the passphrase when one is needed and hands over to logic.Run.
func run(cfg *config.Config) error {
	log := logger.New(os.Stderr, logger.Options{
		Verbose: cfg.Verbose,
		Quiet:   cfg.Quiet,
		JSON:    cfg.LogJSON,
	})

	var pass []byte

	if cfg.NeedsPassphrase() && !cfg.Dry {
		var err error

		pass, err = cfg.ResolvePassphrase(config.TerminalPrompt(os.Stdin, os.Stderr))
		if err != nil {
			return err //nolint:wrapcheck
		}

		defer clear(pass)

		if len(pass) == 0 {
			log.Warn().Msg("using an empty passphrase")
		}
	}

	err := logic.Run(cfg, pass, log, logic.StdStreams())
	if errors.Is(err, logic.ErrInputNotFound) {
		return fmt.Errorf("nothing was written: %w", err)
	}

	return err //nolint:wrapcheck
}
