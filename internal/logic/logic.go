// Package logic runs scramble, unscramble and inspect over the selected files.
package logic

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/scrambler/internal/config"
	"github.com/idelchi/scrambler/internal/encryption"
	"github.com/idelchi/scrambler/internal/filter"
	"github.com/idelchi/scrambler/internal/fragment"
	"github.com/idelchi/scrambler/internal/logger"
)

// Streams are where results and statistics are printed.
type Streams struct {
	Out io.Writer
	Err io.Writer
}

// StdStreams prints to the process's standard output and error.
func StdStreams() Streams {
	return Streams{Out: os.Stdout, Err: os.Stderr}
}

// Run resolves the input files and runs the configured mode over them.
// pass is ignored by inspect.
func Run(cfg *config.Config, pass []byte, log *logger.Logger, streams Streams) error {
	start := time.Now()

	res, err := resolveFiles(cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %w", ErrInputNotFound, err)
		}

		return fmt.Errorf("resolving files: %w", err)
	}

	log.Debug().
		Int("selected", len(res.Files)).
		Int("scanned", res.Scanned).
		Str("mode", string(cfg.Mode)).
		Msg("resolved inputs")

	if cfg.Mode != config.Inspect {
		if err := checkOutputs(cfg, res.Files); err != nil {
			return err
		}
	}

	if cfg.Dry {
		return dryRun(cfg, res, streams, start)
	}

	job, err := newJob(cfg, pass)
	if err != nil {
		return err
	}

	proc := &processor{cfg: cfg, log: log, streams: streams, job: job}

	stats, err := proc.processFiles(res.Files)

	if cfg.Stats {
		stats.Scanned = res.Scanned
		stats.Excluded = res.Excluded()
		stats.Duration = time.Since(start)
		stats.print(streams.Err)
	}

	if err != nil {
		return fmt.Errorf("running %s: %w", cfg.Mode, err)
	}

	return nil
}

// newJob binds the per-file function of the configured mode.
func newJob(cfg *config.Config, pass []byte) (func(*logger.Logger, string) Result, error) {
	deriver, err := encryption.NewKeyDeriver(encryption.DefaultSalt())
	if err != nil {
		return nil, fmt.Errorf("creating key deriver: %w", err)
	}

	codec := encryption.NewCodec(deriver)
	passphrase := encryption.Passphrase(pass)

	switch cfg.Mode {
	case config.Scramble:
		s := &scrambler{cfg: cfg, codec: codec, pass: passphrase}

		return s.scrambleFile, nil
	case config.Unscramble:
		u := &unscrambler{cfg: cfg, codec: codec, pass: passphrase}

		return u.unscrambleFile, nil
	case config.Inspect:
		return inspectFile, nil
	default:
		return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
}

// resolveFiles expands directories with the include/exclude patterns.
// Unscramble and inspect only pick up zip archives inside directories unless told otherwise.
func resolveFiles(cfg *config.Config) (filter.Result, error) {
	sel := filter.Selection{
		Include: append([]string{}, cfg.Include...),
		Exclude: append([]string{}, cfg.Exclude...),
	}

	if cfg.IncludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.IncludeFrom)
		if err != nil {
			return filter.Result{}, fmt.Errorf("loading include patterns: %w", err)
		}

		sel.Include = append(sel.Include, patterns...)
	}

	if cfg.ExcludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.ExcludeFrom)
		if err != nil {
			return filter.Result{}, fmt.Errorf("loading exclude patterns: %w", err)
		}

		sel.Exclude = append(sel.Exclude, patterns...)
	}

	if cfg.Mode != config.Scramble && len(sel.Include) == 0 {
		sel.Include = []string{"*" + archiveExt}
	}

	return filter.Resolve(cfg.Files, sel) //nolint:wrapcheck
}

const archiveExt = ".zip"

// outputPath returns where the result for input is written.
func outputPath(cfg *config.Config, input string) string {
	dir := filepath.Dir(input)

	if cfg.Mode == config.Scramble {
		return filepath.Join(dir, fragment.Base(input)+archiveExt)
	}

	return filepath.Join(dir, fragment.Base(input)+cfg.Extension)
}

// checkOutputs rejects runs where an output would replace an input or another output.
func checkOutputs(cfg *config.Config, files []string) error {
	inputs := make(map[string]struct{}, len(files))
	for _, file := range files {
		inputs[filepath.Clean(file)] = struct{}{}
	}

	outputs := make(map[string]string, len(files))

	for _, file := range files {
		out := outputPath(cfg, file)

		if _, ok := inputs[out]; ok {
			return fmt.Errorf("%w: %q would overwrite input %q", ErrOutputConflict, file, out)
		}

		if other, ok := outputs[out]; ok {
			return fmt.Errorf("%w: %q and %q both write %q", ErrOutputConflict, other, file, out)
		}

		outputs[out] = file
	}

	return nil
}

// dryRun prints what would be processed without touching any file.
func dryRun(cfg *config.Config, res filter.Result, streams Streams, start time.Time) error {
	var stats Stats

	for _, file := range res.Files {
		stats.Processed++

		if info, err := os.Stat(file); err == nil {
			stats.BytesIn += info.Size()
		}

		if cfg.Quiet {
			continue
		}

		if cfg.Mode == config.Inspect {
			fmt.Fprintf(streams.Out, "Would inspect %q\n", file)
		} else {
			fmt.Fprintf(streams.Out, "Would %s %q -> %q\n", cfg.Mode, file, outputPath(cfg, file))
		}
	}

	if cfg.Stats {
		stats.Scanned = res.Scanned
		stats.Excluded = res.Excluded()
		stats.Duration = time.Since(start)
		stats.print(streams.Err)
	}

	return nil
}

// Stats summarizes a run.
type Stats struct {
	Scanned   int
	Excluded  int
	Processed int
	Errored   int
	BytesIn   int64
	BytesOut  int64
	Duration  time.Duration
}

func (s Stats) print(w io.Writer) {
	fmt.Fprintf(w, "\nStats\n")
	fmt.Fprintf(w, "  Scanned:   %d\n", s.Scanned)
	fmt.Fprintf(w, "  Excluded:  %d\n", s.Excluded)
	fmt.Fprintf(w, "  Processed: %d\n", s.Processed)
	fmt.Fprintf(w, "  Errors:    %d\n", s.Errored)
	//nolint:gosec // sizes are sums of file sizes
	fmt.Fprintf(w, "  Read:      %s\n", humanize.IBytes(uint64(max(0, s.BytesIn))))
	//nolint:gosec // sizes are sums of file sizes
	fmt.Fprintf(w, "  Written:   %s\n", humanize.IBytes(uint64(max(0, s.BytesOut))))
	fmt.Fprintf(w, "  Duration:  %s\n", s.Duration.Round(time.Millisecond))
}
