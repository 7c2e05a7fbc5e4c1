package logic

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/scrambler/internal/config"
	"github.com/idelchi/scrambler/internal/logger"
)

// errFailed is returned by a worker whose file failed; the error itself travels in the Result.
var errFailed = errors.New("file failed")

// processor runs job over many files with a bounded number of workers.
// Every file is an independent operation; a failure does not stop the others.
type processor struct {
	cfg     *config.Config
	log     *logger.Logger
	streams Streams
	job     func(log *logger.Logger, file string) Result
}

// processFiles runs the job over files and prints every result as it arrives.
//
//nolint:cyclop
func (p *processor) processFiles(files []string) (Stats, error) {
	var stats Stats

	results := make(chan Result, len(files))

	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range results {
			if result.Error != nil {
				stats.Errored++

				p.log.Error().Err(result.Error).Str("file", result.Input).Msg("processing failed")

				continue
			}

			stats.Processed++
			stats.BytesIn += result.InputSize
			stats.BytesOut += result.OutputSize

			p.print(result)

			if p.cfg.Delete && p.cfg.Mode != config.Inspect {
				p.remove(result.Input)
			}
		}
	}()

	for _, file := range files {
		file := file
		group.Go(func() error {
			log := p.log.ForOperation(string(p.cfg.Mode), file)

			result := p.job(log, file)
			result.Input = file

			results <- result

			if result.Error != nil {
				return errFailed
			}

			return nil
		})
	}

	err := group.Wait()

	close(results)

	<-done // Wait for printer to finish

	if err != nil {
		return stats, fmt.Errorf("%d of %d files failed", stats.Errored, len(files))
	}

	return stats, nil
}

func (p *processor) print(result Result) {
	if p.cfg.Quiet {
		return
	}

	if result.Report != "" {
		fmt.Fprint(p.streams.Out, result.Report)

		return
	}

	verb := "Scrambled"
	if p.cfg.Mode == config.Unscramble {
		verb = "Unscrambled"
	}

	fmt.Fprintf(p.streams.Out, "%s %q -> %q\n", verb, result.Input, result.Output)
}

func (p *processor) remove(path string) {
	if err := os.Remove(path); err != nil {
		p.log.Error().Err(err).Str("file", path).Msg("deleting input failed")

		return
	}

	if !p.cfg.Quiet {
		fmt.Fprintf(p.streams.Out, "Deleted %q\n", path)
	}
}
