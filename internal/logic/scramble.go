package logic

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/idelchi/scrambler/internal/archive"
	"github.com/idelchi/scrambler/internal/config"
	"github.com/idelchi/scrambler/internal/encryption"
	"github.com/idelchi/scrambler/internal/fileutil"
	"github.com/idelchi/scrambler/internal/fragment"
	"github.com/idelchi/scrambler/internal/logger"
)

// sealExt names the optional seal entry, <base>.seal.
const sealExt = ".seal"

type scrambler struct {
	cfg   *config.Config
	codec *encryption.Codec
	pass  encryption.Passphrase
}

func (s *scrambler) scrambleFile(log *logger.Logger, input string) Result {
	out := outputPath(s.cfg, input)

	size, outSize, err := s.scramble(log, input, out)
	if err != nil {
		return Result{Error: err}
	}

	return Result{Output: out, InputSize: size, OutputSize: outSize}
}

// scramble locks input, splits the payload into fragments staged as
// <base><i>.txt and bundles them into the archive at out.
func (s *scrambler) scramble(log *logger.Logger, input, out string) (int64, int64, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, 0, fmt.Errorf("%w: %w", ErrInputNotFound, err)
		}

		return 0, 0, fmt.Errorf("reading input: %w", err)
	}

	payload, err := s.codec.Lock(data, s.pass, s.cfg.Rounds)
	if err != nil {
		return 0, 0, fmt.Errorf("locking: %w", err)
	}

	log.Debug().Int("rounds", s.cfg.Rounds).Int("payload", len(payload)).Msg("locked")

	set, err := fragment.Split(payload, s.cfg.Fragments)
	if err != nil {
		return 0, 0, fmt.Errorf("splitting: %w", err)
	}

	log.Debug().Ints("sizes", set.Sizes()).Msg("split")

	staging, err := fileutil.NewStaging("", "scrambler-*")
	if err != nil {
		return 0, 0, err //nolint:wrapcheck
	}

	defer func() {
		if err := staging.Cleanup(); err != nil {
			log.Warn().Err(err).Str("dir", staging.Dir()).Msg("staging cleanup failed")
		}
	}()

	base := fragment.Base(input)

	for i, part := range set {
		if err := staging.Put(fragment.Name(base, i), []byte(part)); err != nil {
			return 0, 0, err //nolint:wrapcheck
		}
	}

	if s.cfg.Seal {
		sealed, err := s.seal(data, base)
		if err != nil {
			return 0, 0, err
		}

		if err := staging.Put(base+sealExt, sealed); err != nil {
			return 0, 0, err //nolint:wrapcheck
		}

		log.Debug().Msg("sealed")
	}

	outSize, err := s.bundle(input, out, staging.Dir())
	if err != nil {
		return 0, 0, err
	}

	return int64(len(data)), outSize, nil
}

func (s *scrambler) seal(data []byte, label string) ([]byte, error) {
	km := s.codec.Derive(s.pass)
	defer km.Wipe()

	sealer, err := encryption.NewSealer(km)
	if err != nil {
		return nil, fmt.Errorf("creating sealer: %w", err)
	}

	sealed, err := sealer.Seal(data, label)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return sealed, nil
}

// bundle writes the staged fragments to out through a temporary file.
func (s *scrambler) bundle(input, out, dir string) (size int64, err error) {
	file, err := fileutil.CreateAtomic(input, out)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer file.Abort()

	if err := archive.BundleDir(file, dir); err != nil {
		return 0, fmt.Errorf("bundling fragments: %w", err)
	}

	size, err = file.Commit(s.cfg.PreserveTimestamps)
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}
