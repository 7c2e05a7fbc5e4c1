package logic

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/idelchi/scrambler/internal/archive"
	"github.com/idelchi/scrambler/internal/config"
	"github.com/idelchi/scrambler/internal/encryption"
	"github.com/idelchi/scrambler/internal/fileutil"
	"github.com/idelchi/scrambler/internal/fragment"
	"github.com/idelchi/scrambler/internal/logger"
)

type unscrambler struct {
	cfg   *config.Config
	codec *encryption.Codec
	pass  encryption.Passphrase
}

func (u *unscrambler) unscrambleFile(log *logger.Logger, input string) Result {
	out := outputPath(u.cfg, input)

	inSize, outSize, err := u.unscramble(log, input, out)
	if err != nil {
		return Result{Error: err}
	}

	return Result{Output: out, InputSize: inSize, OutputSize: outSize}
}

// unscramble joins the fragments of the archive at input in index order,
// unlocks the payload and writes the original bytes to out.
func (u *unscrambler) unscramble(log *logger.Logger, input, out string) (int64, int64, error) {
	contents, err := readArchive(input)
	if err != nil {
		return 0, 0, err
	}

	log.Debug().
		Str("base", contents.base).
		Int("fragments", len(contents.fragments)).
		Bool("sealed", contents.seal != nil).
		Msg("listed archive")

	payload := fragment.Join(contents.fragments)

	data, err := u.codec.Unlock(payload, u.pass, u.cfg.Rounds)
	if err != nil {
		return 0, 0, fmt.Errorf("unlocking: %w", err)
	}

	switch {
	case contents.seal == nil:
		log.Debug().Msg("no seal, integrity not verified")
	case u.cfg.NoVerify:
		log.Warn().Msg("seal present but verification disabled")
	default:
		if err := u.verify(contents, data); err != nil {
			return 0, 0, err
		}

		log.Debug().Msg("seal verified")
	}

	file, err := fileutil.CreateAtomic(input, out)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer file.Abort()

	if _, err := file.Write(data); err != nil {
		return 0, 0, fmt.Errorf("writing output: %w", err)
	}

	outSize, err := file.Commit(u.cfg.PreserveTimestamps)
	if err != nil {
		return 0, 0, fmt.Errorf("finalizing output: %w", err)
	}

	return file.Source.Size(), outSize, nil
}

func (u *unscrambler) verify(contents archiveContents, data []byte) error {
	km := u.codec.Derive(u.pass)
	defer km.Wipe()

	sealer, err := encryption.NewSealer(km)
	if err != nil {
		return fmt.Errorf("creating sealer: %w", err)
	}

	return sealer.Verify(contents.seal, data, contents.base) //nolint:wrapcheck
}

// archiveContents are the entries of a scrambled archive, fragments in index order.
type archiveContents struct {
	base      string
	names     []string
	fragments fragment.Set
	seal      []byte
}

// readArchive lists the archive at path and orders its fragments.
// The base name comes from the seal entry when there is one, else from the archive name.
func readArchive(path string) (archiveContents, error) {
	entries, err := archive.List(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return archiveContents{}, fmt.Errorf("%w: %w", ErrInputNotFound, err)
		}

		return archiveContents{}, fmt.Errorf("listing archive: %w", err)
	}

	contents := archiveContents{base: fragment.Base(path)}

	var (
		names []string
		parts []string
	)

	for _, entry := range entries {
		if stem, ok := strings.CutSuffix(entry.Name, sealExt); ok {
			if contents.seal != nil {
				return archiveContents{}, fmt.Errorf("%w: second seal %q", ErrUnexpectedEntry, entry.Name)
			}

			contents.base = stem
			contents.seal = entry.Data

			continue
		}

		if !fragment.IsFragment(entry.Name) {
			return archiveContents{}, fmt.Errorf("%w: %q", ErrUnexpectedEntry, entry.Name)
		}

		names = append(names, entry.Name)
		parts = append(parts, string(entry.Data))
	}

	order, err := fragment.Order(names, contents.base)
	if err != nil {
		return archiveContents{}, fmt.Errorf("ordering fragments of %q: %w", filepath.Base(path), err)
	}

	contents.names = make([]string, len(order))
	contents.fragments = make(fragment.Set, len(order))

	for index, pos := range order {
		contents.names[index] = names[pos]
		contents.fragments[index] = parts[pos]
	}

	return contents, nil
}
