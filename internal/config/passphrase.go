package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNoPassphrase is returned when no passphrase source is available.
var ErrNoPassphrase = errors.New("no passphrase given: use --passphrase, --passphrase-file, SCRAMBLER_PASSPHRASE or a terminal")

// ErrPassphraseMismatch is returned when the confirmation prompt differs from the first entry.
var ErrPassphraseMismatch = errors.New("passphrases do not match")

// Prompt reads one secret after showing label.
type Prompt func(label string) ([]byte, error)

// TerminalPrompt returns a Prompt reading from in without echo, writing labels
// to out. It returns nil when in is not a terminal.
func TerminalPrompt(in *os.File, out io.Writer) Prompt {
	fd := int(in.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return nil
	}

	return func(label string) ([]byte, error) {
		fmt.Fprint(out, label)

		secret, err := term.ReadPassword(fd)

		fmt.Fprintln(out)

		if err != nil {
			return nil, fmt.Errorf("reading passphrase: %w", err)
		}

		return secret, nil
	}
}

// ResolvePassphrase picks the passphrase from, in order, the explicit value,
// the passphrase file and prompt. Scrambling asks twice when prompting.
// An explicitly given empty passphrase is accepted.
func (c *Config) ResolvePassphrase(prompt Prompt) ([]byte, error) {
	switch {
	case c.PassphraseSet || c.Passphrase != "":
		return []byte(c.Passphrase), nil
	case c.PassphraseFile != "":
		data, err := os.ReadFile(c.PassphraseFile)
		if err != nil {
			return nil, fmt.Errorf("reading passphrase file: %w", err)
		}

		return trimNewline(data), nil
	case prompt != nil:
		return c.promptPassphrase(prompt)
	default:
		return nil, ErrNoPassphrase
	}
}

func (c *Config) promptPassphrase(prompt Prompt) ([]byte, error) {
	secret, err := prompt("Passphrase: ")
	if err != nil {
		return nil, err
	}

	if c.Mode != Scramble {
		return secret, nil
	}

	confirm, err := prompt("Confirm passphrase: ")
	if err != nil {
		return nil, err
	}

	defer clear(confirm)

	if !bytes.Equal(secret, confirm) {
		clear(secret)

		return nil, ErrPassphraseMismatch
	}

	return secret, nil
}

// trimNewline drops one trailing "\n" or "\r\n".
func trimNewline(data []byte) []byte {
	data = bytes.TrimSuffix(data, []byte("\n"))

	return bytes.TrimSuffix(data, []byte("\r"))
}
