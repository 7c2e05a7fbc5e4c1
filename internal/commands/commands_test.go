package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/idelchi/scrambler/internal/commands"
	"github.com/idelchi/scrambler/internal/config"
)

func execute(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()

	cfg := &config.Config{}

	root := commands.NewRootCommand(cfg, "test")
	root.SetArgs(args)

	return cfg, root.Execute()
}

func TestScrambleUnscramble(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.md")
	original := []byte("# notes\n\nthe quick brown fox\n")

	require.NoError(t, os.WriteFile(input, original, 0o600))

	cfg, err := execute(t, "scramble", "-q", "-p", "correct-key", "-r", "2", "-n", "4", "--seal", input)
	require.NoError(t, err)

	assert.Equal(t, config.Scramble, cfg.Mode)
	assert.Equal(t, 2, cfg.Rounds)
	assert.Equal(t, 4, cfg.Fragments)
	assert.True(t, cfg.Seal)
	assert.True(t, cfg.PassphraseSet)
	assert.FileExists(t, filepath.Join(dir, "notes.zip"))

	require.NoError(t, os.Remove(input))

	cfg, err = execute(t, "unscramble", "-q", "-p", "correct-key", "-r", "2", "-e", "md", dir)
	require.NoError(t, err)
	assert.Equal(t, ".md", cfg.Extension)

	restored, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestEnvironment(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.bin")

	require.NoError(t, os.WriteFile(input, []byte("data"), 0o600))

	t.Setenv("SCRAMBLER_PASSPHRASE", "from-env")
	t.Setenv("SCRAMBLER_PARALLEL", "1")

	cfg, err := execute(t, "scramble", "-q", input)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Passphrase)
	assert.Equal(t, 1, cfg.Parallel)
	assert.Equal(t, 1, cfg.Rounds)
	assert.Equal(t, 3, cfg.Fragments)

	t.Setenv("SCRAMBLER_ROUNDS", "5")

	_, err = execute(t, "unscramble", "-q", dir)
	require.ErrorIs(t, err, config.ErrMalformedCount)
}

func TestEmptyPassphraseFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.bin")

	require.NoError(t, os.WriteFile(input, []byte("data"), 0o600))

	t.Setenv("SCRAMBLER_PASSPHRASE", "")

	cfg, err := execute(t, "scramble", "-q", input)
	require.NoError(t, err)
	assert.True(t, cfg.PassphraseSet)
	assert.FileExists(t, filepath.Join(dir, "data.zip"))
}

func TestMalformedCounts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.bin")

	require.NoError(t, os.WriteFile(input, []byte("data"), 0o600))

	for _, args := range [][]string{
		{"scramble", "-p", "x", "-r", "0", input},
		{"scramble", "-p", "x", "-r", "4", input},
		{"scramble", "-p", "x", "-n", "0", input},
		{"scramble", "-p", "x", "-n", "11", input},
		{"unscramble", "-p", "x", "--rounds=-1", dir},
	} {
		_, err := execute(t, args...)
		require.ErrorIs(t, err, config.ErrMalformedCount, args)
	}

	assert.NoFileExists(t, filepath.Join(dir, "data.zip"))
}

func TestPassphraseSources(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.bin")
	passFile := filepath.Join(dir, "pass.txt")

	require.NoError(t, os.WriteFile(input, []byte("data"), 0o600))
	require.NoError(t, os.WriteFile(passFile, []byte("secret\n"), 0o600))

	_, err := execute(t, "scramble", "-p", "a", "-P", passFile, input)
	require.ErrorIs(t, err, config.ErrInvalid)

	_, err = execute(t, "scramble", "-q", "-P", passFile, input)
	require.NoError(t, err)

	require.NoError(t, os.Remove(input))

	_, err = execute(t, "unscramble", "-q", "-p", "secret", "-e", ".bin", filepath.Join(dir, "data.zip"))
	require.NoError(t, err)
	assert.FileExists(t, input)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		t.Skip("stdin is a terminal")
	}

	_, err = execute(t, "inspect", "-q", dir)
	require.NoError(t, err, "inspect needs no passphrase")

	_, err = execute(t, "unscramble", "-e", ".out", dir)
	require.ErrorIs(t, err, config.ErrNoPassphrase)
}

func TestScrambleRequiresPaths(t *testing.T) {
	_, err := execute(t, "scramble", "-p", "x")
	require.Error(t, err)
}
