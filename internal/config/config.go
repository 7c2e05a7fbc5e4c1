// Package config holds the validated runtime configuration of scrambler.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMalformedCount is returned when the round or fragment count is out of range.
	ErrMalformedCount = errors.New("malformed count")
	// ErrInvalid is returned for every other validation failure.
	ErrInvalid = errors.New("invalid configuration")
)

// Mode is the operation a command runs.
type Mode string

const (
	// Scramble turns files into fragment archives.
	Scramble Mode = "scramble"
	// Unscramble restores files from fragment archives.
	Unscramble Mode = "unscramble"
	// Inspect lists the fragments of archives.
	Inspect Mode = "inspect"
)

// Config is populated from flags and SCRAMBLER_* environment variables.
type Config struct {
	// Mode is set by the command, not by a flag.
	Mode Mode `mapstructure:"-" validate:"oneof=scramble unscramble inspect"`

	// Passphrase sources
	Passphrase     string `mapstructure:"passphrase"      label:"--passphrase"`
	PassphraseFile string `mapstructure:"passphrase-file" label:"--passphrase-file" validate:"exclusive=Passphrase"`

	// PassphraseSet records an explicitly given, possibly empty, passphrase.
	PassphraseSet bool `mapstructure:"-"`

	// Codec
	Rounds    int    `mapstructure:"rounds"    label:"--rounds"    validate:"required_unless=Mode inspect,omitempty,min=1,max=3"`
	Fragments int    `mapstructure:"fragments" label:"--fragments" validate:"required_if=Mode scramble,omitempty,min=1,max=10"`
	Seal      bool   `mapstructure:"seal"`
	NoVerify  bool   `mapstructure:"no-verify"`
	Extension string `mapstructure:"extension"`

	// File selection
	Include     []string `mapstructure:"include"`
	Exclude     []string `mapstructure:"exclude"`
	IncludeFrom string   `mapstructure:"include-from" label:"--include-from" validate:"omitempty,file"`
	ExcludeFrom string   `mapstructure:"exclude-from" label:"--exclude-from" validate:"omitempty,file"`

	// Processing
	Parallel           int  `mapstructure:"parallel"            label:"--parallel" validate:"min=1"`
	Delete             bool `mapstructure:"delete"`
	Dry                bool `mapstructure:"dry"`
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`
	Stats              bool `mapstructure:"stats"`

	// Output
	Quiet   bool `mapstructure:"quiet"`
	Verbose bool `mapstructure:"verbose"`
	LogJSON bool `mapstructure:"log-json"`

	// Positional arguments
	Files []string `mapstructure:"-" label:"paths" validate:"min=1"`
}

// Validate checks the configuration against its struct tags and normalizes it.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := registerValidations(validate); err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		return describe(err)
	}

	if c.Extension != "" && !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}

	return nil
}

// NeedsPassphrase reports whether the mode derives key material.
func (c *Config) NeedsPassphrase() bool {
	return c.Mode != Inspect
}

// describe converts validator errors into sentinel-wrapped, readable errors.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	errs := make([]error, 0, len(verrs))

	for _, fe := range verrs {
		sentinel := ErrInvalid

		switch fe.StructField() {
		case "Rounds", "Fragments":
			sentinel = ErrMalformedCount
		}

		errs = append(errs, fmt.Errorf("%w: %s", sentinel, message(fe)))
	}

	return errors.Join(errs...)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "required_if", "required_unless":
		return fmt.Sprintf("%s is required", fe.Field())
	case "exclusive":
		return fmt.Sprintf("%s is mutually exclusive with %s", fe.Field(), fe.Param())
	case "file":
		return fmt.Sprintf("%s must point to an existing file, got %q", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed the %q check", fe.Field(), fe.Tag())
	}
}
