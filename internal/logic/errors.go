package logic

import "errors"

var (
	// ErrInputNotFound is returned when an input path does not exist.
	ErrInputNotFound = errors.New("input not found")
	// ErrOutputConflict is returned when an output would overwrite an input or another output.
	ErrOutputConflict = errors.New("output conflict")
	// ErrUnexpectedEntry is returned for archives holding more than fragments and one seal.
	ErrUnexpectedEntry = errors.New("unexpected archive entry")
)
