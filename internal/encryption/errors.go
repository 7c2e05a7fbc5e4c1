package encryption

import "errors"

var (
	// ErrEmptyData is returned when attempting to process empty input data.
	ErrEmptyData = errors.New("empty data")
	// ErrInvalidPadding is returned when PKCS7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrInvalidBlockSize is returned when encrypted data length is not aligned with AES block size.
	ErrInvalidBlockSize = errors.New("ciphertext is not a multiple of block size")
	// ErrMalformedCount is returned when a round count falls outside [MinRounds, MaxRounds].
	ErrMalformedCount = errors.New("malformed round count")
	// ErrIntegrity is returned when a seal does not match the recovered data.
	ErrIntegrity = errors.New("integrity check failed")
)
