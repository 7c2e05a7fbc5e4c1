package encryption

import (
	"encoding/base64"
	"fmt"
)

const (
	// MinRounds is the smallest accepted round count.
	MinRounds = 1
	// MaxRounds is the largest accepted round count. Output grows by roughly 8/3 per round.
	MaxRounds = 3
)

// Codec applies layered CBC rounds on top of a base64 encoding of raw bytes.
type Codec struct {
	deriver *KeyDeriver
}

// NewCodec creates a Codec that derives its key material with deriver.
func NewCodec(deriver *KeyDeriver) *Codec {
	return &Codec{deriver: deriver}
}

// ValidateRounds reports ErrMalformedCount for rounds outside [MinRounds, MaxRounds].
func ValidateRounds(rounds int) error {
	if rounds < MinRounds || rounds > MaxRounds {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrMalformedCount, rounds, MinRounds, MaxRounds)
	}

	return nil
}

// Lock base64-encodes data and encrypts the result rounds times with key material
// derived once from pass. The round count is not recorded in the output.
func (c *Codec) Lock(data []byte, pass Passphrase, rounds int) (string, error) {
	if err := ValidateRounds(rounds); err != nil {
		return "", err
	}

	km := c.deriver.Derive(pass)
	defer km.Wipe()

	payload := base64.StdEncoding.EncodeToString(data)

	for round := 0; round < rounds; round++ {
		var err error

		payload, err = EncryptRound(payload, km)
		if err != nil {
			return "", fmt.Errorf("encrypting round %d: %w", round+1, err)
		}
	}

	return payload, nil
}

// Unlock decrypts text rounds times and base64-decodes the result.
// It must be given the same passphrase and round count Lock was given.
func (c *Codec) Unlock(text string, pass Passphrase, rounds int) ([]byte, error) {
	if err := ValidateRounds(rounds); err != nil {
		return nil, err
	}

	km := c.deriver.Derive(pass)
	defer km.Wipe()

	payload := text

	for round := 0; round < rounds; round++ {
		var err error

		payload, err = DecryptRound(payload, km)
		if err != nil {
			return nil, fmt.Errorf("decrypting round %d: %w", round+1, err)
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}

	return data, nil
}

// Derive exposes the codec's key derivation for callers that need the same
// key material, such as a Sealer.
func (c *Codec) Derive(pass Passphrase) KeyMaterial {
	return c.deriver.Derive(pass)
}
