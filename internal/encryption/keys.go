package encryption

import (
	"crypto/aes"
	"crypto/sha1" //nolint:gosec // PBKDF2-HMAC-SHA1 is required to reproduce existing archives
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the AES-256 key length pulled from the derivation stream.
	KeySize = 32
	// IVSize is the CBC initialization vector length pulled after the key.
	IVSize = aes.BlockSize
	// DefaultIterations is the PBKDF2 iteration count existing archives were derived with.
	DefaultIterations = 1000
)

// defaultSalt is the fixed 13 byte salt every scrambled archive was derived with.
//
//nolint:gochecknoglobals
var defaultSalt = [...]byte{0x49, 0x76, 0x61, 0x6e, 0x20, 0x4d, 0x65, 0x64, 0x76, 0x65, 0x64, 0x65, 0x76}

// DefaultSalt returns a copy of the fixed salt.
func DefaultSalt() []byte {
	salt := make([]byte, len(defaultSalt))
	copy(salt, defaultSalt[:])

	return salt
}

// Passphrase is the human supplied secret a KeyMaterial is derived from.
type Passphrase []byte

// KeyMaterial is the key and IV shared by every round of a single operation.
type KeyMaterial struct {
	Key []byte
	IV  []byte
}

// Wipe zeroes the key material.
func (k KeyMaterial) Wipe() {
	clear(k.Key)
	clear(k.IV)
}

// KeyDeriver turns a Passphrase into KeyMaterial with PBKDF2-HMAC-SHA1 and a fixed salt.
type KeyDeriver struct {
	salt       []byte
	iterations int
}

// DeriverOpt configures a KeyDeriver.
type DeriverOpt = func(*KeyDeriver) error

// WithIterations overrides DefaultIterations.
// Archives are only readable with the iteration count they were written with.
func WithIterations(iterations int) DeriverOpt {
	return func(d *KeyDeriver) error {
		if iterations < 1 {
			return errors.New("iterations must be at least 1")
		}

		d.iterations = iterations

		return nil
	}
}

// NewKeyDeriver creates a KeyDeriver bound to salt.
// The salt is copied, so later changes to the argument have no effect.
func NewKeyDeriver(salt []byte, opts ...DeriverOpt) (*KeyDeriver, error) {
	deriver := &KeyDeriver{
		salt:       append([]byte(nil), salt...),
		iterations: DefaultIterations,
	}

	for _, opt := range opts {
		if err := opt(deriver); err != nil {
			return nil, err
		}
	}

	return deriver, nil
}

// Derive stretches pass into KeyMaterial. The first KeySize bytes of the stream
// become the key and the following IVSize bytes the IV.
// Empty passphrases are accepted.
func (d *KeyDeriver) Derive(pass Passphrase) KeyMaterial {
	stream := pbkdf2.Key(pass, d.salt, d.iterations, KeySize+IVSize, sha1.New)

	return KeyMaterial{
		Key: stream[:KeySize],
		IV:  stream[KeySize:],
	}
}
