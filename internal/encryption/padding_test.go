package encryption

import (
	"crypto/aes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPKCS7(t *testing.T) {
	for _, size := range []int{0, 1, 15, 16, 17, 31, 32} {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i)
		}

		padded := pkcs7Pad(data, aes.BlockSize)
		assert.Zero(t, len(padded)%aes.BlockSize)
		assert.Greater(t, len(padded), size)

		unpadded, err := pkcs7Unpad(padded)
		require.NoError(t, err)
		assert.Equal(t, data, unpadded)
	}
}

func TestPKCS7Pad_DoesNotAlias(t *testing.T) {
	backing := make([]byte, 4, 64)
	padded := pkcs7Pad(backing[:2], aes.BlockSize)
	padded[2] = 0xaa

	assert.Equal(t, byte(0), backing[2])
}

func TestPKCS7Unpad_Invalid(t *testing.T) {
	tests := map[string][]byte{
		"zero padding byte": append(make([]byte, 15), 0),
		"padding too large": append(make([]byte, 15), 17),
		"inconsistent":      append(make([]byte, 14), 1, 2),
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := pkcs7Unpad(data)
			assert.ErrorIs(t, err, ErrInvalidPadding)
		})
	}

	_, err := pkcs7Unpad(nil)
	assert.ErrorIs(t, err, ErrEmptyData)
}
