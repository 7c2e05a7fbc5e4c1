package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
	"strings"
)

// EncryptRound runs one AES-256-CBC pass over text and returns the ciphertext as base64.
// The plaintext bytes are the UTF-16LE code units of text, PKCS#7 padded.
func EncryptRound(text string, km KeyMaterial) (string, error) {
	block, err := aes.NewCipher(km.Key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	if len(km.IV) != block.BlockSize() {
		return "", fmt.Errorf("creating cipher: IV must be %d bytes, got %d", block.BlockSize(), len(km.IV))
	}

	plain, err := toUTF16(text)
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad(plain, aes.BlockSize)
	ciphertext := make([]byte, len(padded))

	cipher.NewCBCEncrypter(block, km.IV).CryptBlocks(ciphertext, padded)

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptRound reverses EncryptRound.
//
// Spaces are read back as '+' first, since some transports turn '+' into a space.
// The only detectable failures are malformed base64, misaligned ciphertext and bad
// padding; a wrong key that happens to unpad cleanly decodes to garbage.
func DecryptRound(text string, km KeyMaterial) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(text, " ", "+"))
	if err != nil {
		return "", fmt.Errorf("decoding base64: %w", err)
	}

	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", ErrInvalidBlockSize
	}

	block, err := aes.NewCipher(km.Key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	if len(km.IV) != block.BlockSize() {
		return "", fmt.Errorf("creating cipher: IV must be %d bytes, got %d", block.BlockSize(), len(km.IV))
	}

	plain := make([]byte, len(ciphertext))

	cipher.NewCBCDecrypter(block, km.IV).CryptBlocks(plain, ciphertext)

	unpadded, err := pkcs7Unpad(plain)
	if err != nil {
		return "", fmt.Errorf("removing padding: %w", err)
	}

	return fromUTF16(unpadded)
}
