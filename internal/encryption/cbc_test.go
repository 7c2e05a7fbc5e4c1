package encryption

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	katPayload = "aGVsbG8sIHNjcmFtYmxlcg=="
	katRound1  = "Zw0iGXH2QZIRR46WE51tfPCBZfGSSr7rI8g2ZdSLdwSE3qCzgHv2cjJxVdlttvJgfkKCh03FvDxPw0JBAJ1/+g=="
)

func testKeyMaterial(t *testing.T, pass string) KeyMaterial {
	t.Helper()

	deriver, err := NewKeyDeriver(DefaultSalt())
	require.NoError(t, err)

	return deriver.Derive(Passphrase(pass))
}

func TestEncryptRound_KnownAnswer(t *testing.T) {
	km := testKeyMaterial(t, "correct-key")

	got, err := EncryptRound(katPayload, km)
	require.NoError(t, err)
	assert.Equal(t, katRound1, got)

	plain, err := DecryptRound(got, km)
	require.NoError(t, err)
	assert.Equal(t, katPayload, plain)
}

func TestRound_RoundTrip(t *testing.T) {
	km := testKeyMaterial(t, "round trip")

	for _, text := range []string{"", "a", "0123456789abcde", "0123456789abcdef", "ünïcödé ✓", strings.Repeat("xyz", 100)} {
		encrypted, err := EncryptRound(text, km)
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(encrypted)
		require.NoError(t, err)
		assert.Zero(t, len(raw)%IVSize)

		decrypted, err := DecryptRound(encrypted, km)
		require.NoError(t, err)
		assert.Equal(t, text, decrypted)
	}
}

func TestDecryptRound_SpaceNormalization(t *testing.T) {
	km := testKeyMaterial(t, "correct-key")

	mangled := strings.ReplaceAll(katRound1, "+", " ")
	require.NotEqual(t, katRound1, mangled)

	plain, err := DecryptRound(mangled, km)
	require.NoError(t, err)
	assert.Equal(t, katPayload, plain)
}

func TestDecryptRound_Malformed(t *testing.T) {
	km := testKeyMaterial(t, "correct-key")

	_, err := DecryptRound("!!! not base64 !!!", km)
	require.Error(t, err)

	_, err = DecryptRound("", km)
	require.ErrorIs(t, err, ErrInvalidBlockSize)

	_, err = DecryptRound(base64.StdEncoding.EncodeToString([]byte("short")), km)
	require.ErrorIs(t, err, ErrInvalidBlockSize)
}

func TestDecryptRound_WrongKey(t *testing.T) {
	right := testKeyMaterial(t, "correct-key")
	wrong := testKeyMaterial(t, "wrong-key")

	encrypted, err := EncryptRound(katPayload, right)
	require.NoError(t, err)

	plain, err := DecryptRound(encrypted, wrong)
	if err == nil {
		assert.NotEqual(t, katPayload, plain)
	}
}

func TestEncryptRound_BadKeyMaterial(t *testing.T) {
	_, err := EncryptRound("text", KeyMaterial{Key: make([]byte, 7), IV: make([]byte, IVSize)})
	require.Error(t, err)

	_, err = EncryptRound("text", KeyMaterial{Key: make([]byte, KeySize), IV: make([]byte, 3)})
	require.Error(t, err)
}
