package encryption

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"google.golang.org/protobuf/proto"

	"github.com/tink-crypto/tink-go/v2/daead"
	"github.com/tink-crypto/tink-go/v2/insecurecleartextkeyset"
	"github.com/tink-crypto/tink-go/v2/keyset"
	aes_sivpb "github.com/tink-crypto/tink-go/v2/proto/aes_siv_go_proto"
	tinkpb "github.com/tink-crypto/tink-go/v2/proto/tink_go_proto"
	"github.com/tink-crypto/tink-go/v2/tink"
)

const (
	// AesSivKeySize is the key size the seal's AES-SIV primitive requires.
	AesSivKeySize = 64

	sealInfo       = "scrambler/seal"
	sealKeyTypeURL = "type.googleapis.com/google.crypto.tink.AesSivKey"
)

// Sealer produces and checks an authenticated digest of the original file.
// It is an optional extension: archives scrambled without a seal are not verified.
type Sealer struct {
	daead tink.DeterministicAEAD
}

// NewSealer derives an AES-SIV key from km and builds the deterministic AEAD primitive.
// The derived key lives in a single-key cleartext keyset held in memory only.
func NewSealer(km KeyMaterial) (*Sealer, error) {
	sivKey, err := deriveSealKey(km)
	if err != nil {
		return nil, err
	}
	defer clear(sivKey)

	serialized, err := proto.Marshal(&aes_sivpb.AesSivKey{KeyValue: sivKey})
	if err != nil {
		return nil, fmt.Errorf("serializing seal key: %w", err)
	}

	handle, err := insecurecleartextkeyset.Read(&keyset.MemReaderWriter{Keyset: sealKeyset(serialized)})
	if err != nil {
		return nil, fmt.Errorf("loading seal keyset: %w", err)
	}

	primitive, err := daead.New(handle)
	if err != nil {
		return nil, fmt.Errorf("creating seal primitive: %w", err)
	}

	return &Sealer{daead: primitive}, nil
}

// Seal returns the encrypted SHA-256 digest of original, bound to label.
func (s *Sealer) Seal(original []byte, label string) ([]byte, error) {
	digest := sha256.Sum256(original)

	sealed, err := s.daead.EncryptDeterministically(digest[:], []byte(label))
	if err != nil {
		return nil, fmt.Errorf("sealing digest: %w", err)
	}

	return sealed, nil
}

// Verify checks that sealed was produced by Seal for recovered and label.
// A wrong passphrase, a renamed archive and tampered data all yield ErrIntegrity.
func (s *Sealer) Verify(sealed, recovered []byte, label string) error {
	want, err := s.daead.DecryptDeterministically(sealed, []byte(label))
	if err != nil {
		return fmt.Errorf("%w: seal does not open with this passphrase", ErrIntegrity)
	}

	got := sha256.Sum256(recovered)
	if subtle.ConstantTimeCompare(want, got[:]) != 1 {
		return fmt.Errorf("%w: recovered data does not match seal", ErrIntegrity)
	}

	return nil
}

// deriveSealKey expands the codec's key material into an independent AES-SIV key.
func deriveSealKey(km KeyMaterial) ([]byte, error) {
	secret := make([]byte, 0, len(km.Key)+len(km.IV))
	secret = append(secret, km.Key...)
	secret = append(secret, km.IV...)

	defer clear(secret)

	reader := hkdf.New(sha256.New, secret, nil, []byte(sealInfo))
	derived := make([]byte, AesSivKeySize)

	if _, err := io.ReadFull(reader, derived); err != nil {
		return nil, fmt.Errorf("deriving seal key: %w", err)
	}

	return derived, nil
}

// sealKeyset wraps a serialized AES-SIV key as the only, primary, raw-output key of a keyset.
func sealKeyset(serializedKey []byte) *tinkpb.Keyset {
	const sealKeyID = 0x5ea1

	return &tinkpb.Keyset{
		PrimaryKeyId: sealKeyID,
		Key: []*tinkpb.Keyset_Key{{
			KeyId:            sealKeyID,
			Status:           tinkpb.KeyStatusType_ENABLED,
			OutputPrefixType: tinkpb.OutputPrefixType_RAW,
			KeyData: &tinkpb.KeyData{
				TypeUrl:         sealKeyTypeURL,
				KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
				Value:           serializedKey,
			},
		}},
	}
}
