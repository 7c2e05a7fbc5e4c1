package encryption

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// utf16LE is the text encoding each round encrypts: little-endian UTF-16 without a byte order mark.
//
//nolint:gochecknoglobals
var utf16LE encoding.Encoding = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// toUTF16 encodes text as UTF-16LE code units.
func toUTF16(text string) ([]byte, error) {
	out, err := utf16LE.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encoding UTF-16: %w", err)
	}

	return out, nil
}

// fromUTF16 decodes UTF-16LE code units. Unpaired surrogates and a dangling
// odd byte decode to U+FFFD rather than failing.
func fromUTF16(data []byte) (string, error) {
	out, err := utf16LE.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16: %w", err)
	}

	return string(out), nil
}
