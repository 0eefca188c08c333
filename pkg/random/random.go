package random

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// NewShortCode generates a URL-safe short code of the given length from
// cryptographic randomness. Every 3 source bytes yield 4 output characters,
// so an 8-character code carries 48 bits of entropy. Codes are public
// identifiers; a predictable counter would leak creation order and make
// enumeration trivial.
func NewShortCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("short code length must be positive, got %d", length)
	}

	// Round up so the encoded string is always long enough to truncate.
	numBytes := (length*3 + 3) / 4
	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf)[:length], nil
}
