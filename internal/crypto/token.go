package crypto

import (
	"crypto/rand"
	"encoding/base64"
)

// DefaultTokenBytes is the entropy of a session token. 16 bytes = 128 bits,
// encoded to 22 URL-safe characters.
const DefaultTokenBytes = 16

// GenerateToken returns a cryptographically random URL-safe bearer token.
// Uniqueness among stored sessions is enforced by the token's unique index;
// this function only guarantees unguessability.
func GenerateToken(byteLength int) (string, error) {
	if byteLength < DefaultTokenBytes {
		byteLength = DefaultTokenBytes
	}

	bytes := make([]byte, byteLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
