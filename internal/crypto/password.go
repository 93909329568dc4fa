package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

var (
	complexityRe = regexp.MustCompile(`^[a-zA-Z0-9]{8,}$`)
	digestRe     = regexp.MustCompile(`^[0-9a-f]{64}$`)
)

// SaltedHash derives the stored password digest: the plaintext bytes are
// concatenated with the hex SHA-256 of the salt source (the username) and
// the result is hashed again. Deterministic, so login can recompute the
// digest and look the user up by it.
func SaltedHash(password, saltSource string) string {
	salt := sha256.Sum256([]byte(saltSource))
	salted := append([]byte(password), []byte(hex.EncodeToString(salt[:]))...)
	digest := sha256.Sum256(salted)
	return hex.EncodeToString(digest[:])
}

// IsDigest reports whether s already looks like a SaltedHash output. A value
// that is already a digest must never be hashed a second time.
func IsDigest(s string) bool {
	return digestRe.MatchString(s)
}

// CheckComplexity gates plaintext passwords at account creation: at least 8
// characters, letters and digits only. It is never applied to digests.
func CheckComplexity(password string) bool {
	return complexityRe.MatchString(password)
}
