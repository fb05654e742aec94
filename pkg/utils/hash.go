package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the hex SHA-256 digest of a plain password.
// Stored credentials are plain digests; the scheme is part of the wire
// contract and must stay compatible with existing records.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPassword compares a plain password against a stored digest.
func CheckPassword(plain, digest string) bool {
	h := HashPassword(plain)
	return subtle.ConstantTimeCompare([]byte(h), []byte(digest)) == 1
}
