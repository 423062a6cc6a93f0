package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// newToken returns an opaque 64-character hex token. 64 bytes of randomness
// are digested through SHA-256, so the effective entropy is the full 256-bit
// digest width and two calls cannot plausibly collide.
func newToken() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:]), nil
}
