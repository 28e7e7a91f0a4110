package hashes

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a deterministic digest of a post's content, used for
// change detection only, never for security.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
