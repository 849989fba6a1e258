package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashIP returns the SHA-256 hex digest of a caller's network address.
// Unsalted on purpose: the same address always maps to the same hash so
// scans stay dedup-friendly, while the raw address is never persisted.
func HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}
