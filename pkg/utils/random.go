package utils

import (
	"math/rand"
)

// URL-safe alphabet, 64 symbols. At 8 characters the space is 64^8
// (~2.8e14), so random collisions are vanishingly rare; the store's unique
// index is the safety net.
const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// ShortcodeLength is fixed; shortcodes are immutable once assigned.
const ShortcodeLength = 8

// GenerateShortcode generates a random URL-safe string of fixed length.
// The package-level rand source is locked internally, so this is safe to
// call from concurrent create requests.
func GenerateShortcode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
