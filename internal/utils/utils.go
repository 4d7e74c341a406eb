package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Alphabet for ids and room codes. Ambiguous glyphs (0/O, 1/I/L) are
// excluded so codes survive being read aloud.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateID returns a random uppercase identifier of the given length.
func GenerateID(length int) string {
	var sb strings.Builder
	sb.Grow(length)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is
			// broken; fall back to a fixed glyph rather than panic.
			sb.WriteByte('X')
			continue
		}
		sb.WriteByte(codeAlphabet[n.Int64()])
	}
	return sb.String()
}

// GenerateRoomCode returns a short shareable room code.
func GenerateRoomCode() string {
	return GenerateID(4)
}

// SanitizeUsername trims surrounding whitespace and truncates to maxLen
// runes. Empty input becomes the fallback.
func SanitizeUsername(name, fallback string, maxLen int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return name
}
