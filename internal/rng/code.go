package rng

import (
	"fmt"
	"strings"
)

// Challenge codes are short strings players read to each other, so the
// alphabet drops 0/O, 1/I and L.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// CodeLength is the fixed length of a challenge code.
const CodeLength = 6

// SeedFromCode maps a challenge code to a seed with an order-sensitive
// weighted hash: same code, same seed, everywhere. Unknown characters are
// folded in by byte value so a typo still yields a usable (if different) seed.
func SeedFromCode(code string) int64 {
	code = strings.ToUpper(strings.TrimSpace(code))
	var seed int64
	for i, r := range code {
		v := int64(strings.IndexRune(codeAlphabet, r))
		if v < 0 {
			v = int64(r % 31)
		}
		seed = seed*31 + v*int64(i+1)
	}
	return seed
}

// GenerateCode draws a fresh challenge code from src.
func GenerateCode(src *Source) string {
	b := make([]byte, CodeLength)
	for i := range b {
		b[i] = codeAlphabet[src.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// ValidateCode checks length and alphabet membership.
func ValidateCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != CodeLength {
		return fmt.Errorf("challenge code must be %d characters", CodeLength)
	}
	for _, r := range code {
		if !strings.ContainsRune(codeAlphabet, r) {
			return fmt.Errorf("challenge code contains invalid character %q", r)
		}
	}
	return nil
}
