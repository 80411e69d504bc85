package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"
)

// Hash returns the hex-encoded SHA-256 digest of the string's bytes.
// It is the primary key and deduplication key for stored strings.
func Hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Compute derives the full property set for s. It is deterministic and has
// no side effects.
func Compute(s string) Properties {
	freq := make(map[string]int)
	for _, r := range s {
		freq[string(r)]++
	}

	return Properties{
		Length:                utf8.RuneCountInString(s),
		IsPalindrome:          IsPalindrome(s),
		UniqueCharacters:      len(freq),
		WordCount:             len(strings.Fields(s)),
		SHA256Hash:            Hash(s),
		CharacterFrequencyMap: freq,
	}
}

// IsPalindrome reports whether the lower-cased string reads the same
// backwards, rune by rune. Whitespace and punctuation are significant.
func IsPalindrome(s string) bool {
	runes := []rune(strings.ToLower(s))
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return false
		}
	}
	return true
}

// NewRecord builds the record for value as it would be stored at now.
func NewRecord(value string, now time.Time) Record {
	props := Compute(value)
	return Record{
		ID:         props.SHA256Hash,
		Value:      value,
		Properties: props,
		CreatedAt:  now.UTC(),
	}
}
