// Package filter evaluates structured filter sets against stored strings.
package filter

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/ziadkadry99/string-analyzer/internal/analyzer"
)

// ErrInvalidRange is returned when min_length is greater than max_length.
var ErrInvalidRange = errors.New("min_length cannot be greater than max_length")

// FilterSet is a sparse predicate over stored strings. A nil field is not
// applied. Encoding a FilterSet to JSON yields only the present fields.
type FilterSet struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// String returns a pointer to s.
func String(s string) *string { return &s }

// IsEmpty reports whether no field is set.
func (fs FilterSet) IsEmpty() bool {
	return fs.IsPalindrome == nil &&
		fs.MinLength == nil &&
		fs.MaxLength == nil &&
		fs.WordCount == nil &&
		fs.ContainsCharacter == nil
}

// Validate checks the set for contradictory bounds.
func (fs FilterSet) Validate() error {
	if fs.MinLength != nil && fs.MaxLength != nil && *fs.MinLength > *fs.MaxLength {
		return errors.WithHintf(ErrInvalidRange, "min_length=%d, max_length=%d", *fs.MinLength, *fs.MaxLength)
	}
	return nil
}

// Matches reports whether every present field matches the record.
func (fs FilterSet) Matches(rec analyzer.Record) bool {
	p := rec.Properties
	if fs.IsPalindrome != nil && p.IsPalindrome != *fs.IsPalindrome {
		return false
	}
	if fs.MinLength != nil && p.Length < *fs.MinLength {
		return false
	}
	if fs.MaxLength != nil && p.Length > *fs.MaxLength {
		return false
	}
	if fs.WordCount != nil && p.WordCount != *fs.WordCount {
		return false
	}
	if fs.ContainsCharacter != nil && !strings.Contains(rec.Value, *fs.ContainsCharacter) {
		return false
	}
	return true
}

// Apply validates fs and returns the records it matches, in input order.
// Validation happens before any record is examined.
func Apply(fs FilterSet, records []analyzer.Record) ([]analyzer.Record, error) {
	if err := fs.Validate(); err != nil {
		return nil, err
	}

	out := make([]analyzer.Record, 0, len(records))
	for _, rec := range records {
		if fs.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}
