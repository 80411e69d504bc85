package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	// Known SHA-256 of "hello".
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", Hash("hello"))
	assert.Equal(t, Hash("hello"), Hash("hello"))
	assert.NotEqual(t, Hash("hello"), Hash("Hello"))
}

func TestIsPalindrome(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"racecar", true},
		{"Racecar", true},
		{"race car", false},
		{"", true},
		{"a", true},
		{"abBA", true},
		{"abc", false},
		{"été", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPalindrome(tt.input), "IsPalindrome(%q)", tt.input)
	}
}

func TestCompute(t *testing.T) {
	p := Compute("hello world")

	assert.Equal(t, 11, p.Length)
	assert.False(t, p.IsPalindrome)
	assert.Equal(t, 8, p.UniqueCharacters)
	assert.Equal(t, 2, p.WordCount)
	assert.Equal(t, Hash("hello world"), p.SHA256Hash)
	assert.Equal(t, 3, p.CharacterFrequencyMap["l"])
	assert.Equal(t, 2, p.CharacterFrequencyMap["o"])
	assert.Equal(t, 1, p.CharacterFrequencyMap[" "])
}

func TestComputeCaseSensitiveCounts(t *testing.T) {
	p := Compute("Aa")

	assert.Equal(t, 2, p.UniqueCharacters)
	assert.Equal(t, 1, p.CharacterFrequencyMap["A"])
	assert.Equal(t, 1, p.CharacterFrequencyMap["a"])
	assert.True(t, p.IsPalindrome)
}

func TestComputeWordCountWhitespaceRuns(t *testing.T) {
	assert.Equal(t, 0, Compute("").WordCount)
	assert.Equal(t, 0, Compute("   ").WordCount)
	assert.Equal(t, 3, Compute("  one\ttwo\n\nthree  ").WordCount)
}

func TestComputeCountsRunes(t *testing.T) {
	p := Compute("héllo")
	assert.Equal(t, 5, p.Length)
	assert.Equal(t, 1, p.CharacterFrequencyMap["é"])
}

func TestComputeDeterministic(t *testing.T) {
	for _, s := range []string{"", "a", "A man a plan", "racecar", "日本語 テキスト"} {
		assert.Equal(t, Compute(s), Compute(s), "Compute(%q)", s)
	}
}

func TestNewRecord(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	rec := NewRecord("level", now)

	require.Equal(t, Hash("level"), rec.ID)
	assert.Equal(t, rec.ID, rec.Properties.SHA256Hash)
	assert.Equal(t, "level", rec.Value)
	assert.True(t, rec.Properties.IsPalindrome)
	assert.Equal(t, time.UTC, rec.CreatedAt.Location())
	assert.True(t, rec.CreatedAt.Equal(now))
}
