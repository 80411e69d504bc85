package nlquery

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/string-analyzer/internal/filter"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		query string
		want  filter.FilterSet
	}{
		{"single word strings", filter.FilterSet{WordCount: filter.Int(1)}},
		{"one word", filter.FilterSet{WordCount: filter.Int(1)}},
		{"palindromic strings", filter.FilterSet{IsPalindrome: filter.Bool(true)}},
		{"strings that are a palindrome", filter.FilterSet{IsPalindrome: filter.Bool(true)}},
		{"strings containing the letter z", filter.FilterSet{ContainsCharacter: filter.String("z")}},
		{"strings containing letter q", filter.FilterSet{ContainsCharacter: filter.String("q")}},
		{"strings longer than 10 characters", filter.FilterSet{MinLength: filter.Int(11)}},
		{"strings longer than 3", filter.FilterSet{MinLength: filter.Int(4)}},
		{"strings shorter than 5 characters", filter.FilterSet{MaxLength: filter.Int(4)}},
		{"strings shorter than 0 characters", filter.FilterSet{MaxLength: filter.Int(0)}},
		{"three words", filter.FilterSet{WordCount: filter.Int(3)}},
		{"strings with 4 words", filter.FilterSet{WordCount: filter.Int(4)}},
		{"first vowel", filter.FilterSet{ContainsCharacter: filter.String("a")}},
		{
			"single word palindromic strings",
			filter.FilterSet{WordCount: filter.Int(1), IsPalindrome: filter.Bool(true)},
		},
		{
			"palindromic strings longer than 2 and shorter than 20",
			filter.FilterSet{IsPalindrome: filter.Bool(true), MinLength: filter.Int(3), MaxLength: filter.Int(19)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := Interpret(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterpretCaseInsensitive(t *testing.T) {
	got, err := Interpret("PALINDROMIC Strings Containing The Letter Z")
	require.NoError(t, err)
	assert.Equal(t, filter.FilterSet{
		IsPalindrome:      filter.Bool(true),
		ContainsCharacter: filter.String("z"),
	}, got)
}

func TestInterpretUnparseable(t *testing.T) {
	for _, q := range []string{"gibberish xyz", "", "   ", "contains Z9"} {
		_, err := Interpret(q)
		require.Error(t, err, "query %q", q)
		assert.True(t, errors.Is(err, ErrUnparseable), "query %q", q)
	}
}

func TestInterpretNumericOverridesSingleWord(t *testing.T) {
	got, err := Interpret("single word strings with 2 words")
	require.NoError(t, err)
	assert.Equal(t, 2, *got.WordCount)
}

func TestInterpretSpelledOverridesNumeric(t *testing.T) {
	got, err := Interpret("5 words or three words")
	require.NoError(t, err)
	assert.Equal(t, 3, *got.WordCount)
}

func TestInterpretSpelledUsesListOrderNotTextOrder(t *testing.T) {
	// "two" comes after "five" in the text, but five is later in one..ten.
	got, err := Interpret("five words or two words")
	require.NoError(t, err)
	assert.Equal(t, 5, *got.WordCount)
}

func TestInterpretFirstVowelKeepsExplicitLetter(t *testing.T) {
	got, err := Interpret("strings containing the letter e and the first vowel")
	require.NoError(t, err)
	assert.Equal(t, "e", *got.ContainsCharacter)
}

func TestInterpretBareContainTakesFirstLetter(t *testing.T) {
	// Without "letter", the first letter after "contain" is taken, so the
	// vowel heuristic does not apply here.
	got, err := Interpret("palindromic strings that contain the first vowel")
	require.NoError(t, err)
	assert.Equal(t, "t", *got.ContainsCharacter)
	assert.True(t, *got.IsPalindrome)
}

func TestInterpretLetterPhrasingWins(t *testing.T) {
	got, err := Interpret("containing b, containing the letter c")
	require.NoError(t, err)
	assert.Equal(t, "c", *got.ContainsCharacter)
}

func TestInterpretOverflowIgnored(t *testing.T) {
	_, err := Interpret("longer than 99999999999999999999999 characters")
	assert.True(t, errors.Is(err, ErrUnparseable))
}

func TestInterpretContradictoryBoundsStillParses(t *testing.T) {
	// Range validation belongs to the filter engine.
	got, err := Interpret("longer than 10 and shorter than 5")
	require.NoError(t, err)
	assert.Equal(t, 11, *got.MinLength)
	assert.Equal(t, 4, *got.MaxLength)
	assert.True(t, errors.Is(got.Validate(), filter.ErrInvalidRange))
}

func TestRulesOrder(t *testing.T) {
	assert.Equal(t, []string{
		"single_word",
		"palindrome",
		"contains_character",
		"longer_than",
		"shorter_than",
		"first_vowel",
		"numeric_word_count",
		"spelled_word_count",
	}, Rules())
}
