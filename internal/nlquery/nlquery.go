// Package nlquery turns plain-English phrases such as "palindromic strings
// longer than 5 characters" into a filter.FilterSet.
//
// Interpretation is a fold over a fixed, ordered list of pattern rules. Each
// rule inspects the lower-cased query and returns the filter set, updated
// when its pattern matches. Rules are independent and accumulate; a later
// rule overwrites a field set by an earlier one unless it says otherwise.
package nlquery

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/ziadkadry99/string-analyzer/internal/filter"
)

// ErrUnparseable is returned when no rule matches the query.
var ErrUnparseable = errors.New("unable to parse natural language query")

// Rule is a single interpretation step.
type Rule struct {
	Name  string
	Apply func(q string, fs filter.FilterSet) filter.FilterSet
}

var (
	singleWordRe     = regexp.MustCompile(`\bsingle word\b|\bone word\b`)
	palindromeRe     = regexp.MustCompile(`palindromic|palindrome`)
	containsLetterRe = regexp.MustCompile(`contain(?:ing)? (?:the )?letter ([a-z])`)
	containsCharRe   = regexp.MustCompile(`contain(?:ing)? ([a-z])`)
	longerThanRe     = regexp.MustCompile(`longer than (\d+)`)
	shorterThanRe    = regexp.MustCompile(`shorter than (\d+)`)
	firstVowelRe     = regexp.MustCompile(`first vowel`)
	numericWordsRe   = regexp.MustCompile(`\b(\d+)\b (?:words|word)`)
)

// numberWord pairs a spelled-out number with its value.
type numberWord struct {
	value int
	re    *regexp.Regexp
}

// numberWords is checked in this order and the last match wins, regardless
// of where the words appear in the query.
var numberWords = func() []numberWord {
	words := []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}
	out := make([]numberWord, len(words))
	for i, w := range words {
		out[i] = numberWord{
			value: i + 1,
			re:    regexp.MustCompile(`\b` + w + ` (?:words|word)\b`),
		}
	}
	return out
}()

// rules is the interpretation order.
var rules = []Rule{
	{Name: "single_word", Apply: singleWord},
	{Name: "palindrome", Apply: palindrome},
	{Name: "contains_character", Apply: containsCharacter},
	{Name: "longer_than", Apply: longerThan},
	{Name: "shorter_than", Apply: shorterThan},
	{Name: "first_vowel", Apply: firstVowel},
	{Name: "numeric_word_count", Apply: numericWordCount},
	{Name: "spelled_word_count", Apply: spelledWordCount},
}

// Rules returns the rule names in the order they are applied.
func Rules() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}

// Interpret translates query into a filter set. It returns ErrUnparseable
// when no rule matches.
func Interpret(query string) (filter.FilterSet, error) {
	q := strings.ToLower(query)

	var fs filter.FilterSet
	for _, r := range rules {
		fs = r.Apply(q, fs)
	}

	if fs.IsEmpty() {
		return filter.FilterSet{}, errors.WithHint(ErrUnparseable,
			`try phrases like "single word", "palindromic", "containing the letter z", "longer than 10 characters"`)
	}
	return fs, nil
}

func singleWord(q string, fs filter.FilterSet) filter.FilterSet {
	if singleWordRe.MatchString(q) {
		fs.WordCount = filter.Int(1)
	}
	return fs
}

func palindrome(q string, fs filter.FilterSet) filter.FilterSet {
	if palindromeRe.MatchString(q) {
		fs.IsPalindrome = filter.Bool(true)
	}
	return fs
}

// containsCharacter prefers the explicit "letter X" phrasing over a bare
// "contain X".
func containsCharacter(q string, fs filter.FilterSet) filter.FilterSet {
	m := containsLetterRe.FindStringSubmatch(q)
	if m == nil {
		m = containsCharRe.FindStringSubmatch(q)
	}
	if m != nil {
		fs.ContainsCharacter = filter.String(m[1])
	}
	return fs
}

// longerThan is strict: "longer than N" means length >= N+1.
func longerThan(q string, fs filter.FilterSet) filter.FilterSet {
	n, ok := captureInt(longerThanRe, q)
	if ok && n < math.MaxInt {
		fs.MinLength = filter.Int(n + 1)
	}
	return fs
}

// shorterThan is strict: "shorter than N" means length <= N-1, floored at 0.
func shorterThan(q string, fs filter.FilterSet) filter.FilterSet {
	n, ok := captureInt(shorterThanRe, q)
	if ok {
		fs.MaxLength = filter.Int(max(n-1, 0))
	}
	return fs
}

// firstVowel maps "first vowel" to the letter a, but never replaces an
// explicitly requested character.
func firstVowel(q string, fs filter.FilterSet) filter.FilterSet {
	if fs.ContainsCharacter == nil && firstVowelRe.MatchString(q) {
		fs.ContainsCharacter = filter.String("a")
	}
	return fs
}

func numericWordCount(q string, fs filter.FilterSet) filter.FilterSet {
	n, ok := captureInt(numericWordsRe, q)
	if ok {
		fs.WordCount = filter.Int(n)
	}
	return fs
}

func spelledWordCount(q string, fs filter.FilterSet) filter.FilterSet {
	for _, nw := range numberWords {
		if nw.re.MatchString(q) {
			fs.WordCount = filter.Int(nw.value)
		}
	}
	return fs
}

// captureInt returns the first capture group of re in q as an int. Numbers
// that overflow int are treated as no match.
func captureInt(re *regexp.Regexp, q string) (int, bool) {
	m := re.FindStringSubmatch(q)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
