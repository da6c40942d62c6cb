package hangul

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestContainsHangul(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"Hello", false},
		{"123", false},
		{"안녕", true},
		{"안녕하세요", true},
		{"Hello 안녕", true},
		// Jamo symbols are outside the syllable block range.
		{"ㅅㅌㅂㅅ", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ContainsHangul(tc.input), "input %q", tc.input)
	}
}

func TestLeadingConsonant(t *testing.T) {
	cases := []struct {
		input rune
		want  rune
		ok    bool
	}{
		{'가', 'ㄱ', true},
		{'나', 'ㄴ', true},
		{'다', 'ㄷ', true},
		{'카', 'ㅋ', true},
		{'힣', 'ㅎ', true},
		{'A', 0, false},
		{'1', 0, false},
		{'ㄱ', 0, false}, // a jamo symbol, not a syllable
	}
	for _, tc := range cases {
		got, ok := LeadingConsonant(tc.input)
		assert.Equal(t, tc.ok, ok, "rune %q", tc.input)
		if tc.ok {
			assert.Equal(t, tc.want, got, "rune %q", tc.input)
		}
	}
}

func TestExtractInitials(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"안녕하세요", "ㅇㄴㅎㅅㅇ"},
		{"스타벅스", "ㅅㅌㅂㅅ"},
		{"Hello 안녕", "Hello ㅇㄴ"},
		{"123 가나다", "123 ㄱㄴㄷ"},
	}
	for _, tc := range cases {
		got := ExtractInitials(tc.input)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, utf8.RuneCountInString(tc.input), utf8.RuneCountInString(got),
			"rune length must be preserved for %q", tc.input)
	}
}

// An all-initials string is a fixed point of extraction: the jamo symbols
// sit outside the syllable block range and pass through unchanged.
func TestExtractInitialsIdempotent(t *testing.T) {
	for _, s := range []string{"ㅅㅌㅂㅅ", "ㄱㄴㄷ", "abc 123", "Hello ㅇㄴ"} {
		once := ExtractInitials(s)
		assert.Equal(t, once, ExtractInitials(once))
	}
}

func TestIsInitialPattern(t *testing.T) {
	assert.True(t, IsInitialPattern("ㅅㅌㅂㅅ"))
	assert.True(t, IsInitialPattern("ㄲ"))
	assert.False(t, IsInitialPattern(""))
	assert.False(t, IsInitialPattern("안녕"))
	assert.False(t, IsInitialPattern("ㅅㅌ벅ㅅ"))
	assert.False(t, IsInitialPattern("abc"))
	// Vowel jamo are not leading consonants.
	assert.False(t, IsInitialPattern("ㅏㅑ"))
}

func TestMatchesInitialPattern(t *testing.T) {
	cases := []struct {
		text  string
		query string
		want  bool
	}{
		{"스타벅스", "ㅅㅌㅂㅅ", true},
		{"스타벅스", "ㅅㅌ", true},
		{"스타벅스", "ㅂㅅ", true}, // substring in the middle
		{"스타벅스", "ㄱㄴㄷ", false},
		{"Hello", "ㄱㄴㄷ", false},
		// Containment is contiguous, not subsequence: ㅅ...ㅅ skipping ㅌㅂ fails.
		{"스타벅스", "ㅅㅅ", false},
		// A raw Hangul query is not an initials pattern.
		{"안녕하세요", "안녕", false},
		{"스타벅스", "", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MatchesInitialPattern(tc.text, tc.query),
			"text %q query %q", tc.text, tc.query)
	}
}
