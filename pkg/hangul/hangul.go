/*
Package hangul provides Hangul script detection and initial-consonant
("chosung") extraction for search queries.

A precomposed Hangul syllable block (U+AC00..U+D7A3) decomposes
deterministically into leading consonant, vowel and optional trailing
consonant from its codepoint offset. Only the leading consonant matters
here: initial-consonant search lets users type "ㅅㅌㅂㅅ" to find "스타벅스".

All functions are pure and total; any input string yields a defined result.
*/
package hangul

import "strings"

const (
	syllableBase rune = 0xAC00 // '가'
	syllableLast rune = 0xD7A3 // '힣'

	// 21 medial vowels x 28 optional finals per leading consonant.
	syllablesPerInitial = 21 * 28
)

// initials is the fixed table of the 19 leading-consonant symbols,
// ordered by their index within the syllable block range.
var initials = [19]rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ',
	'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// initialSet reports whether a rune is one of the 19 symbols.
var initialSet = func() map[rune]bool {
	m := make(map[rune]bool, len(initials))
	for _, r := range initials {
		m[r] = true
	}
	return m
}()

// IsSyllable reports whether r is a precomposed Hangul syllable block.
func IsSyllable(r rune) bool {
	return r >= syllableBase && r <= syllableLast
}

// ContainsHangul reports whether text contains at least one Hangul
// syllable block. The empty string yields false.
func ContainsHangul(text string) bool {
	for _, r := range text {
		if IsSyllable(r) {
			return true
		}
	}
	return false
}

// LeadingConsonant returns the initial-consonant symbol for a Hangul
// syllable block. ok is false for any rune outside the syllable range,
// including the jamo symbols themselves.
func LeadingConsonant(r rune) (rune, bool) {
	if !IsSyllable(r) {
		return 0, false
	}
	idx := (r - syllableBase) / syllablesPerInitial
	return initials[idx], true
}

// ExtractInitials maps every Hangul syllable block in text to its leading
// consonant and passes all other runes through unchanged, preserving the
// rune length of the input. Applying it to a string that contains no
// syllable blocks returns the string unchanged.
func ExtractInitials(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if initial, ok := LeadingConsonant(r); ok {
			b.WriteRune(initial)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsInitialPattern reports whether s is non-empty and composed entirely of
// the 19 leading-consonant symbols. Raw Hangul syllables are not a pattern.
func IsInitialPattern(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !initialSet[r] {
			return false
		}
	}
	return true
}

// MatchesInitialPattern reports whether query, an initial-consonant
// pattern, occurs as a contiguous substring of the initials form of text.
// Queries that are not valid patterns never match.
func MatchesInitialPattern(text, query string) bool {
	if !IsInitialPattern(query) {
		return false
	}
	return strings.Contains(ExtractInitials(text), query)
}
