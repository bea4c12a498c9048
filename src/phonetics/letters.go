package phonetics

import (
	"strings"
	"unicode"
)

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// isConsonant only accepts the ASCII consonant letters; digits, punctuation and accented letters
// end a trailing consonant run.
func isConsonant(r rune) bool {
	r = unicode.ToLower(r)
	return 'a' <= r && r <= 'z' && !isVowel(r)
}

// vowelGroups returns the maximal runs of vowel letters in word, in order.
func vowelGroups(word string) []string {
	var (
		groups []string
		curr   strings.Builder
	)
	for _, r := range word {
		if isVowel(r) {
			curr.WriteRune(r)
			continue
		}
		if curr.Len() > 0 {
			groups = append(groups, curr.String())
			curr.Reset()
		}
	}
	if curr.Len() > 0 {
		groups = append(groups, curr.String())
	}
	return groups
}

// trailingConsonants returns the run of consonant letters at the very end of word, or "" if word
// ends in anything else.
func trailingConsonants(word string) string {
	runes := []rune(word)
	i := len(runes)
	for i > 0 && isConsonant(runes[i-1]) {
		i--
	}
	return string(runes[i:])
}

// commonSuffixLen counts the runes shared at the end of a and b.
func commonSuffixLen(a, b []rune) int {
	n := 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}
