package phonetics

import (
	"strings"
)

type Mark uint8

const (
	Unstressed Mark = iota
	Primary
)

const (
	primarySymbol    = 'ˈ'
	unstressedSymbol = '-'
)

// StressPattern holds one Mark per syllable.
type StressPattern []Mark

// String renders the pattern using 'ˈ' for stressed and '-' for unstressed syllables, e.g. "ˈ--".
func (p StressPattern) String() string {
	var sb strings.Builder
	for _, m := range p {
		if m == Primary {
			sb.WriteRune(primarySymbol)
		} else {
			sb.WriteRune(unstressedSymbol)
		}
	}
	return sb.String()
}

// Format renders the pattern for display, e.g. "STR-un-un".
func (p StressPattern) Format() string {
	marks := make([]string, len(p))
	for i, m := range p {
		if m == Primary {
			marks[i] = "STR"
		} else {
			marks[i] = "un"
		}
	}
	return strings.Join(marks, "-")
}

// ParseStressPattern reads a pattern rendered by String. Any rune other than 'ˈ' counts as
// unstressed.
func ParseStressPattern(s string) StressPattern {
	var p StressPattern
	for _, r := range s {
		if r == primarySymbol {
			p = append(p, Primary)
		} else {
			p = append(p, Unstressed)
		}
	}
	return p
}

// Compatible reports whether two patterns agree on their final syllables, comparing at most the
// last two.
func Compatible(a, b StressPattern) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n > 2 {
		n = 2
	}
	return a[len(a)-n:].String() == b[len(b)-n:].String()
}

// Estimate is the stress and syllable annotation for a single word.
type Estimate struct {
	Syllables int
	Pattern   StressPattern
	Breakdown []string
}

// EstimateStress guesses the stress pattern and syllable breakdown of word from its spelling.
// knownSyllables is used when positive; otherwise the count is inferred from vowel groups.
func EstimateStress(word string, knownSyllables int) Estimate {
	syllables := knownSyllables
	if syllables <= 0 {
		syllables = InferSyllables(word)
	}
	return Estimate{
		Syllables: syllables,
		Pattern:   stressPattern(strings.ToLower(word), syllables),
		Breakdown: SplitSyllables(word, syllables),
	}
}

// stressPattern applies the stress rules in priority order; the first one that matches wins.
func stressPattern(lower string, syllables int) StressPattern {
	if syllables == 1 {
		return stressedAt(1, 0)
	}
	for prefix, mark := range prefixStress {
		if mark == Primary && strings.HasPrefix(lower, prefix) {
			return stressedAt(syllables, 0)
		}
	}
	for suffix, mark := range suffixStress {
		if mark == Primary && strings.HasSuffix(lower, suffix) {
			return stressedAt(syllables, syllables-1)
		}
	}
	if syllables > 2 {
		for _, suffix := range penultimateSuffixes {
			if strings.HasSuffix(lower, suffix) {
				return stressedAt(syllables, syllables-2)
			}
		}
	}
	switch syllables {
	case 2, 3:
		return stressedAt(syllables, 0)
	}
	if patterns, ok := canonicalPatterns[syllables]; ok && len(patterns) > 0 {
		return ParseStressPattern(patterns[0])
	}
	return stressedAt(syllables, 0)
}

// stressedAt builds a pattern of n syllables with only syllable idx stressed.
func stressedAt(n, idx int) StressPattern {
	p := make(StressPattern, n)
	p[idx] = Primary
	return p
}
