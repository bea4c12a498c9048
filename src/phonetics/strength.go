package phonetics

import (
	"math"
	"strings"
)

const (
	maxAPIPoints       = 70
	baseAPIPoints      = 40
	apiPointsPerK      = 30
	suffixPoints       = 40
	lastVowelPoints    = 15
	prevVowelPoints    = 5
	consonantEndPoints = 10
)

// ScoreRhyme rates how strongly candidate rhymes with original on a 0-100 scale, rounded to a
// multiple of 5. externalScore is the relevance reported by the upstream word source, already
// damped for its relation type; it contributes at most 70 points. The rest comes from spelling: the
// shared ending, matching final vowel groups and matching final consonants.
func ScoreRhyme(original, candidate string, externalScore float64) int {
	orig := []rune(strings.ToLower(original))
	cand := []rune(strings.ToLower(candidate))
	if string(orig) == string(cand) {
		return 100
	}

	total := apiPoints(externalScore) +
		float64(suffixScore(orig, cand)) +
		float64(vowelScore(string(orig), string(cand))) +
		float64(consonantScore(string(orig), string(cand)))

	total = math.Max(0, math.Min(100, total))
	return int(roundHalfUp(total/5)) * 5
}

func apiPoints(score float64) float64 {
	if math.IsNaN(score) {
		score = 0
	}
	return math.Min(maxAPIPoints, roundHalfUp(score/1000*apiPointsPerK)+baseAPIPoints)
}

// suffixScore is zero when either word is empty.
func suffixScore(orig, cand []rune) int {
	shortest := len(orig)
	if len(cand) < shortest {
		shortest = len(cand)
	}
	if shortest == 0 {
		return 0
	}
	common := commonSuffixLen(orig, cand)
	return int(roundHalfUp(float64(common) / float64(shortest) * suffixPoints))
}

func vowelScore(orig, cand string) int {
	og, cg := vowelGroups(orig), vowelGroups(cand)
	if len(og) == 0 || len(cg) == 0 {
		return 0
	}
	score := 0
	if og[len(og)-1] == cg[len(cg)-1] {
		score += lastVowelPoints
	}
	if len(og) > 1 && len(cg) > 1 && og[len(og)-2] == cg[len(cg)-2] {
		score += prevVowelPoints
	}
	return score
}

func consonantScore(orig, cand string) int {
	oc, cc := trailingConsonants(orig), trailingConsonants(cand)
	if oc == "" || cc == "" || !strings.EqualFold(oc, cc) {
		return 0
	}
	return consonantEndPoints
}

// roundHalfUp rounds halves toward positive infinity.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// StrengthLabel names the band a rhyme strength falls in.
func StrengthLabel(strength int) string {
	switch {
	case strength >= 80:
		return "Strong"
	case strength >= 60:
		return "Good"
	case strength <= 40:
		return "Weak"
	}
	return "Medium"
}
