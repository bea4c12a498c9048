package phonetics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreRhyme(t *testing.T) {
	tests := []struct {
		original  string
		candidate string
		score     float64
		expected  int
	}{
		{"cat", "hat", 900, 100},
		{"cat", "dog", 0, 40},
		{"Cat", "cAT", 0, 100},
		{"cat", "bat", 0, 90},
		{"light", "night", 0, 95},
		{"moon", "spoon", 500, 100},
		{"time", "rhyme", 1000, 100},
		{"orange", "door", 100, 45},
		{"table", "cable", 0, 90},
		{"", "cat", 0, 40},
		{"cat", "dog", -10000, 0},
		{"cat", "dog", math.NaN(), 40},
		{"cat", "dog", math.Inf(1), 70},
		{"cat", "dog", math.Inf(-1), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ScoreRhyme(tt.original, tt.candidate, tt.score), "%s/%s", tt.original, tt.candidate)
	}
}

func TestScoreRhyme_Bounds(t *testing.T) {
	scores := []float64{-5000, -1, 0, 1, 250, 999, 1000, 2500, 100000}
	for _, a := range sampleWords {
		for _, b := range sampleWords {
			for _, s := range scores {
				got := ScoreRhyme(a, b, s)
				assert.GreaterOrEqual(t, got, 0)
				assert.LessOrEqual(t, got, 100)
				assert.Zero(t, got%5, "%s/%s/%v", a, b, s)
				if a == b {
					assert.Equal(t, 100, got)
				}
			}
		}
	}
}

func TestSuffixScore_Monotone(t *testing.T) {
	orig := []rune("starlight")
	candidates := []string{"abcdefghi", "abcdefghT", "abcdefgHT", "abcdefGHT", "abcdeIGHT", "abcdLIGHT", "abcRLIGHT", "abARLIGHT"}
	prev := -1
	for _, c := range candidates {
		got := suffixScore([]rune("STARLIGHT"), []rune(c))
		assert.GreaterOrEqual(t, got, prev, c)
		prev = got
	}
	assert.Equal(t, 0, suffixScore(orig, nil))
	assert.Equal(t, 40, suffixScore(orig, []rune("light")))
}

func TestStrengthLabel(t *testing.T) {
	assert.Equal(t, "Strong", StrengthLabel(100))
	assert.Equal(t, "Strong", StrengthLabel(80))
	assert.Equal(t, "Good", StrengthLabel(75))
	assert.Equal(t, "Good", StrengthLabel(60))
	assert.Equal(t, "Medium", StrengthLabel(45))
	assert.Equal(t, "Weak", StrengthLabel(40))
	assert.Equal(t, "Weak", StrengthLabel(0))
}
