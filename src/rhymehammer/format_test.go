package rhymehammer

import (
	"strings"
	"testing"

	"github.com/kalexmills/rhyme-hammer/src/lines"
	"github.com/kalexmills/rhyme-hammer/src/rhymehammer/db"
	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

var catLookup = Lookup{
	Word: "cat",
	Results: map[Category][]Result{
		Rhyme: {
			{Word: "hat", Syllables: 1, Stress: "ˈ", Breakdown: []string{"hat"}, Strength: intPtr(100)},
			{Word: "combat", Syllables: 2, Stress: "ˈ-", Breakdown: []string{"com", "bat"}, Strength: intPtr(50)},
			{Word: "bat", Syllables: 1, Stress: "ˈ", Breakdown: []string{"bat"}, Strength: intPtr(90)},
		},
		Related: {
			{Word: "feline", Syllables: 2, Stress: "ˈ-", Breakdown: []string{"fe", "line"}},
		},
	},
}

func TestFormatLookup(t *testing.T) {
	tests := []struct {
		name       string
		flags      db.ConfigFlag
		maxResults int
		expected   string
	}{
		{"plain", 0, 10, "**Rhymes for cat**\n> 1 syllable: hat, bat\n> 2 syllables: combat\n**Related Words for cat**\n> 2 syllables: feline"},
		{"limited", 0, 2, "**Rhymes for cat**\n> 1 syllable: hat\n> 2 syllables: combat\n**Related Words for cat**\n> 2 syllables: feline"},
		{"strength", db.ConfigShowStrength, 1, "**Rhymes for cat**\n> 1 syllable: hat (Strong 100%)\n**Related Words for cat**\n> 2 syllables: feline"},
		{"stress", db.ConfigShowStress, 2, "**Rhymes for cat**\n> 1 syllable: hat (`ˈ`)\n> 2 syllables: com·bat (`ˈ-`)\n**Related Words for cat**\n> 2 syllables: fe·line (`ˈ-`)"},
		{"both", db.ConfigShowStress | db.ConfigShowStrength, 2, "**Rhymes for cat**\n> 1 syllable: hat (`ˈ`, Strong 100%)\n> 2 syllables: com·bat (`ˈ-`, Medium 50%)\n**Related Words for cat**\n> 2 syllables: fe·line (`ˈ-`)"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, FormatLookup(catLookup, test.flags, test.maxResults))
		})
	}
}

func TestFormatLookup_Empty(t *testing.T) {
	assert.Equal(t, "I couldn't find anything for **xyzzy**.", FormatLookup(Lookup{Word: "xyzzy"}, 0, 10))
}

func TestFormatLookup_Truncates(t *testing.T) {
	var results []Result
	for i := 0; i < 500; i++ {
		results = append(results, Result{Word: "abracadabra", Syllables: 5})
	}
	out := FormatLookup(Lookup{Word: "cadabra", Results: map[Category][]Result{Rhyme: results}}, 0, 0)
	assert.Equal(t, maxMessageLen, len([]rune(out)))
	assert.True(t, strings.HasSuffix(out, "…"))
}

func TestFormatWordOfDay(t *testing.T) {
	out := FormatWordOfDay(db.WordOfDay{
		Date:         "2026-10-19",
		Word:         "jubilant",
		Definition:   "Feeling or expressing great joy.",
		Example:      "a jubilant crowd",
		PartOfSpeech: "adjective",
		Syllables:    3,
	})
	assert.True(t, strings.HasPrefix(out, "**Word of the Day: jubilant** _adjective_\n"))
	assert.Contains(t, out, "\nFeeling or expressing great joy.\n> a jubilant crowd")
}

func TestFormatHistory(t *testing.T) {
	assert.Equal(t, "You haven't looked up any words yet.", FormatHistory(nil))
	assert.Equal(t, "Your recent words: moon, cat", FormatHistory([]db.SearchEntry{{Word: "moon"}, {Word: "cat"}}))
}

func TestFormatUsage(t *testing.T) {
	stats := lines.Stats{Daily: lines.Window{Count: 3, Limit: 500}, Hourly: lines.Window{Count: 1, Limit: 100}}
	assert.Equal(t, "Line generation usage: 3/500 today, 1/100 this hour.", FormatUsage(stats))
}

func TestFormatLines(t *testing.T) {
	assert.Equal(t, "> one\n> two", FormatLines([]string{"one", "two"}))
	assert.Equal(t, "I couldn't come up with anything this time.", FormatLines(nil))
}
