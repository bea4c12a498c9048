package rhymehammer

import (
	"fmt"
	"strings"

	"github.com/kalexmills/rhyme-hammer/src/lines"
	"github.com/kalexmills/rhyme-hammer/src/phonetics"
	"github.com/kalexmills/rhyme-hammer/src/rhymehammer/db"
)

// maxMessageLen is Discord's limit on message content.
const maxMessageLen = 2000

// FormatLookup renders up to maxResults words per category, grouped by syllable count. flags
// decide whether rhyme strengths and stress patterns are shown.
func FormatLookup(l Lookup, flags db.ConfigFlag, maxResults int) string {
	var sb strings.Builder
	if l.Total() == 0 {
		fmt.Fprintf(&sb, "I couldn't find anything for **%s**.", l.Word)
		return sb.String()
	}
	for _, c := range Categories {
		results := l.Results[c]
		if len(results) == 0 {
			continue
		}
		if maxResults > 0 && len(results) > maxResults {
			results = results[:maxResults]
		}
		fmt.Fprintf(&sb, "**%s for %s**\n", c, l.Word)
		groups, counts := GroupBySyllables(results)
		for _, n := range counts {
			words := make([]string, 0, len(groups[n]))
			for _, r := range groups[n] {
				words = append(words, formatResult(r, flags))
			}
			fmt.Fprintf(&sb, "> %s: %s\n", pluralSyllables(n), strings.Join(words, ", "))
		}
	}
	return truncate(strings.TrimSuffix(sb.String(), "\n"), maxMessageLen)
}

func formatResult(r Result, flags db.ConfigFlag) string {
	out := r.Word
	if flags.ShowStress() && len(r.Breakdown) > 1 {
		out = strings.Join(r.Breakdown, "·")
	}
	var notes []string
	if flags.ShowStress() {
		notes = append(notes, "`"+r.Stress+"`")
	}
	if flags.ShowStrength() && r.Strength != nil {
		notes = append(notes, fmt.Sprintf("%s %d%%", phonetics.StrengthLabel(*r.Strength), *r.Strength))
	}
	if len(notes) == 0 {
		return out
	}
	return out + " (" + strings.Join(notes, ", ") + ")"
}

func pluralSyllables(n int) string {
	if n == 1 {
		return "1 syllable"
	}
	return fmt.Sprintf("%d syllables", n)
}

func FormatWordOfDay(w db.WordOfDay) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Word of the Day: %s**", w.Word)
	if w.PartOfSpeech != "" {
		fmt.Fprintf(&sb, " _%s_", w.PartOfSpeech)
	}
	if w.Syllables > 0 {
		est := phonetics.EstimateStress(w.Word, w.Syllables)
		fmt.Fprintf(&sb, "\n%s `%s` (%s)", strings.Join(est.Breakdown, "·"), est.Pattern, est.Pattern.Format())
	}
	fmt.Fprintf(&sb, "\n%s", w.Definition)
	if w.Example != "" {
		fmt.Fprintf(&sb, "\n%s", quote(w.Example))
	}
	return sb.String()
}

func FormatHistory(entries []db.SearchEntry) string {
	if len(entries) == 0 {
		return "You haven't looked up any words yet."
	}
	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.Word
	}
	return "Your recent words: " + strings.Join(words, ", ")
}

func FormatUsage(stats lines.Stats) string {
	return fmt.Sprintf("Line generation usage: %d/%d today, %d/%d this hour.",
		stats.Daily.Count, stats.Daily.Limit, stats.Hourly.Count, stats.Hourly.Limit)
}

func FormatLines(generated []string) string {
	if len(generated) == 0 {
		return "I couldn't come up with anything this time."
	}
	return quote(strings.Join(generated, "\n"))
}

func quote(str string) string {
	return "> " + strings.ReplaceAll(str, "\n", "\n> ")
}

// truncate cuts s to at most n runes, ending in an ellipsis when anything was dropped.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
