package wordofday

import (
	"time"
)

// Words are uncommon words with rich meanings, picked for poets and songwriters.
var Words = []string{
	"ephemeral", "serendipity", "mellifluous", "resplendent", "luminous",
	"ineffable", "sonder", "petrichor", "solitude", "eternity",
	"nostalgia", "pristine", "eloquent", "lustrous", "melancholy",
	"tranquil", "zenith", "aurora", "halcyon", "ethereal",
	"effervescent", "nebulous", "sublime", "serene", "reverie",
	"sonorous", "aplomb", "felicity", "loquacious", "pensive",
	"labyrinth", "cascade", "gossamer", "efflorescent", "incandescent",
	"evanescent", "resonance", "epiphany", "quintessence", "synchronicity",
	"jubilant", "ebullient", "elysian", "paradigm", "phenomenon",
	"whimsical", "quixotic", "beguile", "rhapsody", "illustrious",
}

// WordForDate picks the word for a calendar date, so every caller sees the same word on the same
// day.
func WordForDate(date time.Time) string {
	y, m, d := date.Date()
	return Words[(d*int(m)*y)%len(Words)]
}

// DateKey formats date as the YYYY-MM-DD cache key.
func DateKey(date time.Time) string {
	return date.Format("2006-01-02")
}
