package rhymehammer

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"github.com/kalexmills/rhyme-hammer/src/datamuse"
	"github.com/kalexmills/rhyme-hammer/src/phonetics"
	"golang.org/x/sync/errgroup"
)

var ErrEmptyWord = errors.New("expected a word to look up")

type Category uint8

const (
	Rhyme Category = iota
	NearRhyme
	SoundAlike
	Related
)

// Categories lists every category in display order.
var Categories = []Category{Rhyme, NearRhyme, SoundAlike, Related}

type categoryInfo struct {
	relation datamuse.Relation
	// damping scales the upstream score before it is blended into the rhyme strength.
	damping float64
	scored  bool
	title   string
	key     string
}

var categoryTable = map[Category]categoryInfo{
	Rhyme:      {datamuse.Rhymes, 1.0, true, "Rhymes", "rhymes"},
	NearRhyme:  {datamuse.NearRhymes, 0.9, true, "Near Rhymes", "nearRhymes"},
	SoundAlike: {datamuse.SoundsLike, 0.8, true, "Sounds Like", "soundAlikes"},
	Related:    {datamuse.MeansLike, 0, false, "Related Words", "related"},
}

func (c Category) Relation() datamuse.Relation { return categoryTable[c].relation }

func (c Category) Damping() float64 { return categoryTable[c].damping }

// Scored reports whether results in this category get a rhyme strength.
func (c Category) Scored() bool { return categoryTable[c].scored }

func (c Category) String() string { return categoryTable[c].title }

// Key is the category's name in JSON responses and metric labels.
func (c Category) Key() string { return categoryTable[c].key }

// Result is a candidate word annotated with its stress and, for scored categories, its rhyme
// strength.
type Result struct {
	Word      string   `json:"word"`
	Score     float64  `json:"score"`
	Syllables int      `json:"numSyllables"`
	Stress    string   `json:"stressPattern"`
	Breakdown []string `json:"syllableBreakdown"`
	Strength  *int     `json:"rhymeStrength,omitempty"`
}

// Annotate attaches stress estimates to every candidate and, when the category is scored, a rhyme
// strength against word using the category's damped upstream score.
func Annotate(word string, category Category, candidates []datamuse.Word) []Result {
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		est := phonetics.EstimateStress(c.Word, c.NumSyllables)
		r := Result{
			Word:      c.Word,
			Score:     c.Score,
			Syllables: est.Syllables,
			Stress:    est.Pattern.String(),
			Breakdown: est.Breakdown,
		}
		if category.Scored() {
			strength := phonetics.ScoreRhyme(word, c.Word, c.Score*category.Damping())
			r.Strength = &strength
			rhymeStrength.WithLabelValues(category.Key()).Observe(float64(strength))
		}
		results = append(results, r)
	}
	return results
}

// WordSource fetches related words from the upstream word-relations service.
type WordSource interface {
	Words(ctx context.Context, rel datamuse.Relation, word string) ([]datamuse.Word, error)
}

type Finder struct {
	source WordSource
}

func NewFinder(source WordSource) *Finder {
	return &Finder{source: source}
}

// Lookup holds the annotated results for every category of a single query word.
type Lookup struct {
	Word    string
	Results map[Category][]Result
}

// All returns the results of every category, in display order.
func (l Lookup) All() []Result {
	var all []Result
	for _, c := range Categories {
		all = append(all, l.Results[c]...)
	}
	return all
}

// Total counts results across categories.
func (l Lookup) Total() int {
	n := 0
	for _, rs := range l.Results {
		n += len(rs)
	}
	return n
}

// Filter keeps only results with the given syllable count; syllables <= 0 keeps everything.
func (l Lookup) Filter(syllables int) Lookup {
	if syllables <= 0 {
		return l
	}
	filtered := Lookup{Word: l.Word, Results: make(map[Category][]Result, len(l.Results))}
	for c, rs := range l.Results {
		filtered.Results[c] = FilterBySyllables(rs, syllables)
	}
	return filtered
}

// Lookup queries every category for word concurrently. A category whose query fails is logged and
// left empty so the others are still shown.
func (f *Finder) Lookup(ctx context.Context, word string) (Lookup, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return Lookup{}, ErrEmptyWord
	}

	results := make([][]Result, len(Categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range Categories {
		i, c := i, c
		g.Go(func() error {
			lookups.WithLabelValues(c.Key()).Inc()
			words, err := f.source.Words(gctx, c.Relation(), word)
			if err != nil {
				lookupErrors.WithLabelValues(c.Key()).Inc()
				log.Printf("could not fetch %s for %q, %v", c, word, err)
				return nil
			}
			results[i] = Annotate(word, c, words)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Lookup{}, err
	}
	if err := ctx.Err(); err != nil {
		return Lookup{}, err
	}

	l := Lookup{Word: word, Results: make(map[Category][]Result, len(Categories))}
	for i, c := range Categories {
		l.Results[c] = results[i]
	}
	return l, nil
}

func FilterBySyllables(results []Result, syllables int) []Result {
	var filtered []Result
	for _, r := range results {
		if r.Syllables == syllables {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// GroupBySyllables buckets results by syllable count and returns the counts in ascending order.
func GroupBySyllables(results []Result) (map[int][]Result, []int) {
	groups := make(map[int][]Result)
	for _, r := range results {
		groups[r.Syllables] = append(groups[r.Syllables], r)
	}
	counts := make([]int, 0, len(groups))
	for n := range groups {
		counts = append(counts, n)
	}
	sort.Ints(counts)
	return groups, counts
}

// SyllableCounts returns the distinct syllable counts present in results, ascending.
func SyllableCounts(results []Result) []int {
	_, counts := GroupBySyllables(results)
	return counts
}
