// Command stress-check measures the spelling-based syllable and stress estimates against the CMU
// pronouncing dictionary.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/kalexmills/rhyme-hammer/src/phonetics"
)

func main() {
	filename := flag.String("dict", "data/cmudict-0.7b.txt", "path to the CMU pronouncing dictionary")
	verbose := flag.Bool("v", false, "print every word whose syllable count is wrong")
	flag.Parse()

	entries, err := readFile(*filename)
	if err != nil {
		fmt.Printf("encountered error: %v\n", err)
		os.Exit(1)
	}

	var syllablesOK, stressOK int
	for _, entry := range entries {
		if _, ok := entry.syllableCounts[phonetics.InferSyllables(entry.word)]; ok {
			syllablesOK++
		} else if *verbose {
			fmt.Printf("%s %d %v\n", entry.word, phonetics.InferSyllables(entry.word), entry.counts())
		}
		for pattern := range entry.patterns {
			n := len([]rune(pattern))
			if phonetics.EstimateStress(entry.word, n).Pattern.String() == pattern {
				stressOK++
				break
			}
		}
	}
	total := float64(len(entries))
	fmt.Printf("words: %d\nsyllables correct: %d (%.1f%%)\nstress correct given syllables: %d (%.1f%%)\n",
		len(entries), syllablesOK, 100*float64(syllablesOK)/total, stressOK, 100*float64(stressOK)/total)
}

type Entry struct {
	word           string
	syllableCounts map[int]struct{}
	// patterns holds every pronunciation's stress pattern, rendered like phonetics.StressPattern.
	patterns map[string]struct{}
}

func (e Entry) counts() []int {
	var result []int
	for c := range e.syllableCounts {
		result = append(result, c)
	}
	sort.Ints(result)
	return result
}

func readFile(filename string) ([]*Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	byWord := make(map[string]*Entry)
	s := bufio.NewScanner(f)
	for s.Scan() {
		word, pattern, ok := parseLine(s.Bytes())
		if !ok {
			continue
		}
		e, ok := byWord[word]
		if !ok {
			e = &Entry{word: word, syllableCounts: make(map[int]struct{}), patterns: make(map[string]struct{})}
			byWord[word] = e
		}
		e.syllableCounts[len(pattern)] = struct{}{}
		e.patterns[pattern.String()] = struct{}{}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	result := make([]*Entry, 0, len(byWord))
	for _, e := range byWord {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].word < result[j].word
	})
	return result, nil
}

func parseLine(line []byte) (string, phonetics.StressPattern, bool) {
	if bytes.HasPrefix(line, []byte(";;;")) { // comment
		return "", nil, false
	}
	tokens := bytes.Split(line, []byte("  "))
	if len(tokens) != 2 {
		return "", nil, false
	}
	word := string(tokens[0])
	if word[len(word)-1] == ')' { // remove extra pronounciation count
		word = word[:len(word)-3]
	}
	if strings.ContainsAny(word, "'.-_0123456789") {
		return "", nil, false
	}
	pattern := stressPattern(tokens[1])
	if len(pattern) == 0 {
		return "", nil, false
	}
	return strings.ToLower(word), pattern, true
}

// stressPattern reads the stress digit on each vowel phoneme. Secondary stress counts as unstressed.
func stressPattern(phonemes []byte) phonetics.StressPattern {
	var pattern phonetics.StressPattern
	for _, phoneme := range bytes.Fields(phonemes) {
		if len(phoneme) < 3 {
			continue
		}
		if _, ok := Vowels[string(phoneme[:2])]; !ok {
			continue
		}
		if phoneme[2] == '1' {
			pattern = append(pattern, phonetics.Primary)
		} else {
			pattern = append(pattern, phonetics.Unstressed)
		}
	}
	return pattern
}

var Vowels map[string]struct{}

func init() {
	Vowels = make(map[string]struct{})
	vowels := []string{"AA", "AE", "AH", "AO", "AW", "AY", "EH", "ER", "EY", "IH", "IY", "OW", "OY", "UH", "UW"}
	for _, vowel := range vowels {
		Vowels[vowel] = struct{}{}
	}
}
