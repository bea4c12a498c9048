// Command rhyme-score reads word,candidate[,score] rows as CSV and writes each pair's rhyme strength
// and the candidate's stress estimate as CSV on stdout.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/kalexmills/rhyme-hammer/src/phonetics"
)

func main() {
	in := io.Reader(os.Stdin)
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		FatalError(err)
		defer f.Close()
		in = f
	}

	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	w := csv.NewWriter(os.Stdout)
	FatalError(w.Write([]string{"word", "candidate", "strength", "label", "syllables", "stress", "breakdown"}))
	for {
		records, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal(err)
		}
		if len(records) < 2 {
			log.Println("skipping row without a candidate,", records)
			continue
		}
		word, candidate := strings.TrimSpace(records[0]), strings.TrimSpace(records[1])
		score := 0.0
		if len(records) > 2 {
			score, err = strconv.ParseFloat(strings.TrimSpace(records[2]), 64)
			if err != nil {
				log.Println("could not parse score, using 0,", records[2])
				score = 0
			}
		}
		strength := phonetics.ScoreRhyme(word, candidate, score)
		est := phonetics.EstimateStress(candidate, 0)
		FatalError(w.Write([]string{
			word,
			candidate,
			strconv.Itoa(strength),
			phonetics.StrengthLabel(strength),
			strconv.Itoa(est.Syllables),
			est.Pattern.Format(),
			strings.Join(est.Breakdown, "-"),
		}))
	}
	w.Flush()
	FatalError(w.Error())
}

func FatalError(err error) {
	if err != nil {
		fmt.Printf("encountered error: %v\n", err)
		os.Exit(1)
	}
}
