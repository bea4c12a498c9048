package db

import (
	"context"

	"github.com/jonbodner/proteus"
)

// WordOfDay is a cached word-of-the-day entry keyed by its YYYY-MM-DD date.
type WordOfDay struct {
	Date         string `prof:"date" json:"date"`
	Word         string `prof:"word" json:"word"`
	Definition   string `prof:"definition" json:"definition"`
	Example      string `prof:"example" json:"example,omitempty"`
	PartOfSpeech string `prof:"part_of_speech" json:"partOfSpeech,omitempty"`
	Syllables    int    `prof:"syllables" json:"syllables,omitempty"`
}

var WordOfDayDAO WordOfDayDAOImpl

type WordOfDayDAOImpl struct {
	Upsert func(ctx context.Context, e proteus.ContextExecutor, w WordOfDay) (int64, error) `proq:"q:upsert" prop:"w"`
	// FindByDate returns the zero value when nothing is cached for date.
	FindByDate func(ctx context.Context, e proteus.ContextQuerier, date string) (WordOfDay, error) `proq:"q:findByDate" prop:"date"`
}

func init() {
	m := proteus.MapMapper{
		"upsert": `INSERT INTO word_of_day (date, word, definition, example, part_of_speech, syllables)
				   VALUES (:w.Date:, :w.Word:, :w.Definition:, :w.Example:, :w.PartOfSpeech:, :w.Syllables:)
				   ON CONFLICT (date)
				   DO UPDATE SET word = excluded.word, definition = excluded.definition, example = excluded.example,
				                 part_of_speech = excluded.part_of_speech, syllables = excluded.syllables`,
		"findByDate": `SELECT date, word, definition, example, part_of_speech, syllables FROM word_of_day WHERE date = :date:`,
	}
	err := proteus.ShouldBuild(context.Background(), &WordOfDayDAO, proteus.Sqlite, m)
	if err != nil {
		panic(err)
	}
}
