// Package wordofday picks a word for each day, looks up its definition once, and caches the result
// in the database.
package wordofday

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/kalexmills/rhyme-hammer/src/phonetics"
	"github.com/kalexmills/rhyme-hammer/src/rhymehammer/db"
)

const (
	fallbackDefinition    = "A fascinating word worthy of exploration."
	unavailableDefinition = "Definition unavailable"
)

type Service struct {
	DB         *sql.DB
	Dictionary DefinitionSource
	now        func() time.Time
}

// NewService returns a service using now as its clock; a nil clock means time.Now.
func NewService(sqlDB *sql.DB, dict DefinitionSource, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{DB: sqlDB, Dictionary: dict, now: now}
}

// Today returns the word of the day, from the cache when it has already been looked up today.
func (s *Service) Today(ctx context.Context) (db.WordOfDay, error) {
	return s.ForDate(ctx, s.now())
}

// ForDate returns the cached entry for date, looking it up and caching it if missing. A dictionary
// failure still produces and caches an entry, with a generic definition.
func (s *Service) ForDate(ctx context.Context, date time.Time) (db.WordOfDay, error) {
	key := DateKey(date)
	cached, err := db.WordOfDayDAO.FindByDate(ctx, s.DB, key)
	if err != nil {
		return db.WordOfDay{}, fmt.Errorf("reading cached word of the day: %w", err)
	}
	if cached.Date == key {
		return cached, nil
	}

	word := WordForDate(date)
	entry := db.WordOfDay{Date: key, Word: word, Syllables: phonetics.InferSyllables(word)}
	def, err := s.Dictionary.Define(ctx, word)
	if err != nil {
		log.Println("could not fetch definition for word of the day,", word, err)
		entry.Definition = fallbackDefinition
	} else {
		entry.Definition = def.Definition
		entry.Example = def.Example
		entry.PartOfSpeech = def.PartOfSpeech
	}

	if _, err := db.WordOfDayDAO.Upsert(ctx, s.DB, entry); err != nil {
		return db.WordOfDay{}, fmt.Errorf("caching word of the day: %w", err)
	}
	log.Printf("cached word of the day for %s: %s", key, word)
	return entry, nil
}
