package wordofday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const DefaultDictionaryURL = "https://api.dictionaryapi.dev/api/v2/entries/en/"

var ErrNoDefinition = errors.New("no definition found")

type Definition struct {
	Definition   string
	Example      string
	PartOfSpeech string
}

type DefinitionSource interface {
	Define(ctx context.Context, word string) (Definition, error)
}

// DictionaryClient reads definitions from the free dictionary API.
type DictionaryClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewDictionaryClient() *DictionaryClient {
	return &DictionaryClient{
		BaseURL:    DefaultDictionaryURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type dictionaryEntry struct {
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Define returns the first definition of the first meaning of word.
func (c *DictionaryClient) Define(ctx context.Context, word string) (Definition, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+url.PathEscape(word), nil)
	if err != nil {
		return Definition{}, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Definition{}, fmt.Errorf("looking up %q: %w", word, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return Definition{}, ErrNoDefinition
	}
	if resp.StatusCode != http.StatusOK {
		return Definition{}, fmt.Errorf("looking up %q: unexpected status %s", word, resp.Status)
	}

	var entries []dictionaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return Definition{}, fmt.Errorf("decoding definition of %q: %w", word, err)
	}
	if len(entries) == 0 || len(entries[0].Meanings) == 0 {
		return Definition{}, ErrNoDefinition
	}
	meaning := entries[0].Meanings[0]
	def := Definition{PartOfSpeech: meaning.PartOfSpeech}
	if len(meaning.Definitions) > 0 {
		def.Definition = meaning.Definitions[0].Definition
		def.Example = meaning.Definitions[0].Example
	}
	if def.Definition == "" {
		def.Definition = unavailableDefinition
	}
	return def, nil
}
