// Package datamuse queries the Datamuse word-relations API.
package datamuse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.datamuse.com/words"

// Relation selects which words Datamuse returns for a query word.
type Relation string

const (
	Rhymes     Relation = "rel_rhy"
	NearRhymes Relation = "rel_nry"
	SoundsLike Relation = "sl"
	MeansLike  Relation = "ml"
)

// Word is a single Datamuse result. Score is Datamuse's relevance; NumSyllables is zero when the
// API did not report it.
type Word struct {
	Word         string  `json:"word"`
	Score        float64 `json:"score"`
	NumSyllables int     `json:"numSyllables,omitempty"`
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	BaseURL    string
	HTTPClient HTTPClient
	Limiter    *rate.Limiter
	Max        int
}

// NewClient returns a client for the public Datamuse endpoint, allowing perSecond requests per
// second.
func NewClient(perSecond float64) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Limiter:    rate.NewLimiter(rate.Limit(perSecond), 4),
		Max:        100,
	}
}

func (c *Client) Words(ctx context.Context, rel Relation, word string) ([]Word, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	params := url.Values{}
	params.Set(string(rel), word)
	params.Set("max", strconv.Itoa(c.maxResults()))
	params.Set("md", "s")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building %s request for %q: %w", rel, word, err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying %s for %q: %w", rel, word, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("querying %s for %q: unexpected status %s", rel, word, resp.Status)
	}
	var words []Word
	if err := json.NewDecoder(resp.Body).Decode(&words); err != nil {
		return nil, fmt.Errorf("decoding %s response for %q: %w", rel, word, err)
	}
	return words, nil
}

func (c *Client) maxResults() int {
	if c.Max <= 0 {
		return 100
	}
	return c.Max
}
