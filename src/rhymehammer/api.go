package rhymehammer

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kalexmills/rhyme-hammer/src/lines"
	"github.com/kalexmills/rhyme-hammer/src/wordofday"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type API struct {
	finder *Finder
	words  *wordofday.Service
	// lines is nil when line generation is not configured.
	lines *lines.Generator
}

func NewAPI(finder *Finder, words *wordofday.Service, gen *lines.Generator) *API {
	return &API{finder: finder, words: words, lines: gen}
}

// Router builds the gin engine serving the HTTP API.
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.GET("/words/:word", a.getWords)
	v1.GET("/word-of-day", a.getWordOfDay)
	v1.POST("/lines", a.postLines)
	v1.POST("/lines/analyze", a.postAnalyze)
	v1.GET("/usage", a.getUsage)
	return r
}

type wordsResponse struct {
	Word           string              `json:"word"`
	SyllableCounts []int               `json:"syllableCounts"`
	Results        map[string][]Result `json:"results"`
	Total          int                 `json:"total"`
}

func (a *API) getWords(c *gin.Context) {
	syllables := 0
	if s := c.Query("syllables"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "syllables must be a positive integer"})
			return
		}
		syllables = n
	}
	l, err := a.finder.Lookup(c.Request.Context(), c.Param("word"))
	if errors.Is(err, ErrEmptyWord) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Println("could not look up word,", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "lookup failed"})
		return
	}

	resp := wordsResponse{
		Word:           l.Word,
		SyllableCounts: SyllableCounts(l.All()),
		Results:        make(map[string][]Result, len(Categories)),
	}
	l = l.Filter(syllables)
	for _, cat := range Categories {
		rs := l.Results[cat]
		if rs == nil {
			rs = []Result{}
		}
		resp.Results[cat.Key()] = rs
	}
	resp.Total = l.Total()
	c.JSON(http.StatusOK, resp)
}

func (a *API) getWordOfDay(c *gin.Context) {
	w, err := a.words.Today(c.Request.Context())
	if err != nil {
		log.Println("could not fetch word of the day,", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "word of the day unavailable"})
		return
	}
	c.JSON(http.StatusOK, w)
}

type lineRequest struct {
	Line  string `json:"line" binding:"required"`
	Mood  string `json:"mood"`
	Style string `json:"style"`
}

func (a *API) postLines(c *gin.Context) {
	var req lineRequest
	if !a.bindLine(c, &req) {
		return
	}
	generated, err := a.lines.Generate(c.Request.Context(), req.Line, lines.Options{Mood: req.Mood, Style: req.Style})
	if a.lineError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": generated})
}

func (a *API) postAnalyze(c *gin.Context) {
	var req lineRequest
	if !a.bindLine(c, &req) {
		return
	}
	analysis, err := a.lines.Analyze(c.Request.Context(), req.Line)
	if a.lineError(c, err) {
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (a *API) getUsage(c *gin.Context) {
	if a.lines == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "line generation is not configured"})
		return
	}
	c.JSON(http.StatusOK, a.lines.Usage())
}

func (a *API) bindLine(c *gin.Context, req *lineRequest) bool {
	if a.lines == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "line generation is not configured"})
		return false
	}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// lineError writes the response for a failed line request and reports whether there was one.
func (a *API) lineError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		lineRequests.WithLabelValues("ok").Inc()
		return false
	case errors.Is(err, lines.ErrDailyLimit), errors.Is(err, lines.ErrHourlyLimit):
		lineRequests.WithLabelValues("limited").Inc()
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, lines.ErrEmptyLine):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		lineRequests.WithLabelValues("error").Inc()
		log.Println("could not generate lines,", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "line generation failed"})
	}
	return true
}
