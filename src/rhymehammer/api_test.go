package rhymehammer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kalexmills/rhyme-hammer/src/lines"
	"github.com/kalexmills/rhyme-hammer/src/rhymehammer/db"
	"github.com/kalexmills/rhyme-hammer/src/wordofday"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func chatServer(t *testing.T, reply string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-test",
			Object: "chat.completion",
			Choices: []openai.ChatCompletionChoice{{
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
				FinishReason: openai.FinishReasonStop,
			}},
		})
	}))
}

func newTestAPI(gen *lines.Generator) *gin.Engine {
	words := wordofday.NewService(DB, &fakeDictionary{}, func() time.Time { return testDate })
	return NewAPI(NewFinder(catSource()), words, gen).Router()
}

func serve(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPI_Health(t *testing.T) {
	w := serve(newTestAPI(nil), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAPI_Words(t *testing.T) {
	r := newTestAPI(nil)
	w := serve(r, http.MethodGet, "/v1/words/cat", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp wordsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cat", resp.Word)
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, []int{1, 2}, resp.SyllableCounts)
	require.Len(t, resp.Results["rhymes"], 2)
	assert.Equal(t, 100, *resp.Results["rhymes"][0].Strength)
	assert.Nil(t, resp.Results["related"][0].Strength)

	w = serve(r, http.MethodGet, "/v1/words/cat?syllables=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, []int{1, 2}, resp.SyllableCounts, "counts describe the unfiltered results")
	assert.NotNil(t, resp.Results["nearRhymes"])
	assert.Empty(t, resp.Results["nearRhymes"])
}

func TestAPI_Words_BadRequest(t *testing.T) {
	r := newTestAPI(nil)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/v1/words/cat?syllables=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/v1/words/cat?syllables=two", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/v1/words/%20", "").Code)
}

func TestAPI_WordOfDay(t *testing.T) {
	w := serve(newTestAPI(nil), http.MethodGet, "/v1/word-of-day", "")
	require.Equal(t, http.StatusOK, w.Code)
	var wotd db.WordOfDay
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wotd))
	assert.Equal(t, "2026-10-19", wotd.Date)
	assert.Equal(t, "jubilant", wotd.Word)
}

func TestAPI_LinesNotConfigured(t *testing.T) {
	r := newTestAPI(nil)
	assert.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodPost, "/v1/lines", `{"line":"hello"}`).Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodGet, "/v1/usage", "").Code)
}

func TestAPI_Lines(t *testing.T) {
	srv := chatServer(t, "one\ntwo\nthree")
	defer srv.Close()
	r := newTestAPI(lines.NewGenerator("test-key", srv.URL+"/v1", "", lines.NewTracker(2, 10, nil)))

	w := serve(r, http.MethodPost, "/v1/lines", `{"line":"the moon is bright","mood":"calm"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"lines":["one","two","three"]}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/v1/lines", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/v1/lines", `{"line":"   "}`).Code)

	w = serve(r, http.MethodGet, "/v1/usage", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats lines.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Daily.Count)

	w = serve(r, http.MethodPost, "/v1/lines/analyze", `{"line":"the moon is bright"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code, "analysis reply is not JSON")

	w = serve(r, http.MethodPost, "/v1/lines", `{"line":"the moon is bright"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestAPI_Analyze(t *testing.T) {
	srv := chatServer(t, `{"mood":"calm","style":"lyrical"}`)
	defer srv.Close()
	r := newTestAPI(lines.NewGenerator("test-key", srv.URL+"/v1", "", lines.NewTracker(10, 10, nil)))

	w := serve(r, http.MethodPost, "/v1/lines/analyze", `{"line":"the moon is bright"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mood":"calm","style":"lyrical"}`, w.Body.String())
}

func TestAPI_Metrics(t *testing.T) {
	r := newTestAPI(nil)
	serve(r, http.MethodGet, "/v1/words/cat", "")
	w := serve(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `rhymehammer_lookups_total{category="rhymes"}`)
}
