package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"BioGenerator_Service/internal/bio"
	"BioGenerator_Service/internal/llm"
	"BioGenerator_Service/internal/tokenizer"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const anaBody = `{"name":"Ana","age":30,"gender":"woman","interests":"hiking","profession":"engineer"}`

type fakeGenerator struct {
	outputs []string
	err     error
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) ([]string, error) {
	return f.outputs, f.err
}

type wordTokenizer struct{}

func (wordTokenizer) Count(text string) int           { return len(strings.Fields(text)) }
func (wordTokenizer) EOS() string                     { return tokenizer.EndOfText }
func (wordTokenizer) StripSpecial(text string) string { return tokenizer.StripSpecial(text) }

type fakeNarrator struct {
	text  string
	audio []byte
	err   error
}

func (f *fakeNarrator) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.text = text
	return f.audio, f.err
}

func setupRouter(gen llm.Generator, narrator Synthesizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBioHandler(bio.NewService(gen, wordTokenizer{}), narrator, llm.SpeechContentType)
	r := gin.New()
	r.POST("/generate-bio", h.GenerateBio)
	r.POST("/generate-bio/speech", h.GenerateSpeech)
	r.GET("/health", h.Health)
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return w
}

func TestGenerateBio_Success(t *testing.T) {
	r := setupRouter(&fakeGenerator{outputs: []string{" I build bridges. Daily."}}, nil)

	w := post(r, "/generate-bio", anaBody)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bio":"My name is Ana.  I am 30 years old.  I am a woman interested in hiking.  I work as a engineer.  I build bridges.  Daily"}`, w.Body.String())
}

func TestGenerateBio_Errors(t *testing.T) {
	cases := map[string]struct {
		gen    *fakeGenerator
		body   string
		status int
		msg    string
	}{
		"empty body":      {gen: &fakeGenerator{}, body: "", status: http.StatusBadRequest, msg: bio.NoInputMessage},
		"null":            {gen: &fakeGenerator{}, body: "null", status: http.StatusBadRequest, msg: bio.NoInputMessage},
		"empty object":    {gen: &fakeGenerator{}, body: "{}", status: http.StatusBadRequest, msg: bio.NoInputMessage},
		"invalid json":    {gen: &fakeGenerator{}, body: "{not json", status: http.StatusInternalServerError},
		"missing field":   {gen: &fakeGenerator{}, body: `{"name":"Ana"}`, status: http.StatusInternalServerError, msg: "age"},
		"backend failure": {gen: &fakeGenerator{err: errors.New("connection refused")}, body: anaBody, status: http.StatusInternalServerError, msg: "connection refused"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := post(setupRouter(tc.gen, nil), "/generate-bio", tc.body)
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
			if tc.msg != "" {
				assert.Contains(t, w.Body.String(), tc.msg)
			}
		})
	}
}

func TestGenerateSpeech(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{" I build bridges."}}

	t.Run("disabled", func(t *testing.T) {
		w := post(setupRouter(gen, nil), "/generate-bio/speech", anaBody)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("ok", func(t *testing.T) {
		narrator := &fakeNarrator{audio: []byte("RIFF")}
		w := post(setupRouter(gen, narrator), "/generate-bio/speech", anaBody)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, llm.SpeechContentType, w.Header().Get("Content-Type"))
		assert.Equal(t, "RIFF", w.Body.String())
		assert.True(t, strings.HasPrefix(narrator.text, "My name is Ana."))
	})

	t.Run("tts failure", func(t *testing.T) {
		narrator := &fakeNarrator{err: errors.New("quota exceeded")}
		w := post(setupRouter(gen, narrator), "/generate-bio/speech", anaBody)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "quota exceeded")
	})

	t.Run("no input", func(t *testing.T) {
		w := post(setupRouter(gen, &fakeNarrator{}), "/generate-bio/speech", "{}")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewBioHandler(bio.NewService(&fakeGenerator{}, wordTokenizer{}), nil, llm.SpeechContentType)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
	h.Health(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"bio-generator","backend":"fake"}`, w.Body.String())
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(bio.ErrNoInput))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(&bio.ValidationError{Kind: bio.KindMissingField, Field: "age"}))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(&bio.GenerationError{Backend: "x", Err: errors.New("boom")}))
}
