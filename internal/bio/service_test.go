package bio

import (
	"context"
	"errors"
	"strings"
	"testing"

	"BioGenerator_Service/internal/llm"
	"BioGenerator_Service/internal/models"
	"BioGenerator_Service/internal/tokenizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const anaPrompt = "My name is Ana. I am 30 years old. I am a woman interested in hiking. I work as a engineer."

type fakeGenerator struct {
	outputs []string
	err     error
	calls   int
	opts    llm.GenerateOptions
	prompt  string
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) ([]string, error) {
	f.calls++
	f.prompt = prompt
	f.opts = opts
	return f.outputs, f.err
}

// wordTokenizer counts whitespace-separated words as tokens.
type wordTokenizer struct{}

func (wordTokenizer) Count(text string) int           { return len(strings.Fields(text)) }
func (wordTokenizer) EOS() string                     { return tokenizer.EndOfText }
func (wordTokenizer) StripSpecial(text string) string { return tokenizer.StripSpecial(text) }

func anaRequest() models.BioRequest {
	req, _ := ParseRequest([]byte(`{"name":"Ana","age":30,"gender":"woman","interests":"hiking","profession":"engineer"}`))
	return req
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(anaRequest())
	require.NoError(t, err)
	assert.Equal(t, anaPrompt, prompt)
}

func TestBuildPrompt_MissingField(t *testing.T) {
	req, err := ParseRequest([]byte(`{"name":"Ana","age":30,"gender":"woman","interests":"hiking"}`))
	require.NoError(t, err)

	_, err = BuildPrompt(req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindMissingField, verr.Kind)
	assert.Equal(t, "profession", verr.Field)
	assert.Contains(t, err.Error(), "profession")
}

func TestTruncateSentences(t *testing.T) {
	cases := map[string]struct {
		text string
		want string
	}{
		"keeps one extra sentence": {
			text: anaPrompt + " She loves mountains. She climbs. Extra.",
			want: "My name is Ana.  I am 30 years old.  I am a woman interested in hiking.  I work as a engineer.  She loves mountains.  She climbs",
		},
		"trailing fragment": {
			text: anaPrompt + " She loves mountains and",
			want: "My name is Ana.  I am 30 years old.  I am a woman interested in hiking.  I work as a engineer.  She loves mountains and",
		},
		"fewer segments than allowed": {
			text: "Short. Text",
			want: "Short.  Text",
		},
		"no periods": {
			text: "no periods here",
			want: "no periods here",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, TruncateSentences(tc.text, anaPrompt))
		})
	}
}

func TestTruncateSentences_SegmentBound(t *testing.T) {
	text := anaPrompt + strings.Repeat(" More.", 20)
	out := TruncateSentences(text, anaPrompt)
	assert.LessOrEqual(t, len(strings.Split(out, ".")), len(strings.Split(anaPrompt, "."))+1)
}

func TestParseRequest(t *testing.T) {
	for _, body := range []string{"", "   ", "null", "false", "0", `""`, "[]", "{}"} {
		t.Run("empty "+body, func(t *testing.T) {
			_, err := ParseRequest([]byte(body))
			assert.ErrorIs(t, err, ErrNoInput)
			assert.Equal(t, NoInputMessage, err.Error())
		})
	}

	for _, body := range []string{"{not json", `[1, 2]`, `"text"`, `42`} {
		t.Run("malformed "+body, func(t *testing.T) {
			_, err := ParseRequest([]byte(body))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, KindMalformed, verr.Kind)
			assert.NotErrorIs(t, err, ErrNoInput)
		})
	}
}

func TestService_Generate(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{" She loves the mountains. She climbs every weekend. She also paints.<|endoftext|>"}}
	svc := NewService(gen, wordTokenizer{})

	bio, err := svc.GenerateFromJSON(context.Background(), []byte(`{"name":"Ana","age":30,"gender":"woman","interests":"hiking","profession":"engineer"}`))
	require.NoError(t, err)

	assert.Equal(t, "My name is Ana.  I am 30 years old.  I am a woman interested in hiking.  I work as a engineer.  She loves the mountains.  She climbs every weekend", bio)
	assert.NotContains(t, bio, "<|")

	assert.Equal(t, anaPrompt, gen.prompt)
	assert.Equal(t, 100, gen.opts.MaxLength)
	assert.Equal(t, 100-len(strings.Fields(anaPrompt)), gen.opts.MaxNewTokens)
	assert.Equal(t, 1, gen.opts.NumReturnSequences)
	assert.Equal(t, 0.8, gen.opts.Temperature)
	assert.Equal(t, 0.9, gen.opts.TopP)
	assert.Equal(t, 2.0, gen.opts.RepetitionPenalty)
	assert.Equal(t, tokenizer.EndOfText, gen.opts.PadToken)
	assert.Equal(t, "fake", svc.Backend())
}

func TestService_Generate_UsesFirstSequence(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{" First.", " Second."}}
	bio, err := NewService(gen, wordTokenizer{}).Generate(context.Background(), anaRequest())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(bio, "First. "), bio)
	assert.NotContains(t, bio, "Second")
}

func TestService_Generate_BackendError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model server generate failed with status: 503 Service Unavailable")}
	_, err := NewService(gen, wordTokenizer{}).Generate(context.Background(), anaRequest())

	var gerr *GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "fake", gerr.Backend)
	assert.Contains(t, err.Error(), "503")
	assert.False(t, IsValidation(err))
	assert.True(t, IsGeneration(err))
}

func TestService_Generate_NoSequences(t *testing.T) {
	_, err := NewService(&fakeGenerator{}, wordTokenizer{}).Generate(context.Background(), anaRequest())
	assert.True(t, IsGeneration(err))
}

func TestService_Generate_MissingFieldSkipsBackend(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{" x"}}
	_, err := NewService(gen, wordTokenizer{}).GenerateFromJSON(context.Background(), []byte(`{"name":"Ana"}`))

	assert.ErrorIs(t, err, &ValidationError{Kind: KindMissingField, Field: "age"})
	assert.True(t, IsValidation(err))
	assert.Equal(t, 0, gen.calls)
}

func TestService_Generate_PromptExceedsBudget(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{" never used."}}
	long := strings.Repeat("hiking ", 120)
	req, err := ParseRequest([]byte(`{"name":"Ana","age":30,"gender":"woman","interests":"` + long + `","profession":"engineer"}`))
	require.NoError(t, err)

	bio, err := NewService(gen, wordTokenizer{}).Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, gen.calls)
	assert.True(t, strings.HasPrefix(bio, "My name is Ana."))
	assert.NotContains(t, bio, "never used")
}

func TestService_Generate_MarkupInFieldsIsKept(t *testing.T) {
	cases := map[string]struct {
		name string
		want string
	}{
		"sentencepiece eos": {"Bob</s>", "My name is Bob</s>.  I am 30 years old."},
		"chat end marker":   {"Bob<|im_end|>x", "My name is Bob<|im_end|>x.  I am 30 years old."},
		"bos tag":           {"<s>", "My name is <s>.  I am 30 years old."},
		"gpt2 eos":          {"Bob<|endoftext|>", "My name is Bob.  I am 30 years old."},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			gen := &fakeGenerator{outputs: []string{" She codes.</s> tail"}}
			body := `{"name":"` + tc.name + `","age":30,"gender":"woman","interests":"hiking","profession":"engineer"}`

			bio, err := NewService(gen, wordTokenizer{}).GenerateFromJSON(context.Background(), []byte(body))
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(bio, tc.want), bio)
			assert.True(t, strings.HasSuffix(bio, "I work as a engineer.  She codes. "), bio)
			assert.NotContains(t, bio, "tail")
		})
	}
}
