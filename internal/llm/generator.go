package llm

import (
	"context"
	"fmt"

	"BioGenerator_Service/internal/config"

	"golang.org/x/sync/semaphore"
)

// GenerateOptions is the sampling configuration passed to a backend.
type GenerateOptions struct {
	// MaxLength counts prompt and generated tokens together.
	MaxLength int
	// MaxNewTokens is MaxLength minus the prompt's token count.
	MaxNewTokens       int
	NumReturnSequences int
	Temperature        float64
	TopP               float64
	RepetitionPenalty  float64
	// PadToken is the end-of-sequence token; backends use it as a stop sequence.
	PadToken string
}

// DefaultOptions returns the fixed sampling configuration used for biographies.
func DefaultOptions() GenerateOptions {
	return GenerateOptions{
		MaxLength:          100,
		NumReturnSequences: 1,
		Temperature:        0.8,
		TopP:               0.9,
		RepetitionPenalty:  2.0,
	}
}

// Generator continues a prompt. It returns NumReturnSequences continuations,
// without the prompt text.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) ([]string, error)
	Name() string
}

// NewGenerator builds the backend selected by cfg.Backend, wrapped with the
// concurrency cap when one is configured.
func NewGenerator(ctx context.Context, cfg config.GeneratorConfig) (Generator, error) {
	var (
		gen Generator
		err error
	)
	switch cfg.Backend {
	case config.BackendModelServer:
		gen = NewModelServerClient(cfg.ModelServerURL, cfg.Timeout)
	case config.BackendOllama:
		gen, err = NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel, cfg.Timeout)
	case config.BackendGemini:
		gen, err = NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, "")
	default:
		err = fmt.Errorf("llm.NewGenerator(): unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Concurrency > 0 {
		gen = Limit(gen, cfg.Concurrency)
	}
	return gen, nil
}

// limited serialises access to a shared backend.
type limited struct {
	Generator
	sem *semaphore.Weighted
}

// Limit caps the number of in-flight Generate calls on gen at n.
func Limit(gen Generator, n int) Generator {
	return &limited{Generator: gen, sem: semaphore.NewWeighted(int64(n))}
}

func (l *limited) Generate(ctx context.Context, prompt string, opts GenerateOptions) ([]string, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("llm.Generate(): waiting for a generation slot: %w", err)
	}
	defer l.sem.Release(1)
	return l.Generator.Generate(ctx, prompt, opts)
}

func sequences(opts GenerateOptions) int {
	if opts.NumReturnSequences < 1 {
		return 1
	}
	return opts.NumReturnSequences
}

func stopSequences(opts GenerateOptions) []string {
	if opts.PadToken == "" {
		return nil
	}
	return []string{opts.PadToken}
}
