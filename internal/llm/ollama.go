package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	api "github.com/ollama/ollama/api"
)

// OllamaClient continues prompts with a local Ollama model in raw mode, so
// no chat template is wrapped around the biography prompt.
type OllamaClient struct {
	client *api.Client
	model  string
}

func NewOllamaClient(baseURL, model string, timeout time.Duration) (*OllamaClient, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("NewOllamaClient(): invalid Ollama URL: %w", err)
	}
	httpClient := &http.Client{Timeout: timeout}
	return &OllamaClient{
		client: api.NewClient(base, httpClient),
		model:  model,
	}, nil
}

func (o *OllamaClient) Name() string { return "ollama" }

func (o *OllamaClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) ([]string, error) {
	stream := false
	options := map[string]any{
		"temperature":    opts.Temperature,
		"top_p":          opts.TopP,
		"repeat_penalty": opts.RepetitionPenalty,
		"num_predict":    opts.MaxNewTokens,
	}
	if stop := stopSequences(opts); stop != nil {
		options["stop"] = stop
	}

	n := sequences(opts)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		req := &api.GenerateRequest{
			Model:   o.model,
			Prompt:  prompt,
			Raw:     true,
			Stream:  &stream,
			Options: options,
		}

		var sb strings.Builder
		err := o.client.Generate(ctx, req, func(gr api.GenerateResponse) error {
			sb.WriteString(gr.Response)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("OllamaClient.Generate(): %w", err)
		}
		out = append(out, sb.String())
	}
	return out, nil
}
