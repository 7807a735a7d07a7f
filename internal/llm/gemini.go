package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const continuationInstruction = "Continue the user's text in the first person. Reply with the continuation only, without repeating the text."

type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini API client. baseURL overrides the API endpoint when non-empty.
func NewGeminiClient(ctx context.Context, apiKey, model, baseURL string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("NewGeminiClient(): API key is required")
	}
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("NewGeminiClient(): failed to create client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Name() string { return "gemini" }

// Generate maps the sampling options onto GenerateContentConfig. Gemini has no
// multiplicative repetition penalty, so RepetitionPenalty-1 is sent as the frequency penalty.
func (g *GeminiClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) ([]string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(continuationInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(float32(opts.Temperature)),
		TopP:              genai.Ptr(float32(opts.TopP)),
		MaxOutputTokens:   int32(opts.MaxNewTokens),
		CandidateCount:    int32(sequences(opts)),
		FrequencyPenalty:  genai.Ptr(float32(opts.RepetitionPenalty - 1)),
		StopSequences:     stopSequences(opts),
	}
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("GeminiClient.Generate(): %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, errors.New("GeminiClient.Generate(): no candidates returned")
	}

	out := make([]string, 0, len(resp.Candidates))
	for _, cand := range resp.Candidates {
		var sb strings.Builder
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				sb.WriteString(part.Text)
			}
		}
		text := sb.String()
		// 이어쓰기 텍스트 앞의 공백 보정
		if text != "" && !strings.HasPrefix(text, " ") && !strings.HasPrefix(text, "\n") {
			text = " " + text
		}
		out = append(out, text)
	}
	return out, nil
}
