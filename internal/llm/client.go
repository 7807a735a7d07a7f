/**
* Name: 			client.go
* Description: 		모델 서버(text-generation) HTTP 클라이언트
* Workflow: 		프롬프트 + 샘플링 파라미터 전송, 생성 텍스트 수신
 */

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type ModelServerClient struct {
	baseURL    string
	httpClient *http.Client
}

type GenerateParameters struct {
	MaxNewTokens      int      `json:"max_new_tokens"`
	Temperature       float64  `json:"temperature"`
	TopP              float64  `json:"top_p"`
	RepetitionPenalty float64  `json:"repetition_penalty"`
	DoSample          bool     `json:"do_sample"`
	ReturnFullText    bool     `json:"return_full_text"`
	Stop              []string `json:"stop,omitempty"`
}

type GenerateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters GenerateParameters `json:"parameters"`
}

type GenerateResponse struct {
	GeneratedText string `json:"generated_text"`
}

// NewModelServerClient talks to a text-generation server at baseURL. A zero timeout means none.
func NewModelServerClient(baseURL string, timeout time.Duration) *ModelServerClient {
	return &ModelServerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *ModelServerClient) Name() string { return "modelserver" }

// Generate issues one request per returned sequence; the server samples each independently.
func (c *ModelServerClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) ([]string, error) {
	reqBody, err := json.Marshal(GenerateRequest{
		Inputs: prompt,
		Parameters: GenerateParameters{
			MaxNewTokens:      opts.MaxNewTokens,
			Temperature:       opts.Temperature,
			TopP:              opts.TopP,
			RepetitionPenalty: opts.RepetitionPenalty,
			DoSample:          true,
			ReturnFullText:    false,
			Stop:              stopSequences(opts),
		},
	})
	if err != nil {
		return nil, err
	}

	n := sequences(opts)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		text, err := c.generateOnce(ctx, reqBody)
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}

func (c *ModelServerClient) generateOnce(ctx context.Context, reqBody []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ModelServerClient.Generate(): request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ModelServerClient.Generate(): failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.New("model server generate failed with status: " + resp.Status)
	}

	// 서버에 따라 객체 또는 배열로 응답
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var list []GenerateResponse
		if err := json.Unmarshal(body, &list); err != nil {
			return "", fmt.Errorf("ModelServerClient.Generate(): invalid response: %w", err)
		}
		if len(list) == 0 {
			return "", errors.New("model server returned no sequences")
		}
		return list[0].GeneratedText, nil
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("ModelServerClient.Generate(): invalid response: %w", err)
	}
	return genResp.GeneratedText, nil
}
