/**
* Name: 			service.go
* Description: 		자기소개(bio) 생성 파이프라인
* Workflow: 		요청 파싱, 프롬프트 생성, 모델 호출, 특수 토큰 제거, 문장 수 제한
 */

package bio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"BioGenerator_Service/internal/llm"
	"BioGenerator_Service/internal/metrics"
	"BioGenerator_Service/internal/models"

	"github.com/apex/log"
)

// Tokenizer is the part of the model's tokenizer the pipeline needs.
type Tokenizer interface {
	Count(text string) int
	EOS() string
	StripSpecial(text string) string
}

// Service holds the generator and tokenizer loaded at start up. It is safe for concurrent use.
type Service struct {
	generator llm.Generator
	tokenizer Tokenizer
	options   llm.GenerateOptions
}

func NewService(generator llm.Generator, tokenizer Tokenizer) *Service {
	opts := llm.DefaultOptions()
	opts.PadToken = tokenizer.EOS()
	return &Service{
		generator: generator,
		tokenizer: tokenizer,
		options:   opts,
	}
}

func (s *Service) Backend() string { return s.generator.Name() }

// GenerateFromJSON parses a raw request body and generates the biography.
func (s *Service) GenerateFromJSON(ctx context.Context, body []byte) (string, error) {
	req, err := ParseRequest(body)
	if err != nil {
		return "", err
	}
	return s.Generate(ctx, req)
}

// ParseRequest decodes a request body. Empty bodies and empty JSON values
// (null, false, 0, "", [], {}) yield ErrNoInput.
func ParseRequest(body []byte) (models.BioRequest, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return models.BioRequest{}, ErrNoInput
	}

	var value any
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return models.BioRequest{}, &ValidationError{Kind: KindMalformed, Err: err}
	}
	if isEmptyValue(value) {
		return models.BioRequest{}, ErrNoInput
	}
	if _, ok := value.(map[string]any); !ok {
		return models.BioRequest{}, &ValidationError{Kind: KindMalformed, Err: errors.New("expected a JSON object")}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return models.BioRequest{}, &ValidationError{Kind: KindMalformed, Err: err}
	}
	return models.BioRequestFromFields(fields), nil
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case float64:
		return t == 0
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

// Generate builds the prompt, continues it with the backend and trims the
// decoded text to at most one sentence more than the prompt.
func (s *Service) Generate(ctx context.Context, req models.BioRequest) (string, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return "", err
	}

	opts := s.options
	opts.MaxNewTokens = opts.MaxLength - s.tokenizer.Count(prompt)

	continuation := ""
	// 프롬프트가 최대 길이를 넘으면 새 토큰 없이 프롬프트만 사용
	if opts.MaxNewTokens > 0 {
		start := time.Now()
		outputs, err := s.generator.Generate(ctx, prompt, opts)
		elapsed := time.Since(start)
		if err == nil && len(outputs) == 0 {
			err = errors.New("generator returned no sequences")
		}
		if err != nil {
			metrics.GenerationDurationSeconds.WithLabelValues(s.generator.Name(), "error").Observe(elapsed.Seconds())
			log.WithFields(log.Fields{
				"backend": s.generator.Name(),
				"error":   err.Error(),
			}).Error("bio.generate.failed")
			return "", &GenerationError{Backend: s.generator.Name(), Err: err}
		}
		metrics.GenerationDurationSeconds.WithLabelValues(s.generator.Name(), "ok").Observe(elapsed.Seconds())
		continuation = outputs[0]
	} else {
		log.Warnf("Service.Generate(): prompt uses %d of %d tokens, skipping generation", opts.MaxLength-opts.MaxNewTokens, opts.MaxLength)
	}

	// 사용자 입력에서는 EOS 토큰만 제거하고, 정지 마커 절단은 모델 출력에만 적용
	text := strings.ReplaceAll(prompt, s.tokenizer.EOS(), "") + s.tokenizer.StripSpecial(continuation)
	bio := TruncateSentences(text, prompt)

	log.WithFields(log.Fields{
		"backend":        s.generator.Name(),
		"max_new_tokens": opts.MaxNewTokens,
		"bio_length":     len(bio),
	}).Info("bio.generate.success")
	return bio, nil
}
