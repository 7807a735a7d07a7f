/**
* Name: 			tokenizer.go
* Description: 		GPT-2 BPE 토크나이저 래퍼
* Workflow: 		프롬프트 토큰 수 계산, 특수 토큰 제거
 */

package tokenizer

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// GPT-2 shares its vocabulary with r50k_base.
const (
	GPT2Encoding = "r50k_base"
	EndOfText    = "<|endoftext|>"
)

var (
	loaderOnce sync.Once

	// 다른 모델 계열의 제어 토큰(<|eot_id|>, <|im_end|>, </s> 등)도 함께 제거
	controlToken = regexp.MustCompile(`<\|[^|<>]*\|>|</?s>|<pad>|<unk>`)
	stopMarkers  = []string{EndOfText, "</s>", "<|eot_id|>", "<|im_end|>", "<|end|>"}
)

type BPE struct {
	enc  *tiktoken.Tiktoken
	name string
}

// NewGPT2 loads the GPT-2 encoding from the embedded BPE ranks; no network access is needed.
func NewGPT2() (*BPE, error) {
	return New(GPT2Encoding)
}

func New(encoding string) (*BPE, error) {
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("tokenizer.New(): failed to load encoding %s: %w", encoding, err)
	}
	return &BPE{enc: enc, name: encoding}, nil
}

func (b *BPE) Name() string { return b.name }

// Count returns the number of tokens text encodes to. Special-token text is encoded as ordinary text.
func (b *BPE) Count(text string) int {
	return len(b.enc.Encode(text, nil, nil))
}

func (b *BPE) EOS() string { return EndOfText }

// StripSpecial drops everything after the first end-of-sequence marker and
// removes any remaining control tokens.
func (b *BPE) StripSpecial(text string) string {
	return StripSpecial(text)
}

func StripSpecial(text string) string {
	for _, marker := range stopMarkers {
		if i := strings.Index(text, marker); i >= 0 {
			text = text[:i]
		}
	}
	return controlToken.ReplaceAllString(text, "")
}
