/**
* Name: 			tts.go
* Description: 		생성된 자기소개 텍스트를 음성으로 변환
* Workflow: 		TTS 클라이언트 생성, 텍스트 전송, 오디오 수신
 */

package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"github.com/apex/log"
)

const SpeechContentType = "audio/wav"

// TTS 연결 정보
type TTSClient struct {
	client       *texttospeech.Client
	languageCode string
	voice        string
}

// TTS 클라이언트 초기화. credentialsFile이 비어 있으면 기본 인증 정보 사용
func NewTTSClient(ctx context.Context, credentialsFile, languageCode, voice string) (*TTSClient, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.New("NewTTSClient(): failed to create TTS client: " + err.Error())
	}
	return &TTSClient{
		client:       client,
		languageCode: languageCode,
		voice:        voice,
	}, nil
}

// Synthesize returns text as 16kHz LINEAR16 audio with a WAV header.
func (t *TTSClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: t.languageCode,
			Name:         t.voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding:   texttospeechpb.AudioEncoding_LINEAR16,
			SampleRateHertz: 16000,
		},
	}

	resp, err := t.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("TTSClient.Synthesize(): SynthesizeSpeech failed: %w", err)
	}
	log.Debugf("TTSClient.Synthesize(): audio size: %d bytes", len(resp.AudioContent))
	return resp.AudioContent, nil
}

// TTS 클라이언트 종료
func (t *TTSClient) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}
