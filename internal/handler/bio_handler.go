/**
* Name: 			bio_handler.go
* Description: 		Gin 프레임워크의 HTTP 핸들러
* Workflow: 		메인 페이지, 자기소개 생성, 음성 변환, 헬스 체크
 */
package handler

import (
	"context"
	"errors"
	"net/http"

	"BioGenerator_Service/internal/bio"
	"BioGenerator_Service/internal/middleware"
	"BioGenerator_Service/internal/models"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// Synthesizer renders text to audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type BioHandler struct {
	service     *bio.Service
	narrator    Synthesizer
	contentType string
}

// NewBioHandler wires the shared service. narrator may be nil, which disables the speech route.
func NewBioHandler(service *bio.Service, narrator Synthesizer, speechContentType string) *BioHandler {
	return &BioHandler{
		service:     service,
		narrator:    narrator,
		contentType: speechContentType,
	}
}

type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Service string `json:"service" example:"bio-generator"`
	Backend string `json:"backend" example:"modelserver"`
}

// Home godoc
// @Summary      메인 페이지
// @Description  자기소개 생성 폼 HTML 페이지를 반환합니다.
// @Tags         Page
// @Produce      html
// @Success      200 {string} string "HTML"
// @Router       / [get]
func (h *BioHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"backend": h.service.Backend()})
}

// GenerateBio godoc
// @Summary      자기소개 생성 (Generate bio)
// @Description  이름, 나이, 성별, 관심사, 직업으로 프롬프트를 만들고 언어 모델로 자기소개를 생성합니다.
// @Tags         Bio
// @Accept       json
// @Produce      json
// @Param        request body models.BioRequest true "프로필 정보"
// @Success      200 {object} models.BioResponse
// @Failure      400 {object} models.ErrorResponse "입력 데이터 없음"
// @Failure      500 {object} models.ErrorResponse "필드 누락 또는 생성 실패"
// @Router       /generate-bio [post]
func (h *BioHandler) GenerateBio(c *gin.Context) {
	text, ok := h.generate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.BioResponse{Bio: text})
}

// GenerateSpeech godoc
// @Summary      자기소개 음성 생성
// @Description  자기소개를 생성한 뒤 음성(WAV, LINEAR16)으로 변환해 반환합니다. TTS_ENABLED가 false면 503을 반환합니다.
// @Tags         Bio
// @Accept       json
// @Produce      audio/wav
// @Param        request body models.BioRequest true "프로필 정보"
// @Success      200 {file} file "오디오 바이너리 데이터"
// @Failure      400 {object} models.ErrorResponse "입력 데이터 없음"
// @Failure      500 {object} models.ErrorResponse "필드 누락, 생성 또는 음성 변환 실패"
// @Failure      503 {object} models.ErrorResponse "음성 변환 비활성화"
// @Router       /generate-bio/speech [post]
func (h *BioHandler) GenerateSpeech(c *gin.Context) {
	if h.narrator == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "speech synthesis is not configured"})
		return
	}
	text, ok := h.generate(c)
	if !ok {
		return
	}

	audio, err := h.narrator.Synthesize(c.Request.Context(), text)
	if err != nil {
		h.writeError(c, &bio.GenerationError{Backend: "tts", Err: err})
		return
	}
	c.Data(http.StatusOK, h.contentType, audio)
}

// Health godoc
// @Summary      헬스 체크
// @Tags         Ops
// @Produce      json
// @Success      200 {object} handler.HealthResponse
// @Router       /health [get]
func (h *BioHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "bio-generator",
		Backend: h.service.Backend(),
	})
}

func (h *BioHandler) generate(c *gin.Context) (string, bool) {
	rawData, err := c.GetRawData()
	if err != nil {
		h.writeError(c, &bio.ValidationError{Kind: bio.KindMalformed, Err: err})
		return "", false
	}

	text, err := h.service.GenerateFromJSON(c.Request.Context(), rawData)
	if err != nil {
		h.writeError(c, err)
		return "", false
	}
	return text, true
}

func (h *BioHandler) writeError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"request_id": c.GetString(middleware.RequestIDKey),
			"error":      err.Error(),
		}).Error("bio.request.failed")
	}
	c.JSON(status, models.ErrorResponse{Error: err.Error()})
}

// StatusFor maps a pipeline error to its HTTP status: a missing body is the
// caller's fault (400); every other failure, missing fields included, is a 500.
func StatusFor(err error) int {
	if errors.Is(err, bio.ErrNoInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
