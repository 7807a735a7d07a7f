/**
* Name: 			cmd.go
* Description: 		bio-generator CLI 명령 정의
* Workflow: 		설정 로드, 로거 초기화, 서비스 구성, serve 또는 generate 실행
 */
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"BioGenerator_Service/internal/bio"
	"BioGenerator_Service/internal/config"
	"BioGenerator_Service/internal/handler"
	"BioGenerator_Service/internal/llm"
	"BioGenerator_Service/internal/models"
	"BioGenerator_Service/internal/server"
	"BioGenerator_Service/internal/tokenizer"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	jsonhandler "github.com/apex/log/handlers/json"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bio-generator",
		Short: "Generate short biographies from profile attributes",
		Long: `bio-generator fills a fixed biography prompt from a name, age, gender,
interests and profession, continues it with a language model and trims the
result to one sentence past the prompt.

Run without arguments to start the HTTP server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newGenerateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and WebSocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

type profileFlags struct {
	name       string
	age        string
	gender     string
	interests  string
	profession string
}

func newGenerateCmd() *cobra.Command {
	var flags profileFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one biography and print it as JSON",
		Example: `  bio-generator generate --name Ana --age 30 --gender woman \
    --interests hiking --profession engineer`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), flags.request(cmd))
		},
	}
	cmd.Flags().StringVar(&flags.name, models.FieldName, "", "name")
	cmd.Flags().StringVar(&flags.age, models.FieldAge, "", "age")
	cmd.Flags().StringVar(&flags.gender, models.FieldGender, "", "gender")
	cmd.Flags().StringVar(&flags.interests, models.FieldInterests, "", "interests")
	cmd.Flags().StringVar(&flags.profession, models.FieldProfession, "", "profession")
	return cmd
}

// 지정되지 않은 플래그는 누락된 필드로 남겨 HTTP 경로와 같은 오류를 냄
func (f profileFlags) request(cmd *cobra.Command) models.BioRequest {
	attr := func(flag, value string) models.Attribute {
		if !cmd.Flags().Changed(flag) {
			return models.Attribute{}
		}
		return models.StringAttribute(value)
	}
	return models.BioRequest{
		Name:       attr(models.FieldName, f.name),
		Age:        attr(models.FieldAge, f.age),
		Gender:     attr(models.FieldGender, f.gender),
		Interests:  attr(models.FieldInterests, f.interests),
		Profession: attr(models.FieldProfession, f.profession),
	}
}

func setupLogging(cfg *config.Config, w io.Writer) {
	if strings.EqualFold(cfg.LogFormat, "json") {
		log.SetHandler(jsonhandler.New(w))
	} else {
		log.SetHandler(cli.New(w))
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
		log.Warnf("setupLogging(): unknown log level %q, using info", cfg.LogLevel)
	}
	log.SetLevel(level)
}

func newService(ctx context.Context, cfg *config.Config) (*bio.Service, error) {
	tok, err := tokenizer.NewGPT2()
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}
	gen, err := llm.NewGenerator(ctx, cfg.Generator)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}
	log.WithFields(log.Fields{
		"backend":     gen.Name(),
		"tokenizer":   tok.Name(),
		"concurrency": cfg.Generator.Concurrency,
	}).Info("bio.service.ready")
	return bio.NewService(gen, tok), nil
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg, os.Stderr)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, err := newService(ctx, cfg)
	if err != nil {
		return err
	}

	// nil 인터페이스를 유지해야 음성 라우트가 503을 반환함
	var narrator handler.Synthesizer
	if cfg.TTS.Enabled {
		tts, err := llm.NewTTSClient(ctx, cfg.TTS.CredentialsFile, cfg.TTS.LanguageCode, cfg.TTS.Voice)
		if err != nil {
			return err
		}
		defer tts.Close()
		narrator = tts
	}

	srv, err := server.New(cfg, handler.NewBioHandler(service, narrator, llm.SpeechContentType))
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}

func runGenerate(ctx context.Context, out io.Writer, req models.BioRequest) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg, os.Stderr)

	service, err := newService(ctx, cfg)
	if err != nil {
		return err
	}
	return writeBio(ctx, out, service, req)
}

func writeBio(ctx context.Context, out io.Writer, service *bio.Service, req models.BioRequest) error {
	text, err := service.Generate(ctx, req)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	return enc.Encode(models.BioResponse{Bio: text})
}
