package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"BioGenerator_Service/docs"
	"BioGenerator_Service/internal/config"
	"BioGenerator_Service/internal/handler"
	"BioGenerator_Service/internal/metrics"
	"BioGenerator_Service/internal/middleware"
	"BioGenerator_Service/internal/models"
	"BioGenerator_Service/web"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	EndPointHome        = "/"
	EndPointGenerateBio = "/generate-bio"
	EndPointSpeech      = "/generate-bio/speech"
	EndPointSocket      = "/ws/generate-bio"
	EndPointHealth      = "/health"
	EndPointMetrics     = "/metrics"
	EndPointSwagger     = "/swagger/*any"
)

// Server wraps the gin router and the HTTP server around it.
type Server struct {
	Router *gin.Engine
	server *http.Server
}

// NewRouter builds the gin engine with middleware, templates and routes.
func NewRouter(cfg *config.Config, bioHandler *handler.BioHandler) (*gin.Engine, error) {
	metrics.Register()

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.AccessLog(), gin.CustomRecovery(recoverJSON))

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, middleware.RequestIDHeader)
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	tmpl, err := loadTemplates(cfg.TemplateDir)
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	// WebSocket은 gzip 응답 래퍼와 함께 업그레이드할 수 없으므로 압축 그룹 밖에 둠
	router.GET(EndPointSocket, bioHandler.HandleBioSocket)

	compressed := router.Group("/")
	compressed.Use(gzip.Gzip(gzip.DefaultCompression))
	{
		compressed.GET(EndPointHome, bioHandler.Home)
		compressed.POST(EndPointGenerateBio, bioHandler.GenerateBio)
		compressed.POST(EndPointSpeech, bioHandler.GenerateSpeech)
		compressed.GET(EndPointHealth, bioHandler.Health)
		compressed.GET(EndPointMetrics, gin.WrapH(promhttp.Handler()))
	}

	docs.SwaggerInfo.BasePath = "/"
	router.GET(EndPointSwagger, ginSwagger.WrapHandler(swaggerFiles.Handler))
	return router, nil
}

// 핸들러 패닉도 다른 실패와 같은 {"error": ...} 형식으로 응답
func recoverJSON(c *gin.Context, recovered any) {
	msg := fmt.Sprint(recovered)
	log.WithFields(log.Fields{
		"request_id": c.GetString(middleware.RequestIDKey),
		"error":      msg,
	}).Error("http.panic")
	c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: msg})
}

func loadTemplates(dir string) (*template.Template, error) {
	if dir == "" {
		tmpl, err := web.Templates()
		if err != nil {
			return nil, fmt.Errorf("server.loadTemplates(): embedded templates: %w", err)
		}
		return tmpl, nil
	}
	tmpl, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("server.loadTemplates(): %s: %w", dir, err)
	}
	return tmpl, nil
}

func New(cfg *config.Config, bioHandler *handler.BioHandler) (*Server, error) {
	router, err := NewRouter(cfg, bioHandler)
	if err != nil {
		return nil, err
	}
	return &Server{
		Router: router,
		server: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Run blocks until the server stops; http.ErrServerClosed after Shutdown is not an error.
func (s *Server) Run() error {
	log.Infof("Bio generator listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
