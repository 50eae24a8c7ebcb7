// Package httpserv serves the classification web form and JSON API.
package httpserv

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server exposes the classifier over HTTP: a small form at / and a
// JSON endpoint at /classify.
type Server struct {
	echo      *echo.Echo
	service   *core.ClassificationService
	logger    *zap.Logger
	addr      string
	templates *template.Template
}

// classifyRequest is the JSON body accepted by POST /classify.
type classifyRequest struct {
	Message string `json:"message" form:"message"`
}

// classifyResponse is the verdict returned to the caller.
type classifyResponse struct {
	Message    string  `json:"message"`
	Result     string  `json:"result"`
	IsSpam     bool    `json:"is_spam"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	ModelUsed  string  `json:"model_used"`
}

// NewServer creates the HTTP server around the classification service.
func NewServer(service *core.ClassificationService, logger *zap.Logger, addr string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())

	s := &Server{
		echo:      e,
		service:   service,
		logger:    logger,
		addr:      addr,
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}

	e.GET("/", s.index)
	e.POST("/classify", s.classify)
	e.GET("/healthz", s.health)

	return s
}

// Start begins serving. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("address", s.addr))
	err := s.echo.Start(s.addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) index(c echo.Context) error {
	var buf strings.Builder
	if err := s.templates.ExecuteTemplate(&buf, "index.html", nil); err != nil {
		return err
	}
	return c.HTML(http.StatusOK, buf.String())
}

func (s *Server) classify(c echo.Context) error {
	var req classifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no message provided"})
	}

	prediction, err := s.service.Classify(c.Request().Context(), req.Message)
	if err != nil {
		s.logger.Error("Classification failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "classification failed"})
	}

	return c.JSON(http.StatusOK, classifyResponse{
		Message:    req.Message,
		Result:     string(prediction.Label),
		IsSpam:     prediction.IsSpam,
		Score:      prediction.Score,
		Confidence: prediction.Confidence,
		ModelUsed:  prediction.ModelUsed,
	})
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
