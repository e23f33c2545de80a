package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"

	"jarvis/internal/llm/tools"
	"jarvis/internal/services"
)

// ToolRunner is the part of the tool registry the API needs.
type ToolRunner interface {
	Infos(ctx context.Context) ([]*schema.ToolInfo, error)
	Run(ctx context.Context, name, arguments string) (*tools.ToolOutput, error)
}

type Config struct {
	Addr  string
	Debug bool
}

// HTTPServer serves the jarvis REST API on gin.
type HTTPServer struct {
	config   Config
	engine   *gin.Engine
	server   *http.Server
	contexts services.ContextService
	tools    ToolRunner
	logger   *slog.Logger
}

func NewHTTPServer(cfg Config, contexts services.ContextService, toolRunner ToolRunner, logger *slog.Logger) *HTTPServer {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &HTTPServer{
		config:   cfg,
		engine:   gin.New(),
		contexts: contexts,
		tools:    toolRunner,
		logger:   logger.With("component", "http"),
	}
	s.registerMiddlewares()
	s.registerRoutes()
	return s
}

// Handler exposes the engine, mainly for httptest.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) registerMiddlewares() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(s.loggingMiddleware())
}

func (s *HTTPServer) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"remote_addr", c.ClientIP(),
			"duration", time.Since(start))
	}
}

func (s *HTTPServer) registerRoutes() {
	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/health", s.handleHealth)

		contexts := v1.Group("/contexts")
		{
			contexts.GET("/:key", s.handleGetContext)
			contexts.PUT("/:key", s.handleSetContext)
			contexts.DELETE("/:key", s.handleDeleteContext)
		}

		v1.GET("/tools", s.handleListTools)
		v1.POST("/tools/:name", s.handleRunTool)
	}
}

// Start blocks until the server stops. A graceful Stop is not an error.
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("starting HTTP server", "addr", s.config.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Response is the envelope of every API reply.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (s *HTTPServer) success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "Success",
		Data:    data,
	})
}

func (s *HTTPServer) error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func (s *HTTPServer) handleHealth(c *gin.Context) {
	s.success(c, gin.H{
		"status": "healthy",
	})
}
