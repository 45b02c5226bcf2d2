package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/neekaru/whatsapp-group-gateway/internal/app"
	"github.com/neekaru/whatsapp-group-gateway/internal/config"
	"github.com/neekaru/whatsapp-group-gateway/pkg/logger"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the id assigned to each request
const RequestIDHeader = "X-Request-ID"

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	app    *app.App
	config *config.Config
	http   *http.Server
}

// NewServer creates a new server instance
func NewServer(app *app.App, config *config.Config) *Server {
	// Route gin's own output through the application logger
	gin.DefaultWriter = logger.GetWriter(app.Logger, zerolog.DebugLevel)
	gin.DefaultErrorWriter = logger.GetWriter(app.Logger, zerolog.ErrorLevel)

	r := gin.New()
	r.Use(requestLogger(app.Logger))
	r.Use(gin.CustomRecovery(recovery(app.Logger)))
	r.Use(cors.New(config.GetCorsConfig()))

	s := &Server{
		router: r,
		app:    app,
		config: config,
	}
	s.http = &http.Server{
		Addr:              ":" + config.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router returns the gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server in the background
func (s *Server) Start() error {
	go func() {
		s.app.Logger.Info().Str("port", s.config.ServerPort).Msg("WhatsApp group gateway listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.app.Logger.Error().Err(err).Msg("Server error")
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.app.Logger.Info().Msg("Shutting down server...")
	if err := s.http.Shutdown(ctx); err != nil {
		s.app.Logger.Error().Err(err).Msg("Server forced to shutdown")
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.app.Logger.Info().Msg("Server exited")
	return nil
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = log.Error()
		case status >= http.StatusBadRequest:
			event = log.Warn()
		}

		event.
			Str("requestId", id).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client", c.ClientIP()).
			Msg("Request handled")
	}
}

func recovery(log zerolog.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		log.Error().
			Interface("panic", recovered).
			Str("requestId", c.Writer.Header().Get(RequestIDHeader)).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
