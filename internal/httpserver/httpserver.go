// Package httpserver serves the health and metrics endpoints next to the bot.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/code-society-lab/grace/internal/version"
)

const shutdownTimeout = 5 * time.Second

// HealthFunc reports whether the bot is connected.
type HealthFunc func() bool

type Server struct {
	router *gin.Engine
	server *http.Server
}

// New builds the router. metrics is mounted at /metrics when non-nil.
func New(addr string, healthy HealthFunc, metrics http.Handler) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if healthy != nil && !healthy() {
			status, code = "disconnected", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"app":     version.AppName,
			"release": version.Release(),
		})
	})
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	return &Server{
		router: router,
		server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("HTTP request")
	}
}
