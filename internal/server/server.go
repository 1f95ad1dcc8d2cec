// Package server exposes the technique database, generator and analyzer
// over HTTP for the web UI and other clients.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vampirenirmal/roteiro/internal/analyzer"
	"github.com/vampirenirmal/roteiro/internal/config"
	"github.com/vampirenirmal/roteiro/internal/generator"
	"github.com/vampirenirmal/roteiro/internal/storage"
	"github.com/vampirenirmal/roteiro/internal/techniques"
)

type Server struct {
	cfg      *config.Config
	db       *techniques.Database
	gen      *generator.Generator
	analyzer *analyzer.Analyzer
	store    storage.Storage
	log      *slog.Logger
	router   *gin.Engine
}

func New(cfg *config.Config, db *techniques.Database, gen *generator.Generator, an *analyzer.Analyzer, store storage.Storage, log *slog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		db:       db,
		gen:      gen,
		analyzer: an,
		store:    store,
		log:      log,
	}
	s.router = s.buildRouter()
	return s
}

// Router exposes the gin engine, mainly for httptest.
func (s *Server) Router() *gin.Engine { return s.router }

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(loggingMiddleware(s.log))
	r.Use(corsMiddleware())
	r.Use(rateLimitMiddleware(s.cfg.Server.RateLimit.RequestsPerMinute, s.cfg.Server.RateLimit.BurstSize))

	api := r.Group("/api")
	{
		api.GET("/options", s.handleOptions)
		api.GET("/structure", s.handleStructure)
		api.GET("/search", s.handleSearch)
		api.GET("/recommendations/:niche", s.handleRecommendations)
		api.GET("/validate", s.handleValidate)
		api.GET("/stats", s.handleStats)
		api.GET("/export", s.handleExport)

		api.POST("/generate", s.handleGenerate)
		api.POST("/generate/variations", s.handleGenerateVariations)
		api.POST("/analyze", s.handleAnalyze)
		api.POST("/analyze/batch", s.handleAnalyzeBatch)
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}
