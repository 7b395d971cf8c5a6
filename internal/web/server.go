package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ivnamo/isoVisor/internal/exports"
	"github.com/ivnamo/isoVisor/internal/records"
	"github.com/ivnamo/isoVisor/internal/report"
	"github.com/ivnamo/isoVisor/internal/session"
	"github.com/ivnamo/isoVisor/internal/shared/middleware"
)

// Options tunes the HTTP server.
type Options struct {
	Port            int
	Encoding        report.Encoding
	ShutdownTimeout time.Duration

	// Metrics serves GET /metrics when set.
	Metrics http.Handler
}

type Server struct {
	router   *http.ServeMux
	opts     Options
	sessions *session.Registry
	records  *records.Service
	exports  *exports.Service
	logger   *zap.Logger
}

func NewServer(
	opts Options,
	sessions *session.Registry,
	rs *records.Service,
	es *exports.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Encoding == "" {
		opts.Encoding = report.DefaultEncoding
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	s := &Server{
		router:   http.NewServeMux(),
		opts:     opts,
		sessions: sessions,
		records:  rs,
		exports:  es,
		logger:   logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.opts.Metrics != nil {
		s.router.Handle("GET /metrics", s.opts.Metrics)
	}

	// Register page
	s.router.HandleFunc("GET /{$}", s.withSession(s.handleRegister))
	s.router.HandleFunc("POST /trials", s.withSession(s.handleAddTrial))
	s.router.HandleFunc("POST /api/recipe/preview", s.handleRecipePreview)

	// Session table
	s.router.HandleFunc("POST /table/import", s.withSession(s.handleImport))
	s.router.HandleFunc("POST /table/clear", s.withSession(s.handleClear))
	s.router.HandleFunc("GET /table/export", s.withSession(s.handleTableExport))

	// Viewer and reports
	s.router.HandleFunc("GET /viewer", s.withSession(s.handleViewer))
	s.router.HandleFunc("GET /reports/csv", s.withSession(s.handleReportCSV))
	s.router.HandleFunc("GET /reports/xlsx", s.withSession(s.handleReportWorkbook))
}

// Handler is the router with the request middleware applied.
func (s *Server) Handler() http.Handler {
	return middleware.HTMX(middleware.Logging(s.logger)(s.router))
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.opts.Port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting server", zap.String("url", fmt.Sprintf("http://localhost:%d", s.opts.Port)))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown", zap.Error(err))
		}
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
