// Package server exposes the conversion pipeline over HTTP.
//
// The API accepts provider analysis documents and returns finished canvas
// JSON, so remote callers get the same output as the CLI without shipping
// files around:
//
//	POST /v1/convert/flow       flow analysis JSON -> canvas JSON
//	POST /v1/convert/structure  structure tree JSON -> canvas JSON
//	GET  /healthz               liveness probe
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mfreire/canvasflow/pkg/canvas"
	"github.com/mfreire/canvasflow/pkg/errors"
	"github.com/mfreire/canvasflow/pkg/pipeline"
)

// maxBodyBytes caps request bodies; analysis documents are small.
const maxBodyBytes = 10 << 20

// shutdownTimeout bounds graceful shutdown on context cancellation.
const shutdownTimeout = 10 * time.Second

// Server handles conversion requests.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server around a pipeline runner. A nil logger falls back
// to the package default.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler builds the HTTP routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.health)

	r.Route("/v1/convert", func(r chi.Router) {
		r.Post("/flow", s.convert(pipeline.KindFlow))
		r.Post("/structure", s.convert(pipeline.KindStructure))
	})

	return r
}

// Run serves on addr until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

// convert returns the handler for one diagram kind. The response is the
// canvas in interchange format; ?pretty=1 switches to tab-indented output.
func (s *Server) convert(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read request body"))
			return
		}

		opts := pipeline.Options{
			Kind:       kind,
			Entrypoint: r.URL.Query().Get("entrypoint"),
			Logger:     s.logger,
		}
		c, err := s.runner.Convert(body, opts)
		if err != nil {
			s.writeError(w, err)
			return
		}

		var data []byte
		if r.URL.Query().Get("pretty") != "" {
			data, err = canvas.Marshal(c)
		} else {
			data, err = canvas.MarshalCompact(c)
		}
		if err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "failed to serialize canvas"))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}
}

// errorResponse is the wire shape of an error reply.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// writeError maps structured error codes onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch {
	case strings.HasPrefix(string(code), "INVALID_"):
		status = http.StatusBadRequest
	case strings.HasSuffix(string(code), "NOT_FOUND"):
		status = http.StatusNotFound
	}

	s.logger.Error("request failed", "code", code, "err", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:  string(code),
		Error: errors.UserMessage(err),
	})
}

// logRequests logs one line per request with method, path, status and
// duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
