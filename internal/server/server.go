// Package server exposes one animated scene over HTTP.
//
// Every handler runs its scene access through the scene's [scene.Loop], so
// requests never race with the animation. Routes:
//
//	GET  /healthz
//	GET  /api/layouts                 kinds and the active layout
//	GET  /api/layouts/{kind}          target set of one layout
//	GET  /api/layouts/{kind}/render   Graphviz snapshot (?format=svg|png|dot&view=front|top|side)
//	PUT  /api/layout                  {"layout": "helix"}; 202 when switched, 204 when ignored
//	GET  /api/records                 loaded record set
//	GET  /api/objects                 live card transforms
//	POST /api/reload                  refetch records and rebuild the scene
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cardspace/pkg/cache"
	"github.com/matzehuels/cardspace/pkg/errors"
	"github.com/matzehuels/cardspace/pkg/layout"
	"github.com/matzehuels/cardspace/pkg/render/dot"
	"github.com/matzehuels/cardspace/pkg/scene"
)

// Options configures a Server.
type Options struct {
	// Cache stores rendered snapshots. Defaults to a null cache.
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// Server serves the HTTP API of one scene.
type Server struct {
	loop   *scene.Loop
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
	router chi.Router
}

// New returns a server for the scene run by loop.
func New(loop *scene.Loop, opts Options) *Server {
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Server{
		loop:   loop,
		cache:  opts.Cache,
		keyer:  opts.Keyer,
		logger: opts.Logger,
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/layouts", s.handleLayouts)
		r.Get("/layouts/{kind}", s.handleTargets)
		r.Get("/layouts/{kind}/render", s.handleRender)
		r.Put("/layout", s.handleChangeLayout)
		r.Get("/records", s.handleRecords)
		r.Get("/objects", s.handleObjects)
		r.Post("/reload", s.handleReload)
	})
	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, h http.Handler, readTimeout, writeTimeout time.Duration, logger *log.Logger) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusOf(err), map[string]any{
		"error": errors.UserMessage(err),
		"code":  errors.GetCode(err),
	})
}

func statusOf(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeUnknownLayout, errors.ErrCodeInvalidURL:
		return http.StatusBadRequest
	case errors.ErrCodeNetwork, errors.ErrCodeUpstream:
		return http.StatusBadGateway
	}
	if err == context.DeadlineExceeded || err == context.Canceled {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// kindParam resolves the {kind} route parameter.
func kindParam(r *http.Request) (layout.Kind, error) {
	name := chi.URLParam(r, "kind")
	kind, ok := layout.ParseKind(name)
	if !ok {
		return "", errors.New(errors.ErrCodeNotFound, "unknown layout %q", name)
	}
	return kind, nil
}

var _ http.Handler = (*Server)(nil)

// dotFormats maps render formats to response content types.
var dotFormats = map[string]string{
	dot.FormatSVG: "image/svg+xml",
	dot.FormatPNG: "image/png",
	dot.FormatDOT: "text/vnd.graphviz",
}
