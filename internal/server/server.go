// Package server exposes the registration form over HTTP: a server-rendered
// page, per-field blur and change endpoints used by the browser runtime, and
// a JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus"

	regform "github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/registration"
)

const (
	sessionCookie = "regform_session"
	csrfField     = "_csrf"
	sessionField  = "_session"
	csrfHeader    = "X-CSRF-Token"

	fieldsEndpoint        = "/fields"
	defaultSuccessMessage = "Thanks for registering!"
	defaultSessionTTL     = 30 * time.Minute
)

// Option configures the server.
type Option func(*config)

type config struct {
	logger     log15.Logger
	sessionTTL time.Duration
	formOpts   []form.Option
	submit     form.SubmitFunc[registration.FormRecord]
	orchOpts   []orchestrator.Option
	registry   *prometheus.Registry
}

// WithLogger attaches a logger.
func WithLogger(logger log15.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSessionTTL sets the idle lifetime of a form session.
func WithSessionTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.sessionTTL = ttl
		}
	}
}

// WithFormOptions forwards options to every controller the server creates.
func WithFormOptions(opts ...form.Option) Option {
	return func(c *config) {
		c.formOpts = append(c.formOpts, opts...)
	}
}

// WithSubmitHandler replaces the default logging submit handler.
func WithSubmitHandler(fn form.SubmitFunc[registration.FormRecord]) Option {
	return func(c *config) {
		if fn != nil {
			c.submit = fn
		}
	}
}

// WithOrchestratorOptions forwards options (UI schema, theme) to the
// orchestrator rendering the page.
func WithOrchestratorOptions(opts ...orchestrator.Option) Option {
	return func(c *config) {
		c.orchOpts = append(c.orchOpts, opts...)
	}
}

// WithMetricsRegistry registers the counters on registry instead of a
// private one.
func WithMetricsRegistry(registry *prometheus.Registry) Option {
	return func(c *config) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// Server serves the registration form.
type Server struct {
	orch     *orchestrator.Orchestrator
	sessions *sessionStore
	metrics  *metrics
	logger   log15.Logger
	formOpts []form.Option
	submit   form.SubmitFunc[registration.FormRecord]
	ttl      time.Duration
	router   chi.Router
}

// New builds the server and its routes.
func New(opts ...Option) *Server {
	cfg := config{
		logger:     logging.Discard(),
		sessionTTL: defaultSessionTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = prometheus.NewRegistry()
	}
	if cfg.submit == nil {
		cfg.submit = regform.LogSubmission(cfg.logger)
	}

	orchOpts := append([]orchestrator.Option{orchestrator.WithLogger(cfg.logger)}, cfg.orchOpts...)
	orchOpts = append(orchOpts, orchestrator.WithUIDecorators(model.DecoratorFunc(decorateEndpoints)))

	s := &Server{
		orch:     orchestrator.New(orchOpts...),
		sessions: newSessionStore(cfg.sessionTTL),
		metrics:  newMetrics(cfg.registry),
		logger:   cfg.logger,
		formOpts: cfg.formOpts,
		submit:   cfg.submit,
		ttl:      cfg.sessionTTL,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
// within shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, readHeaderTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleForm)
	r.Post("/", s.handleSubmit)
	r.Post(fieldsEndpoint+"/{field}/change", s.handleFieldEvent(form.TriggerChange))
	r.Post(fieldsEndpoint+"/{field}/blur", s.handleFieldEvent(form.TriggerBlur))
	r.Post("/api/register", s.handleAPIRegister)
	r.Get("/openapi.json", s.handleOpenAPI)
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(regform.RuntimeAssetsFS())))
	r.Handle("/metrics", s.metrics.handler)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) newController() *form.Controller[registration.FormRecord] {
	opts := append([]form.Option{
		form.WithLogger(s.logger),
		form.WithObserver(s.metrics.observe),
	}, s.formOpts...)
	return form.New(registration.Schema(), opts...).OnSubmit(s.submit)
}

// decorateEndpoints points the form at this server.
func decorateEndpoints(fm *model.FormModel) error {
	fm.Endpoint = "/"
	fm.Method = http.MethodPost
	metadata := make(map[string]string, len(fm.Metadata)+1)
	for key, value := range fm.Metadata {
		metadata[key] = value
	}
	metadata[model.MetadataFieldsEndpoint] = fieldsEndpoint
	fm.Metadata = metadata
	if fm.SuccessMessage == "" {
		fm.SuccessMessage = defaultSuccessMessage
	}
	return nil
}
