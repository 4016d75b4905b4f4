// Package httpapi exposes the booking form over HTTP: place lookups, the
// search echo and the OpenAPI description.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/goliatone/go-bookingform/components/places"
	"github.com/goliatone/go-bookingform/internal/logger"
	"github.com/goliatone/go-bookingform/pkg/booking"
	"github.com/goliatone/go-bookingform/pkg/openapi"
	"github.com/goliatone/go-bookingform/pkg/render"
	"github.com/goliatone/go-bookingform/pkg/schema"
	"github.com/goliatone/go-bookingform/pkg/search"
)

const (
	maxBodyBytes  = 64 << 10
	maxPlaceLimit = 100
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	log         *logger.Logger
	def         schema.Definition
	hasDef      bool
	searcher    search.Searcher
	registry    *search.Registry
	placesOpts  []places.OptionFn
	limiter     *rate.Limiter
	description *openapi.Description
	renderers   *render.Registry
	now         func() time.Time
	newID       func() string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDefinition replaces the bundled booking form definition.
func WithDefinition(def schema.Definition) Option {
	return func(s *Server) {
		s.def = def
		s.hasDef = true
	}
}

// WithSearcher sets the fallback searcher handed to each form.
func WithSearcher(searcher search.Searcher) Option {
	return func(s *Server) {
		s.searcher = searcher
	}
}

// WithSearchRegistry provides the named searchers fields may reference.
func WithSearchRegistry(registry *search.Registry) Option {
	return func(s *Server) {
		s.registry = registry
	}
}

// WithPlacesOptions customises the places lookup handler.
func WithPlacesOptions(fns ...places.OptionFn) Option {
	return func(s *Server) {
		s.placesOpts = append(s.placesOpts, fns...)
	}
}

// WithRateLimit throttles place lookups with a token bucket. A zero burst
// disables the limit.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(s *Server) {
		if burst <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithDescription replaces the embedded OpenAPI description.
func WithDescription(desc *openapi.Description) Option {
	return func(s *Server) {
		if desc != nil {
			s.description = desc
		}
	}
}

// WithRenderers replaces the snapshot renderers.
func WithRenderers(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.renderers = registry
		}
	}
}

// WithNow injects the clock used by the forms.
func WithNow(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the form id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New builds a server with the bundled definition, OpenAPI description and
// renderers unless overridden.
func New(options ...Option) (*Server, error) {
	s := &Server{
		log:   logger.Discard(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	if !s.hasDef {
		def, err := schema.Default()
		if err != nil {
			return nil, fmt.Errorf("httpapi: %w", err)
		}
		s.def = def
	}
	if s.description == nil {
		desc, err := openapi.Default()
		if err != nil {
			return nil, fmt.Errorf("httpapi: %w", err)
		}
		s.description = desc
	}
	if s.renderers == nil {
		reg, err := render.NewDefaultRegistry()
		if err != nil {
			return nil, fmt.Errorf("httpapi: %w", err)
		}
		s.renderers = reg
	}
	return s, nil
}

// Routes returns the chi router serving the API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	placesOpts := append([]places.OptionFn{places.WithMaxLimit(maxPlaceLimit)}, s.placesOpts...)
	placesOpts = append(placesOpts, places.WithGuard(s.placesGuard()))
	component := places.New(placesOpts...)
	placesPath := component.Path("")
	lookup := component.Handler()

	r.With(s.validate).Get(placesPath, lookup.ServeHTTP)
	r.Head(placesPath, lookup.ServeHTTP)
	r.With(s.validate).Post("/api/search", s.handleSearch)
	r.Method(http.MethodGet, "/openapi.json", s.description.Handler())
	return r
}

func (s *Server) placesGuard() places.GuardFunc {
	guard := places.RateLimitGuard(s.limiter)
	return func(r *http.Request) error {
		err := guard(r)
		if err != nil {
			s.log.RateLimitExceeded(r.RemoteAddr, r.URL.Path)
		}
		return err
	}
}

type searchResponse struct {
	FormID string           `json:"form_id"`
	Data   booking.Snapshot `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = render.FormatJSON
		if negotiated, ok := s.renderers.Negotiate(r.Header.Get("Accept")); ok {
			format = negotiated.Name()
		}
	}

	var values map[string]json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&values); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode snapshot: %w", err))
		return
	}

	id := s.newID()
	log := s.log.WithRequestID(middleware.GetReqID(r.Context()))
	opts := []booking.Option{
		booking.WithID(id),
		booking.WithNow(s.now),
		booking.WithLogger(log.Logger),
	}
	if s.searcher != nil {
		opts = append(opts, booking.WithSearcher(s.searcher))
	}
	if s.registry != nil {
		opts = append(opts, booking.WithSearchRegistry(s.registry))
	}
	form, err := booking.New(s.def.Schema, opts...)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if err := form.Apply(values); err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	snap, err := form.Submit(r.Context())
	if err != nil {
		s.writeError(w, r, http.StatusServiceUnavailable, err)
		return
	}

	if format == render.FormatJSON {
		writeJSON(w, http.StatusOK, searchResponse{FormID: id, Data: snap})
		return
	}
	renderer, err := s.renderers.Get(format)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	out, err := renderer.Render(r.Context(), snap, render.RenderOptions{
		Title:  s.def.Title,
		Hidden: render.MergeHiddenFields(nil, render.FormID(id)),
	})
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType()+"; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, booking.ErrOutOfBounds),
		errors.Is(err, booking.ErrDateBeforeMinimum),
		errors.Is(err, booking.ErrInvalidDate),
		errors.Is(err, booking.ErrUnknownOption),
		errors.Is(err, booking.ErrEmptySelection):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) validate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.description.ValidateRequest(r); err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.WithRequestID(middleware.GetReqID(r.Context())).
			HTTPRequest(r.Method, r.URL.Path, ww.Status(), float64(time.Since(start).Milliseconds()), r.RemoteAddr)
	})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.log.WithRequestID(middleware.GetReqID(r.Context())).HTTPError(r.Method, r.URL.Path, status, err)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
