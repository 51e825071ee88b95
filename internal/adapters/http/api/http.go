// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/okian/pxpstats/internal/adapters/http/swagger"
	service "github.com/okian/pxpstats/internal/app"
	"github.com/okian/pxpstats/internal/domain/query"
	"github.com/okian/pxpstats/internal/domain/types"
	"github.com/okian/pxpstats/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Page parses and validates the limit/offset query values.
	Page(values url.Values) (query.Page, error)
	Events(ctx context.Context, f query.Filter, p query.Page) (types.EventPage, error)

	Teams(ctx context.Context) ([]string, error)
	TeamStats(ctx context.Context) ([]types.TeamAggregate, error)
	TeamDetail(ctx context.Context, team string) (types.TeamDetail, error)
	TeamAverages(ctx context.Context, team string) (types.TeamAverages, error)

	Players(ctx context.Context, team string) ([]types.PlayerAggregate, error)
	PlayerDetail(ctx context.Context, player string) (types.PlayerDetail, error)

	Games(ctx context.Context) ([]types.Game, error)
	GameDetail(ctx context.Context, date, team string) (types.GameDetail, error)
}

// Server wires HTTP routes for the stats API.
type Server struct {
	deps Dependencies

	corsOrigins  []string
	rateRequests int
	rateWindow   time.Duration
	logger       logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCORSOrigins sets the browser origins allowed to call the API.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithRateLimit caps requests per client IP under /api. A non-positive
// count disables limiting.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(s *Server) {
		s.rateRequests = requests
		s.rateWindow = window
	}
}

// NewServer creates a new API server over deps.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:       deps,
		rateWindow: time.Minute,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the routed handler with the middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDWithLogging)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.corsMiddleware())
	r.Use(MetricsMiddleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, msgRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, msgMethod)
	})

	r.Get("/", handleRoot)
	r.Get("/healthz", HandleHealth)
	swagger.Register(r)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.rateLimitMiddleware())

		r.Get("/events", s.handleEvents)

		r.Get("/teams", s.handleTeams)
		r.Get("/teams/stats", s.handleTeamStats)
		r.Get("/teams/{team_name}", s.handleTeamDetail)
		r.Get("/teams/{team_name}/averages", s.handleTeamAverages)

		r.Get("/players", s.handlePlayers)
		r.Get("/players/{player_name}", s.handlePlayerDetail)

		r.Get("/games", s.handleGames)
		r.Get("/games/{date}/{team}", s.handleGameDetail)
	})

	return r
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// fail translates err into a response: validation errors are the caller's
// mistake and echo their message, not-found maps to notFound, anything else
// is logged in full and answered with the fixed failure message.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, notFound, failure string) {
	var verr *query.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrNotFound) && notFound != "":
		writeError(w, http.StatusNotFound, notFound)
	default:
		s.logger.Error(r.Context(), failure,
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Error(err))
		writeError(w, http.StatusInternalServerError, failure)
	}
}

// pathParam returns a decoded route parameter. chi matches against the raw
// path when the request carried escapes the default encoding would not use.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}
