package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftcoach/internal/coach"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc    *coach.Service
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves the API open (tsnet handles access).
func New(svc *coach.Service, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}

		r.Get("/view", s.handleView)
		r.Get("/events", s.handleEvents)

		r.Get("/plans", s.handleListPlans)
		r.Post("/plans", s.handleAddPlan)
		r.Route("/plans/{planID}", func(r chi.Router) {
			r.Patch("/", s.handleRenamePlan)
			r.Delete("/", s.handleDeletePlan)
			r.Post("/select", s.handleSelectPlan)
			r.Post("/exercises", s.handleAddExercise)
			r.Put("/exercises/{exerciseID}", s.handleUpdateExercise)
			r.Patch("/exercises/{exerciseID}", s.handleEditExercise)
			r.Delete("/exercises/{exerciseID}", s.handleDeleteExercise)
		})

		r.Get("/suggestions", s.handleGetSuggestions)
		r.Post("/suggestions", s.handleRequestSuggestions)
		r.Post("/suggestions/dismiss", s.handleDismissSuggestions)
	})
}

// SetMCP mounts a streamable-HTTP MCP handler at /mcp, behind the same API
// key check as the REST routes.
func (s *Server) SetMCP(h http.Handler) {
	if s.apiKey != "" {
		h = APIKeyAuth(s.apiKey)(h)
	}
	s.router.Handle("/mcp", h)
}
