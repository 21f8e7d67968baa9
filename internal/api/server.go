// Package api provides the HTTP API server and handlers for the LaTateni
// application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/latateni/latateni-server/internal/ai"
	"github.com/latateni/latateni-server/internal/auth"
	"github.com/latateni/latateni-server/internal/http/response"
	"github.com/latateni/latateni-server/internal/live"
	"github.com/latateni/latateni-server/internal/ratelimit"
	"github.com/latateni/latateni-server/internal/service"
	"github.com/latateni/latateni-server/internal/sse"
	"github.com/latateni/latateni-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           *store.Store
	tokens          *auth.TokenService
	authService     *service.AuthService
	adminService    *service.AdminService
	playerService   *service.PlayerService
	exerciseService *service.ExerciseService
	programService  *service.ProgramService
	theoryService   *service.TheoryService
	assistant       *ai.Assistant
	liveManager     *live.Manager
	sseHandler      *sse.Handler
	loginLimiter    *ratelimit.KeyedRateLimiter
	router          *chi.Mux
	logger          *slog.Logger
}

// ServerDeps bundles the dependencies NewServer needs.
type ServerDeps struct {
	Store           *store.Store
	Tokens          *auth.TokenService
	AuthService     *service.AuthService
	AdminService    *service.AdminService
	PlayerService   *service.PlayerService
	ExerciseService *service.ExerciseService
	ProgramService  *service.ProgramService
	TheoryService   *service.TheoryService
	Assistant       *ai.Assistant
	LiveManager     *live.Manager
	SSEHandler      *sse.Handler
	Logger          *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(deps ServerDeps) *Server {
	s := &Server{
		store:           deps.Store,
		tokens:          deps.Tokens,
		authService:     deps.AuthService,
		adminService:    deps.AdminService,
		playerService:   deps.PlayerService,
		exerciseService: deps.ExerciseService,
		programService:  deps.ProgramService,
		theoryService:   deps.TheoryService,
		assistant:       deps.Assistant,
		liveManager:     deps.LiveManager,
		sseHandler:      deps.SSEHandler,
		// 10 login attempts per minute per IP, with a small burst.
		loginLimiter: ratelimit.New(10.0/60.0, 5),
		router:       chi.NewRouter(),
		logger:       deps.Logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public). Login is rate limited by client IP.
		r.Route("/auth", func(r chi.Router) {
			r.With(s.rateLimit(s.loginLimiter)).Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/logout", s.handleLogout)
		})

		// Everything else requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/sync/stream", s.sseHandler.ServeHTTP)

			r.Route("/players", func(r chi.Router) {
				r.Post("/", s.handleCreatePlayer)
				r.Get("/", s.handleListPlayers)
				r.Get("/export", s.handleExportPlayers)
				r.Get("/{id}", s.handleGetPlayer)
				r.Delete("/{id}", s.handleDeletePlayer)
				r.Post("/{id}/analyze", s.handleAnalyzePlayer)
				r.Post("/{id}/suggest-exercises", s.handleSuggestExercises)
			})

			r.Route("/exercises", func(r chi.Router) {
				r.Post("/", s.handleCreateExercise)
				r.Get("/", s.handleListExercises)
				r.Get("/{id}", s.handleGetExercise)
				r.Delete("/{id}", s.handleDeleteExercise)
			})

			r.Route("/programs", func(r chi.Router) {
				r.Post("/", s.handleCreateProgram)
				r.Post("/generate", s.handleGenerateProgram)
				r.Get("/", s.handleListPrograms)
				r.Get("/{id}", s.handleGetProgram)
				r.Delete("/{id}", s.handleDeleteProgram)
			})

			r.Route("/theory", func(r chi.Router) {
				r.Post("/", s.handleCreateTheory)
				r.Post("/draft", s.handleDraftTheory)
				r.Get("/", s.handleListTheory)
				r.Get("/tags", s.handleTheoryTags)
				r.Get("/{id}", s.handleGetTheory)
				r.Delete("/{id}", s.handleDeleteTheory)
			})

			r.Get("/ai/remaining", s.handleAIRemaining)

			// Admin endpoints.
			r.Route("/admin", func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Post("/coaches", s.handleCreateCoach)
				r.Get("/coaches", s.handleListCoaches)
			})
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}

// requestLogger logs each request through the application's slog logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
