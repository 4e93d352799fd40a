package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/reelkeep/reelkeep/internal/config"
	"github.com/reelkeep/reelkeep/internal/metadata"
	"github.com/reelkeep/reelkeep/internal/repository"
	"github.com/reelkeep/reelkeep/internal/version"
)

// Enricher is the outbound metadata lookup consulted by the search and
// backfill handlers.
type Enricher interface {
	SearchByTitle(title string) *metadata.Result
	SearchByIMDBID(imdbID string) *metadata.Result
}

type Server struct {
	config   *config.Config
	movies   repository.MovieStore
	users    repository.UserStore
	enricher Enricher
	validate *validator.Validate
	router   *http.ServeMux
	version  string

	limiterMu     sync.Mutex
	loginLimiters map[string]*rate.Limiter
}

func NewServer(cfg *config.Config, movies repository.MovieStore, users repository.UserStore, enricher Enricher) *Server {
	s := &Server{
		config:        cfg,
		movies:        movies,
		users:         users,
		enricher:      enricher,
		validate:      validator.New(),
		router:        http.NewServeMux(),
		version:       version.Load().Version,
		loginLimiters: make(map[string]*rate.Limiter),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /health", s.handleHealth)

	s.router.HandleFunc("POST /auth/login", s.handleLogin)

	s.router.HandleFunc("GET /movies", s.handleListMovies)
	s.router.HandleFunc("POST /movies", s.handleCreateMovie)

	// Literal segments must be registered before the {id} wildcard so
	// /movies/search and friends do not match as ids.
	s.router.HandleFunc("GET /movies/search", s.handleSearchMovie)
	s.router.HandleFunc("GET /movies/search/imdb", s.handleSearchMovieByIMDB)
	s.router.HandleFunc("GET /movies/filter", s.handleFilterMovies)
	s.router.HandleFunc("GET /movies/stats", s.handleMovieStats)

	s.router.HandleFunc("GET /movies/{id}", s.handleGetMovie)
	s.router.HandleFunc("PUT /movies/{id}", s.handleUpdateMovie)
	s.router.HandleFunc("DELETE /movies/{id}", s.handleDeleteMovie)
	s.router.HandleFunc("GET /movies/{id}/enhanced", s.handleEnhancedMovie)
}

// ServeHTTP applies the global middleware chain: security headers → CORS →
// request logging → routes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler := s.securityHeadersMiddleware(s.corsMiddleware(s.loggingMiddleware(s.router)))
	handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

// ──────────────────── Middleware ────────────────────

func (s *Server) securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %s %d %s", requestID[:8], r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// loginLimiter returns the per-IP limiter for the login endpoint, roughly
// five attempts a minute.
func (s *Server) loginLimiter(ip string) *rate.Limiter {
	s.limiterMu.Lock()
	defer s.limiterMu.Unlock()
	l, ok := s.loginLimiters[ip]
	if !ok {
		l = rate.NewLimiter(rate.Every(12*time.Second), 5)
		s.loginLimiters[ip] = l
	}
	return l
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx > 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx > 0 {
		return addr[:idx]
	}
	return addr
}

// ──────────────────── Helpers ────────────────────

func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, map[string]string{"error": message})
}
