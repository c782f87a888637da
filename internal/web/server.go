// Package web is the JSON presentation surface over the inventory service.
// It owns no invariants: it sources the active user once per request, passes
// it down explicitly, and maps service failure kinds to HTTP statuses.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/GrandCart/PantryPlus2/internal/blobstore"
	"github.com/GrandCart/PantryPlus2/internal/domain"
	"github.com/GrandCart/PantryPlus2/internal/service"
)

// identityControl is the subset of the identity provider the web surface
// requires.
type identityControl interface {
	CurrentUser() *domain.UserProfile
	SignIn(user domain.UserProfile)
	SignOut()
}

type Server struct {
	service  *service.InventoryService
	identity identityControl
	blobs    blobstore.BlobStore
	mux      *http.ServeMux
	logger   *slog.Logger
}

func NewServer(svc *service.InventoryService, id identityControl, blobs blobstore.BlobStore, logger *slog.Logger) *Server {
	s := &Server{
		service:  svc,
		identity: id,
		blobs:    blobs,
		mux:      http.NewServeMux(),
		logger:   logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /session", s.handleGetSession)
	s.mux.HandleFunc("POST /session", s.handleSignIn)
	s.mux.HandleFunc("DELETE /session", s.handleSignOut)

	s.mux.HandleFunc("GET /items", s.handleListItems)
	s.mux.HandleFunc("GET /items/expiring", s.handleExpiring)
	s.mux.HandleFunc("GET /items/expired", s.handleExpired)
	s.mux.HandleFunc("POST /items", s.handleAddItem)
	s.mux.HandleFunc("PUT /items/{id}", s.handleUpdateItem)
	s.mux.HandleFunc("DELETE /items/{id}", s.handleDeleteItem)

	s.mux.HandleFunc("GET /images/{key...}", s.handleGetImage)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}
