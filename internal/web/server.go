// Package web provides the HTTP inspector for the ordered index.
//
// EDUCATIONAL NOTES:
// ------------------
// This package sets up an HTTP server using the chi router, which is a
// lightweight, idiomatic Go router. Key concepts:
//
// 1. Middleware: Functions that wrap handlers to add cross-cutting
//    concerns like request IDs, logging, panic recovery and timeouts.
//
// 2. Graceful shutdown: When the server receives a termination signal,
//    it stops accepting new connections but finishes processing
//    in-flight requests before shutting down.
//
// 3. Dependency injection: The index store is passed into the server and
//    injected into the request context, so handlers stay free of global
//    state.
//
// The inspector is a diagnostic surface over the index's operation
// contract — insert, search, traverse, level-order dump, validate — not
// a storage protocol. Nothing here changes the tree's semantics.

package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP inspector for one index store.
type Server struct {
	router *chi.Mux
	port   int
	store  *Store
}

// NewServer creates an inspector bound to the given port and store.
func NewServer(port int, store *Store) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// RequestID: Adds a unique ID to each request for tracing
	r.Use(middleware.RequestID)
	// RealIP: Extracts the real client IP from X-Forwarded-For headers
	r.Use(middleware.RealIP)
	// Logger: Logs each request (method, path, duration)
	r.Use(middleware.Logger)
	// Recoverer: Catches panics in handlers, logs stack trace, returns 500
	r.Use(middleware.Recoverer)
	// Timeout: Cancels request context after 30 seconds
	r.Use(middleware.Timeout(30 * time.Second))

	s := &Server{
		router: r,
		port:   port,
		store:  store,
	}

	s.routes()
	return s
}

// routes sets up all HTTP routes for the inspector.
func (s *Server) routes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(WithStore(s.store))
		r.Use(RequireStore)

		r.Post("/keys", handleInsert)
		r.Get("/keys", handleKeys)
		r.Delete("/keys", handleClear)
		r.Get("/keys/{key}", handleSearch)
		r.Get("/levels", handleLevels)
		r.Get("/validate", handleValidate)
		r.Get("/stats", handleStats)
	})
}

// Router returns the chi router for testing purposes.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until shutdown. It handles
// graceful shutdown on SIGTERM and SIGINT.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to receive shutdown signals
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Channel to receive server errors
	errChan := make(chan error, 1)

	go func() {
		fmt.Printf("Inspector listening on port %d\n", s.port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-done:
		fmt.Println("\nShutdown signal received, gracefully shutting down...")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	fmt.Println("Server stopped")
	return nil
}

// handleHealth is a simple liveness endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}
