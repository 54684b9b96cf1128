// Package web - store injection middleware
//
// EDUCATIONAL NOTES:
// ------------------
// Middleware in Go HTTP servers wraps handlers to add cross-cutting
// concerns. Context-based dependency injection is a common pattern:
//
// 1. Outer middleware injects dependencies into the request context
// 2. Handlers retrieve dependencies from the context when needed
// 3. Inner middleware can require dependencies and fail fast if missing
//
// This keeps handlers decoupled from global state and makes testing
// easier: a test can mount the same handlers over a different store.

package web

import (
	"context"
	"net/http"
)

// contextKey is a custom type for context keys to avoid collisions with
// other packages that might use the same string key.
type contextKey string

// storeKey is the context key for the index store.
const storeKey contextKey = "store"

// WithStore returns middleware that injects the index store into the
// request context. Handlers retrieve it with GetStore.
func WithStore(store *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), storeKey, store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetStore retrieves the index store from the request context. Returns
// nil if the middleware was not applied.
func GetStore(r *http.Request) *Store {
	store, ok := r.Context().Value(storeKey).(*Store)
	if !ok {
		return nil
	}
	return store
}

// RequireStore ensures a store is present in the request context and
// fails the request with 500 otherwise, so handlers never have to
// nil-check.
func RequireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetStore(r) == nil {
			http.Error(w, "Index not available", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r)
	})
}
