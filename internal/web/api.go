// Package web - JSON API endpoints for the index inspector.

package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cabewaldrop/ordex/internal/index"
)

// ============================================================================
// API Request/Response Types
// ============================================================================

// APIResponse wraps all API responses with success/error info.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// InsertRequest is the body for key insertion. Key is a pointer so a
// missing field is distinguishable from an explicit zero.
type InsertRequest struct {
	Key *int `json:"key"`
}

// InsertResponse reports the outcome of an insertion.
type InsertResponse struct {
	Key      int  `json:"key"`
	Inserted bool `json:"inserted"`
	Count    int  `json:"count"`
	Height   int  `json:"height"`
}

// KeysResponse is the full ascending key dump.
type KeysResponse struct {
	Keys  []int `json:"keys"`
	Count int   `json:"count"`
}

// SearchResponse reports a point lookup. Location is present only on a
// hit; a miss is a successful response with Found=false, not an error.
type SearchResponse struct {
	Key      int             `json:"key"`
	Found    bool            `json:"found"`
	Location *index.Location `json:"location,omitempty"`
}

// LevelsResponse is the breadth-first diagnostic dump.
type LevelsResponse struct {
	Levels []index.Level `json:"levels"`
}

// StatsResponse summarizes the tree.
type StatsResponse struct {
	Order  int `json:"order"`
	Count  int `json:"count"`
	Height int `json:"height"`
}

// ============================================================================
// Handlers
// ============================================================================

func handleInsert(w http.ResponseWriter, r *http.Request) {
	store := GetStore(r)

	var req InsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Key == nil {
		respondError(w, http.StatusBadRequest, "missing required field: key")
		return
	}

	inserted, count, height := store.Insert(*req.Key)
	respondData(w, http.StatusOK, InsertResponse{
		Key:      *req.Key,
		Inserted: inserted,
		Count:    count,
		Height:   height,
	})
}

func handleKeys(w http.ResponseWriter, r *http.Request) {
	keys := GetStore(r).Keys()
	respondData(w, http.StatusOK, KeysResponse{Keys: keys, Count: len(keys)})
}

func handleSearch(w http.ResponseWriter, r *http.Request) {
	key, err := strconv.Atoi(chi.URLParam(r, "key"))
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("key must be an integer: %v", err))
		return
	}

	loc, found := GetStore(r).Search(key)
	resp := SearchResponse{Key: key, Found: found}
	if found {
		resp.Location = &loc
	}
	respondData(w, http.StatusOK, resp)
}

func handleClear(w http.ResponseWriter, r *http.Request) {
	store := GetStore(r)
	store.Clear()

	order, count, height := store.Stats()
	respondData(w, http.StatusOK, StatsResponse{Order: order, Count: count, Height: height})
}

func handleLevels(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, LevelsResponse{Levels: GetStore(r).Levels()})
}

func handleValidate(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, GetStore(r).Validate())
}

func handleStats(w http.ResponseWriter, r *http.Request) {
	order, count, height := GetStore(r).Stats()
	respondData(w, http.StatusOK, StatsResponse{Order: order, Count: count, Height: height})
}

// ============================================================================
// Response helpers
// ============================================================================

func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, APIResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, APIResponse{Success: false, Error: msg})
}

func respondJSON(w http.ResponseWriter, status int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers are already out; nothing useful left to send.
		fmt.Printf("failed to encode response: %v\n", err)
	}
}
