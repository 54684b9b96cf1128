package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/cabewaldrop/ordex/internal/index"
)

func setupTestServer(t *testing.T, order int) *httptest.Server {
	t.Helper()
	tree, err := index.New(order)
	if err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}

	srv := NewServer(0, NewStore(tree))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

// envelope mirrors APIResponse but keeps Data raw so each test can
// decode it into the expected shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp, env
}

func insertKey(t *testing.T, ts *httptest.Server, key int) InsertResponse {
	t.Helper()
	resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/keys", map[string]int{"key": key})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /api/keys (%d): expected 200, got %d (%s)", key, resp.StatusCode, env.Error)
	}
	var out InsertResponse
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("Failed to decode insert response: %v", err)
	}
	return out
}

func TestHealth(t *testing.T) {
	ts := setupTestServer(t, 4)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestInsertAndSearch(t *testing.T) {
	ts := setupTestServer(t, 3)

	out := insertKey(t, ts, 42)
	if !out.Inserted || out.Count != 1 || out.Height != 1 {
		t.Errorf("first insert: unexpected response %+v", out)
	}

	// Duplicate insert is a successful no-op.
	out = insertKey(t, ts, 42)
	if out.Inserted {
		t.Error("duplicate insert should report inserted=false")
	}
	if out.Count != 1 {
		t.Errorf("duplicate insert should not grow the tree, count=%d", out.Count)
	}

	resp, env := doJSON(t, http.MethodGet, ts.URL+"/api/keys/42", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/keys/42: expected 200, got %d", resp.StatusCode)
	}
	var sr SearchResponse
	if err := json.Unmarshal(env.Data, &sr); err != nil {
		t.Fatalf("Failed to decode search response: %v", err)
	}
	if !sr.Found || sr.Location == nil {
		t.Errorf("Search(42) should be found with a location, got %+v", sr)
	}

	// A miss is still a 200 with found=false.
	resp, env = doJSON(t, http.MethodGet, ts.URL+"/api/keys/7", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/keys/7: expected 200, got %d", resp.StatusCode)
	}
	sr = SearchResponse{}
	if err := json.Unmarshal(env.Data, &sr); err != nil {
		t.Fatalf("Failed to decode search response: %v", err)
	}
	if sr.Found || sr.Location != nil {
		t.Errorf("Search(7) should be a miss without location, got %+v", sr)
	}
}

func TestInsertRejectsBadRequests(t *testing.T) {
	ts := setupTestServer(t, 3)

	// Missing key field.
	resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/keys", map[string]int{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing key: expected 400, got %d", resp.StatusCode)
	}
	if env.Success || env.Error == "" {
		t.Errorf("missing key: expected error envelope, got %+v", env)
	}

	// Malformed body.
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/keys", bytes.NewBufferString("{not json"))
	raw, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer raw.Body.Close()
	if raw.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed body: expected 400, got %d", raw.StatusCode)
	}
}

func TestSearchRejectsNonIntegerKey(t *testing.T) {
	ts := setupTestServer(t, 3)

	resp, env := doJSON(t, http.MethodGet, ts.URL+"/api/keys/banana", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	if env.Success {
		t.Error("expected an error envelope")
	}
}

func TestKeysAscending(t *testing.T) {
	ts := setupTestServer(t, 4)

	inserted := []int{50, 10, 90, 30, 70, 20}
	for _, k := range inserted {
		insertKey(t, ts, k)
	}

	resp, env := doJSON(t, http.MethodGet, ts.URL+"/api/keys", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/keys: expected 200, got %d", resp.StatusCode)
	}
	var kr KeysResponse
	if err := json.Unmarshal(env.Data, &kr); err != nil {
		t.Fatalf("Failed to decode keys response: %v", err)
	}

	if kr.Count != len(inserted) {
		t.Errorf("expected %d keys, got %d", len(inserted), kr.Count)
	}
	if !sort.IntsAreSorted(kr.Keys) {
		t.Errorf("keys should be ascending, got %v", kr.Keys)
	}
}

func TestLevelsAndValidate(t *testing.T) {
	ts := setupTestServer(t, 3)
	for i := 1; i <= 20; i++ {
		insertKey(t, ts, i)
	}

	_, env := doJSON(t, http.MethodGet, ts.URL+"/api/levels", nil)
	var lr LevelsResponse
	if err := json.Unmarshal(env.Data, &lr); err != nil {
		t.Fatalf("Failed to decode levels response: %v", err)
	}
	if len(lr.Levels) == 0 || lr.Levels[0].Depth != 0 || len(lr.Levels[0].Nodes) != 1 {
		t.Errorf("levels should start with a single root node, got %+v", lr.Levels)
	}

	_, env = doJSON(t, http.MethodGet, ts.URL+"/api/validate", nil)
	var rep index.Report
	if err := json.Unmarshal(env.Data, &rep); err != nil {
		t.Fatalf("Failed to decode validate response: %v", err)
	}
	if !rep.Valid {
		t.Errorf("tree should validate: %s", rep.Message)
	}
	if rep.LeafLevel != len(lr.Levels)-1 {
		t.Errorf("leaf level %d should match deepest dumped level %d", rep.LeafLevel, len(lr.Levels)-1)
	}
}

func TestClear(t *testing.T) {
	ts := setupTestServer(t, 4)
	for i := 0; i < 50; i++ {
		insertKey(t, ts, i)
	}

	resp, env := doJSON(t, http.MethodDelete, ts.URL+"/api/keys", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("DELETE /api/keys: expected 200, got %d", resp.StatusCode)
	}
	var stats StatsResponse
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("Failed to decode stats response: %v", err)
	}
	if stats.Count != 0 || stats.Height != 0 {
		t.Errorf("after clear: expected empty tree, got %+v", stats)
	}

	_, env = doJSON(t, http.MethodGet, ts.URL+"/api/keys", nil)
	var kr KeysResponse
	if err := json.Unmarshal(env.Data, &kr); err != nil {
		t.Fatalf("Failed to decode keys response: %v", err)
	}
	if kr.Count != 0 {
		t.Errorf("after clear: expected 0 keys, got %d", kr.Count)
	}
}

func TestConcurrentInserts(t *testing.T) {
	// The tree is single-threaded; the Store must serialize access so
	// concurrent HTTP clients cannot corrupt it.
	ts := setupTestServer(t, 4)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				body, _ := json.Marshal(map[string]int{"key": base*50 + i})
				resp, err := http.Post(ts.URL+"/api/keys", "application/json", bytes.NewReader(body))
				if err == nil {
					resp.Body.Close()
				}
			}
		}(w)
	}
	wg.Wait()

	_, env := doJSON(t, http.MethodGet, ts.URL+"/api/validate", nil)
	var rep index.Report
	if err := json.Unmarshal(env.Data, &rep); err != nil {
		t.Fatalf("Failed to decode validate response: %v", err)
	}
	if !rep.Valid {
		t.Fatalf("tree invalid after concurrent inserts: %s", rep.Message)
	}

	_, env = doJSON(t, http.MethodGet, ts.URL+"/api/stats", nil)
	var stats StatsResponse
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("Failed to decode stats response: %v", err)
	}
	if want := 8 * 50; stats.Count != want {
		t.Errorf("expected %d keys after concurrent inserts, got %d", want, stats.Count)
	}
}
