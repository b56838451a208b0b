package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/graphdraw/pkg/cache"
	"github.com/matzehuels/graphdraw/pkg/settings"
)

func newTestServer(t *testing.T, c cache.Cache) http.Handler {
	t.Helper()
	if c == nil {
		c = cache.NewNullCache()
	}
	return newServer(newRenderer(c, cache.NewScopedKeyer(nil, "test:"), quietLogger()), settings.Defaults(), quietLogger()).routes()
}

func post(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Server"), "graphdraw/") {
		t.Errorf("Server = %q", rec.Header().Get("Server"))
	}
	if _, err := uuid.Parse(rec.Header().Get("X-Request-ID")); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID", rec.Header().Get("X-Request-ID"))
	}
}

func TestHealthzReportsCacheOutage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	h := newTestServer(t, fc)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 (%s)", rec.Code, rec.Body)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["code"] != "UNAVAILABLE" {
		t.Errorf("code = %q, want UNAVAILABLE", body["code"])
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	h := newTestServer(t, nil)
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}
}

func TestServeRenderDOT(t *testing.T) {
	h := newTestServer(t, nil)
	rec := post(t, h, "/v1/render/dot?ticks=10&seed=7&mode=components", pathDoc)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("X-Cache") != "miss" {
		t.Errorf("X-Cache = %q, want miss", rec.Header().Get("X-Cache"))
	}
	if !strings.Contains(rec.Body.String(), `"b" -- "c"`) {
		t.Errorf("body missing edge:\n%s", rec.Body)
	}
}

func TestServeRenderCaches(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := newTestServer(t, fc)

	first := post(t, h, "/v1/render/json?ticks=5", pathDoc)
	second := post(t, h, "/v1/render/json?ticks=5", pathDoc)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("status = %d, %d", first.Code, second.Code)
	}
	if second.Header().Get("X-Cache") != "hit" {
		t.Errorf("second X-Cache = %q, want hit", second.Header().Get("X-Cache"))
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached body differs")
	}
}

func TestServeRenderErrors(t *testing.T) {
	h := newTestServer(t, nil)
	tests := []struct {
		name   string
		target string
		body   string
		status int
		code   string
	}{
		{"unknown format", "/v1/render/gif", pathDoc, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad json", "/v1/render/svg", "{", http.StatusBadRequest, "INVALID_FORMAT"},
		{"no test cases", "/v1/render/svg", `{"testCases": {}}`, http.StatusBadRequest, "INVALID_GRAPH"},
		{"bad ticks", "/v1/render/svg?ticks=many", pathDoc, http.StatusBadRequest, "INVALID_INPUT"},
		{"too many ticks", "/v1/render/svg?ticks=1000000", pathDoc, http.StatusBadRequest, "INVALID_INPUT"},
		{"small canvas", "/v1/render/svg?width=10", pathDoc, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown mode", "/v1/render/svg?mode=spiral", pathDoc, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if body["code"] != tt.code {
				t.Errorf("code = %q, want %q", body["code"], tt.code)
			}
			if body["request"] == "" {
				t.Error("error body should carry the request id")
			}
		})
	}
}

func TestServeRejectsContentType(t *testing.T) {
	h := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/render/svg", strings.NewReader(pathDoc))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", rec.Code)
	}
}

func TestServeAnalyze(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := newTestServer(t, fc)

	rec := post(t, h, "/v1/analyze", pathDoc)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if rec.Header().Get("X-Cache") != "miss" {
		t.Errorf("X-Cache = %q, want miss", rec.Header().Get("X-Cache"))
	}
	var r report
	if err := json.Unmarshal(rec.Body.Bytes(), &r); err != nil {
		t.Fatal(err)
	}
	if r.Nodes != 3 || r.Edges != 2 || r.TestCases != 1 {
		t.Errorf("report = %+v", r)
	}

	again := post(t, h, "/v1/analyze", pathDoc)
	if again.Header().Get("X-Cache") != "hit" {
		t.Errorf("second X-Cache = %q, want hit", again.Header().Get("X-Cache"))
	}

	directed := post(t, h, "/v1/analyze?directed=true", pathDoc)
	if directed.Header().Get("X-Cache") != "miss" {
		t.Error("directed analysis should not reuse the undirected entry")
	}
	if err := json.Unmarshal(directed.Body.Bytes(), &r); err != nil {
		t.Fatal(err)
	}
	if !r.Directed || r.StronglyConnected != 3 {
		t.Errorf("directed report = %+v, want 3 strongly connected components", r)
	}
}
