package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vampirenirmal/roteiro/internal/analyzer"
	"github.com/vampirenirmal/roteiro/internal/config"
	"github.com/vampirenirmal/roteiro/internal/generator"
	"github.com/vampirenirmal/roteiro/internal/storage"
	"github.com/vampirenirmal/roteiro/internal/techniques"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := techniques.NewDatabase(techniques.WithLogger(log))
	return New(
		config.Default(),
		db,
		generator.New(db, generator.WithLogger(log)),
		analyzer.New(analyzer.WithLogger(log)),
		storage.NewFileSystem(t.TempDir()),
		log,
	)
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return resp
}

func TestOptionsEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/options", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	if !resp.Success {
		t.Fatal("success = false")
	}
	data := resp.Data.(map[string]any)
	for _, key := range []string{"hooks", "structures", "patterns", "niches", "tones", "audiences"} {
		if _, ok := data[key]; !ok {
			t.Errorf("options missing %q", key)
		}
	}
}

func TestStructureEndpoint(t *testing.T) {
	s := newTestServer(t)

	t.Run("known techniques", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet,
			"/api/structure?niche=tecnologia&hook=curiosity_gap&structure=problem_solution&duration=8&topic=Python", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]any)
		meta := data["metadata"].(map[string]any)
		if meta["topic"] != "Python" {
			t.Errorf("topic = %v", meta["topic"])
		}
	})

	t.Run("unknown hook is 404", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/structure?hook=nope", nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d", w.Code)
		}
		resp := decodeResponse(t, w)
		if resp.Error == nil || resp.Error.Code != "unknown_technique" {
			t.Errorf("error = %+v", resp.Error)
		}
	})

	t.Run("bad duration is 400", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/structure?duration=zero", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
	})
}

func TestSearchEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/search?q=curiosidade", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	w = doRequest(t, s, http.MethodGet, "/api/search", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing q: status = %d, want 400", w.Code)
	}

	w = doRequest(t, s, http.MethodGet, "/api/search?q=x&category=bogus", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad category: status = %d, want 400", w.Code)
	}
}

func TestGenerateEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := map[string]any{
		"topic":           "Como aprender Python",
		"niche":           "tecnologia",
		"hook_type":       "curiosity_gap",
		"structure_type":  "problem_solution",
		"target_duration": 8,
		"include_cta":     true,
	}

	t.Run("success", func(t *testing.T) {
		w := doRequest(t, s, http.MethodPost, "/api/generate", req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]any)
		if data["script_text"] == "" {
			t.Error("empty script text")
		}
		if _, ok := data["quality_score"]; !ok {
			t.Error("missing quality score")
		}
	})

	t.Run("unknown technique is 404", func(t *testing.T) {
		bad := map[string]any{}
		for k, v := range req {
			bad[k] = v
		}
		bad["hook_type"] = "nope"
		w := doRequest(t, s, http.MethodPost, "/api/generate", bad)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
	})

	t.Run("missing fields is 400", func(t *testing.T) {
		w := doRequest(t, s, http.MethodPost, "/api/generate", map[string]any{"topic": "x"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
	})
}

func TestGenerateVariationsEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := map[string]any{
		"topic":           "Como crescer no YouTube",
		"niche":           "educacao",
		"hook_type":       "question_direct",
		"structure_type":  "list_format",
		"target_duration": 5,
	}

	w := doRequest(t, s, http.MethodPost, "/api/generate/variations?count=2", req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]any)
	scripts := data["scripts"].([]any)
	if len(scripts) != 2 {
		t.Errorf("scripts = %d, want 2", len(scripts))
	}

	w = doRequest(t, s, http.MethodPost, "/api/generate/variations?count=50", req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("excessive count: status = %d, want 400", w.Code)
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/analyze", map[string]any{
		"text":     "Você já se perguntou por que isso acontece? Se inscreva no canal.",
		"video_id": "video-1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]any)
	if data["video_id"] != "video-1" {
		t.Errorf("video_id = %v", data["video_id"])
	}

	w = doRequest(t, s, http.MethodPost, "/api/analyze", map[string]any{"video_id": "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing text: status = %d, want 400", w.Code)
	}
}

func TestAnalyzeBatchEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/analyze/batch", map[string]any{
		"scripts": []map[string]string{
			{"id": "a", "text": "texto um."},
			{"id": "b", "text": "texto dois."},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]any)
	results := data["results"].([]any)
	if len(results) != 2 {
		t.Errorf("results = %d, want 2", len(results))
	}

	w = doRequest(t, s, http.MethodPost, "/api/analyze/batch", map[string]any{"scripts": []any{}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty batch: status = %d, want 400", w.Code)
	}
}

func TestValidateAndStatsEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/validate?hook=curiosity_gap&structure=problem_solution&niche=tecnologia", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("validate status = %d", w.Code)
	}
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]any)
	if data["valid"] != true {
		t.Errorf("valid = %v", data["valid"])
	}

	w = doRequest(t, s, http.MethodGet, "/api/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
}

func TestExportEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("export not JSON: %v", err)
	}
	for _, key := range []string{"hooks", "structures", "patterns"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("export missing %q", key)
		}
	}
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RateLimit.RequestsPerMinute = 60
	cfg.Server.RateLimit.BurstSize = 2

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := techniques.NewDatabase(techniques.WithLogger(log))
	s := New(cfg, db, generator.New(db, generator.WithLogger(log)), analyzer.New(analyzer.WithLogger(log)), storage.NewFileSystem(t.TempDir()), log)

	limited := false
	for i := 0; i < 5; i++ {
		w := doRequest(t, s, http.MethodGet, "/api/stats", nil)
		if w.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("rate limit never triggered")
	}
}
