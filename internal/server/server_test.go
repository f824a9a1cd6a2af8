package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/locle27/Koyeb-Booking-sub000/internal/config"
	"github.com/locle27/Koyeb-Booking-sub000/internal/db"
	"github.com/locle27/Koyeb-Booking-sub000/internal/interactions"
	"github.com/locle27/Koyeb-Booking-sub000/internal/knowledge"
	"github.com/locle27/Koyeb-Booking-sub000/internal/logging"
	"github.com/locle27/Koyeb-Booking-sub000/internal/rag"
)

func setupTestServer(t *testing.T, cfg config.ServerConfig) *Server {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	history := interactions.NewStore(database)
	core := rag.NewCoreEngine(rag.Options{
		RAG:          config.DefaultConfig().RAG,
		Knowledge:    knowledge.NewStore(database),
		Interactions: history,
		Seed:         knowledge.DefaultCatalog(),
	})
	if err := core.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return New(cfg, rag.API{Engine: core, Core: core, History: history}, logging.Discard())
}

func TestHealthCheck(t *testing.T) {
	srv := setupTestServer(t, config.ServerConfig{})

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %v", body["status"])
	}
	if body["engine"] != "core" {
		t.Errorf("expected core engine, got %v", body["engine"])
	}
	if body["entries"] != float64(12) {
		t.Errorf("expected 12 entries, got %v", body["entries"])
	}
}

func TestConciergeRoutesMounted(t *testing.T) {
	srv := setupTestServer(t, config.ServerConfig{})

	req := httptest.NewRequest("POST", "/api/concierge/ask", strings.NewReader(`{"query":"wifi network password streaming support"}`))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "118HangBac_Guest") {
		t.Errorf("expected wifi answer, got %s", w.Body.String())
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := setupTestServer(t, config.ServerConfig{AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestCORSRestrictedByDefault(t *testing.T) {
	srv := setupTestServer(t, config.ServerConfig{})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no Allow-Origin for foreign origin, got %q", got)
	}
}

func TestCORSPreflightAllowsPut(t *testing.T) {
	srv := setupTestServer(t, config.ServerConfig{AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/api/backlog/abc/status", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatal("expected PUT preflight to be allowed")
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "PUT") {
		t.Errorf("expected PUT in Allow-Methods, got %q", got)
	}
}
