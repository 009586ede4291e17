package management

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scenebridge/unity-bridge/internal/config"
	"github.com/scenebridge/unity-bridge/internal/dispatch"
	"github.com/scenebridge/unity-bridge/internal/scene"
)

func newTestServer(t *testing.T) (*Server, *scene.Registry) {
	t.Helper()
	cfg := config.Default()
	registry := scene.NewRegistry("MgmtScene")
	return NewServer(cfg, registry, dispatch.New(registry), nil, func() int { return 3 }), registry
}

func TestHealthEndpoint(t *testing.T) {
	srv, registry := newTestServer(t)
	registry.Create(&scene.Object{Type: "CUBE", Active: true})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var health map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatal(err)
	}
	if health["status"] != "healthy" {
		t.Errorf("status = %v", health["status"])
	}
	if health["active_connections"] != float64(3) {
		t.Errorf("active_connections = %v", health["active_connections"])
	}
	if health["object_count"] != float64(1) {
		t.Errorf("object_count = %v", health["object_count"])
	}
}

func TestSceneEndpoint(t *testing.T) {
	srv, registry := newTestServer(t)
	registry.Create(&scene.Object{Type: "SPHERE", Name: "Ball", Active: true})

	req := httptest.NewRequest(http.MethodGet, "/api/scene", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var snap scene.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Name != "MgmtScene" || snap.ObjectCount != 1 || snap.Objects[0].Name != "Ball" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestMethodsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/methods", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var body struct {
		Methods []string `json:"methods"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Methods) != 29 {
		t.Errorf("method count = %d, want 29", len(body.Methods))
	}
}

func TestRequestsEndpointWithoutDatabase(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when logging is disabled", rec.Code)
	}
}

func TestConfigEndpointRejectsWrites(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/config", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d", rec.Code)
	}
}
