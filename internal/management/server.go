// ABOUTME: Management API for health, config, and scene inspection
// ABOUTME: Read-only HTTP endpoints alongside the RPC transports

package management

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/scenebridge/unity-bridge/internal/config"
	"github.com/scenebridge/unity-bridge/internal/db"
	"github.com/scenebridge/unity-bridge/internal/dispatch"
	"github.com/scenebridge/unity-bridge/internal/scene"
)

type Server struct {
	config      *config.Config
	registry    *scene.Registry
	dispatcher  *dispatch.Dispatcher
	database    *db.DB
	activeConns func() int
	mux         *http.ServeMux
}

func NewServer(cfg *config.Config, registry *scene.Registry, dispatcher *dispatch.Dispatcher, database *db.DB, activeConns func() int) *Server {
	s := &Server{
		config:      cfg,
		registry:    registry,
		dispatcher:  dispatcher,
		database:    database,
		activeConns: activeConns,
		mux:         http.NewServeMux(),
	}

	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/config", s.handleConfig)
	s.mux.HandleFunc("/api/scene", s.handleScene)
	s.mux.HandleFunc("/api/methods", s.handleMethods)
	s.mux.HandleFunc("/api/requests", s.handleRequests)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	active := 0
	if s.activeConns != nil {
		active = s.activeConns()
	}
	health := map[string]interface{}{
		"status":             "healthy",
		"scene":              s.config.Scene.Name,
		"active_connections": active,
		"object_count":       s.registry.Snapshot().ObjectCount,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.config)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.registry.Snapshot())
}

func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"methods": s.dispatcher.Methods(),
	})
}

func (s *Server) handleRequests(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.database == nil {
		http.Error(w, "traffic logging disabled", http.StatusNotFound)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	messages, err := s.database.RecentMessages(limit)
	if err != nil {
		http.Error(w, "failed to query messages", http.StatusInternalServerError)
		return
	}

	type MessageResponse struct {
		ConnectionID string `json:"connectionId"`
		Direction    string `json:"direction"`
		Method       string `json:"method,omitempty"`
		RawMessage   string `json:"rawMessage"`
		Timestamp    string `json:"timestamp"`
	}

	response := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		response = append(response, MessageResponse{
			ConnectionID: m.ConnectionID,
			Direction:    string(m.Direction),
			Method:       m.Method,
			RawMessage:   m.RawMessage,
			Timestamp:    m.Timestamp.Format("2006-01-02 15:04:05"),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
