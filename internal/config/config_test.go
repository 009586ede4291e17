package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  tcp_port: 9090
  read_timeout_seconds: 30
database:
  path: "/tmp/test-bridge.db"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Server.TCPPort != 9090 {
		t.Errorf("expected tcp_port 9090, got %d", cfg.Server.TCPPort)
	}
	if cfg.Server.ReadTimeoutSeconds != 30 {
		t.Errorf("expected read_timeout 30, got %d", cfg.Server.ReadTimeoutSeconds)
	}
	if cfg.Database.Path != "/tmp/test-bridge.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "scene:\n  name: Demo\n"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Server.TCPPort != 8080 {
		t.Errorf("default tcp_port = %d, want 8080", cfg.Server.TCPPort)
	}
	if cfg.Server.ReadBufferBytes != 4096 {
		t.Errorf("default read_buffer_bytes = %d, want 4096", cfg.Server.ReadBufferBytes)
	}
	if cfg.Server.MaxConnections != 64 {
		t.Errorf("default max_connections = %d, want 64", cfg.Server.MaxConnections)
	}
	if cfg.Scene.Name != "Demo" {
		t.Errorf("scene name = %q", cfg.Scene.Name)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad port", "server:\n  tcp_port: -1\n"},
		{"bad buffer", "server:\n  read_buffer_bytes: 0\n"},
		{"bad connection cap", "server:\n  max_connections: 0\n"},
	}

	for _, tc := range cases {
		if _, err := Load(writeConfig(t, tc.content)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.TCPPort != 8080 {
		t.Errorf("tcp_port = %d", cfg.Server.TCPPort)
	}
	if cfg.Server.WebSocketPort != 0 || cfg.Server.ManagementPort != 0 {
		t.Error("optional transports should default to disabled")
	}
	if cfg.Database.Path == "" {
		t.Error("database path should have a default")
	}
}

func TestExpandsXDGDatabasePath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	cfg, err := Load(writeConfig(t, "database:\n  path: \"$XDG_DATA_HOME/unity-bridge/bridge.db\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.Path != "/tmp/xdg-data/unity-bridge/bridge.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
}
