// ABOUTME: Main entry point for the Unity bridge daemon
// ABOUTME: Loads configuration and starts the TCP, WebSocket, and management servers

package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/scenebridge/unity-bridge/internal/config"
	"github.com/scenebridge/unity-bridge/internal/db"
	"github.com/scenebridge/unity-bridge/internal/dispatch"
	"github.com/scenebridge/unity-bridge/internal/logger"
	"github.com/scenebridge/unity-bridge/internal/management"
	"github.com/scenebridge/unity-bridge/internal/scene"
	"github.com/scenebridge/unity-bridge/internal/server"
	"github.com/scenebridge/unity-bridge/internal/websocket"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when omitted)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	dumpConfig := flag.Bool("dump-config", false, "print the effective configuration as YAML and exit")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			logger.Error("failed to load config: %v", err)
			os.Exit(1)
		}
	} else {
		cfg = config.Default()
	}

	if *dumpConfig {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			logger.Error("failed to render config: %v", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
		return
	}

	logger.SetVerbose(*verbose || cfg.Log.Verbose)

	var database *db.DB
	if cfg.Database.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			logger.Error("failed to create database directory: %v", err)
			os.Exit(1)
		}
		database, err = db.Open(cfg.Database.Path)
		if err != nil {
			logger.Error("failed to open database: %v", err)
			os.Exit(1)
		}
		defer database.Close()
	}

	registry := scene.NewRegistry(cfg.Scene.Name)
	dispatcher := dispatch.New(registry)

	tcpSrv := server.New(cfg.Server, dispatcher, database)
	tcpAddr := fmt.Sprintf("%s:%d", cfg.Server.TCPHost, cfg.Server.TCPPort)
	if err := tcpSrv.Listen(tcpAddr); err != nil {
		logger.Error("failed to bind %s: %v", tcpAddr, err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Server.WebSocketPort > 0 {
		wsSrv := websocket.NewServer(dispatcher, database)
		wsAddr := fmt.Sprintf("%s:%d", cfg.Server.WebSocketHost, cfg.Server.WebSocketPort)
		go serveHTTP(ctx, "websocket", wsAddr, wsSrv)
	}

	if cfg.Server.ManagementPort > 0 {
		mgmtSrv := management.NewServer(cfg, registry, dispatcher, database, tcpSrv.ActiveConnections)
		mgmtAddr := fmt.Sprintf("%s:%d", cfg.Server.ManagementHost, cfg.Server.ManagementPort)
		go serveHTTP(ctx, "management", mgmtAddr, mgmtSrv)
	}

	if err := tcpSrv.Serve(ctx); err != nil {
		logger.Error("server error: %v", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func serveHTTP(ctx context.Context, name, addr string, handler http.Handler) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("failed to bind %s server on %s: %v", name, addr, err)
		return
	}
	logger.Info("%s server listening on %s", name, ln.Addr())

	srv := &http.Server{Handler: handler}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		logger.Warn("%s server stopped: %v", name, err)
	}
}
