// ABOUTME: Configuration loading and management for the Unity bridge
// ABOUTME: Supports YAML files with defaults and XDG path expansion

package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/scenebridge/unity-bridge/internal/xdg"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Scene    SceneConfig    `mapstructure:"scene"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	TCPHost            string `mapstructure:"tcp_host"`
	TCPPort            int    `mapstructure:"tcp_port"`
	WebSocketHost      string `mapstructure:"websocket_host"`
	WebSocketPort      int    `mapstructure:"websocket_port"`
	ManagementHost     string `mapstructure:"management_host"`
	ManagementPort     int    `mapstructure:"management_port"`
	ReadBufferBytes    int    `mapstructure:"read_buffer_bytes"`
	ReadTimeoutSeconds int    `mapstructure:"read_timeout_seconds"`
	MaxConnections     int    `mapstructure:"max_connections"`
}

type SceneConfig struct {
	Name string `mapstructure:"name"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// Load reads a YAML config file and applies defaults. A missing file is an
// error; Default() covers the no-config case.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	cfg.Database.Path = xdg.ExpandPath(cfg.Database.Path)
	return &cfg, nil
}

// Default returns the configuration used when no file is given: the TCP
// port the original engine plugin listened on, with the optional transports
// disabled.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults always unmarshal into the struct they were written for.
		panic(fmt.Sprintf("default config: %v", err))
	}
	cfg.Database.Path = xdg.ExpandPath(cfg.Database.Path)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.tcp_host", "0.0.0.0")
	v.SetDefault("server.tcp_port", 8080)
	v.SetDefault("server.websocket_host", "0.0.0.0")
	v.SetDefault("server.websocket_port", 0)
	v.SetDefault("server.management_host", "127.0.0.1")
	v.SetDefault("server.management_port", 0)
	v.SetDefault("server.read_buffer_bytes", 4096)
	v.SetDefault("server.read_timeout_seconds", 300)
	v.SetDefault("server.max_connections", 64)
	v.SetDefault("scene.name", "SampleScene")
	v.SetDefault("database.path", "$XDG_DATA_HOME/unity-bridge/bridge.db")
	v.SetDefault("log.verbose", false)
}

func validate(cfg *Config) error {
	if cfg.Server.TCPPort <= 0 || cfg.Server.TCPPort > 65535 {
		return fmt.Errorf("invalid server.tcp_port: %d", cfg.Server.TCPPort)
	}
	if cfg.Server.ReadBufferBytes <= 0 {
		return fmt.Errorf("invalid server.read_buffer_bytes: %d", cfg.Server.ReadBufferBytes)
	}
	if cfg.Server.MaxConnections <= 0 {
		return fmt.Errorf("invalid server.max_connections: %d", cfg.Server.MaxConnections)
	}
	return nil
}
