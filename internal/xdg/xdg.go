// ABOUTME: XDG Base Directory Specification support for Linux/Unix standards
// ABOUTME: Handles config, data, and cache directories with HOME fallback

package xdg

import (
	"os"
	"path/filepath"
	"strings"
)

// ConfigHome returns ~/.config/unity-bridge or respects XDG_CONFIG_HOME.
func ConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "unity-bridge")
	}
	home := getHome()
	return filepath.Join(home, ".config", "unity-bridge")
}

// DataHome returns ~/.local/share/unity-bridge or respects XDG_DATA_HOME.
func DataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "unity-bridge")
	}
	home := getHome()
	return filepath.Join(home, ".local", "share", "unity-bridge")
}

// CacheHome returns ~/.cache/unity-bridge or respects XDG_CACHE_HOME.
func CacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "unity-bridge")
	}
	home := getHome()
	return filepath.Join(home, ".cache", "unity-bridge")
}

// ExpandPath expands $XDG_* variables and ~ in config paths.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(getHome(), path[2:])
	}

	if strings.HasPrefix(path, "$XDG_DATA_HOME") {
		xdgData := os.Getenv("XDG_DATA_HOME")
		if xdgData == "" {
			xdgData = filepath.Join(getHome(), ".local", "share")
		}
		return strings.Replace(path, "$XDG_DATA_HOME", xdgData, 1)
	}
	if strings.HasPrefix(path, "$XDG_CONFIG_HOME") {
		xdgConfig := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfig == "" {
			xdgConfig = filepath.Join(getHome(), ".config")
		}
		return strings.Replace(path, "$XDG_CONFIG_HOME", xdgConfig, 1)
	}
	if strings.HasPrefix(path, "$XDG_CACHE_HOME") {
		xdgCache := os.Getenv("XDG_CACHE_HOME")
		if xdgCache == "" {
			xdgCache = filepath.Join(getHome(), ".cache")
		}
		return strings.Replace(path, "$XDG_CACHE_HOME", xdgCache, 1)
	}

	// Non-XDG paths pass through unchanged
	return path
}

// getHome returns HOME with a fallback chain for stripped environments.
func getHome() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}

	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}

	return "."
}
