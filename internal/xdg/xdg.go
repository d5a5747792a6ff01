// Package xdg provides XDG Base Directory support for elmassets.
package xdg

import (
	"os"
	"path/filepath"
)

const appName = "elmassets"

// CacheHome returns the XDG cache home directory.
// Uses $XDG_CACHE_HOME if set, otherwise ~/.cache.
func CacheHome() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache")
}

// CacheDir returns the elmassets cache directory: CacheHome()/elmassets.
func CacheDir() string {
	return filepath.Join(CacheHome(), appName)
}

// ElmOutputDir is where compiled Elm modules are staged before esbuild
// picks them up.
func ElmOutputDir() string {
	return filepath.Join(CacheDir(), "elm")
}
