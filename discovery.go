// FILE: wordfence/config/discovery.go
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions configures automatic config file discovery
type FileDiscoveryOptions struct {
	// Base name of config file (without extension)
	Name string

	// Directory name below each XDG config directory
	AppDir string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths, searched before the defaults
	Paths []string

	// Environment variable to check for explicit path
	EnvVar string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		AppDir:        appName,
		Extensions:    []string{".ini", ".toml", ".yaml", ".yml", ".json"},
		EnvVar:        strings.ToUpper(strings.ReplaceAll(appName, "-", "_")) + "_CONFIG",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// Discover locates a configuration file. explicit is true when the path came
// from the environment variable, in which case a missing file is an error for
// the caller. No file found yields an empty path.
func Discover(opts FileDiscoveryOptions) (path string, explicit bool) {
	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path, true
		}
	}

	var searchPaths []string
	searchPaths = append(searchPaths, opts.Paths...)

	if opts.UseXDG {
		appDir := opts.AppDir
		if appDir == "" {
			appDir = opts.Name
		}
		searchPaths = append(searchPaths, getXDGConfigPaths(appDir)...)
	}

	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}

	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			candidate := filepath.Join(dir, opts.Name+ext)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, false
			}
		}
	}

	return "", false
}

// getXDGConfigPaths returns XDG-compliant config search paths
func getXDGConfigPaths(appDir string) []string {
	var paths []string

	// XDG_CONFIG_HOME
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appDir))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appDir))
	}

	// XDG_CONFIG_DIRS
	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appDir))
		}
	} else {
		paths = append(paths, filepath.Join("/etc/xdg", appDir))
	}

	return paths
}
