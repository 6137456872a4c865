package domain

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// DefaultRuntimeName is the compatibility key naming the host runtime.
	DefaultRuntimeName = "runtime"

	// DefaultRuntimeVersion is the host runtime version checked against compatibility tables.
	DefaultRuntimeVersion = "1.0.0"

	// DefaultGitRetries is the number of retries for clone and fetch.
	DefaultGitRetries = 3
)

// Config is the resolved configuration of a pak invocation.
type Config struct {
	// Depots is the ordered list of depot roots. The first is the user depot.
	Depots []string

	// Runtime describes the host runtime for compatibility filtering.
	Runtime RuntimeConfig

	// Jobs bounds the number of parallel installs.
	Jobs int

	// GitRetries is the number of retries for clone and fetch.
	GitRetries uint64

	// ProjectDir is the directory holding Project.toml and Manifest.toml.
	ProjectDir string
}

// RuntimeConfig identifies the host runtime.
type RuntimeConfig struct {
	// Name is the reserved compatibility key for the runtime.
	Name string

	// Version is the runtime version.
	Version Version
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig(projectDir string) *Config {
	return &Config{
		Depots: []string{DefaultDepotPath()},
		Runtime: RuntimeConfig{
			Name:    DefaultRuntimeName,
			Version: MustParseVersion(DefaultRuntimeVersion),
		},
		Jobs:       runtime.NumCPU(),
		GitRetries: DefaultGitRetries,
		ProjectDir: projectDir,
	}
}

// DefaultDepotPath returns $HOME/.pak, or .pak when the home directory is unknown.
func DefaultDepotPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDepotDirName
	}
	return filepath.Join(home, DefaultDepotDirName)
}

