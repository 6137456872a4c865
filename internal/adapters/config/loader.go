// Package config loads the pak configuration from pak.yaml, flags and the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Keys looked up in viper. Nested keys map to PAK_RUNTIME_VERSION style variables.
const (
	KeyProject        = "project"
	KeyDepots         = "depots"
	KeyJobs           = "jobs"
	KeyRuntimeName    = "runtime.name"
	KeyRuntimeVersion = "runtime.version"
	KeyGitRetries     = "git.retries"
	KeyJSONLogs       = "json-logs"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PAK"

// NewViper returns a viper instance reading PAK_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	BindEnv(v)
	return v
}

// BindEnv makes v read PAK_* environment variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Loader implements ports.ConfigLoader. Values from pak.yaml are applied over the
// defaults, then every key set in viper overrides them.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a Loader reading overrides from v.
func NewLoader(v *viper.Viper) *Loader {
	return &Loader{v: v}
}

// Load resolves the configuration of the project in cwd.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", cwd)
	}

	cfg := domain.DefaultConfig(dir)

	file, err := readFile(filepath.Join(dir, domain.ConfigFileName))
	if err != nil {
		return nil, err
	}
	if file != nil {
		if err := applyFile(cfg, file); err != nil {
			return nil, err
		}
	}

	if err := l.applyOverrides(cfg); err != nil {
		return nil, err
	}

	if cfg.Jobs < 1 {
		return nil, zerr.With(domain.ErrConfigParseFailed, KeyJobs, cfg.Jobs)
	}
	if len(cfg.Depots) == 0 {
		return nil, domain.ErrNoDepots
	}
	return cfg, nil
}

// readFile returns nil when the file does not exist.
func readFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the project directory
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return &file, nil
}

func applyFile(cfg *domain.Config, file *File) error {
	if len(file.Depots) > 0 {
		cfg.Depots = resolvePaths(cfg.ProjectDir, file.Depots)
	}
	if file.Runtime != nil {
		if file.Runtime.Name != "" {
			cfg.Runtime.Name = file.Runtime.Name
		}
		if file.Runtime.Version != "" {
			v, err := domain.ParseVersion(file.Runtime.Version)
			if err != nil {
				return zerr.With(err, "key", KeyRuntimeVersion)
			}
			cfg.Runtime.Version = v
		}
	}
	if file.Jobs != 0 {
		cfg.Jobs = file.Jobs
	}
	if file.Git.Retries != nil {
		cfg.GitRetries = *file.Git.Retries
	}
	return nil
}

func (l *Loader) applyOverrides(cfg *domain.Config) error {
	if l.v == nil {
		return nil
	}
	if l.v.IsSet(KeyDepots) {
		if depots := l.v.GetStringSlice(KeyDepots); len(depots) > 0 {
			cfg.Depots = resolvePaths(cfg.ProjectDir, depots)
		}
	}
	if l.v.IsSet(KeyRuntimeName) {
		cfg.Runtime.Name = l.v.GetString(KeyRuntimeName)
	}
	if l.v.IsSet(KeyRuntimeVersion) {
		v, err := domain.ParseVersion(l.v.GetString(KeyRuntimeVersion))
		if err != nil {
			return zerr.With(err, "key", KeyRuntimeVersion)
		}
		cfg.Runtime.Version = v
	}
	if l.v.IsSet(KeyJobs) {
		cfg.Jobs = l.v.GetInt(KeyJobs)
	}
	if l.v.IsSet(KeyGitRetries) {
		cfg.GitRetries = l.v.GetUint64(KeyGitRetries)
	}
	return nil
}

// resolvePaths makes relative depot paths relative to the project directory.
func resolvePaths(base string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}
