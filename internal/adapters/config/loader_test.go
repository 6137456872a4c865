package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pak/internal/adapters/config"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/zerr"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.NewLoader(config.NewViper()).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectDir)
	assert.Equal(t, []string{domain.DefaultDepotPath()}, cfg.Depots)
	assert.Equal(t, domain.DefaultRuntimeName, cfg.Runtime.Name)
	assert.Equal(t, domain.MustParseVersion(domain.DefaultRuntimeVersion), cfg.Runtime.Version)
	assert.Equal(t, runtime.NumCPU(), cfg.Jobs)
	assert.Equal(t, uint64(domain.DefaultGitRetries), cfg.GitRetries)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
depots:
  - depot
  - /opt/pak
runtime:
  name: host
  version: "1.9"
jobs: 2
git:
  retries: 0
`)

	cfg, err := config.NewLoader(nil).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "depot"), "/opt/pak"}, cfg.Depots)
	assert.Equal(t, "host", cfg.Runtime.Name)
	assert.Equal(t, "1.9.0", cfg.Runtime.Version.String())
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, uint64(0), cfg.GitRetries, "an explicit zero disables retries")
}

func TestLoad_OverridesWinOverFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "jobs: 2\nruntime:\n  version: \"1.0\"\n")

	t.Setenv("PAK_JOBS", "7")
	t.Setenv("PAK_RUNTIME_VERSION", "1.4.2")

	v := config.NewViper()
	v.Set(config.KeyDepots, []string{"first", "second"})

	cfg, err := config.NewLoader(v).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Jobs)
	assert.Equal(t, "1.4.2", cfg.Runtime.Version.String())
	assert.Equal(t, []string{filepath.Join(dir, "first"), filepath.Join(dir, "second")}, cfg.Depots)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "malformed yaml", content: "jobs: [", want: "failed to parse config file"},
		{name: "bad runtime version", content: "runtime:\n  version: banana\n", want: "invalid version"},
		{name: "negative jobs", content: "jobs: -1\n", want: "failed to parse config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := config.NewLoader(nil).Load(dir)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoad_ErrorCarriesPath(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "depots: {")

	_, err := config.NewLoader(nil).Load(dir)
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	assert.Equal(t, filepath.Join(dir, domain.ConfigFileName), zErr.Metadata()["path"])
}
