// Package registrytest writes registries to disk for tests.
package registrytest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pak/internal/adapters/registry"
	"go.trai.ch/pak/internal/core/domain"
)

// Package describes one package record to write into a registry.
type Package struct {
	Name string
	UUID string
	Repo string

	// Versions maps a version to its git-tree-sha1.
	Versions map[string]string
	// Deps maps a version range to {dependency name -> dependency uuid}.
	Deps map[string]map[string]string
	// Compat maps a version range to {dependency name -> range}.
	Compat map[string]map[string]string
}

// Registry is a registry directory under a depot.
type Registry struct {
	t    testing.TB
	Dir  string
	file registry.RegistryFile
}

// New creates an empty registry named name in depot.
func New(t testing.TB, depot, name string) *Registry {
	t.Helper()
	r := &Registry{
		t:   t,
		Dir: filepath.Join(domain.RegistriesPath(depot), name),
		file: registry.RegistryFile{
			Name:     name,
			Packages: make(map[string]registry.PackageRef),
		},
	}
	require.NoError(t, os.MkdirAll(r.Dir, domain.DirPerm))
	r.write(registry.RegistryFileName, r.file)
	return r
}

// Add writes p into the registry and updates the registry index.
func (r *Registry) Add(p Package) *Registry {
	r.t.Helper()

	rel := filepath.Join(p.Name[:1], p.Name)
	r.file.Packages[p.UUID] = registry.PackageRef{Name: p.Name, Path: filepath.ToSlash(rel)}
	r.write(registry.RegistryFileName, r.file)

	r.write(filepath.Join(rel, registry.PackageFileName), registry.PackageFile{
		Name: p.Name,
		UUID: p.UUID,
		Repo: p.Repo,
	})

	versions := make(registry.VersionsFile, len(p.Versions))
	for v, sha := range p.Versions {
		versions[v] = registry.VersionEntry{TreeSHA1: sha}
	}
	r.write(filepath.Join(rel, registry.VersionsFileName), versions)

	if p.Deps != nil {
		r.write(filepath.Join(rel, registry.DepsFileName), p.Deps)
	}
	if p.Compat != nil {
		r.write(filepath.Join(rel, registry.CompatFileName), p.Compat)
	}
	return r
}

func (r *Registry) write(rel string, v any) {
	r.t.Helper()
	data, err := toml.Marshal(v)
	require.NoError(r.t, err)
	path := filepath.Join(r.Dir, rel)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(r.t, os.WriteFile(path, data, domain.FilePerm))
}
