// Package manifest updates the project and lock file from resolved packages.
package manifest

import (
	"context"

	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
)

// Manager writes resolved packages into an in-memory environment.
type Manager struct {
	registry ports.RegistryIndex
}

// NewManager creates a new Manager.
func NewManager(registry ports.RegistryIndex) *Manager {
	return &Manager{registry: registry}
}

// Apply records requested as direct dependencies, updates the lock stanza of every
// identity and prunes the lock file to what the project reaches.
func (m *Manager) Apply(
	ctx context.Context,
	env *domain.Environment,
	requested []domain.PackageID,
	ids []domain.Identity,
) error {
	env.UpdateProject(requested)
	for _, id := range ids {
		if err := m.UpdateLockEntry(ctx, env, id.ID, id.Version, id.Hash); err != nil {
			return err
		}
	}
	env.Prune()
	return nil
}

// UpdateLockEntry sets version and hash on the stanza of id, creating it if needed.
// The dependency map is replaced by the first registry entry that lists dependencies
// for version; locations are not merged.
func (m *Manager) UpdateLockEntry(
	ctx context.Context,
	env *domain.Environment,
	id domain.PackageID,
	version domain.Version,
	hash domain.ContentHash,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry := env.Manifest.Upsert(id)
	entry.Version = version
	entry.Hash = hash
	entry.Deps = nil

	for _, loc := range m.registry.Locations(id.UUID) {
		table, err := m.registry.Dependencies(loc)
		if err != nil {
			return zerr.With(err, "package", id.Name.String())
		}
		deps, err := table.ForVersion(version)
		if err != nil {
			err = zerr.With(err, "package", id.Name.String())
			return zerr.With(err, "registry", loc.Registry)
		}
		if len(deps) > 0 {
			entry.Deps = deps
			break
		}
	}
	return nil
}
