// Package identity resolves the name, content hash and mirrors of resolved packages.
package identity

import (
	"context"
	"fmt"
	"slices"

	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver reads package identity from every registry that records a package.
type Resolver struct {
	registry ports.RegistryIndex
	logger   ports.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(registry ports.RegistryIndex, logger ports.Logger) *Resolver {
	return &Resolver{
		registry: registry,
		logger:   logger,
	}
}

// Resolve returns the identity of every package in resolved.
// Registries disagreeing on a name is fatal. Disagreeing on a hash is a warning and the first hash wins.
func (r *Resolver) Resolve(ctx context.Context, resolved domain.ResolvedSet) (map[domain.PackageUUID]domain.Identity, error) {
	out := make(map[domain.PackageUUID]domain.Identity, len(resolved))
	for _, id := range resolved.UUIDs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ident, err := r.resolveOne(id, resolved[id])
		if err != nil {
			return nil, err
		}
		out[id] = ident
	}
	return out, nil
}

func (r *Resolver) resolveOne(id domain.PackageUUID, version domain.Version) (domain.Identity, error) {
	var (
		name      string
		urls      []string
		hash      domain.ContentHash
		hashFound bool
	)

	for _, loc := range r.registry.Locations(id) {
		pkg, err := r.registry.Package(loc)
		if err != nil {
			return domain.Identity{}, zerr.With(err, "uuid", id.String())
		}
		switch {
		case name == "":
			name = pkg.Name
		case pkg.Name != name:
			err := zerr.With(domain.ErrNameMismatch, "uuid", id.String())
			err = zerr.With(err, "name", name)
			err = zerr.With(err, "other_name", pkg.Name)
			return domain.Identity{}, zerr.With(err, "registry", loc.Registry)
		}
		if pkg.Repo != "" {
			urls = append(urls, pkg.Repo)
		}

		hashes, err := r.registry.Versions(loc)
		if err != nil {
			return domain.Identity{}, zerr.With(err, "uuid", id.String())
		}
		h, ok := hashes[version]
		if !ok {
			continue
		}
		if !hashFound {
			hash, hashFound = h, true
			continue
		}
		if h != hash {
			r.logger.Warn(fmt.Sprintf("hash mismatch for %s@%s in registry %s: using %s, ignoring %s",
				name, version, loc.Registry, hash, h))
		}
	}

	if !hashFound {
		err := zerr.With(domain.ErrHashNotFound, "package", name)
		err = zerr.With(err, "uuid", id.String())
		return domain.Identity{}, zerr.With(err, "version", version.String())
	}

	slices.Sort(urls)
	return domain.Identity{
		ID:      domain.NewPackageID(name, id),
		Version: version,
		Hash:    hash,
		URLs:    slices.Compact(urls),
	}, nil
}
