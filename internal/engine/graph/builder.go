// Package graph builds the availability graph consumed by the version solver.
package graph

import (
	"context"
	"maps"
	"slices"

	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder walks the registries from a set of root packages until every reachable package is known.
type Builder struct {
	registry ports.RegistryIndex
	runtime  domain.RuntimeConfig
}

// NewBuilder creates a Builder that filters versions by compatibility with runtime.
func NewBuilder(registry ports.RegistryIndex, runtime domain.RuntimeConfig) *Builder {
	return &Builder{
		registry: registry,
		runtime:  runtime,
	}
}

// Build returns the availability graph of ids and everything they may depend on.
// Every dependency target in the result is a key of the result.
func (b *Builder) Build(ctx context.Context, ids []domain.PackageUUID) (domain.AvailabilityGraph, error) {
	g := make(domain.AvailabilityGraph)
	seen := domain.NewSet()
	frontier := unseen(ids, seen)

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var referenced []domain.PackageUUID
		for _, id := range frontier {
			seen.Add(id)
			deps, err := b.addPackage(g, id)
			if err != nil {
				return nil, err
			}
			referenced = append(referenced, deps...)
		}

		// New uuids may live in registries that were not known before this pass.
		all := slices.Collect(maps.Keys(seen))
		domain.SortUUIDs(all)
		if err := b.registry.Locate(ctx, all); err != nil {
			return nil, zerr.Wrap(err, "failed to locate registries")
		}

		frontier = unseen(referenced, seen)
	}

	return g, nil
}

// addPackage records every compatible version of id and returns the dependency uuids it references.
func (b *Builder) addPackage(g domain.AvailabilityGraph, id domain.PackageUUID) ([]domain.PackageUUID, error) {
	versions := make(map[domain.Version]domain.VersionInfo)
	g[id] = versions

	var referenced []domain.PackageUUID
	for _, loc := range b.registry.Locations(id) {
		hashes, err := b.registry.Versions(loc)
		if err != nil {
			return nil, zerr.With(err, "uuid", id.String())
		}
		deps, err := b.registry.Dependencies(loc)
		if err != nil {
			return nil, zerr.With(err, "uuid", id.String())
		}
		compat, err := b.registry.Compatibility(loc)
		if err != nil {
			return nil, zerr.With(err, "uuid", id.String())
		}

		for _, v := range sortedVersions(hashes) {
			if _, exists := versions[v]; exists {
				continue
			}

			info, ok, err := b.versionInfo(v, hashes[v], deps, compat)
			if err != nil {
				err = zerr.With(err, "uuid", id.String())
				return nil, zerr.With(err, "registry", loc.Registry)
			}
			if !ok {
				continue
			}

			versions[v] = info
			for dep := range info.Deps {
				referenced = append(referenced, dep)
			}
		}
	}

	return referenced, nil
}

// versionInfo resolves the range tables for v. It reports false when v is incompatible with the runtime.
func (b *Builder) versionInfo(
	v domain.Version,
	hash domain.ContentHash,
	deps domain.DependencyTable,
	compat domain.CompatTable,
) (domain.VersionInfo, bool, error) {
	vdeps, err := deps.ForVersion(v)
	if err != nil {
		return domain.VersionInfo{}, false, err
	}
	vcompat, err := compat.ForVersion(v)
	if err != nil {
		return domain.VersionInfo{}, false, err
	}

	if spec, ok := vcompat[b.runtime.Name]; ok && !spec.Contains(b.runtime.Version) {
		return domain.VersionInfo{}, false, nil
	}

	info := domain.VersionInfo{
		Hash: hash,
		Deps: make(map[domain.PackageUUID]domain.VersionSpec, len(vdeps)),
	}
	for name, dep := range vdeps {
		spec, ok := vcompat[name]
		if !ok {
			spec = domain.AnySpec
		}
		info.Deps[dep] = spec
	}
	return info, true, nil
}

func unseen(ids []domain.PackageUUID, seen domain.Set) []domain.PackageUUID {
	pending := domain.NewSet()
	var out []domain.PackageUUID
	for _, id := range ids {
		if seen.Has(id) || !pending.Add(id) {
			continue
		}
		out = append(out, id)
	}
	domain.SortUUIDs(out)
	return out
}

func sortedVersions(hashes map[domain.Version]domain.ContentHash) []domain.Version {
	versions := slices.Collect(maps.Keys(hashes))
	slices.SortFunc(versions, func(a, b domain.Version) int {
		return a.Compare(b)
	})
	return versions
}
