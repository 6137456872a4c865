// Package domain contains the core domain models of the package manager.
package domain

import (
	"slices"
)

// VersionInfo is what the graph records for one version of a package.
type VersionInfo struct {
	// Hash is the content hash of the version's source tree.
	Hash ContentHash

	// Deps maps each dependency to the versions of it this version accepts.
	Deps map[PackageUUID]VersionSpec
}

// AvailabilityGraph maps every known package to its installable versions.
// Once built, every dependency target is itself a key.
type AvailabilityGraph map[PackageUUID]map[Version]VersionInfo

// Requirements maps packages to the versions the caller accepts.
type Requirements map[PackageUUID]VersionSpec

// ResolvedSet maps packages to the single version picked for each.
type ResolvedSet map[PackageUUID]Version

// UUIDs returns the requirement keys in sorted order.
func (r Requirements) UUIDs() []PackageUUID {
	ids := make([]PackageUUID, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	SortUUIDs(ids)
	return ids
}

// UUIDs returns the resolved packages in sorted order.
func (r ResolvedSet) UUIDs() []PackageUUID {
	ids := make([]PackageUUID, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	SortUUIDs(ids)
	return ids
}

// SortUUIDs sorts ids by their string form.
func SortUUIDs(ids []PackageUUID) {
	slices.SortFunc(ids, func(a, b PackageUUID) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
}

// Versions returns the versions available for id, newest first.
func (g AvailabilityGraph) Versions(id PackageUUID) []Version {
	versions := make([]Version, 0, len(g[id]))
	for v := range g[id] {
		versions = append(versions, v)
	}
	slices.SortFunc(versions, func(a, b Version) int {
		return b.Compare(a)
	})
	return versions
}

// Edges returns the union of dependency edges over all versions of each package.
func (g AvailabilityGraph) Edges() Edges {
	edges := make(Edges, len(g))
	for id, versions := range g {
		seen := NewSet()
		var deps []PackageUUID
		for _, info := range versions {
			for dep := range info.Deps {
				if seen.Add(dep) {
					deps = append(deps, dep)
				}
			}
		}
		edges[id] = deps
	}
	return edges
}

// Dangling returns dependency targets that are not keys of the graph.
func (g AvailabilityGraph) Dangling() []PackageUUID {
	missing := NewSet()
	for _, deps := range g.Edges() {
		for _, dep := range deps {
			if _, ok := g[dep]; !ok {
				missing.Add(dep)
			}
		}
	}
	out := make([]PackageUUID, 0, len(missing))
	for id := range missing {
		out = append(out, id)
	}
	SortUUIDs(out)
	return out
}

// Prune returns the subgraph reachable from roots. The receiver is not modified.
func (g AvailabilityGraph) Prune(roots []PackageUUID) AvailabilityGraph {
	keep := Closure(g.Edges(), roots, Forward)
	out := make(AvailabilityGraph, len(keep))
	for id := range keep {
		if versions, ok := g[id]; ok {
			out[id] = versions
		}
	}
	return out
}
