package domain

import (
	"maps"
	"slices"
	"strings"

	packageurl "github.com/package-url/packageurl-go"
)

// Project records the user's direct dependencies.
type Project struct {
	// Deps maps a package name to its uuid.
	Deps map[string]PackageUUID
}

// UUIDs returns the uuids of the direct dependencies in sorted order.
func (p Project) UUIDs() []PackageUUID {
	ids := make([]PackageUUID, 0, len(p.Deps))
	for _, id := range p.Deps {
		ids = append(ids, id)
	}
	SortUUIDs(ids)
	return ids
}

// LockEntry is one resolved package in the lock file.
type LockEntry struct {
	// UUID is the package identity.
	UUID PackageUUID

	// Version is the resolved version.
	Version Version

	// Hash is the content hash of the installed tree.
	Hash ContentHash

	// Deps maps each dependency name to its uuid. Nil when the version has none.
	Deps map[string]PackageUUID
}

// Manifest is the lock file: stanzas grouped by package name.
// A name holds several stanzas when distinct packages share it.
type Manifest map[string][]*LockEntry

// Entry returns the stanza for id, if present.
func (m Manifest) Entry(id PackageID) (*LockEntry, bool) {
	for _, entry := range m[id.Name.String()] {
		if entry.UUID == id.UUID {
			return entry, true
		}
	}
	return nil, false
}

// Upsert returns the stanza for id, appending a new one under its name if none exists.
func (m Manifest) Upsert(id PackageID) *LockEntry {
	if entry, ok := m.Entry(id); ok {
		return entry
	}
	name := id.Name.String()
	entry := &LockEntry{UUID: id.UUID}
	m[name] = append(m[name], entry)
	return entry
}

// ByUUID returns the name and stanza recorded for id.
func (m Manifest) ByUUID(id PackageUUID) (string, *LockEntry, bool) {
	for _, name := range slices.Sorted(maps.Keys(m)) {
		for _, entry := range m[name] {
			if entry.UUID == id {
				return name, entry, true
			}
		}
	}
	return "", nil, false
}

// Edges returns the dependency edges recorded in the lock file.
func (m Manifest) Edges() Edges {
	edges := make(Edges)
	for _, entries := range m {
		for _, entry := range entries {
			for _, dep := range entry.Deps {
				edges[entry.UUID] = append(edges[entry.UUID], dep)
			}
			if _, ok := edges[entry.UUID]; !ok {
				edges[entry.UUID] = nil
			}
		}
	}
	return edges
}

// Environment is the pair of project and lock file, mutated in memory and persisted once.
type Environment struct {
	Project  Project
	Manifest Manifest
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{
		Project:  Project{Deps: make(map[string]PackageUUID)},
		Manifest: make(Manifest),
	}
}

// UpdateProject records ids as direct dependencies. The last write for a name wins.
func (e *Environment) UpdateProject(ids []PackageID) {
	for _, id := range ids {
		e.Project.Deps[id.Name.String()] = id.UUID
	}
}

// Prune drops every stanza whose uuid is not reachable from the project over lock dependencies.
// Name groups left empty are removed.
func (e *Environment) Prune() {
	keep := Closure(e.Manifest.Edges(), e.Project.UUIDs(), Forward)
	for name, entries := range e.Manifest {
		kept := entries[:0]
		for _, entry := range entries {
			if keep.Has(entry.UUID) {
				kept = append(kept, entry)
			}
		}
		if len(kept) == 0 {
			delete(e.Manifest, name)
			continue
		}
		e.Manifest[name] = kept
	}
}

// DropDependents removes ids and every locked package that transitively depends on them
// from the project. It returns the full drop set.
func (e *Environment) DropDependents(ids []PackageUUID) Set {
	drop := Closure(e.Manifest.Edges(), ids, Reverse)
	for name, id := range e.Project.Deps {
		if drop.Has(id) {
			delete(e.Project.Deps, name)
		}
	}
	return drop
}

// LockedPackage is a read-only view of one lock stanza.
type LockedPackage struct {
	ID        PackageID
	Version   Version
	Hash      ContentHash
	Direct    bool
	Installed bool
}

// PURL returns the package URL of the locked package.
func (p LockedPackage) PURL() string {
	qualifiers := packageurl.QualifiersFromMap(map[string]string{"uuid": p.ID.UUID.String()})
	return packageurl.NewPackageURL(packageurl.TypeGeneric, "", p.ID.Name.String(), p.Version.String(), qualifiers, "").ToString()
}

// Locked returns every stanza of the lock file sorted by name then uuid.
func (e *Environment) Locked() []LockedPackage {
	direct := NewSet(e.Project.UUIDs()...)
	var out []LockedPackage
	for name, entries := range e.Manifest {
		for _, entry := range entries {
			out = append(out, LockedPackage{
				ID:      NewPackageID(name, entry.UUID),
				Version: entry.Version,
				Hash:    entry.Hash,
				Direct:  direct.Has(entry.UUID),
			})
		}
	}
	slices.SortFunc(out, func(a, b LockedPackage) int {
		if c := strings.Compare(a.ID.Name.String(), b.ID.Name.String()); c != 0 {
			return c
		}
		return strings.Compare(a.ID.UUID.String(), b.ID.UUID.String())
	})
	return out
}
