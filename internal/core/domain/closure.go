package domain

// Direction selects which way Closure follows edges.
type Direction int

const (
	// Forward follows edges from a package to its dependencies.
	Forward Direction = iota
	// Reverse follows edges from a package to its dependents.
	Reverse
)

// Edges maps each package to the packages it depends on.
type Edges map[PackageUUID][]PackageUUID

// Set is a set of package uuids.
type Set map[PackageUUID]struct{}

// NewSet creates a set holding ids.
func NewSet(ids ...PackageUUID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id PackageUUID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id and reports whether it was absent.
func (s Set) Add(id PackageUUID) bool {
	if s.Has(id) {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Closure grows seeds to a fixed point over edges in the given direction.
// Forward adds the dependencies of every member; Reverse adds every package
// with a dependency in the set.
func Closure(edges Edges, seeds []PackageUUID, dir Direction) Set {
	set := NewSet(seeds...)
	for changed := true; changed; {
		changed = false
		for node, deps := range edges {
			switch dir {
			case Forward:
				if !set.Has(node) {
					continue
				}
				for _, dep := range deps {
					if set.Add(dep) {
						changed = true
					}
				}
			case Reverse:
				if set.Has(node) {
					continue
				}
				for _, dep := range deps {
					if set.Has(dep) {
						set.Add(node)
						changed = true
						break
					}
				}
			}
		}
	}
	return set
}
