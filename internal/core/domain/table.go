package domain

import "go.trai.ch/zerr"

// RangeEntry is one section of a range-keyed registry table.
type RangeEntry[T any] struct {
	// Range is the set of versions the section applies to.
	Range VersionSpec

	// Values maps a package name to the section's value for it.
	Values map[string]T
}

// RangeTable is a registry table keyed by version ranges.
type RangeTable[T any] []RangeEntry[T]

// DependencyTable maps version ranges to {dependency name -> dependency uuid}.
type DependencyTable = RangeTable[PackageUUID]

// CompatTable maps version ranges to {dependency name or runtime key -> admissible versions}.
type CompatTable = RangeTable[VersionSpec]

// ForVersion collapses the table to the values that apply to v.
// A key present in two sections that both contain v is an error.
func (t RangeTable[T]) ForVersion(v Version) (map[string]T, error) {
	out := make(map[string]T)
	for _, entry := range t {
		if !entry.Range.Contains(v) {
			continue
		}
		for key, value := range entry.Values {
			if _, exists := out[key]; exists {
				err := zerr.With(ErrDuplicateKey, "key", key)
				return nil, zerr.With(err, "version", v.String())
			}
			out[key] = value
		}
	}
	return out, nil
}
