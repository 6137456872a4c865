// Package registry reads package registries stored as TOML files inside depots.
package registry

import (
	"context"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/zerr"
)

// registry is one loaded Registry.toml.
type registry struct {
	name     string
	dir      string
	packages map[domain.PackageUUID]PackageRef
}

// Index implements ports.RegistryIndex over the registries of an ordered list of depots.
type Index struct {
	depots []string

	mu         sync.RWMutex
	registries []*registry
	// digests maps a loaded registry directory to the xxhash of its Registry.toml.
	digests map[string]uint64
}

// NewIndex creates an Index and scans the depots for registries.
func NewIndex(depots []string) (*Index, error) {
	idx := &Index{
		depots:  depots,
		digests: make(map[string]uint64),
	}
	if err := idx.scan(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Locate rescans the depots so registries added or updated since the last scan become visible.
func (i *Index) Locate(ctx context.Context, _ []domain.PackageUUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return i.scan()
}

// scan loads every registry directory that is new or whose Registry.toml changed since
// the last scan, in depot then name order. A reloaded registry keeps its position.
func (i *Index) scan() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	for _, depot := range i.depots {
		root := domain.RegistriesPath(depot)
		entries, err := os.ReadDir(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return zerr.With(zerr.Wrap(err, domain.ErrRegistryReadFailed.Error()), "path", root)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if err := i.load(filepath.Join(root, entry.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// load reads the registry in dir unless its Registry.toml is missing or unchanged.
func (i *Index) load(dir string) error {
	path := filepath.Join(dir, RegistryFileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is below a configured depot
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrRegistryReadFailed.Error()), "path", path)
	}

	digest := xxhash.Sum64(data)
	prev, seen := i.digests[dir]
	if seen && prev == digest {
		return nil
	}

	reg, err := parseRegistry(dir, data)
	if err != nil {
		return err
	}
	i.digests[dir] = digest

	if seen {
		for n, old := range i.registries {
			if old.dir == dir {
				i.registries[n] = reg
				return nil
			}
		}
	}
	i.registries = append(i.registries, reg)
	return nil
}

func parseRegistry(dir string, data []byte) (*registry, error) {
	var file RegistryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		path := filepath.Join(dir, RegistryFileName)
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRegistryParseFailed.Error()), "path", path)
	}

	name := file.Name
	if name == "" {
		name = filepath.Base(dir)
	}
	reg := &registry{
		name:     name,
		dir:      dir,
		packages: make(map[domain.PackageUUID]PackageRef, len(file.Packages)),
	}
	for key, ref := range file.Packages {
		id, err := domain.ParsePackageUUID(key)
		if err != nil {
			return nil, zerr.With(err, "registry", name)
		}
		reg.packages[id] = ref
	}
	return reg, nil
}

// Locations returns the registry records of id in registry order.
func (i *Index) Locations(id domain.PackageUUID) []domain.RegistryLocation {
	i.mu.RLock()
	defer i.mu.RUnlock()

	var locs []domain.RegistryLocation
	for _, reg := range i.registries {
		ref, ok := reg.packages[id]
		if !ok {
			continue
		}
		locs = append(locs, domain.RegistryLocation{
			Registry: reg.name,
			Dir:      filepath.Join(reg.dir, filepath.FromSlash(ref.Path)),
		})
	}
	return locs
}

// FindByName returns the distinct uuids registered under name, sorted.
func (i *Index) FindByName(name string) []domain.PackageUUID {
	i.mu.RLock()
	defer i.mu.RUnlock()

	found := domain.NewSet()
	for _, reg := range i.registries {
		for id, ref := range reg.packages {
			if ref.Name == name {
				found.Add(id)
			}
		}
	}
	ids := slices.Collect(maps.Keys(found))
	domain.SortUUIDs(ids)
	return ids
}

// Package reads Package.toml at loc.
func (i *Index) Package(loc domain.RegistryLocation) (domain.RegistryPackage, error) {
	var file PackageFile
	found, err := readTOML(filepath.Join(loc.Dir, PackageFileName), &file)
	if err != nil {
		return domain.RegistryPackage{}, err
	}
	if !found {
		return domain.RegistryPackage{}, zerr.With(domain.ErrRegistryReadFailed, "path", filepath.Join(loc.Dir, PackageFileName))
	}

	id, err := domain.ParsePackageUUID(file.UUID)
	if err != nil {
		return domain.RegistryPackage{}, zerr.With(err, "registry", loc.Registry)
	}
	return domain.RegistryPackage{Name: file.Name, UUID: id, Repo: file.Repo}, nil
}

// Versions reads Versions.toml at loc. A missing file yields an empty table.
func (i *Index) Versions(loc domain.RegistryLocation) (map[domain.Version]domain.ContentHash, error) {
	var file VersionsFile
	if _, err := readTOML(filepath.Join(loc.Dir, VersionsFileName), &file); err != nil {
		return nil, err
	}

	out := make(map[domain.Version]domain.ContentHash, len(file))
	for key, entry := range file {
		v, err := domain.ParseVersion(key)
		if err != nil {
			return nil, zerr.With(err, "registry", loc.Registry)
		}
		h, err := domain.ParseContentHash(entry.TreeSHA1)
		if err != nil {
			err = zerr.With(err, "registry", loc.Registry)
			return nil, zerr.With(err, "version", key)
		}
		out[v] = h
	}
	return out, nil
}

// Dependencies reads Deps.toml at loc. A missing file yields an empty table.
func (i *Index) Dependencies(loc domain.RegistryLocation) (domain.DependencyTable, error) {
	var file DepsFile
	if _, err := readTOML(filepath.Join(loc.Dir, DepsFileName), &file); err != nil {
		return nil, err
	}

	table := make(domain.DependencyTable, 0, len(file))
	for _, key := range slices.Sorted(maps.Keys(file)) {
		spec, err := domain.ParseRegistryRange(key)
		if err != nil {
			return nil, zerr.With(err, "registry", loc.Registry)
		}
		values := make(map[string]domain.PackageUUID, len(file[key]))
		for name, raw := range file[key] {
			id, err := domain.ParsePackageUUID(raw)
			if err != nil {
				err = zerr.With(err, "registry", loc.Registry)
				return nil, zerr.With(err, "dependency", name)
			}
			values[name] = id
		}
		table = append(table, domain.RangeEntry[domain.PackageUUID]{Range: spec, Values: values})
	}
	return table, nil
}

// Compatibility reads Compat.toml at loc. A missing file yields an empty table.
// Values are a range or a list of ranges, the list meaning their union.
func (i *Index) Compatibility(loc domain.RegistryLocation) (domain.CompatTable, error) {
	var file CompatFile
	if _, err := readTOML(filepath.Join(loc.Dir, CompatFileName), &file); err != nil {
		return nil, err
	}

	table := make(domain.CompatTable, 0, len(file))
	for _, key := range slices.Sorted(maps.Keys(file)) {
		spec, err := domain.ParseRegistryRange(key)
		if err != nil {
			return nil, zerr.With(err, "registry", loc.Registry)
		}
		values := make(map[string]domain.VersionSpec, len(file[key]))
		for name, raw := range file[key] {
			text, err := rangeText(raw)
			if err != nil {
				err = zerr.With(err, "registry", loc.Registry)
				return nil, zerr.With(err, "dependency", name)
			}
			compat, err := domain.ParseRegistryRange(text)
			if err != nil {
				err = zerr.With(err, "registry", loc.Registry)
				return nil, zerr.With(err, "dependency", name)
			}
			values[name] = compat
		}
		table = append(table, domain.RangeEntry[domain.VersionSpec]{Range: spec, Values: values})
	}
	return table, nil
}

func rangeText(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return "", zerr.With(domain.ErrInvalidVersionSpec, "value", raw)
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ", "), nil
	default:
		return "", zerr.With(domain.ErrInvalidVersionSpec, "value", raw)
	}
}

// readTOML decodes path into out. It reports false without error when the file does not exist.
func readTOML(path string, out any) (bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is built from registry contents
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrRegistryReadFailed.Error()), "path", path)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrRegistryParseFailed.Error()), "path", path)
	}
	return true, nil
}
