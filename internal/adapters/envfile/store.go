// Package envfile persists the project and lock file as TOML.
package envfile

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.EnvironmentStore with Project.toml and Manifest.toml.
type Store struct{}

// NewStore creates a Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the environment in dir. Missing files yield empty sections.
func (s *Store) Load(dir string) (*domain.Environment, error) {
	env := domain.NewEnvironment()

	var project ProjectFile
	if err := readTOML(filepath.Join(dir, domain.ProjectFileName), &project); err != nil {
		return nil, err
	}
	for name, raw := range project.Deps {
		id, err := domain.ParsePackageUUID(raw)
		if err != nil {
			return nil, zerr.With(zerr.With(err, "file", domain.ProjectFileName), "package", name)
		}
		env.Project.Deps[name] = id
	}

	var manifest ManifestFile
	if err := readTOML(filepath.Join(dir, domain.ManifestFileName), &manifest); err != nil {
		return nil, err
	}
	for name, stanzas := range manifest.Deps {
		for _, dto := range stanzas {
			entry, err := entryFromDTO(dto)
			if err != nil {
				return nil, zerr.With(zerr.With(err, "file", domain.ManifestFileName), "package", name)
			}
			env.Manifest[name] = append(env.Manifest[name], entry)
		}
	}
	return env, nil
}

// Save writes env to dir. Only the deps table of Project.toml is replaced; its other
// keys are kept. Both files are staged before either is renamed into place, and files
// whose content is unchanged are left untouched.
func (s *Store) Save(dir string, env *domain.Environment) error {
	projectPath := filepath.Join(dir, domain.ProjectFileName)
	project, err := projectDocument(projectPath, env.Project)
	if err != nil {
		return err
	}

	manifest := ManifestFile{
		Format: ManifestFormat,
		Deps:   make(map[string][]ManifestEntryDTO, len(env.Manifest)),
	}
	for name, entries := range env.Manifest {
		dtos := make([]ManifestEntryDTO, 0, len(entries))
		for _, entry := range entries {
			dtos = append(dtos, entryToDTO(entry))
		}
		slices.SortFunc(dtos, func(a, b ManifestEntryDTO) int {
			return strings.Compare(a.UUID, b.UUID)
		})
		manifest.Deps[name] = dtos
	}

	files := make([]*pendingFile, 0, 2)
	for _, f := range []struct {
		path string
		doc  any
	}{
		{path: projectPath, doc: project},
		{path: filepath.Join(dir, domain.ManifestFileName), doc: manifest},
	} {
		data, err := encodeTOML(f.path, f.doc)
		if err != nil {
			return err
		}
		files = append(files, &pendingFile{path: f.path, data: data})
	}
	return writeAll(files)
}

// projectDocument returns the current Project.toml as a generic document with its deps
// table replaced by project.
func projectDocument(path string, project domain.Project) (map[string]any, error) {
	doc := make(map[string]any)
	if err := readTOML(path, &doc); err != nil {
		return nil, err
	}
	deps := make(map[string]any, len(project.Deps))
	for name, id := range project.Deps {
		deps[name] = id.String()
	}
	doc["deps"] = deps
	return doc, nil
}

func entryFromDTO(dto ManifestEntryDTO) (*domain.LockEntry, error) {
	id, err := domain.ParsePackageUUID(dto.UUID)
	if err != nil {
		return nil, err
	}
	entry := &domain.LockEntry{UUID: id}
	if dto.Version != "" {
		if entry.Version, err = domain.ParseVersion(dto.Version); err != nil {
			return nil, err
		}
	}
	if dto.TreeSHA1 != "" {
		if entry.Hash, err = domain.ParseContentHash(dto.TreeSHA1); err != nil {
			return nil, err
		}
	}
	if len(dto.Deps) > 0 {
		entry.Deps = make(map[string]domain.PackageUUID, len(dto.Deps))
		for name, raw := range dto.Deps {
			dep, err := domain.ParsePackageUUID(raw)
			if err != nil {
				return nil, zerr.With(err, "dependency", name)
			}
			entry.Deps[name] = dep
		}
	}
	return entry, nil
}

func entryToDTO(entry *domain.LockEntry) ManifestEntryDTO {
	dto := ManifestEntryDTO{UUID: entry.UUID.String()}
	if !entry.Version.IsZero() {
		dto.Version = entry.Version.String()
	}
	if !entry.Hash.IsZero() {
		dto.TreeSHA1 = entry.Hash.String()
	}
	if len(entry.Deps) > 0 {
		dto.Deps = make(map[string]string, len(entry.Deps))
		for name, dep := range entry.Deps {
			dto.Deps[name] = dep.String()
		}
	}
	return dto
}

// readTOML decodes path into v. A missing file leaves v untouched.
func readTOML(path string, v any) error {
	//nolint:gosec // path is derived from the project directory
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrEnvironmentReadFailed.Error()), "path", path)
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrEnvironmentParseFailed.Error()), "path", path)
	}
	return nil
}

func encodeTOML(path string, v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(v); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEnvironmentWriteFailed.Error()), "path", path)
	}
	return buf.Bytes(), nil
}

// pendingFile is one file of a Save, staged in a temporary file next to its target.
type pendingFile struct {
	path string
	data []byte

	previous []byte
	existed  bool
	tmp      string
}

// writeAll stages every file, then renames them into place. When staging fails no target
// is touched; when a rename fails the targets already replaced are restored.
func writeAll(files []*pendingFile) error {
	defer func() {
		for _, f := range files {
			if f.tmp != "" {
				_ = os.Remove(f.tmp)
			}
		}
	}()

	for _, f := range files {
		if err := f.stage(); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrEnvironmentWriteFailed.Error()), "path", f.path)
		}
	}

	var renamed []*pendingFile
	for _, f := range files {
		if f.tmp == "" {
			continue
		}
		if err := os.Rename(f.tmp, f.path); err != nil {
			for _, done := range renamed {
				done.restore()
			}
			return zerr.With(zerr.Wrap(err, domain.ErrEnvironmentWriteFailed.Error()), "path", f.path)
		}
		f.tmp = ""
		renamed = append(renamed, f)
	}
	return nil
}

// stage writes data to a temporary file. An identical existing file needs no write.
func (f *pendingFile) stage() error {
	existing, err := os.ReadFile(f.path) //nolint:gosec // path is derived from the project directory
	switch {
	case err == nil:
		if bytes.Equal(existing, f.data) {
			return nil
		}
		f.previous, f.existed = existing, true
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirPerm); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*")
	if err != nil {
		return err
	}
	f.tmp = tmp.Name()

	if _, err := tmp.Write(f.data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Chmod(f.tmp, domain.FilePerm)
}

// restore puts back the content f had before it was replaced.
func (f *pendingFile) restore() {
	if f.existed {
		_ = os.WriteFile(f.path, f.previous, domain.FilePerm)
		return
	}
	_ = os.Remove(f.path)
}
