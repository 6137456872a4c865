package envfile

// ManifestFormat is written to every lock file.
const ManifestFormat = "1.0"

// ProjectFile is the deps table of Project.toml. Other keys are kept on save.
type ProjectFile struct {
	Deps map[string]string `toml:"deps"`
}

// ManifestFile is the structure of Manifest.toml.
type ManifestFile struct {
	Format string                        `toml:"manifest_format"`
	Deps   map[string][]ManifestEntryDTO `toml:"deps"`
}

// ManifestEntryDTO is one lock stanza.
type ManifestEntryDTO struct {
	UUID     string            `toml:"uuid"`
	Version  string            `toml:"version,omitempty"`
	TreeSHA1 string            `toml:"git-tree-sha1,omitempty"`
	Deps     map[string]string `toml:"deps,omitempty"`
}
