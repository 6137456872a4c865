package registry

const (
	// RegistryFileName is the index file at the root of every registry.
	RegistryFileName = "Registry.toml"
	// PackageFileName holds the identity record of a package.
	PackageFileName = "Package.toml"
	// VersionsFileName holds the version to content hash table of a package.
	VersionsFileName = "Versions.toml"
	// DepsFileName holds the range-keyed dependency table of a package.
	DepsFileName = "Deps.toml"
	// CompatFileName holds the range-keyed compatibility table of a package.
	CompatFileName = "Compat.toml"
)

// RegistryFile represents the structure of Registry.toml.
type RegistryFile struct {
	Name     string                `toml:"name"`
	Packages map[string]PackageRef `toml:"packages"`
}

// PackageRef points from the registry index to a package directory.
type PackageRef struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// PackageFile represents the structure of Package.toml.
type PackageFile struct {
	Name string `toml:"name"`
	UUID string `toml:"uuid"`
	Repo string `toml:"repo"`
}

// VersionEntry represents one section of Versions.toml.
type VersionEntry struct {
	TreeSHA1 string `toml:"git-tree-sha1"`
}

// VersionsFile maps version strings to their entries.
type VersionsFile map[string]VersionEntry

// DepsFile maps a version range to {dependency name -> dependency uuid}.
type DepsFile map[string]map[string]string

// CompatFile maps a version range to {dependency name -> range or list of ranges}.
type CompatFile map[string]map[string]any
