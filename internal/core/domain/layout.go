package domain

import "path/filepath"

const (
	// PackagesDirName is the depot directory holding installed source trees.
	PackagesDirName = "packages"

	// UpstreamDirName is the depot directory holding the bare upstream caches.
	UpstreamDirName = "upstream"

	// RegistriesDirName is the depot directory holding registries.
	RegistriesDirName = "registries"

	// ProjectFileName is the name of the direct dependency file.
	ProjectFileName = "Project.toml"

	// ManifestFileName is the name of the lock file.
	ManifestFileName = "Manifest.toml"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "pak.yaml"

	// DefaultDepotDirName is the name of the user depot under the home directory.
	DefaultDepotDirName = ".pak"

	// CacheRefspec imports every ref of a mirror into the cache-scoped namespace.
	CacheRefspec = "+refs/*:refs/remotes/cache/*"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// PackagePath returns the location of an installed tree below a depot root.
func PackagePath(depot string, id PackageUUID, hash ContentHash) string {
	return filepath.Join(depot, PackagesDirName, id.String(), hash.String())
}

// UpstreamPath returns the location of the bare upstream cache of a package below a depot root.
func UpstreamPath(depot string, id PackageUUID) string {
	return filepath.Join(depot, UpstreamDirName, id.String())
}

// RegistriesPath returns the directory holding the registries of a depot.
func RegistriesPath(depot string) string {
	return filepath.Join(depot, RegistriesDirName)
}
