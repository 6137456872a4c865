package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidUUID is returned when a package identifier is not a valid UUID.
	ErrInvalidUUID = zerr.New("invalid package uuid")

	// ErrInvalidVersion is returned when a version string is not a valid semantic version.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrInvalidVersionSpec is returned when a version range or constraint cannot be parsed.
	ErrInvalidVersionSpec = zerr.New("invalid version specification")

	// ErrInvalidContentHash is returned when a content hash is not 40 hexadecimal characters.
	ErrInvalidContentHash = zerr.New("invalid content hash")

	// ErrInvalidPackageRequest is returned when a package request cannot be parsed.
	ErrInvalidPackageRequest = zerr.New("invalid package request, expected name[@constraint] or uuid[@constraint]")

	// ErrInvalidUpgradeLevel is returned when an upgrade level is not one of fixed, patch, minor or major.
	ErrInvalidUpgradeLevel = zerr.New("invalid upgrade level, expected fixed, patch, minor or major")

	// ErrDuplicateKey is returned when a key appears in two registry ranges that both contain the same version.
	ErrDuplicateKey = zerr.New("duplicate key for version")

	// ErrNameMismatch is returned when two registries disagree on the name of a package.
	ErrNameMismatch = zerr.New("name mismatch")

	// ErrHashNotFound is returned when no registry provides a content hash for a resolved version.
	ErrHashNotFound = zerr.New("content hash not found")

	// ErrObjectNotFound is returned when no mirror provides the content hash of a package.
	ErrObjectNotFound = zerr.New("could not locate content hash for package")

	// ErrWrongObjectKind is returned when the content hash does not name a tree object.
	ErrWrongObjectKind = zerr.New("wrong object kind, expected tree")

	// ErrNoMirrors is returned when a package has no upstream URL to install from.
	ErrNoMirrors = zerr.New("package has no upstream urls")

	// ErrUnsatisfiable is returned when no version assignment satisfies all requirements.
	ErrUnsatisfiable = zerr.New("unsatisfiable requirements")

	// ErrOpenGraph is returned when a dependency target is missing from the availability graph.
	ErrOpenGraph = zerr.New("availability graph is not closed")

	// ErrPackageNotFound is returned when no registry knows a requested package.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrAmbiguousPackage is returned when a name matches more than one package uuid.
	ErrAmbiguousPackage = zerr.New("ambiguous package name")

	// ErrNoDepots is returned when the configuration lists no depot.
	ErrNoDepots = zerr.New("no depots configured")

	// ErrRegistryReadFailed is returned when a registry file cannot be read.
	ErrRegistryReadFailed = zerr.New("failed to read registry file")

	// ErrRegistryParseFailed is returned when a registry file cannot be parsed.
	ErrRegistryParseFailed = zerr.New("failed to parse registry file")

	// ErrEnvironmentReadFailed is returned when the project or manifest file cannot be read.
	ErrEnvironmentReadFailed = zerr.New("failed to read environment")

	// ErrEnvironmentParseFailed is returned when the project or manifest file cannot be parsed.
	ErrEnvironmentParseFailed = zerr.New("failed to parse environment")

	// ErrEnvironmentWriteFailed is returned when the project or manifest file cannot be written.
	ErrEnvironmentWriteFailed = zerr.New("failed to write environment")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrGitCommandFailed is returned when a git invocation fails.
	ErrGitCommandFailed = zerr.New("git command failed")

	// ErrMirrorUnavailable is returned when the circuit breaker for a mirror host is open.
	ErrMirrorUnavailable = zerr.New("mirror temporarily unavailable")

	// ErrInstallFailed is returned when installing a package fails.
	ErrInstallFailed = zerr.New("failed to install package")

	// ErrNoPackagesSpecified is returned when a workflow is invoked without packages.
	ErrNoPackagesSpecified = zerr.New("no packages specified")
)
