package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// PackageID identifies a package. The name is a display label only; the UUID is the identity.
type PackageID struct {
	// Name is the package name as registered (e.g., "Example").
	Name InternedString

	// UUID is the stable identity used for every graph and lookup operation.
	UUID PackageUUID
}

// NewPackageID creates a PackageID from a name and uuid.
func NewPackageID(name string, id PackageUUID) PackageID {
	return PackageID{Name: NewInternedString(name), UUID: id}
}

// String returns "name [uuid]".
func (p PackageID) String() string {
	return p.Name.String() + " [" + p.UUID.String() + "]"
}

// PackageRequest represents a user's intent to add a package, before its identity is resolved.
type PackageRequest struct {
	// Name is the requested package name. Empty when the request names a uuid.
	Name string

	// UUID is set when the request names a uuid directly.
	UUID PackageUUID

	// Constraint restricts the admissible versions. AnySpec when none was given.
	Constraint VersionSpec
}

// ParsePackageRequest parses "Name", "Name@constraint", "uuid" or "uuid@constraint".
func ParsePackageRequest(s string) (PackageRequest, error) {
	target, constraint, _ := strings.Cut(strings.TrimSpace(s), "@")
	target = strings.TrimSpace(target)
	if target == "" {
		return PackageRequest{}, zerr.With(ErrInvalidPackageRequest, "request", s)
	}

	spec, err := ParseConstraint(constraint)
	if err != nil {
		return PackageRequest{}, zerr.With(err, "request", s)
	}

	req := PackageRequest{Constraint: spec}
	if IsPackageUUID(target) {
		id, err := ParsePackageUUID(target)
		if err != nil {
			return PackageRequest{}, zerr.With(err, "request", s)
		}
		req.UUID = id
		return req, nil
	}
	req.Name = target
	return req, nil
}

// String returns the request as typed on the command line.
func (r PackageRequest) String() string {
	target := r.Name
	if target == "" {
		target = r.UUID.String()
	}
	if r.Constraint.IsAny() {
		return target
	}
	return target + "@" + r.Constraint.String()
}

// Identity is the resolved identity of a package at a chosen version.
type Identity struct {
	// ID is the package name and uuid.
	ID PackageID

	// Version is the version picked by the solver.
	Version Version

	// Hash is the content hash of the source tree for Version.
	Hash ContentHash

	// URLs is the sorted, deduplicated list of upstream mirrors.
	URLs []string
}

// RegistryLocation is one registry's record of a package.
type RegistryLocation struct {
	// Registry is the name of the registry holding the record.
	Registry string

	// Dir is the directory holding the package's registry files.
	Dir string
}

// RegistryPackage is the identity record of a package in one registry.
type RegistryPackage struct {
	// Name is the registered package name.
	Name string

	// UUID is the registered package uuid.
	UUID PackageUUID

	// Repo is the canonical upstream source URL.
	Repo string
}
