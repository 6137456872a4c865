package domain

import (
	"strings"

	"github.com/google/uuid"
	"go.trai.ch/zerr"
)

// PackageUUID is the stable identity of a package. Names are display labels only.
type PackageUUID struct {
	value uuid.UUID
}

// ParsePackageUUID parses the canonical string form of a package uuid.
func ParsePackageUUID(s string) (PackageUUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return PackageUUID{}, zerr.With(zerr.Wrap(err, ErrInvalidUUID.Error()), "uuid", s)
	}
	return PackageUUID{value: id}, nil
}

// MustParsePackageUUID parses a string or panics (for tests only).
func MustParsePackageUUID(s string) PackageUUID {
	id, err := ParsePackageUUID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsPackageUUID reports whether s looks like a package uuid rather than a name.
func IsPackageUUID(s string) bool {
	return uuid.Validate(s) == nil
}

// String returns the canonical string representation.
func (u PackageUUID) String() string {
	return u.value.String()
}

// IsZero returns true if this is the zero value.
func (u PackageUUID) IsZero() bool {
	return u.value == uuid.Nil
}

// Less orders uuids by their string form.
func (u PackageUUID) Less(other PackageUUID) bool {
	return u.String() < other.String()
}

// MarshalText implements encoding.TextMarshaler.
func (u PackageUUID) MarshalText() ([]byte, error) {
	return []byte(u.value.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *PackageUUID) UnmarshalText(text []byte) error {
	id, err := ParsePackageUUID(string(text))
	if err != nil {
		return err
	}
	*u = id
	return nil
}
