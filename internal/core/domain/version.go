package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// Version is a semantic version in canonical form. It is comparable and usable as a map key.
type Version struct {
	v semver.Version
}

// ParseVersion parses a semantic version and normalizes it to major.minor.patch form.
func ParseVersion(s string) (Version, error) {
	parsed, err := semver.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return Version{}, zerr.With(zerr.Wrap(err, ErrInvalidVersion.Error()), "version", s)
	}
	// Re-parse the canonical text so two spellings of the same version compare equal.
	canonical, err := semver.StrictNewVersion(parsed.String())
	if err != nil {
		return Version{}, zerr.With(zerr.Wrap(err, ErrInvalidVersion.Error()), "version", s)
	}
	return Version{v: *canonical}, nil
}

// MustParseVersion parses a version or panics.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// NewVersion builds a release version from its numeric components.
func NewVersion(major, minor, patch uint64) Version {
	return Version{v: *semver.New(major, minor, patch, "", "")}
}

// String returns the canonical text of the version.
func (v Version) String() string {
	return v.v.String()
}

// IsZero returns true if the version was never set.
func (v Version) IsZero() bool {
	return v == Version{}
}

// Major returns the major component.
func (v Version) Major() uint64 { return v.v.Major() }

// Minor returns the minor component.
func (v Version) Minor() uint64 { return v.v.Minor() }

// Patch returns the patch component.
func (v Version) Patch() uint64 { return v.v.Patch() }

// Compare returns -1, 0 or 1 following semantic version precedence.
func (v Version) Compare(other Version) int {
	return v.v.Compare(&other.v)
}

// LessThan reports whether v precedes other.
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// VersionSpec is a set of allowed versions expressed as a union of ranges.
// The zero value admits every version.
type VersionSpec struct {
	text        string
	constraints *semver.Constraints
}

// AnySpec admits every version, prereleases included.
var AnySpec = VersionSpec{}

// ParseConstraint parses a user supplied constraint such as "^1.0", "~1.2" or ">=1.0, <2".
// An empty constraint admits every version.
func ParseConstraint(s string) (VersionSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return AnySpec, nil
	}
	return newVersionSpec(s, s)
}

// ParseRegistryRange parses the range syntax used by registry tables:
// "*", "1", "1.2", "1.2.3", "1.2-1.5", "0.3-*" and comma separated unions of these.
func ParseRegistryRange(s string) (VersionSpec, error) {
	var clauses []string
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part == "*" {
			return VersionSpec{text: s}, nil
		}
		clause, err := rangeClause(part)
		if err != nil {
			return VersionSpec{}, zerr.With(err, "range", s)
		}
		clauses = append(clauses, clause)
	}
	if len(clauses) == 0 {
		return VersionSpec{}, zerr.With(ErrInvalidVersionSpec, "range", s)
	}
	return newVersionSpec(s, strings.Join(clauses, " || "))
}

// MustParseRegistryRange parses a registry range or panics.
func MustParseRegistryRange(s string) VersionSpec {
	spec, err := ParseRegistryRange(s)
	if err != nil {
		panic(err)
	}
	return spec
}

// ExactSpec admits exactly v.
func ExactSpec(v Version) VersionSpec {
	spec, err := newVersionSpec(v.String(), "="+v.String())
	if err != nil {
		panic(err)
	}
	return spec
}

// BoundedSpec admits versions >= lower and, when upper is non-zero, < upper.
func BoundedSpec(lower, upper Version) VersionSpec {
	expr := ">=" + lower.String()
	if !upper.IsZero() {
		expr += ", <" + upper.String()
	}
	spec, err := newVersionSpec(expr, expr)
	if err != nil {
		panic(err)
	}
	return spec
}

func newVersionSpec(text, expr string) (VersionSpec, error) {
	c, err := semver.NewConstraint(expr)
	if err != nil {
		return VersionSpec{}, zerr.With(zerr.Wrap(err, ErrInvalidVersionSpec.Error()), "spec", text)
	}
	return VersionSpec{text: text, constraints: c}, nil
}

// Contains reports whether v is admitted by the spec.
func (s VersionSpec) Contains(v Version) bool {
	if s.constraints == nil {
		return true
	}
	return s.constraints.Check(&v.v)
}

// IsAny reports whether the spec admits every version.
func (s VersionSpec) IsAny() bool {
	return s.constraints == nil
}

// String returns the text the spec was parsed from.
func (s VersionSpec) String() string {
	if s.constraints == nil {
		return "*"
	}
	return s.text
}

// rangeClause turns one registry range into a constraint clause.
func rangeClause(part string) (string, error) {
	lo, hi, isInterval := strings.Cut(part, "-")
	if !isInterval {
		lower, upper, err := partialBounds(part)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(">=%s, <%s", lower, upper), nil
	}
	lower, _, err := partialBounds(strings.TrimSpace(lo))
	if err != nil {
		return "", err
	}
	hi = strings.TrimSpace(hi)
	if hi == "*" {
		return ">=" + lower.String(), nil
	}
	_, upper, err := partialBounds(hi)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(">=%s, <%s", lower, upper), nil
}

// partialBounds returns the half-open interval matched by a partial version:
// "1" is [1.0.0, 2.0.0), "1.2" is [1.2.0, 1.3.0), "1.2.3" is [1.2.3, 1.2.4).
func partialBounds(s string) (Version, Version, error) {
	fields := strings.Split(s, ".")
	if len(fields) == 0 || len(fields) > 3 {
		return Version{}, Version{}, zerr.With(ErrInvalidVersionSpec, "range", s)
	}
	nums := make([]uint64, 3)
	for i, f := range fields {
		n, err := strconv.ParseUint(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return Version{}, Version{}, zerr.With(ErrInvalidVersionSpec, "range", s)
		}
		nums[i] = n
	}
	lower := NewVersion(nums[0], nums[1], nums[2])
	var upper Version
	switch len(fields) {
	case 1:
		upper = NewVersion(nums[0]+1, 0, 0)
	case 2:
		upper = NewVersion(nums[0], nums[1]+1, 0)
	default:
		upper = NewVersion(nums[0], nums[1], nums[2]+1)
	}
	return lower, upper, nil
}
