package domain

import "go.trai.ch/zerr"

// UpgradeLevel bounds how far `up` may move a locked package.
type UpgradeLevel string

const (
	// UpgradeFixed keeps the locked version.
	UpgradeFixed UpgradeLevel = "fixed"
	// UpgradePatch allows newer patch releases of the locked minor.
	UpgradePatch UpgradeLevel = "patch"
	// UpgradeMinor allows newer minor and patch releases of the locked major.
	UpgradeMinor UpgradeLevel = "minor"
	// UpgradeMajor allows any newer release.
	UpgradeMajor UpgradeLevel = "major"
)

// ParseUpgradeLevel parses one of fixed, patch, minor or major.
func ParseUpgradeLevel(s string) (UpgradeLevel, error) {
	switch level := UpgradeLevel(s); level {
	case UpgradeFixed, UpgradePatch, UpgradeMinor, UpgradeMajor:
		return level, nil
	default:
		return "", zerr.With(ErrInvalidUpgradeLevel, "level", s)
	}
}

// Spec returns the versions reachable from current at this level.
// Downgrades are never allowed.
func (l UpgradeLevel) Spec(current Version) VersionSpec {
	switch l {
	case UpgradeFixed:
		return ExactSpec(current)
	case UpgradePatch:
		return BoundedSpec(current, NewVersion(current.Major(), current.Minor()+1, 0))
	case UpgradeMinor:
		return BoundedSpec(current, NewVersion(current.Major()+1, 0, 0))
	default:
		return BoundedSpec(current, Version{})
	}
}
