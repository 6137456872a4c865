package app

import "go.trai.ch/pak/internal/core/domain"

// UpOptions sets how far Up may move locked versions.
type UpOptions struct {
	// Direct bounds packages listed in the project.
	Direct domain.UpgradeLevel
	// Indirect bounds every other locked package.
	Indirect domain.UpgradeLevel
}

// DefaultUpOptions allows major upgrades of direct dependencies and minor upgrades
// of everything else.
func DefaultUpOptions() UpOptions {
	return UpOptions{
		Direct:   domain.UpgradeMajor,
		Indirect: domain.UpgradeMinor,
	}
}
