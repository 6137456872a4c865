package ports

import "go.trai.ch/pak/internal/core/domain"

// Depot locates installed trees and upstream caches across the configured depot roots.
type Depot interface {
	// Find returns the first depot path holding the tree (id, hash).
	Find(id domain.PackageUUID, hash domain.ContentHash) (string, bool)

	// InstallPath returns where the tree (id, hash) is installed in the user depot.
	InstallPath(id domain.PackageUUID, hash domain.ContentHash) string

	// UpstreamPath returns the bare upstream cache of id in the user depot.
	UpstreamPath(id domain.PackageUUID) string
}
