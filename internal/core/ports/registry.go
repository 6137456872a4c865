package ports

import (
	"context"

	"go.trai.ch/pak/internal/core/domain"
)

// RegistryIndex gives read access to the registries that know about packages.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type RegistryIndex interface {
	// Locate refreshes the registrations for ids. Registries may appear as new uuids are learned.
	Locate(ctx context.Context, ids []domain.PackageUUID) error

	// Locations returns every registry record of id, in registry order.
	Locations(id domain.PackageUUID) []domain.RegistryLocation

	// FindByName returns the uuids registered under name across all registries.
	FindByName(name string) []domain.PackageUUID

	// Package reads the identity record at loc.
	Package(loc domain.RegistryLocation) (domain.RegistryPackage, error)

	// Versions reads the version to content hash table at loc.
	Versions(loc domain.RegistryLocation) (map[domain.Version]domain.ContentHash, error)

	// Dependencies reads the range-keyed dependency table at loc.
	Dependencies(loc domain.RegistryLocation) (domain.DependencyTable, error)

	// Compatibility reads the range-keyed compatibility table at loc.
	Compatibility(loc domain.RegistryLocation) (domain.CompatTable, error)
}
