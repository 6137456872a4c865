package ports

import "go.trai.ch/pak/internal/core/domain"

// ConfigLoader defines the interface for loading the pak configuration.
type ConfigLoader interface {
	// Load reads the configuration for the project in the given working directory.
	Load(cwd string) (*domain.Config, error)
}
