package ports

import "go.trai.ch/pak/internal/core/domain"

// EnvironmentStore loads and persists the project and lock file of a project directory.
type EnvironmentStore interface {
	// Load reads the environment in dir. Missing files yield an empty environment.
	Load(dir string) (*domain.Environment, error)

	// Save writes env to dir.
	Save(dir string, env *domain.Environment) error
}
