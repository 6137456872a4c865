package ports

import (
	"context"

	"go.trai.ch/pak/internal/core/domain"
)

// VersionSolver picks one version per package.
type VersionSolver interface {
	// Resolve returns a version for every required package and every package they
	// transitively need, satisfying all requirements and every dependency edge of the
	// chosen versions. It fails with domain.ErrUnsatisfiable when no such assignment exists.
	Resolve(ctx context.Context, reqs domain.Requirements, graph domain.AvailabilityGraph) (domain.ResolvedSet, error)
}
