package solver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pak/internal/core/ports"
)

// NodeID is the unique identifier for the version solver node.
const NodeID graft.ID = "adapter.solver"

func init() {
	graft.Register(graft.Node[ports.VersionSolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VersionSolver, error) {
			return New(), nil
		},
	})
}
