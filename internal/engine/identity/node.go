package identity

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pak/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pak/internal/adapters/registry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pak/internal/core/ports"
)

// NodeID is the unique identifier for the identity resolver Graft node.
const NodeID graft.ID = "engine.identity"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			registry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			index, err := graft.Dep[ports.RegistryIndex](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewResolver(index, log), nil
		},
	})
}
