package graph

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pak/internal/adapters/config"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pak/internal/adapters/registry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
)

// NodeID is the unique identifier for the graph builder Graft node.
const NodeID graft.ID = "engine.graph"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			registry.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			index, err := graft.Dep[ports.RegistryIndex](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(index, cfg.Runtime), nil
		},
	})
}
