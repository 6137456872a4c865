package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pak/internal/adapters/registry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pak/internal/core/ports"
)

// NodeID is the unique identifier for the manifest manager Graft node.
const NodeID graft.ID = "engine.manifest"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{registry.NodeID},
		Run: func(ctx context.Context) (*Manager, error) {
			index, err := graft.Dep[ports.RegistryIndex](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(index), nil
		},
	})
}
