package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pak/internal/adapters/config"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
)

// NodeID is the unique identifier for the depot node.
const NodeID graft.ID = "adapter.depot"

func init() {
	graft.Register(graft.Node[ports.Depot]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Depot, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewDepot(cfg.Depots)
		},
	})
}
