package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pak/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pak/internal/adapters/config"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pak/internal/adapters/git"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pak/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
)

// NodeID is the unique identifier for the installer Graft node.
const NodeID graft.ID = "engine.installer"

func init() {
	graft.Register(graft.Node[*Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cas.NodeID,
			git.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Installer, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			depot, err := graft.Dep[ports.Depot](ctx)
			if err != nil {
				return nil, err
			}

			vcs, err := graft.Dep[ports.VCSBackend](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return New(depot, vcs, telemetry, cfg.Jobs), nil
		},
	})
}
