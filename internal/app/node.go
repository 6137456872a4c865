package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pak/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/pak/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/pak/internal/adapters/envfile"            //nolint:depguard // Wired in app layer
	"go.trai.ch/pak/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/pak/internal/adapters/registry"           //nolint:depguard // Wired in app layer
	"go.trai.ch/pak/internal/adapters/solver"             //nolint:depguard // Wired in app layer
	"go.trai.ch/pak/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/pak/internal/engine/graph"
	"go.trai.ch/pak/internal/engine/identity"
	"go.trai.ch/pak/internal/engine/installer"
	"go.trai.ch/pak/internal/engine/manifest"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// EngineNodeID is the unique identifier for the workflow engine Graft node.
	EngineNodeID graft.ID = "app.engine"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[Engine]{
		ID:        EngineNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			graph.NodeID,
			solver.NodeID,
			identity.NodeID,
			installer.NodeID,
			manifest.NodeID,
		},
		Run: runEngineNode,
	})

	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			registry.NodeID,
			envfile.NodeID,
			cas.NodeID,
			logger.NodeID,
			EngineNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log, telemetry), nil
		},
	})
}

func runEngineNode(ctx context.Context) (Engine, error) {
	builder, err := graft.Dep[*graph.Builder](ctx)
	if err != nil {
		return Engine{}, err
	}

	versionSolver, err := graft.Dep[ports.VersionSolver](ctx)
	if err != nil {
		return Engine{}, err
	}

	resolver, err := graft.Dep[*identity.Resolver](ctx)
	if err != nil {
		return Engine{}, err
	}

	inst, err := graft.Dep[*installer.Installer](ctx)
	if err != nil {
		return Engine{}, err
	}

	manager, err := graft.Dep[*manifest.Manager](ctx)
	if err != nil {
		return Engine{}, err
	}

	return Engine{
		Builder:   builder,
		Solver:    versionSolver,
		Resolver:  resolver,
		Installer: inst,
		Manifest:  manager,
	}, nil
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	index, err := graft.Dep[ports.RegistryIndex](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.EnvironmentStore](ctx)
	if err != nil {
		return nil, err
	}

	depot, err := graft.Dep[ports.Depot](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	engine, err := graft.Dep[Engine](ctx)
	if err != nil {
		return nil, err
	}

	return New(cfg, index, store, depot, log, engine), nil
}
