// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pak/internal/adapters/cas"
	_ "go.trai.ch/pak/internal/adapters/config"
	_ "go.trai.ch/pak/internal/adapters/envfile"
	_ "go.trai.ch/pak/internal/adapters/git"
	_ "go.trai.ch/pak/internal/adapters/logger"
	_ "go.trai.ch/pak/internal/adapters/registry"
	_ "go.trai.ch/pak/internal/adapters/solver"
	_ "go.trai.ch/pak/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/pak/internal/app"
	_ "go.trai.ch/pak/internal/engine/graph"
	_ "go.trai.ch/pak/internal/engine/identity"
	_ "go.trai.ch/pak/internal/engine/installer"
	_ "go.trai.ch/pak/internal/engine/manifest"
)
