package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pak/internal/adapters/config"
	"go.trai.ch/pak/internal/app"
	_ "go.trai.ch/pak/internal/wiring"
)

// TestGraftDependencies ensures that the dependency injection graph is valid
// at compile/test time. It checks that every node declaring a dependency
// actually uses it, and every used dependency is declared.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers the dependency ID from the package name of the
	// type used in Dep[T], which does not hold for the shared ports package.
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}

func TestComponentsResolve(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(config.KeyProject, t.TempDir())
	viper.Set(config.KeyDepots, []string{t.TempDir()})

	components, _, err := graft.ExecuteFor[*app.Components](context.Background(), graft.DisableCache())
	require.NoError(t, err)
	t.Cleanup(func() { _ = components.Telemetry.Close() })

	assert.NotNil(t, components.App)
	assert.NotNil(t, components.Logger)

	locked, err := components.App.Status(context.Background())
	require.NoError(t, err)
	assert.Empty(t, locked)
}
