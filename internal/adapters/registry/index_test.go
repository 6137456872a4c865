package registry_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pak/internal/adapters/registry"
	"go.trai.ch/pak/internal/adapters/registry/registrytest"
	"go.trai.ch/pak/internal/core/domain"
)

const (
	exampleUUID = "7876af07-990d-54b4-ab0e-23690620f79a"
	depUUID     = "9a3f8284-a2c9-5f02-9a11-845980a1fd5c"
	sha1        = "1111111111111111111111111111111111111111"
	sha2        = "2222222222222222222222222222222222222222"
)

func writeExample(t *testing.T, depot string) {
	t.Helper()
	registrytest.New(t, depot, "General").
		Add(registrytest.Package{
			Name:     "Example",
			UUID:     exampleUUID,
			Repo:     "https://example.com/Example.git",
			Versions: map[string]string{"1.0.0": sha1, "1.1.0": sha2},
			Deps:     map[string]map[string]string{"1": {"Dep": depUUID}},
			Compat: map[string]map[string]string{
				"1.0":   {"runtime": "1", "Dep": "0.3-*"},
				"1.1-1": {"runtime": "2"},
			},
		}).
		Add(registrytest.Package{
			Name:     "Dep",
			UUID:     depUUID,
			Repo:     "https://example.com/Dep.git",
			Versions: map[string]string{"0.3.0": sha1},
		})
}

func TestIndex_ReadsPackage(t *testing.T) {
	depot := t.TempDir()
	writeExample(t, depot)

	idx, err := registry.NewIndex([]string{depot})
	require.NoError(t, err)

	id := domain.MustParsePackageUUID(exampleUUID)
	locs := idx.Locations(id)
	require.Len(t, locs, 1)
	assert.Equal(t, "General", locs[0].Registry)

	pkg, err := idx.Package(locs[0])
	require.NoError(t, err)
	assert.Equal(t, "Example", pkg.Name)
	assert.Equal(t, id, pkg.UUID)
	assert.Equal(t, "https://example.com/Example.git", pkg.Repo)

	versions, err := idx.Versions(locs[0])
	require.NoError(t, err)
	assert.Equal(t, domain.MustParseContentHash(sha2), versions[domain.MustParseVersion("1.1.0")])

	deps, err := idx.Dependencies(locs[0])
	require.NoError(t, err)
	forV1, err := deps.ForVersion(domain.MustParseVersion("1.0.0"))
	require.NoError(t, err)
	assert.Equal(t, domain.MustParsePackageUUID(depUUID), forV1["Dep"])

	compat, err := idx.Compatibility(locs[0])
	require.NoError(t, err)
	forV11, err := compat.ForVersion(domain.MustParseVersion("1.1.0"))
	require.NoError(t, err)
	assert.False(t, forV11["runtime"].Contains(domain.MustParseVersion("1.0.0")))
	assert.True(t, forV11["runtime"].Contains(domain.MustParseVersion("2.5.0")))
}

func TestIndex_MissingTablesAreEmpty(t *testing.T) {
	depot := t.TempDir()
	writeExample(t, depot)

	idx, err := registry.NewIndex([]string{depot})
	require.NoError(t, err)

	locs := idx.Locations(domain.MustParsePackageUUID(depUUID))
	require.Len(t, locs, 1)

	deps, err := idx.Dependencies(locs[0])
	require.NoError(t, err)
	assert.Empty(t, deps)

	compat, err := idx.Compatibility(locs[0])
	require.NoError(t, err)
	assert.Empty(t, compat)
}

func TestIndex_FindByName(t *testing.T) {
	depot := t.TempDir()
	writeExample(t, depot)
	other := "00000000-0000-4000-8000-00000000000f"
	registrytest.New(t, depot, "Other").Add(registrytest.Package{
		Name:     "Example",
		UUID:     other,
		Versions: map[string]string{"0.1.0": sha1},
	})

	idx, err := registry.NewIndex([]string{depot})
	require.NoError(t, err)

	ids := idx.FindByName("Example")
	assert.Equal(t, []domain.PackageUUID{
		domain.MustParsePackageUUID(other),
		domain.MustParsePackageUUID(exampleUUID),
	}, ids)
	assert.Empty(t, idx.FindByName("Nope"))
}

func TestIndex_LocateDiscoversNewRegistries(t *testing.T) {
	depot := t.TempDir()
	idx, err := registry.NewIndex([]string{depot})
	require.NoError(t, err)

	id := domain.MustParsePackageUUID(exampleUUID)
	assert.Empty(t, idx.Locations(id))

	writeExample(t, depot)
	require.NoError(t, idx.Locate(context.Background(), []domain.PackageUUID{id}))
	assert.Len(t, idx.Locations(id), 1)
}

func TestIndex_LocateReloadsUpdatedRegistries(t *testing.T) {
	depot := t.TempDir()
	reg := registrytest.New(t, depot, "General").
		Add(registrytest.Package{
			Name:     "Example",
			UUID:     exampleUUID,
			Repo:     "https://example.com/Example.git",
			Versions: map[string]string{"1.0.0": sha1},
		})
	idx, err := registry.NewIndex([]string{depot})
	require.NoError(t, err)

	id := domain.MustParsePackageUUID(depUUID)
	assert.Empty(t, idx.Locations(id))

	reg.Add(registrytest.Package{
		Name:     "Dep",
		UUID:     depUUID,
		Repo:     "https://example.com/Dep.git",
		Versions: map[string]string{"0.3.0": sha1},
	})
	require.NoError(t, idx.Locate(context.Background(), []domain.PackageUUID{id}))

	locs := idx.Locations(id)
	require.Len(t, locs, 1)
	assert.Equal(t, "General", locs[0].Registry)
	assert.Len(t, idx.Locations(domain.MustParsePackageUUID(exampleUUID)), 1, "the registry is replaced, not duplicated")
}

func TestIndex_DepotOrder(t *testing.T) {
	user := t.TempDir()
	shared := t.TempDir()
	registrytest.New(t, shared, "Shared").Add(registrytest.Package{
		Name:     "Example",
		UUID:     exampleUUID,
		Versions: map[string]string{"1.0.0": sha1},
	})
	writeExample(t, user)

	idx, err := registry.NewIndex([]string{user, shared})
	require.NoError(t, err)

	locs := idx.Locations(domain.MustParsePackageUUID(exampleUUID))
	require.Len(t, locs, 2)
	assert.Equal(t, "General", locs[0].Registry)
	assert.Equal(t, "Shared", locs[1].Registry)
}

func TestIndex_ParseErrors(t *testing.T) {
	depot := t.TempDir()
	dir := filepath.Join(domain.RegistriesPath(depot), "Broken")
	require.NoError(t, os.MkdirAll(dir, domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, registry.RegistryFileName), []byte("name = ["), domain.FilePerm))

	_, err := registry.NewIndex([]string{depot})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to parse registry file")
}
