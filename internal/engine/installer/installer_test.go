package installer_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pak/internal/adapters/cas"
	"go.trai.ch/pak/internal/adapters/telemetry"
	"go.trai.ch/pak/internal/adapters/telemetry/progrock"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/pak/internal/core/ports/mocks"
	"go.trai.ch/pak/internal/engine/installer"
	"go.uber.org/mock/gomock"
)

const (
	mirror1 = "https://one.example.com/Example.git"
	mirror2 = "https://two.example.com/Example.git"
	mirror3 = "https://three.example.com/Example.git"
)

func newIdentity(urls ...string) domain.Identity {
	return domain.Identity{
		ID:      domain.NewPackageID("Example", domain.MustParsePackageUUID("7876af07-990d-54b4-ab0e-23690620f79a")),
		Version: domain.MustParseVersion("1.1.0"),
		Hash:    domain.MustParseContentHash("2222222222222222222222222222222222222222"),
		URLs:    urls,
	}
}

func setup(t *testing.T) (*installer.Installer, *mocks.MockVCSBackend, *cas.Depot) {
	t.Helper()
	ctrl := gomock.NewController(t)
	vcs := mocks.NewMockVCSBackend(ctrl)
	depot, err := cas.NewDepot([]string{t.TempDir()})
	require.NoError(t, err)
	return installer.New(depot, vcs, telemetry.NewNoOp(), 2), vcs, depot
}

// writeTree stands in for a checkout by writing one file into dest.
func writeTree(_ context.Context, _ string, _ domain.ContentHash, dest string) error {
	return os.WriteFile(filepath.Join(dest, "README.md"), []byte("hello\n"), domain.FilePerm)
}

func TestInstall_FreshCloneProbesThenFetchesFromSecondMirror(t *testing.T) {
	inst, vcs, depot := setup(t)
	id := newIdentity(mirror1, mirror2, mirror3)
	cache := depot.UpstreamPath(id.ID.UUID)

	gomock.InOrder(
		vcs.EXPECT().Clone(gomock.Any(), mirror1, cache).Return(nil),
		vcs.EXPECT().HasObject(gomock.Any(), cache, id.Hash).Return(false, nil),
		vcs.EXPECT().Fetch(gomock.Any(), cache, mirror2, domain.CacheRefspec).Return(nil),
		vcs.EXPECT().HasObject(gomock.Any(), cache, id.Hash).Return(true, nil),
		vcs.EXPECT().ObjectType(gomock.Any(), cache, id.Hash).Return(ports.ObjectTypeTree, nil),
		vcs.EXPECT().Checkout(gomock.Any(), cache, id.Hash, depot.InstallPath(id.ID.UUID, id.Hash)).DoAndReturn(writeTree),
	)

	require.NoError(t, inst.Install(context.Background(), id))
	assert.FileExists(t, filepath.Join(depot.InstallPath(id.ID.UUID, id.Hash), "README.md"))
}

func TestInstall_IsIdempotent(t *testing.T) {
	inst, vcs, depot := setup(t)
	id := newIdentity(mirror1)
	cache := depot.UpstreamPath(id.ID.UUID)

	vcs.EXPECT().Clone(gomock.Any(), mirror1, cache).Return(nil).Times(1)
	vcs.EXPECT().HasObject(gomock.Any(), cache, id.Hash).Return(true, nil).Times(1)
	vcs.EXPECT().ObjectType(gomock.Any(), cache, id.Hash).Return(ports.ObjectTypeTree, nil).Times(1)
	vcs.EXPECT().Checkout(gomock.Any(), cache, id.Hash, gomock.Any()).DoAndReturn(writeTree).Times(1)

	require.NoError(t, inst.Install(context.Background(), id))
	first, err := os.ReadFile(filepath.Join(depot.InstallPath(id.ID.UUID, id.Hash), "README.md"))
	require.NoError(t, err)

	require.NoError(t, inst.Install(context.Background(), id), "second install must not touch the network")
	second, err := os.ReadFile(filepath.Join(depot.InstallPath(id.ID.UUID, id.Hash), "README.md"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestInstall_ExistingCacheFetchesFromSecondMirror(t *testing.T) {
	inst, vcs, depot := setup(t)
	id := newIdentity(mirror1, mirror2)
	cache := depot.UpstreamPath(id.ID.UUID)
	require.NoError(t, os.MkdirAll(cache, domain.DirPerm))

	gomock.InOrder(
		vcs.EXPECT().HasObject(gomock.Any(), cache, id.Hash).Return(false, nil),
		vcs.EXPECT().Fetch(gomock.Any(), cache, mirror2, domain.CacheRefspec).Return(nil),
		vcs.EXPECT().HasObject(gomock.Any(), cache, id.Hash).Return(true, nil),
		vcs.EXPECT().ObjectType(gomock.Any(), cache, id.Hash).Return(ports.ObjectTypeTree, nil),
		vcs.EXPECT().Checkout(gomock.Any(), cache, id.Hash, gomock.Any()).Return(nil),
	)

	require.NoError(t, inst.Install(context.Background(), id))
}

func TestInstall_ExistingCacheWithSingleMirrorOnlyProbes(t *testing.T) {
	inst, vcs, depot := setup(t)
	id := newIdentity(mirror1)
	cache := depot.UpstreamPath(id.ID.UUID)
	require.NoError(t, os.MkdirAll(cache, domain.DirPerm))

	vcs.EXPECT().HasObject(gomock.Any(), cache, id.Hash).Return(false, nil)

	err := inst.Install(context.Background(), id)
	assert.ErrorContains(t, err, "could not locate content hash for package")
}

func TestInstall_ObjectNotFound(t *testing.T) {
	inst, vcs, depot := setup(t)
	id := newIdentity(mirror1, mirror2)
	cache := depot.UpstreamPath(id.ID.UUID)

	vcs.EXPECT().Clone(gomock.Any(), mirror1, cache).Return(nil)
	vcs.EXPECT().HasObject(gomock.Any(), cache, id.Hash).Return(false, nil).Times(2)
	vcs.EXPECT().Fetch(gomock.Any(), cache, mirror2, domain.CacheRefspec).Return(nil)

	err := inst.Install(context.Background(), id)
	require.Error(t, err)
	assert.ErrorContains(t, err, "could not locate content hash for package")
	assert.NoDirExists(t, depot.InstallPath(id.ID.UUID, id.Hash), "destination is only created once the object is found")
}

func TestInstall_WrongObjectKind(t *testing.T) {
	inst, vcs, depot := setup(t)
	id := newIdentity(mirror1)
	cache := depot.UpstreamPath(id.ID.UUID)

	vcs.EXPECT().Clone(gomock.Any(), mirror1, cache).Return(nil)
	vcs.EXPECT().HasObject(gomock.Any(), cache, id.Hash).Return(true, nil)
	vcs.EXPECT().ObjectType(gomock.Any(), cache, id.Hash).Return("commit", nil)

	err := inst.Install(context.Background(), id)
	require.Error(t, err)
	assert.ErrorContains(t, err, "wrong object kind")
}

func TestInstall_CloneFailurePropagates(t *testing.T) {
	inst, vcs, depot := setup(t)
	id := newIdentity(mirror1)

	vcs.EXPECT().Clone(gomock.Any(), mirror1, depot.UpstreamPath(id.ID.UUID)).Return(errors.New("network down"))

	err := inst.Install(context.Background(), id)
	require.Error(t, err)
	assert.ErrorContains(t, err, "network down")
}

func TestInstall_NoMirrors(t *testing.T) {
	inst, _, _ := setup(t)
	err := inst.Install(context.Background(), newIdentity())
	assert.ErrorContains(t, err, "package has no upstream urls")
}

func TestInstallAll(t *testing.T) {
	inst, vcs, depot := setup(t)

	a := newIdentity(mirror1)
	b := newIdentity(mirror2)
	b.ID = domain.NewPackageID("Other", domain.MustParsePackageUUID("9a3f8284-a2c9-5f02-9a11-845980a1fd5c"))

	for _, id := range []domain.Identity{a, b} {
		cache := depot.UpstreamPath(id.ID.UUID)
		vcs.EXPECT().Clone(gomock.Any(), id.URLs[0], cache).Return(nil)
		vcs.EXPECT().HasObject(gomock.Any(), cache, id.Hash).Return(true, nil)
		vcs.EXPECT().ObjectType(gomock.Any(), cache, id.Hash).Return(ports.ObjectTypeTree, nil)
		vcs.EXPECT().Checkout(gomock.Any(), cache, id.Hash, depot.InstallPath(id.ID.UUID, id.Hash)).DoAndReturn(writeTree)
	}

	require.NoError(t, inst.InstallAll(context.Background(), []domain.Identity{a, b}))

	_, ok := depot.Find(a.ID.UUID, a.Hash)
	assert.True(t, ok)
	_, ok = depot.Find(b.ID.UUID, b.Hash)
	assert.True(t, ok)
}

func TestInstall_PrintsProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	vcs := mocks.NewMockVCSBackend(ctrl)
	depot, err := cas.NewDepot([]string{t.TempDir()})
	require.NoError(t, err)

	var buf bytes.Buffer
	recorder := progrock.NewRecorder(progrock.NewPrinter(&buf, termenv.Ascii), domain.LogLevelInfo)
	inst := installer.New(depot, vcs, recorder, 2)

	id := newIdentity(mirror1)
	cache := depot.UpstreamPath(id.ID.UUID)
	vcs.EXPECT().Clone(gomock.Any(), mirror1, cache).Return(nil)
	vcs.EXPECT().HasObject(gomock.Any(), cache, id.Hash).Return(true, nil)
	vcs.EXPECT().ObjectType(gomock.Any(), cache, id.Hash).Return(ports.ObjectTypeTree, nil)
	vcs.EXPECT().Checkout(gomock.Any(), cache, id.Hash, gomock.Any()).DoAndReturn(writeTree)

	require.NoError(t, inst.Install(context.Background(), id))
	require.NoError(t, inst.Install(context.Background(), id))
	require.NoError(t, recorder.Close())

	assert.Equal(t, ""+
		"  install Example@1.1.0: cloning "+mirror1+"\n"+
		"  install Example@1.1.0: checking out "+id.Hash.String()+"\n"+
		"✓ install Example@1.1.0\n"+
		"✓ install Example@1.1.0 (cached)\n",
		buf.String())
}
