package cas_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/pak/internal/adapters/cas"
	"go.trai.ch/pak/internal/core/domain"
)

var (
	testUUID = domain.MustParsePackageUUID("7876af07-990d-54b4-ab0e-23690620f79a")
	testHash = domain.MustParseContentHash("0123456789abcdef0123456789abcdef01234567")
)

func TestDepot_InstallPathIsInUserDepot(t *testing.T) {
	user := t.TempDir()
	shared := t.TempDir()

	depot, err := cas.NewDepot([]string{user, shared})
	if err != nil {
		t.Fatalf("NewDepot failed: %v", err)
	}

	want := filepath.Join(user, "packages", testUUID.String(), testHash.String())
	if got := depot.InstallPath(testUUID, testHash); got != want {
		t.Errorf("expected install path %q, got %q", want, got)
	}

	wantUpstream := filepath.Join(user, "upstream", testUUID.String())
	if got := depot.UpstreamPath(testUUID); got != wantUpstream {
		t.Errorf("expected upstream path %q, got %q", wantUpstream, got)
	}
}

func TestDepot_FindScansRootsInOrder(t *testing.T) {
	user := t.TempDir()
	shared := t.TempDir()

	depot, err := cas.NewDepot([]string{user, shared})
	if err != nil {
		t.Fatalf("NewDepot failed: %v", err)
	}

	if _, ok := depot.Find(testUUID, testHash); ok {
		t.Fatal("expected empty depots to miss")
	}

	sharedPath := domain.PackagePath(shared, testUUID, testHash)
	if err := os.MkdirAll(sharedPath, domain.DirPerm); err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}
	got, ok := depot.Find(testUUID, testHash)
	if !ok || got != sharedPath {
		t.Errorf("expected %q from the shared depot, got %q (found=%v)", sharedPath, got, ok)
	}

	userPath := domain.PackagePath(user, testUUID, testHash)
	if err := os.MkdirAll(userPath, domain.DirPerm); err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}
	if got, _ := depot.Find(testUUID, testHash); got != userPath {
		t.Errorf("expected the user depot to win, got %q", got)
	}
}

func TestDepot_FindIgnoresFiles(t *testing.T) {
	user := t.TempDir()
	depot, err := cas.NewDepot([]string{user})
	if err != nil {
		t.Fatalf("NewDepot failed: %v", err)
	}

	path := domain.PackagePath(user, testUUID, testHash)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		t.Fatalf("failed to create parent: %v", err)
	}
	if err := os.WriteFile(path, []byte("not a tree"), domain.FilePerm); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, ok := depot.Find(testUUID, testHash); ok {
		t.Error("expected a plain file not to count as an installed tree")
	}
}

func TestNewDepot_RequiresARoot(t *testing.T) {
	if _, err := cas.NewDepot(nil); err == nil {
		t.Error("expected error for an empty depot list")
	}
}
