// Package cas implements the content-addressed depot holding installed package trees.
package cas

import (
	"os"
	"path/filepath"

	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/zerr"
)

// Depot implements ports.Depot over an ordered list of depot roots.
// Lookups scan every root in order; writes go to the first (user) root.
type Depot struct {
	roots []string
}

// NewDepot creates a Depot over roots. The first root is the user depot.
func NewDepot(roots []string) (*Depot, error) {
	if len(roots) == 0 {
		return nil, domain.ErrNoDepots
	}
	cleaned := make([]string, len(roots))
	for i, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve depot path"), "path", root)
		}
		cleaned[i] = abs
	}
	return &Depot{roots: cleaned}, nil
}

// Find returns the first root holding the tree (id, hash).
func (d *Depot) Find(id domain.PackageUUID, hash domain.ContentHash) (string, bool) {
	for _, root := range d.roots {
		path := domain.PackagePath(root, id, hash)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// InstallPath returns the location of the tree (id, hash) in the user depot.
func (d *Depot) InstallPath(id domain.PackageUUID, hash domain.ContentHash) string {
	return domain.PackagePath(d.roots[0], id, hash)
}

// UpstreamPath returns the bare upstream cache of id in the user depot.
func (d *Depot) UpstreamPath(id domain.PackageUUID) string {
	return domain.UpstreamPath(d.roots[0], id)
}
