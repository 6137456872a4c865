// Package installer materializes package source trees into the user depot.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Installer fetches trees from upstream mirrors through a per-package bare cache.
type Installer struct {
	depot     ports.Depot
	vcs       ports.VCSBackend
	telemetry ports.Telemetry
	jobs      int
	locks     keyedMutex
}

// New creates an Installer running at most jobs installs at once.
func New(depot ports.Depot, vcs ports.VCSBackend, telemetry ports.Telemetry, jobs int) *Installer {
	if jobs < 1 {
		jobs = 1
	}
	return &Installer{
		depot:     depot,
		vcs:       vcs,
		telemetry: telemetry,
		jobs:      jobs,
	}
}

// InstallAll installs every identity. Installs of different packages run in parallel.
func (i *Installer) InstallAll(ctx context.Context, ids []domain.Identity) error {
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(i.jobs)

	for _, id := range ids {
		g.Go(func() error {
			return i.Install(groupCtx, id)
		})
	}

	return g.Wait()
}

// Install makes the tree (uuid, hash) of id present in a depot. It is idempotent:
// a tree already present in any depot is not fetched again.
func (i *Installer) Install(ctx context.Context, id domain.Identity) error {
	ctx, vertex := i.telemetry.Record(ctx, fmt.Sprintf("install %s@%s", id.ID.Name, id.Version))

	if path, ok := i.depot.Find(id.ID.UUID, id.Hash); ok {
		vertex.Log(domain.LogLevelDebug, "found "+path)
		vertex.Cached()
		return nil
	}

	err := i.install(ctx, id, vertex)
	if err != nil {
		err = zerr.With(err, "package", id.ID.Name.String())
		err = zerr.With(err, "uuid", id.ID.UUID.String())
		err = zerr.With(err, "version", id.Version.String())
	}
	vertex.Complete(err)
	return err
}

func (i *Installer) install(ctx context.Context, id domain.Identity, vertex ports.Vertex) error {
	if len(id.URLs) == 0 {
		return domain.ErrNoMirrors
	}

	unlock := i.locks.Lock(id.ID.UUID)
	defer unlock()

	cache := i.depot.UpstreamPath(id.ID.UUID)
	if err := i.ensureCache(ctx, cache, id.URLs[0], vertex); err != nil {
		return err
	}

	// The first mirror only seeds the cache.
	found, err := i.locate(ctx, cache, id, id.URLs[1:], vertex)
	if err != nil {
		return err
	}
	if !found {
		return zerr.With(domain.ErrObjectNotFound, "hash", id.Hash.String())
	}

	kind, err := i.vcs.ObjectType(ctx, cache, id.Hash)
	if err != nil {
		return err
	}
	if kind != ports.ObjectTypeTree {
		err := zerr.With(domain.ErrWrongObjectKind, "hash", id.Hash.String())
		return zerr.With(err, "kind", kind)
	}

	dest := i.depot.InstallPath(id.ID.UUID, id.Hash)
	if err := os.MkdirAll(dest, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	vertex.Log(domain.LogLevelInfo, "checking out "+id.Hash.String())
	return i.vcs.Checkout(ctx, cache, id.Hash, dest)
}

// ensureCache clones the bare cache from first when it does not exist yet.
func (i *Installer) ensureCache(ctx context.Context, cache, first string, vertex ports.Vertex) error {
	_, err := os.Stat(cache)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "path", cache)
	}

	if err := os.MkdirAll(filepath.Dir(cache), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}
	vertex.Log(domain.LogLevelInfo, "cloning "+first)
	return i.vcs.Clone(ctx, first, cache)
}

// locate probes the cache for the object and fetches mirrors in order until it appears.
func (i *Installer) locate(
	ctx context.Context,
	cache string,
	id domain.Identity,
	mirrors []string,
	vertex ports.Vertex,
) (bool, error) {
	found, err := i.vcs.HasObject(ctx, cache, id.Hash)
	if err != nil || found {
		return found, err
	}

	for _, url := range mirrors {
		vertex.Log(domain.LogLevelInfo, "fetching "+url)
		if err := i.vcs.Fetch(ctx, cache, url, domain.CacheRefspec); err != nil {
			return false, err
		}
		found, err := i.vcs.HasObject(ctx, cache, id.Hash)
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}
