// Package app implements the package workflows of pak.
package app

import (
	"context"
	"fmt"
	"slices"

	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
	"go.trai.ch/pak/internal/engine/graph"
	"go.trai.ch/pak/internal/engine/identity"
	"go.trai.ch/pak/internal/engine/installer"
	"go.trai.ch/pak/internal/engine/manifest"
	"go.trai.ch/zerr"
)

// Engine groups the stages a workflow runs through, in order.
type Engine struct {
	Builder   *graph.Builder
	Solver    ports.VersionSolver
	Resolver  *identity.Resolver
	Installer *installer.Installer
	Manifest  *manifest.Manager
}

// App represents the main application logic.
type App struct {
	cfg      *domain.Config
	registry ports.RegistryIndex
	store    ports.EnvironmentStore
	depot    ports.Depot
	logger   ports.Logger
	engine   Engine
}

// New creates a new App instance.
func New(
	cfg *domain.Config,
	registry ports.RegistryIndex,
	store ports.EnvironmentStore,
	depot ports.Depot,
	log ports.Logger,
	engine Engine,
) *App {
	return &App{
		cfg:      cfg,
		registry: registry,
		store:    store,
		depot:    depot,
		logger:   log,
		engine:   engine,
	}
}

// Add installs the requested packages and records them as direct dependencies.
// The environment is saved only when every stage succeeds.
func (a *App) Add(ctx context.Context, requests []domain.PackageRequest) error {
	if len(requests) == 0 {
		return domain.ErrNoPackagesSpecified
	}

	env, err := a.load()
	if err != nil {
		return err
	}

	ids := make([]domain.PackageID, 0, len(requests))
	for _, req := range requests {
		id, err := a.identify(ctx, req)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	reqs := addRequirements(env, requests, ids)
	if err := a.sync(ctx, env, ids, reqs); err != nil {
		return err
	}
	if err := a.save(env); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("added %d package(s), %d locked", len(ids), len(env.Locked())))
	return nil
}

// Rm removes the named packages and everything that depends on them from the project,
// then prunes the lock file. Names without a lock entry are skipped with a warning.
func (a *App) Rm(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return domain.ErrNoPackagesSpecified
	}

	env, err := a.load()
	if err != nil {
		return err
	}

	var drop []domain.PackageUUID
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		id, ok, err := lockedUUID(env, name)
		if err != nil {
			return err
		}
		if !ok {
			a.logger.Warn(fmt.Sprintf("package %s is not in the manifest", name))
			continue
		}
		drop = append(drop, id)
	}
	if len(drop) == 0 {
		return nil
	}

	removed := env.DropDependents(drop)
	env.Prune()
	if err := a.save(env); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("removed %d package(s)", len(removed)))
	return nil
}

// Up upgrades locked packages within the ceilings of opts, then prunes the lock file.
func (a *App) Up(ctx context.Context, opts UpOptions) error {
	env, err := a.load()
	if err != nil {
		return err
	}

	reqs := upRequirements(env, opts)
	if len(reqs) == 0 {
		return nil
	}
	if err := a.sync(ctx, env, nil, reqs); err != nil {
		return err
	}
	if err := a.save(env); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("upgraded project, %d locked", len(env.Locked())))
	return nil
}

// Status returns the lock file entries and whether each tree is installed in a depot.
func (a *App) Status(_ context.Context) ([]domain.LockedPackage, error) {
	env, err := a.load()
	if err != nil {
		return nil, err
	}

	locked := env.Locked()
	for i := range locked {
		if locked[i].Hash.IsZero() {
			continue
		}
		_, locked[i].Installed = a.depot.Find(locked[i].ID.UUID, locked[i].Hash)
	}
	return locked, nil
}

// sync resolves reqs, installs the result and writes it into env. direct is recorded
// in the project.
func (a *App) sync(
	ctx context.Context,
	env *domain.Environment,
	direct []domain.PackageID,
	reqs domain.Requirements,
) error {
	roots := reqs.UUIDs()

	full, err := a.engine.Builder.Build(ctx, roots)
	if err != nil {
		return zerr.Wrap(err, "failed to build dependency graph")
	}
	available := full.Prune(roots)

	resolved, err := a.engine.Solver.Resolve(ctx, reqs, available)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve versions")
	}

	projectRoots := append(env.Project.UUIDs(), uuidsOf(direct)...)
	resolved = reachable(available, resolved, projectRoots)

	identities, err := a.engine.Resolver.Resolve(ctx, resolved)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve package identity")
	}

	list := make([]domain.Identity, 0, len(identities))
	for _, id := range resolved.UUIDs() {
		list = append(list, identities[id])
	}

	if err := a.engine.Installer.InstallAll(ctx, list); err != nil {
		return zerr.Wrap(err, "failed to install packages")
	}

	if err := a.engine.Manifest.Apply(ctx, env, direct, list); err != nil {
		return zerr.Wrap(err, "failed to update manifest")
	}
	return nil
}

// identify turns a request into a package id using the registries.
func (a *App) identify(ctx context.Context, req domain.PackageRequest) (domain.PackageID, error) {
	if req.UUID.IsZero() {
		matches := a.registry.FindByName(req.Name)
		switch len(matches) {
		case 0:
			return domain.PackageID{}, zerr.With(domain.ErrPackageNotFound, "package", req.Name)
		case 1:
			return domain.NewPackageID(req.Name, matches[0]), nil
		default:
			err := zerr.With(domain.ErrAmbiguousPackage, "package", req.Name)
			return domain.PackageID{}, zerr.With(err, "uuids", uuidStrings(matches))
		}
	}

	if err := a.registry.Locate(ctx, []domain.PackageUUID{req.UUID}); err != nil {
		return domain.PackageID{}, err
	}
	locs := a.registry.Locations(req.UUID)
	if len(locs) == 0 {
		return domain.PackageID{}, zerr.With(domain.ErrPackageNotFound, "uuid", req.UUID.String())
	}
	pkg, err := a.registry.Package(locs[0])
	if err != nil {
		return domain.PackageID{}, err
	}
	return domain.NewPackageID(pkg.Name, req.UUID), nil
}

func (a *App) load() (*domain.Environment, error) {
	env, err := a.store.Load(a.cfg.ProjectDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to load environment"), "project", a.cfg.ProjectDir)
	}
	return env, nil
}

func (a *App) save(env *domain.Environment) error {
	if err := a.store.Save(a.cfg.ProjectDir, env); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to save environment"), "project", a.cfg.ProjectDir)
	}
	return nil
}

// addRequirements builds the requirements of the requested packages. A request for a
// declared dependency whose locked version satisfies its constraint is pinned to that version.
func addRequirements(
	env *domain.Environment,
	requests []domain.PackageRequest,
	ids []domain.PackageID,
) domain.Requirements {
	direct := domain.NewSet(env.Project.UUIDs()...)
	reqs := make(domain.Requirements, len(requests))
	for i, req := range requests {
		id := ids[i].UUID
		spec := req.Constraint
		if direct.Has(id) {
			if _, entry, ok := env.Manifest.ByUUID(id); ok && !entry.Version.IsZero() && spec.Contains(entry.Version) {
				spec = domain.ExactSpec(entry.Version)
			}
		}
		reqs[id] = spec
	}
	return reqs
}

// upRequirements bounds every locked package by the ceiling of its level. Project
// packages without a lock entry are unconstrained.
func upRequirements(env *domain.Environment, opts UpOptions) domain.Requirements {
	reqs := make(domain.Requirements)
	for _, id := range env.Project.Deps {
		reqs[id] = domain.AnySpec
	}
	for _, pkg := range env.Locked() {
		if pkg.Version.IsZero() {
			continue
		}
		level := opts.Indirect
		if pkg.Direct {
			level = opts.Direct
		}
		reqs[pkg.ID.UUID] = level.Spec(pkg.Version)
	}
	return reqs
}

// reachable keeps the resolved packages the project reaches through the picked versions.
func reachable(g domain.AvailabilityGraph, resolved domain.ResolvedSet, roots []domain.PackageUUID) domain.ResolvedSet {
	edges := make(domain.Edges, len(resolved))
	for id, v := range resolved {
		deps := make([]domain.PackageUUID, 0, len(g[id][v].Deps))
		for dep := range g[id][v].Deps {
			deps = append(deps, dep)
		}
		edges[id] = deps
	}

	keep := domain.Closure(edges, roots, domain.Forward)
	out := make(domain.ResolvedSet, len(resolved))
	for id, v := range resolved {
		if keep.Has(id) {
			out[id] = v
		}
	}
	return out
}

// lockedUUID finds the lock stanza named by ref, which is a package name or uuid.
func lockedUUID(env *domain.Environment, ref string) (domain.PackageUUID, bool, error) {
	if domain.IsPackageUUID(ref) {
		id, err := domain.ParsePackageUUID(ref)
		if err != nil {
			return domain.PackageUUID{}, false, err
		}
		_, _, ok := env.Manifest.ByUUID(id)
		return id, ok, nil
	}

	entries := env.Manifest[ref]
	switch len(entries) {
	case 0:
		return domain.PackageUUID{}, false, nil
	case 1:
		return entries[0].UUID, true, nil
	default:
		ids := make([]domain.PackageUUID, 0, len(entries))
		for _, entry := range entries {
			ids = append(ids, entry.UUID)
		}
		err := zerr.With(domain.ErrAmbiguousPackage, "package", ref)
		return domain.PackageUUID{}, false, zerr.With(err, "uuids", uuidStrings(ids))
	}
}

func uuidsOf(ids []domain.PackageID) []domain.PackageUUID {
	out := make([]domain.PackageUUID, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.UUID)
	}
	return out
}

func uuidStrings(ids []domain.PackageUUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	slices.Sort(out)
	return out
}
