// Package solver implements ports.VersionSolver with a deterministic backtracking search.
package solver

import (
	"context"

	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/zerr"
)

// Solver picks one version per package by depth-first search over the availability graph.
// It assigns the most constrained package first and tries candidates newest first, so the
// first solution found prefers recent versions.
type Solver struct{}

// New creates a Solver.
func New() *Solver {
	return &Solver{}
}

// Resolve implements ports.VersionSolver.
func (s *Solver) Resolve(
	ctx context.Context,
	reqs domain.Requirements,
	graph domain.AvailabilityGraph,
) (domain.ResolvedSet, error) {
	if missing := graph.Dangling(); len(missing) > 0 {
		return nil, zerr.With(domain.ErrOpenGraph, "package", missing[0].String())
	}

	st := &search{
		ctx:      ctx,
		reqs:     reqs,
		graph:    graph,
		assigned: make(domain.ResolvedSet),
	}

	ok, err := st.solve()
	if err != nil {
		return nil, err
	}
	if !ok {
		err := domain.ErrUnsatisfiable
		if !st.blocked.IsZero() {
			err = zerr.With(err, "package", st.blocked.String())
		}
		return nil, err
	}
	return st.assigned, nil
}

type search struct {
	ctx      context.Context
	reqs     domain.Requirements
	graph    domain.AvailabilityGraph
	assigned domain.ResolvedSet

	// blocked is the last package found without any admissible candidate.
	blocked domain.PackageUUID
}

func (s *search) solve() (bool, error) {
	if err := s.ctx.Err(); err != nil {
		return false, err
	}

	next, candidates, done := s.pick()
	if done {
		return true, nil
	}
	if len(candidates) == 0 {
		s.blocked = next
		return false, nil
	}

	for _, v := range candidates {
		if !s.consistent(next, v) {
			continue
		}
		s.assigned[next] = v
		ok, err := s.solve()
		if err != nil || ok {
			return ok, err
		}
		delete(s.assigned, next)
	}
	return false, nil
}

// pick returns the unassigned needed package with the fewest admissible candidates.
// It reports done when every needed package is assigned.
func (s *search) pick() (domain.PackageUUID, []domain.Version, bool) {
	var (
		best      domain.PackageUUID
		bestCands []domain.Version
		found     bool
	)
	for _, id := range s.pending() {
		cands := s.candidates(id)
		if !found || len(cands) < len(bestCands) {
			best, bestCands, found = id, cands, true
		}
		if len(cands) == 0 {
			break
		}
	}
	return best, bestCands, !found
}

// pending returns the needed packages without an assignment, sorted.
func (s *search) pending() []domain.PackageUUID {
	needed := domain.NewSet()
	for id := range s.reqs {
		needed.Add(id)
	}
	for id, v := range s.assigned {
		for dep := range s.graph[id][v].Deps {
			needed.Add(dep)
		}
	}

	var out []domain.PackageUUID
	for id := range needed {
		if _, ok := s.assigned[id]; !ok {
			out = append(out, id)
		}
	}
	domain.SortUUIDs(out)
	return out
}

// candidates returns the versions of id admitted by the requirements and by every
// assigned version that depends on id, newest first.
func (s *search) candidates(id domain.PackageUUID) []domain.Version {
	var out []domain.Version
	for _, v := range s.graph.Versions(id) {
		if spec, ok := s.reqs[id]; ok && !spec.Contains(v) {
			continue
		}
		admitted := true
		for other, ov := range s.assigned {
			if spec, ok := s.graph[other][ov].Deps[id]; ok && !spec.Contains(v) {
				admitted = false
				break
			}
		}
		if admitted {
			out = append(out, v)
		}
	}
	return out
}

// consistent reports whether choosing v for id keeps every already assigned dependency admissible.
func (s *search) consistent(id domain.PackageUUID, v domain.Version) bool {
	for dep, spec := range s.graph[id][v].Deps {
		if dv, ok := s.assigned[dep]; ok && !spec.Contains(dv) {
			return false
		}
	}
	return true
}
