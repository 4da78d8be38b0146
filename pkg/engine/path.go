package engine

import (
	"github.com/Faultbox/gridsense/pkg/grid"
	"github.com/Faultbox/gridsense/pkg/pathfind"
)

// Path algorithms.
const (
	PathBasic = pathfind.Basic
	PathAStar = pathfind.AStar
)

// PathOptions tunes Path. A negative Range uses the engine maximum.
type PathOptions struct {
	Algorithm    pathfind.Algorithm
	Range        int
	Flags        grid.ProjectFlag // grid.ProjectThru walks through walls
	DiagonalCost float64          // A* only
}

// DefaultPathOptions returns a greedy search of range 30.
func DefaultPathOptions() PathOptions {
	return PathOptions{
		Algorithm:    PathBasic,
		Range:        30,
		DiagonalCost: 1.0,
	}
}

// Path returns the cells from origin to dest, excluding origin and including
// dest. A nil path with a nil error means there is none.
func (e *Engine) Path(h int, origin, dest grid.Point, opts PathOptions) ([]grid.Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookupAt(h, origin, dest)
	if err != nil {
		return nil, err
	}
	if !opts.Algorithm.Valid() {
		return nil, ErrInvalidAlgorithm
	}

	return pathfind.NewPathFinder(s.m).FindPath(origin, dest, pathfind.Options{
		Algorithm:    opts.Algorithm,
		Range:        e.rangeOrMax(opts.Range),
		Flags:        opts.Flags,
		DiagonalCost: opts.DiagonalCost,
	}), nil
}

// PathAway returns up to rng steps leading from origin away from threat.
func (e *Engine) PathAway(h int, origin, threat grid.Point, rng int) ([]grid.Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookupAt(h, origin, threat)
	if err != nil {
		return nil, err
	}
	return pathfind.NewPathFinder(s.m).Flee(origin, threat, e.rangeOrMax(rng)), nil
}
